package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

var lookPath = exec.LookPath

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		status := Status{Requirement: req}
		switch {
		case req.Command == "":
			status.Detail = "command not configured"
		default:
			if _, err := lookPath(req.Command); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", req.Command)
			} else {
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// RequireAll returns an error naming every missing non-optional binary.
func RequireAll(requirements []Requirement) error {
	var errs []error
	for _, status := range CheckBinaries(requirements) {
		if status.Available || status.Optional {
			continue
		}
		errs = append(errs, fmt.Errorf("%s (%s): %s", status.Name, status.Description, status.Detail))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %w", errors.Join(errs...))
}
