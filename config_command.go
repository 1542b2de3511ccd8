package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HugeFrog24/gpt-video-ebook/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigSampleCommand())
	configCmd.AddCommand(newConfigValidateCommand())
	return configCmd
}

func newConfigSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the default configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := config.Sample()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), sample)
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration OK (mode=%s, asr=%s, llm=%s)\n", cfg.Mode, cfg.ASR.Backend, cfg.LLM.Provider)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "Configuration file path")
	return cmd
}
