package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trezcool/classbook/core"
)

func NewRootCommand() *cobra.Command {
	var params Params
	cmd := &cobra.Command{
		Use:           "classbook",
		Short:         "Academic records manager",
		Long:          "Classbook registers instructors and students, groups students into courses and computes pay and grade averages from an interactive menu.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params.In = cmd.InOrStdin()
			params.Out = cmd.OutOrStdout()
			params.Err = cmd.ErrOrStderr()
			return run(params)
		},
	}

	cmd.PersistentFlags().StringVar(&params.ConfigFile, "config", "", "config file (default .classbook.yaml)")
	cmd.Flags().BoolVar(&params.NoPause, "no-pause", false, "do not wait for Enter after each action")
	cmd.Flags().BoolVar(&params.NoBanner, "no-banner", false, "do not print the welcome banner")

	cmd.AddCommand(newVersionCommand(&params))
	return cmd
}

func newVersionCommand(params *Params) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := core.LoadConfig(params.ConfigFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", conf.AppName, conf.Build)
			return nil
		},
	}
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
