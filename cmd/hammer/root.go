package main

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hammer",
		Short:         "Measure how an HTTP endpoint copes with concurrent requests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(NewRunCommand())
	return cmd
}
