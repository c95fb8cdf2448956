package cmd

import (
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of khelp",
		Long:  `All software has versions. This is khelp's.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			writef(cmd, "khelp version %s\n", rootCmd.Version)
		},
	}
}
