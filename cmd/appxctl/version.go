package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.JSON {
				return printJSON(map[string]string{
					"version": rootCmd.Version,
					"go":      runtime.Version(),
				})
			}
			printInfo("appxctl %s (%s)\n", rootCmd.Version, runtime.Version())
			return nil
		},
	})
}
