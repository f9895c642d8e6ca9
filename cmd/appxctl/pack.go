package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/appxkit/pkg/appx"
)

func init() {
	cmd := newPackCmd()
	defaults := appx.DefaultOptions()
	cmd.Flags().String("compression", string(defaults.Compression), "Entry compression (deflate, store)")
	cmd.Flags().Bool("no-sync", defaults.NoSync, "Skip flushing the package to disk on commit")
	rootCmd.AddCommand(cmd)
}

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <dir> <package>",
		Short: "Build a package from a directory",
		Long: `The pack command adds every regular file under the source directory
to a new package, in sorted name order, and finalizes the archive once
after the last entry.

Example:
  appxctl pack ./app app.appx
  appxctl pack ./app app.appx --compression store`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(args)
		},
	}
}

func runPack(args []string) error {
	source, dest := args[0], args[1]
	if err := appx.Pack(source, dest, cfg.Options()); err != nil {
		return err
	}
	if cfg.JSON {
		return printJSON(map[string]interface{}{"source": source, "package": dest, "ok": true})
	}
	printInfo("✓ Packed %s into %s\n", source, dest)
	return nil
}
