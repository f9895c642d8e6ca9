package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/appxkit/pkg/appx"
)

func init() {
	rootCmd.AddCommand(newUnpackCmd())
}

func newUnpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <package> <dir>",
		Short: "Extract every entry of a package into a directory",
		Long: `The unpack command extracts each entry of a package into the
destination directory, creating subdirectories as needed. Existing files
with the same name are overwritten. Extraction stops at the first error
and already-written files are left in place.

Example:
  appxctl unpack app.appx ./app`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(args)
		},
	}
}

func runUnpack(args []string) error {
	source, dest := args[0], args[1]
	if err := appx.Unpack(source, dest); err != nil {
		return err
	}
	if cfg.JSON {
		return printJSON(map[string]interface{}{"package": source, "dest": dest, "ok": true})
	}
	printInfo("✓ Unpacked %s to %s\n", source, dest)
	return nil
}
