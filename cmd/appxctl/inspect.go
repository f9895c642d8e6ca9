package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/appxkit/pkg/appx"
)

func init() {
	cmd := newInspectCmd()
	addSignatureFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <package>",
		Short: "Show package entries and the signature block header",
		Long: `The inspect command validates the signature block like validate and
prints the entries of the package along with the decoded header fields
of the signature block.

Example:
  appxctl inspect app.appx
  appxctl inspect app.appx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
}

func runInspect(args []string) error {
	report, err := appx.Inspect(args[0], cfg.Options())
	if err != nil {
		return err
	}
	if cfg.JSON {
		return printJSON(report)
	}

	sig := report.Signature
	printInfo("Package: %s\n", report.Path)
	printInfo("Entries (%d):\n", len(report.Entries))
	for _, e := range report.Entries {
		printInfo("  %s\n", e)
	}
	printInfo("\nSignature block:\n")
	if sig.Header != nil {
		printInfo("  Magic:          %s\n", sig.Header.ID)
	} else {
		printInfo("  Magic:          (entry shorter than a header)\n")
	}
	printInfo("  Body size:      %d bytes\n", sig.BodySize)
	printInfo("  Body SHA-256:   %s\n", sig.BodySHA256)
	if sig.Truncated {
		printInfo("  (inspection limited to the first %d bytes)\n", cfg.SignaturePrefixLimit)
	}
	return nil
}
