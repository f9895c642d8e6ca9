package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/appxkit/pkg/appx"
	"github.com/joshuapare/appxkit/pkg/types"
)

func init() {
	cmd := newValidateCmd()
	addSignatureFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func addSignatureFlags(cmd *cobra.Command) {
	defaults := appx.DefaultOptions()
	cmd.Flags().String("signature-entry", defaults.SignatureEntry, "Archive entry holding the signature block")
	cmd.Flags().Int("prefix-limit", defaults.SignaturePrefixLimit, "Bytes of the signature entry to inspect")
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <package>",
		Short: "Check the structure of the package signature block",
		Long: `The validate command opens the signature entry of a package and
checks that it begins with the PKCX signature magic. It does not verify
certificates or digests.

Example:
  appxctl validate app.appx
  appxctl validate app.appx --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
}

func runValidate(args []string) error {
	path := args[0]
	err := appx.ValidateSignature(path, cfg.Options())
	code := types.CodeOf(err)

	if cfg.JSON {
		result := map[string]interface{}{
			"package": path,
			"valid":   err == nil,
			"code":    uint32(code),
		}
		if err != nil {
			result["error"] = err.Error()
		}
		if perr := printJSON(result); perr != nil {
			return perr
		}
		return err
	}

	if err != nil {
		printInfo("✗ %s: signature block invalid (%s)\n", path, code)
		return err
	}
	printInfo("✓ %s: signature block valid\n", path)
	return nil
}
