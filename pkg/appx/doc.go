/*
Package appx builds and inspects APPX application packages.

# Workflows

Extract every entry of a package into a directory:

	err := appx.Unpack("app.appx", "out/")

Pack a directory back into a package. Entries are staged one by one and the
archive is finalized once, after the last entry:

	err := appx.Pack("out/", "rebuilt.appx", nil)

Check that the package carries a structurally valid signature block:

	err := appx.ValidateSignature("app.appx", nil)

ValidateSignature only checks that AppxSignature.p7x exists and starts with
the PKCX magic; it does not verify certificates or digests.

# Errors

Every error returned carries a kind from pkg/types. Branch on it with
errors.Is:

	if errors.Is(err, types.ErrUnsupportedVersion) { ... }

or reduce it to the stable numeric code used by the C ABI:

	code := types.CodeOf(err)

A failed Pack or Unpack may leave partial output on disk; nothing is rolled
back.
*/
package appx
