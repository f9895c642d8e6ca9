package appx

import (
	"fmt"

	"github.com/joshuapare/appxkit/internal/container"
	"github.com/joshuapare/appxkit/internal/dirtree"
	"github.com/joshuapare/appxkit/internal/format"
	"github.com/joshuapare/appxkit/internal/logger"
	"github.com/joshuapare/appxkit/internal/stream"
	"github.com/joshuapare/appxkit/pkg/types"
)

// Re-exported so callers can name report types.
type (
	SignatureBlock = format.SignatureBlock
	HeaderInfo     = format.HeaderInfo
	LocatorInfo    = format.LocatorInfo
)

func requirePaths(op string, paths ...string) error {
	for _, p := range paths {
		if p == "" {
			return types.Errorf(types.ErrKindInvalidArgument, "%s: missing path", op)
		}
	}
	return nil
}

// Unpack extracts every entry of the package at source into the directory
// dest, creating it as needed. An archive without file entries still leaves
// an empty dest behind. The first failure stops the extraction.
func Unpack(source, dest string) (err error) {
	if err := requirePaths("unpack", source, dest); err != nil {
		return err
	}

	pkg, err := container.Open(source)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pkg.Close(); err == nil {
			err = cerr
		}
	}()

	tree := dirtree.New(dest)
	if err := tree.Create(); err != nil {
		return err
	}
	names := pkg.ListEntries()
	for _, name := range names {
		if err := unpackEntry(pkg, tree, name); err != nil {
			return fmt.Errorf("unpack %s: %w", source, err)
		}
	}
	logger.L.Info("unpacked package", "package", source, "dest", dest, "entries", len(names))
	return nil
}

func unpackEntry(pkg *container.Container, tree *dirtree.Tree, name string) error {
	src, err := pkg.OpenForRead(name)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := tree.OpenForWrite(name, stream.ModeWriteUpdate)
	if err != nil {
		return err
	}
	n, err := stream.CopyTo(dst, src)
	if err != nil {
		_ = dst.Close()
		return fmt.Errorf("entry %q: %w", name, err)
	}
	logger.L.Debug("extracted entry", "entry", name, "bytes", n)
	return dst.Close()
}

// Pack writes every file under the directory source into a new package at
// dest. Entries are added in sorted name order and the archive is committed
// once after the last entry.
func Pack(source, dest string, opts *Options) (err error) {
	if err := requirePaths("pack", source, dest); err != nil {
		return err
	}
	o := resolve(opts)

	tree := dirtree.New(source)
	names, err := tree.ListEntries()
	if err != nil {
		return err
	}

	pkg, err := container.Create(dest, o.writeOptions())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pkg.Close(); err == nil {
			err = cerr
		}
	}()

	for _, name := range names {
		if err := packEntry(tree, pkg, name); err != nil {
			return fmt.Errorf("pack %s: %w", source, err)
		}
	}
	if err := pkg.Commit(); err != nil {
		return err
	}
	logger.L.Info("packed package", "source", source, "package", dest, "entries", len(names))
	return nil
}

func packEntry(tree *dirtree.Tree, pkg *container.Container, name string) error {
	src, err := tree.OpenForRead(name)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := pkg.OpenForWrite(name)
	if err != nil {
		return err
	}
	n, err := stream.CopyTo(dst, src)
	if err != nil {
		return fmt.Errorf("entry %q: %w", name, err)
	}
	logger.L.Debug("staged entry", "entry", name, "bytes", n)
	return dst.Close()
}

// ValidateSignature checks that the package at path holds a signature entry
// whose leading bytes form a header carrying the signature magic. No
// cryptographic verification is performed.
func ValidateSignature(path string, opts *Options) error {
	_, err := readSignature(path, opts)
	return err
}

// Inspect validates the signature block like ValidateSignature and describes it.
func Inspect(path string, opts *Options) (*Report, error) {
	return readSignature(path, opts)
}

// Report describes a package's entries and signature block.
type Report struct {
	Path      string          `json:"path"`
	Entries   []string        `json:"entries"`
	Signature *SignatureBlock `json:"signature"`
}

func readSignature(path string, opts *Options) (report *Report, err error) {
	if err := requirePaths("validate signature", path); err != nil {
		return nil, err
	}
	o := resolve(opts)

	pkg, err := container.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := pkg.Close(); err == nil {
			err = cerr
		}
	}()

	size, err := pkg.EntrySize(o.SignatureEntry)
	if err != nil {
		return nil, err
	}
	sig, err := pkg.OpenForRead(o.SignatureEntry)
	if err != nil {
		return nil, err
	}
	defer sig.Close()

	prefix, err := stream.ReadPrefix(sig, o.SignaturePrefixLimit)
	if err != nil {
		return nil, err
	}
	truncated := size > uint64(len(prefix))

	block, err := format.InspectSignature(prefix, truncated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.L.Debug("signature block accepted", "package", path, "bytes", len(prefix), "truncated", truncated)
	return &Report{Path: path, Entries: pkg.SortedEntries(), Signature: block}, nil
}
