package appx

import (
	"archive/zip"
	"time"

	"github.com/joshuapare/appxkit/internal/container"
	"github.com/joshuapare/appxkit/internal/format"
)

// Compression selects how Pack stores entries.
type Compression string

const (
	CompressionDeflate Compression = "deflate"
	CompressionStore   Compression = "store"
)

// Options controls the workflows. A nil *Options means DefaultOptions().
type Options struct {
	// SignatureEntry is the archive entry holding the signature block.
	// Default: "AppxSignature.p7x"
	SignatureEntry string

	// SignaturePrefixLimit bounds how many bytes of the signature entry are
	// inspected. Default: 16 KiB
	SignaturePrefixLimit int

	// Compression is the method Pack uses for every entry. Default: deflate
	Compression Compression

	// Modified stamps every packed entry. The zero value uses the pack time.
	Modified time.Time

	// NoSync skips flushing the packed archive to stable storage.
	NoSync bool
}

// DefaultOptions returns the options used when nil is passed.
func DefaultOptions() Options {
	return Options{
		SignatureEntry:       format.SignatureEntryName,
		SignaturePrefixLimit: format.SignaturePrefixLimit,
		Compression:          CompressionDeflate,
	}
}

// resolve fills zero fields of opts from DefaultOptions.
func resolve(opts *Options) Options {
	d := DefaultOptions()
	if opts == nil {
		return d
	}
	o := *opts
	if o.SignatureEntry == "" {
		o.SignatureEntry = d.SignatureEntry
	}
	if o.SignaturePrefixLimit <= 0 {
		o.SignaturePrefixLimit = d.SignaturePrefixLimit
	}
	if o.Compression == "" {
		o.Compression = d.Compression
	}
	return o
}

func (o Options) writeOptions() container.WriteOptions {
	method := zip.Deflate
	if o.Compression == CompressionStore {
		method = zip.Store
	}
	return container.WriteOptions{Method: method, Modified: o.Modified, Sync: !o.NoSync}
}
