// Package container is the ZIP collaborator behind every workflow: it lists,
// reads and writes named entries of a package archive and finalizes a new
// archive in a single commit.
package container

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/appxkit/internal/logger"
	"github.com/joshuapare/appxkit/internal/mmfile"
	"github.com/joshuapare/appxkit/internal/stream"
	"github.com/joshuapare/appxkit/pkg/types"
)

// WriteOptions controls how new archives are produced.
type WriteOptions struct {
	// Method is the ZIP compression method for every entry (zip.Deflate or zip.Store).
	Method uint16
	// Modified stamps every entry. The zero value uses the time of the call.
	Modified time.Time
	// Sync flushes the archive to stable storage on Commit.
	Sync bool
}

// DefaultWriteOptions deflates entries and syncs on commit.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Method: zip.Deflate, Sync: true}
}

// Container is an open package archive, either for reading (Open) or for
// writing (Create). It is not safe for concurrent use.
type Container struct {
	path string

	// read side
	zr      *zip.Reader
	unmap   func() error
	names   []string
	entries map[string]*zip.File

	// write side
	out       *stream.FileStream
	zw        *zip.Writer
	opts      WriteOptions
	committed bool
}

// Open opens the archive at path for reading.
func Open(path string) (*Container, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &types.Error{Kind: types.ErrKindNotFound, Msg: "open package " + path, Err: err}
		}
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "open package " + path, Err: err}
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		_ = unmap()
		return nil, zipError("open package "+path, err)
	}

	c := &Container{path: path, zr: zr, unmap: unmap, entries: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := entryName(f)
		if _, dup := c.entries[name]; dup {
			logger.L.Warn("duplicate container entry ignored", "package", path, "entry", name)
			continue
		}
		c.entries[name] = f
		c.names = append(c.names, name)
	}
	logger.L.Debug("opened package", "package", path, "entries", len(c.names))
	return c, nil
}

// entryName decodes the stored name. Archives written by legacy tools carry
// CP437 names without the UTF-8 flag.
func entryName(f *zip.File) string {
	if !f.NonUTF8 || utf8.ValidString(f.Name) {
		return f.Name
	}
	decoded, err := charmap.CodePage437.NewDecoder().String(f.Name)
	if err != nil {
		return f.Name
	}
	return decoded
}

// Create creates (or truncates) the archive at path for writing.
func Create(path string, opts WriteOptions) (*Container, error) {
	out, err := stream.OpenFile(path, stream.ModeWrite)
	if err != nil {
		return nil, err
	}
	return &Container{path: path, out: out, zw: zip.NewWriter(out), opts: opts}, nil
}

// Path returns the archive path.
func (c *Container) Path() string { return c.path }

// ListEntries returns entry names in archive order. Directory entries are omitted.
func (c *Container) ListEntries() []string {
	return append([]string(nil), c.names...)
}

// SortedEntries returns entry names in lexical order.
func (c *Container) SortedEntries() []string {
	names := c.ListEntries()
	sort.Strings(names)
	return names
}

// Has reports whether the archive holds an entry called name.
func (c *Container) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// OpenForRead opens entry name. A missing entry is a NotFound error.
func (c *Container) OpenForRead(name string) (stream.Stream, error) {
	if c.zr == nil {
		return nil, types.Errorf(types.ErrKindInvalidArgument, "%s: opened for writing", c.path)
	}
	f, ok := c.entries[name]
	if !ok {
		return nil, types.Errorf(types.ErrKindNotFound, "%s: no entry %q", c.path, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, zipError(fmt.Sprintf("%s: open entry %q", c.path, name), err)
	}
	return &entryReader{rc: rc, name: name}, nil
}

// EntrySize returns the uncompressed size recorded for entry name.
func (c *Container) EntrySize(name string) (uint64, error) {
	f, ok := c.entries[name]
	if !ok {
		return 0, types.Errorf(types.ErrKindNotFound, "%s: no entry %q", c.path, name)
	}
	return f.UncompressedSize64, nil
}

// OpenForWrite starts a new entry. The previous entry's stream becomes invalid.
func (c *Container) OpenForWrite(name string) (stream.Stream, error) {
	if c.zw == nil {
		return nil, types.Errorf(types.ErrKindInvalidArgument, "%s: opened for reading", c.path)
	}
	if c.committed {
		return nil, types.Errorf(types.ErrKindInvalidArgument, "%s: already committed", c.path)
	}
	modified := c.opts.Modified
	if modified.IsZero() {
		modified = time.Now()
	}
	w, err := c.zw.CreateHeader(&zip.FileHeader{
		Name:     strings.TrimPrefix(name, "/"),
		Method:   c.opts.Method,
		Modified: modified,
	})
	if err != nil {
		return nil, types.Wrap(types.ErrKindIO, fmt.Sprintf("%s: create entry %q", c.path, name), err)
	}
	return &entryWriter{w: w}, nil
}

// Commit writes the central directory and closes the archive. It runs once,
// after the last entry.
func (c *Container) Commit() error {
	if c.zw == nil || c.committed {
		return types.Errorf(types.ErrKindInvalidArgument, "%s: nothing to commit", c.path)
	}
	c.committed = true
	if err := c.zw.Close(); err != nil {
		_ = c.out.Close()
		return types.Wrap(types.ErrKindIO, "finalize "+c.path, err)
	}
	if c.opts.Sync {
		if err := c.out.Sync(); err != nil {
			_ = c.out.Close()
			return err
		}
	}
	logger.L.Debug("committed package", "package", c.path)
	return c.out.Close()
}

// Close releases the archive. An uncommitted write-side archive is closed
// without a central directory. Close after Commit is a no-op.
func (c *Container) Close() error {
	var errs []error
	if c.unmap != nil {
		if err := c.unmap(); err != nil {
			errs = append(errs, types.Wrap(types.ErrKindIO, "unmap "+c.path, err))
		}
		c.unmap = nil
	}
	if c.out != nil && !c.committed {
		if err := c.out.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func zipError(msg string, err error) error {
	if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrAlgorithm) ||
		errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrInsecurePath) {
		return &types.Error{Kind: types.ErrKindInvalidStreamFormat, Msg: msg, Err: err}
	}
	return types.Wrap(types.ErrKindIO, msg, err)
}

type entryReader struct {
	rc   io.ReadCloser
	name string
}

func (r *entryReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err != nil && err != io.EOF {
		return n, zipError("read entry "+r.name, err)
	}
	return n, err
}

func (r *entryReader) Write([]byte) (int, error) { return 0, stream.ErrReadOnly }

func (r *entryReader) Close() error { return r.rc.Close() }

type entryWriter struct {
	w io.Writer
}

func (w *entryWriter) Read([]byte) (int, error) { return 0, stream.ErrWriteOnly }

func (w *entryWriter) Write(p []byte) (int, error) { return w.w.Write(p) }

// Close is a no-op: the ZIP writer ends an entry when the next one starts.
func (w *entryWriter) Close() error { return nil }
