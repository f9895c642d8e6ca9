// Package dirtree is the directory collaborator: it enumerates the files under
// a root and opens them by slash-separated relative name, the naming a package
// archive uses.
package dirtree

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joshuapare/appxkit/internal/stream"
	"github.com/joshuapare/appxkit/pkg/types"
)

// Tree is a directory rooted at Root.
type Tree struct {
	root string
}

// New returns a Tree over root. The directory need not exist yet when the
// tree is only written to.
func New(root string) *Tree {
	return &Tree{root: filepath.Clean(root)}
}

// Create makes the root directory and any missing parents.
func (t *Tree) Create() error {
	if err := os.MkdirAll(t.root, 0o755); err != nil {
		return &types.Error{Kind: types.ErrKindIO, Msg: "create " + t.root, Err: err}
	}
	return nil
}

// Root returns the tree's root directory.
func (t *Tree) Root() string { return t.root }

// ListEntries returns the relative, slash-separated names of every regular
// file under the root, sorted.
func (t *Tree) ListEntries() ([]string, error) {
	info, err := os.Stat(t.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &types.Error{Kind: types.ErrKindNotFound, Msg: "list " + t.root, Err: err}
		}
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "list " + t.root, Err: err}
	}
	if !info.IsDir() {
		return nil, types.Errorf(types.ErrKindInvalidArgument, "list %s: not a directory", t.root)
	}

	var names []string
	err = filepath.WalkDir(t.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(t.root, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, types.Wrap(types.ErrKindIO, "list "+t.root, err)
	}
	sort.Strings(names)
	return names, nil
}

// resolve maps an entry name to a path under the root. Names that are empty
// or would escape the root are rejected.
func (t *Tree) resolve(name string) (string, error) {
	rel := strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/")
	if rel == "" || rel == "." || !fs.ValidPath(rel) {
		return "", types.Errorf(types.ErrKindInvalidStreamFormat, "entry name %q outside %s", name, t.root)
	}
	return filepath.Join(t.root, filepath.FromSlash(rel)), nil
}

// OpenForRead opens the file called name.
func (t *Tree) OpenForRead(name string) (stream.Stream, error) {
	p, err := t.resolve(name)
	if err != nil {
		return nil, err
	}
	return stream.OpenFile(p, stream.ModeRead)
}

// OpenForWrite creates the file called name, and any missing parent
// directories, in the given mode.
func (t *Tree) OpenForWrite(name string, mode stream.Mode) (stream.Stream, error) {
	p, err := t.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "create directory for " + name, Err: err}
	}
	return stream.OpenFile(p, mode)
}
