// Package testutil builds package archives and signature blobs for tests
// without going through the code under test.
package testutil

import (
	"archive/zip"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// SignatureEntry is the archive entry that carries the signature block.
const SignatureEntry = "AppxSignature.p7x"

// Signature magics as stored on disk.
const (
	SignatureMagic     uint32 = 0x58434B50 // "PKCX"
	PackageHeaderMagic uint32 = 0x48505845 // "EXPH"
)

// SignatureBlob returns an n-byte signature block starting with magic. The
// bytes after the magic stand in for a PKCS#7 payload.
func SignatureBlob(magic uint32, n int) []byte {
	b := make([]byte, n)
	if n >= 4 {
		binary.LittleEndian.PutUint32(b, magic)
	}
	for i := 4; i < n; i++ {
		b[i] = byte(i * 7)
	}
	return b
}

// SampleEntries returns a small package layout including a valid signature.
func SampleEntries() map[string][]byte {
	return map[string][]byte{
		"AppxManifest.xml":       []byte(`<?xml version="1.0" encoding="utf-8"?><Package/>`),
		"AppxBlockMap.xml":       []byte(`<BlockMap HashMethod="http://www.w3.org/2001/04/xmlenc#sha256"/>`),
		"Assets/StoreLogo.png":   {0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A},
		"bin/app.exe":            append([]byte("MZ"), make([]byte, 4096)...),
		"[Content_Types].xml":    []byte(`<Types/>`),
		SignatureEntry:           SignatureBlob(SignatureMagic, 512),
		"Assets/nested/deep.txt": []byte("deep"),
	}
}

// WritePackage writes entries to a new ZIP archive at path, in name order.
func WritePackage(t testing.TB, path string, entries map[string][]byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, name := range sortedKeys(entries) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

// SamplePackage writes SampleEntries to a temp archive and returns its path.
func SamplePackage(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.appx")
	WritePackage(t, path, SampleEntries())
	return path
}

// ReadPackage returns every non-directory entry of the archive at path.
func ReadPackage(t testing.TB, path string) map[string][]byte {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer zr.Close()

	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		out[f.Name] = data
	}
	return out
}

// ReadTree returns every regular file under root keyed by slash-separated
// relative path.
func ReadTree(t testing.TB, root string) map[string][]byte {
	t.Helper()

	out := make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

// WriteTree materializes files under root, creating parent directories.
func WriteTree(t testing.TB, root string, files map[string][]byte) {
	t.Helper()
	for name, data := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
