package appx

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/appxkit/internal/format"
	"github.com/joshuapare/appxkit/internal/testutil"
	"github.com/joshuapare/appxkit/pkg/types"
)

func TestUnpack(t *testing.T) {
	src := testutil.SamplePackage(t)
	dest := filepath.Join(t.TempDir(), "unpacked")

	require.NoError(t, Unpack(src, dest))
	assert.Equal(t, testutil.SampleEntries(), testutil.ReadTree(t, dest))
}

func TestUnpackOverwritesExistingFiles(t *testing.T) {
	src := testutil.SamplePackage(t)
	dest := t.TempDir()
	testutil.WriteTree(t, dest, map[string][]byte{
		"AppxManifest.xml": []byte("stale and much longer than the packaged manifest content ......................"),
	})

	require.NoError(t, Unpack(src, dest))
	got, err := os.ReadFile(filepath.Join(dest, "AppxManifest.xml"))
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleEntries()["AppxManifest.xml"], got)
}

func TestPackUnpackRoundTrip(t *testing.T) {
	a := testutil.SamplePackage(t)
	dir := filepath.Join(t.TempDir(), "tree")
	b := filepath.Join(t.TempDir(), "rebuilt.appx")

	require.NoError(t, Unpack(a, dir))
	require.NoError(t, Pack(dir, b, nil))

	assert.Equal(t, testutil.ReadPackage(t, a), testutil.ReadPackage(t, b))
	require.NoError(t, ValidateSignature(b, nil))
}

func TestPackCompression(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string][]byte{"a.txt": []byte("aaaa"), "b/c.txt": []byte("cccc")})

	for _, c := range []Compression{CompressionStore, CompressionDeflate} {
		t.Run(string(c), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.appx")
			require.NoError(t, Pack(dir, out, &Options{Compression: c, NoSync: true}))

			zr, err := zip.OpenReader(out)
			require.NoError(t, err)
			defer zr.Close()
			require.Len(t, zr.File, 2)
			assert.Equal(t, "a.txt", zr.File[0].Name)
			assert.Equal(t, "b/c.txt", zr.File[1].Name)
			want := zip.Deflate
			if c == CompressionStore {
				want = zip.Store
			}
			assert.Equal(t, want, zr.File[0].Method)
		})
	}
}

func TestPackEmptyDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.appx")
	require.NoError(t, Pack(t.TempDir(), out, nil))
	assert.Empty(t, testutil.ReadPackage(t, out))
}

func TestPackMissingSource(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.appx")
	err := Pack(filepath.Join(t.TempDir(), "missing"), out, nil)
	assert.True(t, errors.Is(err, types.ErrNotFound))
	assert.NoFileExists(t, out, "the archive is not created when the source cannot be listed")
}

func TestUnpackErrors(t *testing.T) {
	dir := t.TempDir()

	err := Unpack(filepath.Join(dir, "missing.appx"), filepath.Join(dir, "out"))
	assert.True(t, errors.Is(err, types.ErrNotFound))

	garbage := filepath.Join(dir, "garbage.appx")
	require.NoError(t, os.WriteFile(garbage, []byte("PK but not really"), 0o644))
	err = Unpack(garbage, filepath.Join(dir, "out"))
	assert.True(t, errors.Is(err, types.ErrInvalidStreamFormat))
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	evil := filepath.Join(dir, "evil.appx")
	testutil.WritePackage(t, evil, map[string][]byte{"../escaped.txt": []byte("gotcha")})

	err := Unpack(evil, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidStreamFormat))
	assert.NoFileExists(t, filepath.Join(dir, "escaped.txt"))
}

func TestInvalidArguments(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "never-created")

	assert.True(t, errors.Is(Unpack("", dest), types.ErrInvalidArgument))
	assert.True(t, errors.Is(Unpack(dest, ""), types.ErrInvalidArgument))
	assert.True(t, errors.Is(Pack("", dest, nil), types.ErrInvalidArgument))
	assert.True(t, errors.Is(Pack(dest, "", nil), types.ErrInvalidArgument))
	assert.True(t, errors.Is(ValidateSignature("", nil), types.ErrInvalidArgument))
	assert.NoDirExists(t, dest)
	assert.NoFileExists(t, dest)
}

func TestValidateSignature(t *testing.T) {
	withSig := func(t *testing.T, sig []byte) string {
		entries := testutil.SampleEntries()
		if sig == nil {
			delete(entries, testutil.SignatureEntry)
		} else {
			entries[testutil.SignatureEntry] = sig
		}
		path := filepath.Join(t.TempDir(), "pkg.appx")
		testutil.WritePackage(t, path, entries)
		return path
	}

	tests := []struct {
		name string
		sig  []byte
		want types.Code
	}{
		{"valid", testutil.SignatureBlob(testutil.SignatureMagic, 512), types.CodeSuccess},
		{"valid one past header", testutil.SignatureBlob(testutil.SignatureMagic, format.HeaderSize+1), types.CodeSuccess},
		{"valid larger than prefix", testutil.SignatureBlob(testutil.SignatureMagic, 3*format.SignaturePrefixLimit), types.CodeSuccess},
		{"missing entry", nil, types.CodeNotFound},
		{"wrong magic", testutil.SignatureBlob(testutil.PackageHeaderMagic, 512), types.CodeInvalidStreamFormat},
		{"wrong magic one past header", testutil.SignatureBlob(testutil.PackageHeaderMagic, format.HeaderSize+1), types.CodeInvalidStreamFormat},
		{"header size exactly", testutil.SignatureBlob(testutil.SignatureMagic, format.HeaderSize), types.CodeSuccess},
		{"magic only", []byte("PKCX"), types.CodeSuccess},
		{"short with wrong magic", testutil.SignatureBlob(testutil.PackageHeaderMagic, 16), types.CodeSuccess},
		{"empty", []byte{}, types.CodeSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignature(withSig(t, tt.sig), nil)
			assert.Equal(t, tt.want, types.CodeOf(err), "err: %v", err)
		})
	}
}

func TestValidateSignatureCustomEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.appx")
	testutil.WritePackage(t, path, map[string][]byte{
		"Custom.p7x": testutil.SignatureBlob(testutil.SignatureMagic, 256),
	})

	assert.True(t, errors.Is(ValidateSignature(path, nil), types.ErrNotFound))
	assert.NoError(t, ValidateSignature(path, &Options{SignatureEntry: "Custom.p7x"}))
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.appx")
	entries := testutil.SampleEntries()
	entries[testutil.SignatureEntry] = testutil.SignatureBlob(testutil.SignatureMagic, 4096)
	testutil.WritePackage(t, path, entries)

	r, err := Inspect(path, &Options{SignaturePrefixLimit: 1024})
	require.NoError(t, err)
	assert.Equal(t, path, r.Path)
	assert.Len(t, r.Entries, len(entries))
	assert.IsIncreasing(t, r.Entries)
	require.NotNil(t, r.Signature)
	assert.Equal(t, format.TagSignature, r.Signature.Header.ID)
	assert.EqualValues(t, 1020, r.Signature.BodySize)
	assert.True(t, r.Signature.Truncated)

	r, err = Inspect(path, nil)
	require.NoError(t, err)
	assert.False(t, r.Signature.Truncated)
	assert.EqualValues(t, 4092, r.Signature.BodySize)

	// An entry exactly as long as the prefix is not truncated.
	r, err = Inspect(path, &Options{SignaturePrefixLimit: 4096})
	require.NoError(t, err)
	assert.False(t, r.Signature.Truncated)
	assert.EqualValues(t, 4092, r.Signature.BodySize)
}

func TestInspectShortSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.appx")
	entries := testutil.SampleEntries()
	entries[testutil.SignatureEntry] = []byte("PKCX")
	testutil.WritePackage(t, path, entries)

	r, err := Inspect(path, nil)
	require.NoError(t, err)
	assert.Nil(t, r.Signature.Header)
	assert.EqualValues(t, 4, r.Signature.BodySize)
	assert.False(t, r.Signature.Truncated)
}

func TestUnpackEmptyArchiveRoundTrip(t *testing.T) {
	for _, entries := range []map[string][]byte{
		{},
		{"Assets/": nil},
	} {
		src := filepath.Join(t.TempDir(), "empty.appx")
		testutil.WritePackage(t, src, entries)
		dir := filepath.Join(t.TempDir(), "tree")

		require.NoError(t, Unpack(src, dir))
		assert.DirExists(t, dir)

		out := filepath.Join(t.TempDir(), "rebuilt.appx")
		require.NoError(t, Pack(dir, out, &Options{NoSync: true}))
		assert.Empty(t, testutil.ReadPackage(t, out))
	}
}

func TestResolveOptions(t *testing.T) {
	d := resolve(nil)
	assert.Equal(t, DefaultOptions(), d)
	assert.Equal(t, "AppxSignature.p7x", d.SignatureEntry)
	assert.Equal(t, 16*1024, d.SignaturePrefixLimit)

	o := resolve(&Options{SignaturePrefixLimit: -1, NoSync: true})
	assert.Equal(t, 16*1024, o.SignaturePrefixLimit)
	assert.Equal(t, CompressionDeflate, o.Compression)
	assert.True(t, o.NoSync)
	assert.False(t, o.writeOptions().Sync)
}
