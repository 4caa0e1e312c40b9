package pagestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wiktextract/internal/title"
)

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestCapture_Entry(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	cls, err := s.Capture("hello", "==English==\n")
	require.NoError(t, err)
	assert.Equal(t, title.KindEntry, cls.Kind)

	data, err := os.ReadFile(filepath.Join(dir, "Words", "he", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "==English==\n", string(data))
}

func TestCapture_Namespace(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	cls, err := s.Capture("Category:Foo_Bar baz", "[[Category:Root]]")
	require.NoError(t, err)
	assert.Equal(t, title.KindNamespace, cls.Kind)
	assert.Equal(t, "Category:Foo:Bar baz", cls.Stored)

	data, err := os.ReadFile(filepath.Join(dir, "Category", "Foo", "Bar_baz.txt"))
	require.NoError(t, err)
	assert.Equal(t, "[[Category:Root]]", string(data))
}

func TestCapture_IgnoredWritesNothing(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	cls, err := s.Capture("Index:something", "text")
	require.NoError(t, err)
	assert.True(t, cls.Ignored())
	assert.Equal(t, 0, countFiles(t, dir))
}

func TestCapture_OverwritesAndReusesDirs(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	_, err := s.Capture("hello", "first")
	require.NoError(t, err)
	_, err = s.Capture("help", "other")
	require.NoError(t, err)
	_, err = s.Capture("hello", "second")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Words", "he", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, 2, countFiles(t, dir))
}

func TestCapture_TextIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	text := "line one\r\n\ttabbed \x00 nul and ünïcödé\n\n"
	_, err := s.Capture("bytes", text)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Words", "by", "bytes.txt"))
	require.NoError(t, err)
	assert.Equal(t, text, string(data))
}

func TestCapture_HostileTitleStaysInside(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "pages")
	s := New(dir)

	cls, err := s.Capture("Module:../../../escape", "x")
	require.NoError(t, err)
	require.Equal(t, title.KindNamespace, cls.Kind)

	assert.Equal(t, 1, countFiles(t, base))
	assert.Equal(t, 1, countFiles(t, dir))
}

func TestCapture_EntryRootNamespaceCannotShadowEntry(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	_, err := s.Capture("hello", "entry text")
	require.NoError(t, err)

	cls, err := s.Capture("Words:he/hello", "namespace text")
	require.NoError(t, err)
	assert.Equal(t, title.KindIgnore, cls.Kind)

	data, err := os.ReadFile(filepath.Join(dir, "Words", "he", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "entry text", string(data))
}

func TestSave_ReturnsRelativePath(t *testing.T) {
	s := New(t.TempDir())

	rel, err := s.Save(title.Classify("Template:en-noun"), "{{{1}}}")
	require.NoError(t, err)
	assert.Equal(t, "Template/en-noun.txt", rel)
}

func TestSave_RejectsIgnored(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Save(title.Classify("Help:x"), "x")
	assert.Error(t, err)
}
