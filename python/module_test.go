package python_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/libcache"
	"github.com/fwojciec/libcache/python"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file and its parent directories under dir.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFinder_FindModule(t *testing.T) {
	t.Parallel()

	t.Run("finds extension module", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ext := writeFile(t, dir, "speedlib.cpython-312-x86_64-linux-gnu.so", "\x7fELF")
		writeFile(t, dir, "speedlibextra.py", "")

		mod, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "speedlib")

		require.NoError(t, err)
		assert.Equal(t, ext, mod.Source)
		assert.False(t, mod.IsPackage())
	})

	t.Run("prefers extension over source module", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ext := writeFile(t, dir, "Lib.pyd", "MZ")
		writeFile(t, dir, "Lib.py", "")

		mod, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "Lib")

		require.NoError(t, err)
		assert.Equal(t, ext, mod.Source)
	})

	t.Run("finds plain module", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := writeFile(t, dir, "MyLibrary.py", "class MyLibrary: pass\n")

		mod, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "MyLibrary")

		require.NoError(t, err)
		assert.Equal(t, "MyLibrary", mod.Name)
		assert.Equal(t, src, mod.Source)
		assert.False(t, mod.IsPackage())
	})

	t.Run("finds regular package through its init file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		init := writeFile(t, dir, "SeleniumLibrary/__init__.py", "")

		mod, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "SeleniumLibrary")

		require.NoError(t, err)
		assert.Equal(t, init, mod.Source)
		assert.True(t, mod.IsPackage())
	})

	t.Run("finds nested module", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "robot/__init__.py", "")
		writeFile(t, dir, "robot/libraries/__init__.py", "")
		src := writeFile(t, dir, "robot/libraries/Collections.py", "")

		mod, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "robot.libraries.Collections")

		require.NoError(t, err)
		assert.Equal(t, "robot.libraries.Collections", mod.Name)
		assert.Equal(t, src, mod.Source)
	})

	t.Run("earlier search path entry wins", func(t *testing.T) {
		t.Parallel()

		first := t.TempDir()
		second := t.TempDir()
		want := writeFile(t, first, "Lib.py", "")
		writeFile(t, second, "Lib.py", "")

		mod, err := python.NewFinder([]string{first, second}).FindModule(context.Background(), "Lib")

		require.NoError(t, err)
		assert.Equal(t, want, mod.Source)
	})

	t.Run("package takes precedence over module in same directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "Lib.py", "")
		init := writeFile(t, dir, "Lib/__init__.py", "")

		mod, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "Lib")

		require.NoError(t, err)
		assert.Equal(t, init, mod.Source)
	})

	t.Run("namespace package has no source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "ns"), 0755))

		mod, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "ns")

		require.NoError(t, err)
		assert.Empty(t, mod.Source)
		assert.True(t, mod.IsPackage())
	})

	t.Run("module later on the path beats namespace portion", func(t *testing.T) {
		t.Parallel()

		first := t.TempDir()
		second := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(first, "Lib"), 0755))
		want := writeFile(t, second, "Lib.py", "")

		mod, err := python.NewFinder([]string{first, second}).FindModule(context.Background(), "Lib")

		require.NoError(t, err)
		assert.Equal(t, want, mod.Source)
	})

	t.Run("namespace package spans search path entries", func(t *testing.T) {
		t.Parallel()

		first := t.TempDir()
		second := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(first, "ns"), 0755))
		src := writeFile(t, second, "ns/Lib.py", "")

		mod, err := python.NewFinder([]string{first, second}).FindModule(context.Background(), "ns.Lib")

		require.NoError(t, err)
		assert.Equal(t, src, mod.Source)
	})

	t.Run("reports missing module", func(t *testing.T) {
		t.Parallel()

		_, err := python.NewFinder([]string{t.TempDir()}).FindModule(context.Background(), "NoSuchLibrary123")

		require.Error(t, err)
		assert.Equal(t, libcache.ENOTFOUND, libcache.ErrorCode(err))
		assert.Equal(t, "No module named 'NoSuchLibrary123'", libcache.ErrorMessage(err))
	})

	t.Run("reports first missing segment", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "pkg/__init__.py", "")

		_, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "pkg.missing.Lib")

		require.Error(t, err)
		assert.Equal(t, "No module named 'pkg.missing'", libcache.ErrorMessage(err))
	})

	t.Run("reports module used as package", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "mod.py", "")

		_, err := python.NewFinder([]string{dir}).FindModule(context.Background(), "mod.Lib")

		require.Error(t, err)
		assert.Equal(t, "No module named 'mod.Lib'; 'mod' is not a package", libcache.ErrorMessage(err))
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		t.Parallel()

		_, err := python.NewFinder([]string{t.TempDir()}).FindModule(context.Background(), "../etc")

		require.Error(t, err)
		assert.Equal(t, libcache.ENOTFOUND, libcache.ErrorCode(err))
	})
}

func TestIsValidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"BuiltIn", true},
		{"robot.libraries.BuiltIn", true},
		{"_private", true},
		{"lib2", true},
		{"Bibliothèque", true},
		{"", false},
		{"2lib", false},
		{"a..b", false},
		{"a.", false},
		{"Some-Lib", false},
		{"path/to/Lib", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, python.IsValidName(tt.name))
		})
	}
}
