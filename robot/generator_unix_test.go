//go:build unix

package robot_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/libcache"
	"github.com/fwojciec/libcache/etree"
	"github.com/fwojciec/libcache/robot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLibdoc writes a shell script standing in for the interpreter. It is
// invoked as: -c SCRIPT NAME OUTPUT [SEARCH_PATH...].
func fakeLibdoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

const writeLibdoc = `echo "libdoc chatter on stdout"
printf '<keywordspec name="%s"><kw name="Do Thing"/></keywordspec>' "$3" > "$4"
echo "$4"
`

// Subtests run sequentially: forking while another test still holds a
// freshly written script open fails with "text file busy".
func TestGenerator_Generate(t *testing.T) {
	t.Run("writes artifact to cache directory", func(t *testing.T) {
		cacheDir := t.TempDir()
		g := robot.NewGenerator(fakeLibdoc(t, writeLibdoc), nil, etree.NewParser())

		path, err := g.Generate(context.Background(), "MyLibrary", cacheDir)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cacheDir, "MyLibrary.xml"), path)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), `name="MyLibrary"`)

		entries, err := os.ReadDir(cacheDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary files must not remain")
	})

	t.Run("appends search paths after the interpreter's own", func(t *testing.T) {
		cacheDir := t.TempDir()
		script := `out=$4
shift 4
printf '<keywordspec name="%s|%s"><kw name="K"/></keywordspec>' "$*" "$PYTHONPATH" > "$out"` + "\n"
		g := robot.NewGenerator(fakeLibdoc(t, script), []string{"/work/libs", "/shared"}, etree.NewParser())
		g.Environ = func() []string { return []string{"PATH=" + os.Getenv("PATH"), "PYTHONPATH=/site"} }

		path, err := g.Generate(context.Background(), "Lib", cacheDir)

		require.NoError(t, err)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), `name="/work/libs /shared|/site"`)
	})

	t.Run("replaces existing artifact", func(t *testing.T) {
		cacheDir := t.TempDir()
		existing := filepath.Join(cacheDir, "Lib.xml")
		require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))
		g := robot.NewGenerator(fakeLibdoc(t, writeLibdoc), nil, etree.NewParser())

		path, err := g.Generate(context.Background(), "Lib", cacheDir)

		require.NoError(t, err)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, "old", string(b))
	})

	t.Run("reports libdoc failure with its output", func(t *testing.T) {
		cacheDir := t.TempDir()
		script := "echo 'Traceback (most recent call last):' >&2\necho \"Importing library '$3' failed\" >&2\nexit 252\n"
		g := robot.NewGenerator(fakeLibdoc(t, script), nil, etree.NewParser())

		_, err := g.Generate(context.Background(), "Broken", cacheDir)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exit code 252")
		assert.Contains(t, err.Error(), "Traceback (most recent call last):")
		assert.Contains(t, err.Error(), "Importing library 'Broken' failed")
		_, statErr := os.Stat(filepath.Join(cacheDir, "Broken.xml"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("rejects invalid artifact and keeps previous one", func(t *testing.T) {
		cacheDir := t.TempDir()
		existing := filepath.Join(cacheDir, "Lib.xml")
		require.NoError(t, os.WriteFile(existing, []byte("previous"), 0644))
		g := robot.NewGenerator(fakeLibdoc(t, "echo 'not xml' > \"$4\"\n"), nil, etree.NewParser())

		_, err := g.Generate(context.Background(), "Lib", cacheDir)

		require.Error(t, err)
		assert.Equal(t, libcache.EINVALID, libcache.ErrorCode(err))
		assert.Equal(t, etree.InvalidLibdocMessage, libcache.ErrorMessage(err))
		b, err := os.ReadFile(existing)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(b))

		entries, err := os.ReadDir(cacheDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("reports missing output", func(t *testing.T) {
		g := robot.NewGenerator(fakeLibdoc(t, "exit 0\n"), nil, etree.NewParser())

		_, err := g.Generate(context.Background(), "Lib", t.TempDir())

		require.Error(t, err)
		assert.True(t, strings.HasPrefix(libcache.ErrorMessage(err), "libdoc produced no artifact"))
	})

	t.Run("reports missing interpreter", func(t *testing.T) {
		g := robot.NewGenerator(filepath.Join(t.TempDir(), "nope"), nil, nil)

		_, err := g.Generate(context.Background(), "Lib", t.TempDir())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exit code -1")
	})
}
