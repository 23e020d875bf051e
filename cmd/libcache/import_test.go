package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/libcache"
	main "github.com/fwojciec/libcache/cmd/libcache"
	"github.com/fwojciec/libcache/importer"
	"github.com/fwojciec/libcache/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImporter(failing ...string) *importer.Importer {
	return &importer.Importer{
		Resolver: &mock.Resolver{
			ResolveFn: func(_ context.Context, name string) (*libcache.Unit, error) {
				for _, f := range failing {
					if f == name {
						return nil, libcache.Errorf(libcache.ENOTFOUND, "Could not import '%s': 'No module named '%s''", name, name)
					}
				}
				return &libcache.Unit{Name: name, Module: name, SourcePath: "/src/" + name + ".py"}, nil
			},
		},
		Freshness: &mock.FreshnessChecker{
			IsCachedFn: func(_ string, _ *libcache.Unit, _ string) (*libcache.CacheEntry, error) {
				return &libcache.CacheEntry{}, nil
			},
		},
		Generator: &mock.Generator{
			GenerateFn: func(_ context.Context, name, cacheDir string) (string, error) {
				return filepath.Join(cacheDir, name+".xml"), nil
			},
		},
		Interpreter: &mock.Interpreter{
			ProbeFn: func(_ context.Context) (*libcache.Environment, error) {
				return &libcache.Environment{
					PythonVersion:    "3.12.1",
					ModuleSearchPath: []string{"/usr/lib/python3.12"},
					PythonExecutable: "/usr/bin/python3",
					Platform:         "linux",
					PythonPath:       libcache.NotAvailable,
					JythonPath:       libcache.NotAvailable,
					ClassPath:        libcache.NotAvailable,
					IronPythonPath:   libcache.NotAvailable,
				}, nil
			},
		},
	}
}

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &libcache.Config{Python: libcache.DefaultPython},
	}
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes one JSON line with libraries and environment", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Importer = testImporter("NoSuchLibrary123")
		cacheDir := t.TempDir()

		cmd := &main.ImportCmd{Names: "BuiltIn,NoSuchLibrary123", CacheDir: cacheDir, NoRecord: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(stdout.String(), "\n"))

		var out struct {
			Libraries   map[string]map[string]any `json:"libraries"`
			Environment map[string]any            `json:"environment"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		require.Len(t, out.Libraries, 2)
		assert.Equal(t, "success", out.Libraries["BuiltIn"]["status"])
		assert.Equal(t, filepath.Join(cacheDir, "BuiltIn.xml"), out.Libraries["BuiltIn"]["xmlLibdocPath"])
		assert.Equal(t, "/src/BuiltIn.py", out.Libraries["BuiltIn"]["sourcePath"])
		assert.Equal(t, "error", out.Libraries["NoSuchLibrary123"]["status"])
		assert.Contains(t, out.Libraries["NoSuchLibrary123"]["message"], "NoSuchLibrary123")
		assert.Equal(t, "3.12.1", out.Environment["pythonVersion"])
		assert.Equal(t, "n/a", out.Environment["ironpythonPath"])
	})

	t.Run("silences stdout while importing and restores it", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Importer = testImporter()

		var silenced, restored bool
		deps.SilenceStdout = func() func() {
			silenced = true
			return func() { restored = true }
		}

		cmd := &main.ImportCmd{Names: "BuiltIn", CacheDir: t.TempDir(), NoRecord: true}
		require.NoError(t, cmd.Run(deps))

		assert.True(t, silenced)
		assert.True(t, restored)
	})

	t.Run("records libraries and run", func(t *testing.T) {
		t.Parallel()

		var appended []*libcache.Library
		var created *libcache.Run
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Importer = testImporter("Missing")
		deps.Checksum = func(path string) (string, error) { return "hash-of-" + filepath.Base(path), nil }
		deps.Libraries = &mock.LibraryService{
			AppendLibrariesFn: func(_ context.Context, libs []*libcache.Library) ([]*libcache.Library, error) {
				appended = libs
				return libs, nil
			},
		}
		deps.Runs = &mock.RunService{
			CreateRunFn: func(_ context.Context, run *libcache.Run) error {
				created = run
				return nil
			},
		}

		cmd := &main.ImportCmd{Names: "Missing,BuiltIn", CacheDir: t.TempDir()}
		require.NoError(t, cmd.Run(deps))

		require.Len(t, appended, 2)
		assert.Equal(t, "BuiltIn", appended[0].Name)
		assert.Equal(t, "hash-of-BuiltIn.xml", appended[0].ArtifactHash)
		assert.Equal(t, "Missing", appended[1].Name)
		assert.Empty(t, appended[1].ArtifactHash)
		require.NotNil(t, created)
		assert.Equal(t, []string{"Missing", "BuiltIn"}, created.Libraries)
		assert.Equal(t, 1, created.Succeeded)
		assert.Equal(t, 1, created.Failed)
	})

	t.Run("recording failure does not affect output", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Importer = testImporter()
		deps.Libraries = &mock.LibraryService{
			AppendLibrariesFn: func(_ context.Context, _ []*libcache.Library) ([]*libcache.Library, error) {
				return nil, libcache.Errorf(libcache.EINTERNAL, "disk full")
			},
		}

		cmd := &main.ImportCmd{Names: "BuiltIn", CacheDir: t.TempDir()}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), `"BuiltIn"`)
	})

	t.Run("returns error without JSON when no names given", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := testDeps(stdout, stderr)
		deps.Importer = testImporter()

		cmd := &main.ImportCmd{Names: " , ", CacheDir: t.TempDir(), NoRecord: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "at least one library name required")
	})
}
