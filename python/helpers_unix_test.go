//go:build unix

package python_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func chmodExec(path string) error {
	return os.Chmod(path, 0755)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
