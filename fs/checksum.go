package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes an xxhash digest of the file at path.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
