//go:build unix

package main

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// silenceStdout points file descriptor 1 at the null device until restore is
// called. Writes through os.Stdout and from inherited child processes are
// discarded alike.
func silenceStdout() (restore func()) {
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return func() {}
	}
	defer devnull.Close()

	fd := int(os.Stdout.Fd())
	saved, err := unix.Dup(fd)
	if err != nil {
		return func() {}
	}
	if err := unix.Dup2(int(devnull.Fd()), fd); err != nil {
		_ = unix.Close(saved)
		return func() {}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			_ = unix.Dup2(saved, fd)
			_ = unix.Close(saved)
		})
	}
}
