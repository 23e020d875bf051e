//go:build !unix

package main

import "os"

// silenceStdout points os.Stdout at the null device until restore is called.
// File descriptor 1 itself is left alone, so only writes through os.Stdout
// are discarded. Subprocess output is captured by the generator and the
// interpreter and never reaches it.
func silenceStdout() (restore func()) {
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return func() {}
	}
	orig := os.Stdout
	os.Stdout = devnull
	return func() {
		os.Stdout = orig
		devnull.Close()
	}
}
