// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package test

import (
	"bytes"
	"io"
	"os"
	"sync"
)

var stdoutMutex sync.Mutex

// Output runs a command Main with os.Stdout redirected to a pipe and
// returns what it printed.
//
// Usage:
//
//	out, err := test.Output(mtdinfo.Command{}.Main, "-a")
func Output(main func(...string) error, args ...string) (string, error) {
	stdoutMutex.Lock()
	defer stdoutMutex.Unlock()
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	stdout := os.Stdout
	os.Stdout = w
	done := make(chan []byte)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		done <- b
	}()
	err = main(args...)
	os.Stdout = stdout
	w.Close()
	return string(bytes.TrimSpace(<-done)) + "\n", err
}

