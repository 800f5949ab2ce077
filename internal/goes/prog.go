// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"os"
	"path/filepath"
)

const InstallName = "/usr/bin/mtd-utils"

var prog, progbase string

// Prog is the path of the running executable.
func Prog() string {
	if len(prog) == 0 {
		var err error
		prog, err = os.Executable()
		if err != nil {
			prog = InstallName
		}
	}
	return prog
}

func ProgBase() string {
	if len(progbase) == 0 {
		progbase = filepath.Base(Prog())
	}
	return progbase
}
