// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtdprobe

import (
	"fmt"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"go.uber.org/multierr"
)

type Command struct{}

func (Command) String() string { return "mtdprobe" }

func (Command) Usage() string {
	return "mtdprobe [-q] PATH..."
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "test whether paths are MTD device nodes",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Check that each PATH is a character device node of a present MTD
	device. The command fails if any isn't.

OPTIONS
	-q	only set the exit status`,
	}
}

func (c Command) Main(args ...string) error {
	flag, args := flags.New(args, "-q")
	if len(args) == 0 {
		return fmt.Errorf("PATH: missing")
	}
	return mtd.With(func(lib *mtd.Lib) (err error) {
		for _, path := range args {
			if e := lib.ProbeNode(path); e != nil {
				err = multierr.Append(err, e)
				continue
			}
			if !flag.ByName["-q"] {
				fmt.Println(path)
			}
		}
		return err
	}, mtdcmd.Options...)
}
