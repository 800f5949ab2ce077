// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package flash_torture

import (
	"errors"
	"fmt"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"go.uber.org/multierr"
)

type Command struct{}

func (Command) String() string { return "flash_torture" }

func (Command) Usage() string {
	return "flash_torture [-m] MTD-DEVICE EB [COUNT]"
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "torture test eraseblocks of a MTD device",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Repeatedly erase, write, and verify test patterns in COUNT
	eraseblocks, default 1, beginning with EB. Bad eraseblocks are
	skipped. This destroys the contents of the tested eraseblocks;
	those that pass are left erased.

OPTIONS
	-m	mark eraseblocks that fail as bad`,
	}
}

func (c Command) Main(args ...string) (err error) {
	flag, args := flags.New(args, "-m")
	switch len(args) {
	case 2:
		args = append(args, "1")
	case 3:
	default:
		return fmt.Errorf("%s", c.Usage())
	}
	d, err := mtdcmd.Open(args[0], os.O_RDWR)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, d.Close())
	}()
	first, last, err := mtdcmd.Range(d.Info, args[1:])
	if err != nil {
		return err
	}
	var failed int
	for eb := first; eb <= last; eb++ {
		bad, err := d.Info.IsBad(d.Fd, eb)
		if err != nil {
			return err
		}
		if bad {
			fmt.Printf("eraseblock %d: bad, skipped\n", eb)
			continue
		}
		err = d.Info.Torture(d.Fd, eb)
		switch {
		case err == nil:
			fmt.Printf("eraseblock %d: ok\n", eb)
			continue
		case !errors.Is(err, mtd.ErrTorture):
			return err
		}
		failed++
		fmt.Printf("eraseblock %d: %v\n", eb, err)
		log.Print("err", err)
		if flag.ByName["-m"] && d.Info.BbAllowed {
			if err = d.Info.MarkBad(d.Fd, eb); err != nil {
				return err
			}
			fmt.Printf("eraseblock %d: marked bad\n", eb)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d eraseblocks: %w", failed,
			last-first+1, mtd.ErrTorture)
	}
	return nil
}
