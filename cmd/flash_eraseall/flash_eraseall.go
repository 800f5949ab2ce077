// Copyright © 2020-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package flash_eraseall

import (
	"errors"
	"fmt"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"go.uber.org/multierr"
)

type Command struct{}

func (Command) String() string { return "flash_eraseall" }

func (Command) Usage() string {
	return "flash_eraseall [-q] MTD-DEVICE"
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "erase a MTD device",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	The flash_eraseall command erases the specified MTD device,
	skipping bad eraseblocks.

OPTIONS
	-q	don't print each erased block`,
	}
}

func (c Command) Main(args ...string) (err error) {
	flag, args := flags.New(args, "-q")
	if len(args) != 1 {
		return errors.New(c.Usage())
	}
	d, err := mtdcmd.Open(args[0], os.O_RDWR)
	if err != nil {
		return fmt.Errorf("Unable to open %s: %w", args[0], err)
	}
	defer func() {
		err = multierr.Append(err, d.Close())
	}()
	for eb := 0; eb < d.Info.EbCnt; eb++ {
		bad, err := d.Info.IsBad(d.Fd, eb)
		if err != nil {
			return err
		}
		if bad {
			fmt.Println("Skipping bad block...", d.Info.Addr(eb, 0))
			continue
		}
		if !flag.ByName["-q"] {
			fmt.Println("Erasing Block...", d.Info.Addr(eb, 0),
				d.Info.EbSize)
		}
		if err = d.Info.Erase(d.Fd, eb); err != nil {
			return fmt.Errorf("Erase error block %d: %w", eb, err)
		}
	}
	return nil
}
