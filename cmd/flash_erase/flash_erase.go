// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package flash_erase

import (
	"fmt"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"go.uber.org/multierr"
)

type Command struct{}

func (Command) String() string { return "flash_erase" }

func (Command) Usage() string {
	return "flash_erase [-k] [-N] [-q] MTD-DEVICE [START [COUNT]]"
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "erase eraseblocks of a MTD device",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Erase COUNT eraseblocks of the MTD device beginning with START.
	Without COUNT, or with COUNT 0, erase through the last eraseblock.
	Eraseblocks marked bad are skipped.

OPTIONS
	-k	keep going after an erase failure
	-N	don't check for bad eraseblocks
	-q	don't print progress

EXAMPLES
	flash_erase /dev/mtd2 0 16
	flash_erase -k 2`,
	}
}

func (c Command) Main(args ...string) (err error) {
	flag, args := flags.New(args, "-k", "-N", "-q")
	if len(args) == 0 {
		return fmt.Errorf("MTD-DEVICE: missing")
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
	if !flag.ByName["-q"] {
		fmt.Printf("Erasing %d byte eraseblocks %d through %d of %s\n",
			d.Info.EbSize, first, last, d.Node)
	}
	erased := 0
	for eb := first; eb <= last; eb++ {
		if !flag.ByName["-N"] {
			bad, err := d.Info.IsBad(d.Fd, eb)
			if err != nil {
				return err
			}
			if bad {
				if !flag.ByName["-q"] {
					fmt.Println("Skipping bad eraseblock", eb)
				}
				continue
			}
		}
		if e := d.Info.Erase(d.Fd, eb); e != nil {
			if !flag.ByName["-k"] {
				return e
			}
			log.Print("err", e)
			err = multierr.Append(err, e)
			continue
		}
		erased++
	}
	if !flag.ByName["-q"] {
		fmt.Println("Erased", erased, "eraseblocks")
	}
	return err
}
