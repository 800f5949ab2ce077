// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package flash_lock provides the flash_lock and flash_unlock commands.
package flash_lock

import (
	"fmt"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"go.uber.org/multierr"
)

type Command struct{}

type UnlockCommand struct{}

func (Command) String() string       { return "flash_lock" }
func (UnlockCommand) String() string { return "flash_unlock" }

func (Command) Usage() string {
	return "flash_lock [-i] MTD-DEVICE [START [COUNT]]"
}

func (UnlockCommand) Usage() string {
	return "flash_unlock [-i] MTD-DEVICE [START [COUNT]]"
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "lock eraseblocks of a MTD device",
	}
}

func (UnlockCommand) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "unlock eraseblocks of a MTD device",
	}
}

var man = lang.Alt{
	lang.EnUS: `
DESCRIPTION
	Lock or unlock COUNT eraseblocks of the MTD device beginning with
	START; by default, the whole device. Locked eraseblocks can't be
	erased or written. Not every device supports locking.

OPTIONS
	-i	print whether each eraseblock is locked instead`,
}

func (Command) Man() lang.Alt       { return man }
func (UnlockCommand) Man() lang.Alt { return man }

func (Command) Main(args ...string) error {
	return run((*mtd.DevInfo).Lock, args)
}

func (UnlockCommand) Main(args ...string) error {
	return run((*mtd.DevInfo).Unlock, args)
}

func run(op func(*mtd.DevInfo, mtd.Device, int) error,
	args []string) (err error) {
	flag, args := flags.New(args, "-i")
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
	for eb := first; eb <= last; eb++ {
		if flag.ByName["-i"] {
			locked, err := d.Info.IsLocked(d.Fd, eb)
			if err != nil {
				return err
			}
			s := "unlocked"
			if locked {
				s = "locked"
			}
			fmt.Printf("eraseblock %d: %s\n", eb, s)
			continue
		}
		if err = op(d.Info, d.Fd, eb); err != nil {
			return err
		}
	}
	return nil
}
