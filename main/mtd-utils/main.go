// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is the multi-call MTD utility; link each command name to it, e.g.
//
//	ln -s mtd-utils /usr/sbin/flash_erase
package main

import (
	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/cmd/flash_erase"
	"github.com/platinasystems/mtd/cmd/flash_eraseall"
	"github.com/platinasystems/mtd/cmd/flash_lock"
	"github.com/platinasystems/mtd/cmd/flash_torture"
	"github.com/platinasystems/mtd/cmd/mtdinfo"
	"github.com/platinasystems/mtd/cmd/mtdprobe"
	"github.com/platinasystems/mtd/cmd/nanddump"
	"github.com/platinasystems/mtd/cmd/nandwrite"
	"github.com/platinasystems/mtd/cmd/ubi"
	"github.com/platinasystems/mtd/internal/goes"
	"github.com/platinasystems/mtd/lang"
)

func Goes() *goes.Goes {
	g := &goes.Goes{
		NAME: "mtd-utils",
		MAN: lang.Alt{
			lang.EnUS: `
DESCRIPTION
	Erase, dump, write, lock and torture raw flash through the Linux
	memory technology device (MTD) subsystem. Run a COMMAND through
	mtd-utils or through a symbolic link of its name to mtd-utils.

	An MTD-DEVICE is a character device node, e.g. /dev/mtd0, its
	read-only alias /dev/mtd0ro, a link to either, or just the
	device number.

ENVIRONMENT
	` + mtd.EnvSysfs + `	MTD sysfs class directory, default /sys/class/mtd
	` + mtd.EnvProc + `	legacy device table, default /proc/mtd
	` + mtd.EnvDev + `	device node directory, default /dev
	LANG		language of this text

EXAMPLES
	mtdinfo -a
	flash_erase /dev/mtd2 0 4
	nandwrite -p 2 http://10.0.0.1/rootfs.ubi
	nanddump -s 0x20000 -l 128KiB -o /tmp/eb1.bin 2
	ubiattach -m 2 -d 0

SEE ALSO
	mtd-utils apropos [COMMAND | KEYWORD], mtd-utils man COMMAND`,
		},
	}
	g.Plot(
		flash_erase.Command{},
		flash_eraseall.Command{},
		flash_lock.Command{},
		flash_lock.UnlockCommand{},
		flash_torture.Command{},
		mtdinfo.Command{},
		mtdprobe.Command{},
		nanddump.Command{},
		nandwrite.Command{},
		ubi.AttachCommand{},
		ubi.DetachCommand{},
	)
	return g
}

func main() {
	Goes().Main()
}
