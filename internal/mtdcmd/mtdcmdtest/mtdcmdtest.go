// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package mtdcmdtest points the flash commands at a simulated system.
package mtdcmdtest

import (
	"testing"

	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/internal/flashsim"
	"github.com/platinasystems/mtd/internal/mtdcmd"
)

// Options open a library session on the simulated system.
func Options(sys *flashsim.System) []mtd.Option {
	return []mtd.Option{
		mtd.WithFs(sys.Fs),
		mtd.WithSysfsDir("/sys/class/mtd"),
		mtd.WithProcMtd("/proc/mtd"),
		mtd.WithDevDir("/dev"),
		mtd.WithStater(sys.Stat),
		mtd.WithOpener(func(path string, flag int) (mtd.Device, error) {
			f, err := sys.Open(path, flag)
			if err != nil {
				return nil, err
			}
			return f, nil
		}),
	}
}

// Use runs the commands of the calling test on sys.
func Use(t testing.TB, sys *flashsim.System) {
	saved := mtdcmd.Options
	mtdcmd.Options = Options(sys)
	t.Cleanup(func() { mtdcmd.Options = saved })
}

// Flash0 is a host with a 128MiB NAND chip at mtd0 and an 1MiB NOR chip
// at mtd1.
func Flash0(withSysfs bool) *flashsim.System {
	sys := flashsim.NewSystem(withSysfs)
	sys.Add(0, "flash0", flashsim.NAND(1024, 131072, 2048))
	sys.Add(1, "env", flashsim.NOR(16, 65536))
	sys.Link("/dev/flash0", "/dev/mtd0")
	return sys
}
