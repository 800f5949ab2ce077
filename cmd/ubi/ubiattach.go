// Copyright © 2019-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ubi

import (
	"fmt"
	"strconv"

	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/ubi"
)

var ErrUbiVolume = fmt.Errorf("UBI volume: %w", mtd.ErrUnsupported)

var (
	attach = ubi.Attach
	detach = ubi.Detach
)

type AttachCommand struct{}

func (AttachCommand) String() string { return "ubiattach" }

func (AttachCommand) Usage() string { return "ubiattach [-d UBI-UNIT] -m MTD-DEVICE" }

func (AttachCommand) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "attach a UBI partition to a MTD device",
	}
}

func (AttachCommand) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	The ubiattach command is used to associated a MTD device with
	the UBI subsystem. The underlying MTD device or partition must
	either contain a valid UBI partition, or be erased (in which case
	the UBI subsystem will format the partition as UBI).

OPTIONS
	-d [UNIT]
		Specifies the unit number of the associated UBI device

	-m [UNIT|NODE]
		Specifies the number or node of the associated MTD device

EXAMPLES
	ubiattach -d 0 -m 5
		Attaches /dev/mtd5 to /dev/ubi0`,
	}
}

func unit(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%q: %w", s, mtdcmd.ErrUsage)
	}
	return i, nil
}

func (c AttachCommand) Main(args ...string) error {
	parm, args := parms.New(args, "-d", "-m")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	ubiUnit, err := unit(parm.ByName["-d"])
	if err != nil {
		return err
	}
	node := parm.ByName["-m"]
	if len(node) == 0 {
		node = "0"
	}
	return mtd.With(func(lib *mtd.Lib) error {
		d, err := lib.DevInfo(mtdcmd.Node(lib, node))
		if err != nil {
			return fmt.Errorf("%s: %w", node, err)
		}
		if d.Type == mtd.UbiVolume {
			return fmt.Errorf("%s: %w", d, ErrUbiVolume)
		}
		return attach(int32(ubiUnit), int32(d.DevNum), 0, 0)
	}, mtdcmd.Options...)
}
