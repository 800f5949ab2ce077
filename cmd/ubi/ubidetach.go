// Copyright © 2019-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ubi

import (
	"fmt"

	"github.com/platinasystems/mtd/lang"
	"github.com/platinasystems/parms"
)

type DetachCommand struct{}

func (DetachCommand) String() string { return "ubidetach" }

func (DetachCommand) Usage() string { return "ubidetach -d [UBI-DEV]" }

func (DetachCommand) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "Detach a UBI partition from a MTD device",
	}
}

func (DetachCommand) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	The ubidetach command is used to deassociate a MTD device from
	the UBI subsystem.

OPTIONS
	-d [UNIT]
		Specifies the unit number of the UBI device to detach.

EXAMPLES
	ubidetach -d 0
		Detach /dev/ubi0.`,
	}
}

func (c DetachCommand) Main(args ...string) error {
	parm, args := parms.New(args, "-d")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	u, err := unit(parm.ByName["-d"])
	if err != nil {
		return err
	}
	return detach(int32(u))
}
