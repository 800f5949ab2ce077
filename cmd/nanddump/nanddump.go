// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package nanddump

import (
	"fmt"
	"io"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/url"
	"go.uber.org/multierr"
)

type Command struct{}

func (Command) String() string { return "nanddump" }

func (Command) Usage() string {
	return "nanddump [-a] [-s START] [-l LENGTH] [-o FILE] MTD-DEVICE"
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "dump the contents of a MTD device",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Copy LENGTH bytes of the MTD device, beginning at START, to FILE
	or standard output. Bad eraseblocks are left out of the dump.
	START and LENGTH may have a unit suffix, e.g. 128KiB.

OPTIONS
	-a	dump bad eraseblocks too
	-s START
		device offset, default 0
	-l LENGTH
		default through the end of the device
	-o FILE
		a file name or URL

EXAMPLES
	nanddump -s 0x20000 -l 128KiB -o /tmp/eb1 /dev/mtd0`,
	}
}

func (c Command) Main(args ...string) (err error) {
	flag, args := flags.New(args, "-a")
	parm, args := parms.New(args, "-s", "-l", "-o")
	if len(args) != 1 {
		return fmt.Errorf("%s", c.Usage())
	}
	d, err := mtdcmd.Open(args[0], os.O_RDONLY)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, d.Close())
	}()
	var start int64
	end := d.Info.Size
	if s := parm.ByName["-s"]; len(s) > 0 {
		if start, err = mtdcmd.ParseSize(s); err != nil {
			return err
		}
	}
	if s := parm.ByName["-l"]; len(s) > 0 {
		n, err := mtdcmd.ParseSize(s)
		if err != nil {
			return err
		}
		end = start + n
	}
	if start > d.Info.Size || end > d.Info.Size {
		return fmt.Errorf("%s: %d bytes at %d exceeds %d", d.Node,
			end-start, start, d.Info.Size)
	}
	var w io.Writer = os.Stdout
	if fn := parm.ByName["-o"]; len(fn) > 0 {
		wc, err := url.Create(fn)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, wc.Close())
		}()
		w = wc
	}
	return dump(w, d, start, end, flag.ByName["-a"])
}

func dump(w io.Writer, d *mtdcmd.Dev, start, end int64, all bool) error {
	ebSize := int64(d.Info.EbSize)
	for offs := start; offs < end; {
		eb := int(offs / ebSize)
		in := offs % ebSize
		n := ebSize - in
		if offs+n > end {
			n = end - offs
		}
		if !all {
			bad, err := d.Info.IsBad(d.Fd, eb)
			if err != nil {
				return err
			}
			if bad {
				fmt.Fprintln(os.Stderr, "Skipping bad eraseblock", eb)
				offs += n
				continue
			}
		}
		buf, err := d.Info.Read(d.Fd, eb, int(in), int(n))
		if err != nil {
			return err
		}
		if _, err = w.Write(buf); err != nil {
			return err
		}
		offs += n
	}
	return nil
}
