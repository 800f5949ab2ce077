// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package nandwrite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/platinasystems/flags"
	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/url"
	"go.uber.org/multierr"
)

var ErrVerify = errors.New("verify failed")

type Command struct{}

func (Command) String() string { return "nandwrite" }

func (Command) Usage() string {
	return "nandwrite [-p] [-q] [-s START] MTD-DEVICE IMAGE"
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "write an image to a MTD device",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Write the IMAGE file or URL to the erased MTD device beginning at
	START, skipping bad eraseblocks, then read back and verify each
	eraseblock. START must be a multiple of the minimum I/O unit.

OPTIONS
	-p	pad the image to the minimum I/O unit with 0xff
	-q	don't print progress
	-s START
		device offset, default 0

EXAMPLES
	flash_erase /dev/mtd3
	nandwrite -p /dev/mtd3 http://192.168.0.1/rootfs.ubi`,
	}
}

func (c Command) Main(args ...string) (err error) {
	flag, args := flags.New(args, "-p", "-q")
	parm, args := parms.New(args, "-s")
	if len(args) != 2 {
		return fmt.Errorf("%s", c.Usage())
	}
	var start int64
	if s := parm.ByName["-s"]; len(s) > 0 {
		if start, err = mtdcmd.ParseSize(s); err != nil {
			return err
		}
	}
	image, err := read(args[1])
	if err != nil {
		return err
	}
	d, err := mtdcmd.Open(args[0], os.O_RDWR)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, d.Close())
	}()
	if rem := len(image) % d.Info.MinIOSize; rem != 0 {
		if !flag.ByName["-p"] {
			return fmt.Errorf("%s: %d bytes: %w, try -p", args[1],
				len(image), mtd.ErrUnaligned)
		}
		image = append(image, bytes.Repeat([]byte{0xff},
			d.Info.MinIOSize-rem)...)
	}
	return write(d, start, image, flag.ByName["-q"])
}

func read(fn string) ([]byte, error) {
	r, err := url.Open(fn)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func write(d *mtdcmd.Dev, start int64, image []byte, quiet bool) error {
	ebSize := int64(d.Info.EbSize)
	offs := start
	for len(image) > 0 {
		eb := int(offs / ebSize)
		in := int(offs % ebSize)
		if eb >= d.Info.EbCnt {
			return fmt.Errorf("%s: %w: %d bytes left over",
				d.Node, mtd.ErrOutOfRange, len(image))
		}
		bad, err := d.Info.IsBad(d.Fd, eb)
		if err != nil {
			return err
		}
		if bad {
			if !quiet {
				fmt.Println("Skipping bad eraseblock", eb)
			}
			offs = d.Info.Addr(eb+1, 0)
			continue
		}
		n := d.Info.EbSize - in
		if n > len(image) {
			n = len(image)
		}
		if !quiet {
			fmt.Printf("Writing %d bytes at %#x\n", n, offs)
		}
		if err = d.Info.Write(d.Fd, eb, in, image[:n]); err != nil {
			return err
		}
		buf, err := d.Info.Read(d.Fd, eb, in, n)
		if err != nil {
			return err
		}
		if !bytes.Equal(buf, image[:n]) {
			return fmt.Errorf("%s: eraseblock %d: %w", d.Node, eb,
				ErrVerify)
		}
		image = image[n:]
		offs += int64(n)
	}
	return nil
}
