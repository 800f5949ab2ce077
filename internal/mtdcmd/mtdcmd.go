// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package mtdcmd has what the flash commands share: opening a device node
// through the library and parsing numeric arguments.
package mtdcmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/platinasystems/mtd"
	"go.uber.org/multierr"
)

// Options configure every library session of the commands; tests point
// them at a simulated system.
var Options []mtd.Option

var ErrUsage = errors.New("usage")

// Dev is a resolved and opened MTD device node.
type Dev struct {
	Node string
	Lib  *mtd.Lib
	Info *mtd.DevInfo
	Fd   mtd.Device
}

// Open resolves node to an MTD device and opens it with os.OpenFile flags.
// A bare number N is /dev/mtdN.
func Open(node string, flag int) (*Dev, error) {
	lib, err := mtd.Open(Options...)
	if err != nil {
		return nil, err
	}
	d := &Dev{Node: Node(lib, node), Lib: lib}
	if d.Info, err = lib.DevInfo(d.Node); err != nil {
		lib.Close()
		return nil, fmt.Errorf("%s: %w", d.Node, err)
	}
	if d.Fd, err = lib.OpenNode(d.Node, flag); err != nil {
		lib.Close()
		return nil, err
	}
	return d, nil
}

func (d *Dev) Close() error {
	return multierr.Combine(d.Fd.Close(), d.Lib.Close())
}

// Node maps a device number to its /dev node; anything else is a path.
func Node(lib *mtd.Lib, s string) string {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return fmt.Sprint(lib.DevDir(), "/mtd", n)
	}
	return s
}

// ParseNum parses a decimal or 0x prefixed count.
func ParseNum(s string) (int, error) {
	i, err := strconv.ParseInt(s, 0, 0)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%q: %w: not a count", s, ErrUsage)
	}
	return int(i), nil
}

// ParseSize parses a byte offset or length that may have a unit suffix,
// e.g. 0x20000, 128KiB, or 2MiB.
func ParseSize(s string) (int64, error) {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		if i < 0 {
			return 0, fmt.Errorf("%q: %w: negative size", s, ErrUsage)
		}
		return i, nil
	}
	u, err := humanize.ParseBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q: %w: %v", s, ErrUsage, err)
	}
	return int64(u), nil
}

// Range parses the optional [START [COUNT]] eraseblock arguments; a zero
// or missing COUNT is through the last eraseblock.
func Range(info *mtd.DevInfo, args []string) (first, last int, err error) {
	count := 0
	switch len(args) {
	case 2:
		if count, err = ParseNum(args[1]); err != nil {
			return
		}
		fallthrough
	case 1:
		if first, err = ParseNum(args[0]); err != nil {
			return
		}
	case 0:
	default:
		return 0, 0, fmt.Errorf("%v: %w: unexpected", args[2:], ErrUsage)
	}
	if first >= info.EbCnt {
		return 0, 0, fmt.Errorf("%w: eraseblock %d of %d",
			mtd.ErrOutOfRange, first, info.EbCnt)
	}
	if count == 0 {
		count = info.EbCnt - first
	}
	if count > info.EbCnt-first {
		return 0, 0, fmt.Errorf("%w: eraseblocks %d+%d of %d",
			mtd.ErrOutOfRange, first, count, info.EbCnt)
	}
	return first, first + count - 1, nil
}
