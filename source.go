// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/platinasystems/mtd/internal/mtdabi"
	"github.com/platinasystems/mtd/internal/procmtd"
	"golang.org/x/sys/unix"
)

// gone is true of errors that mean the device, or MTD, isn't there.
func gone(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, unix.ENODEV) ||
		errors.Is(err, unix.ENXIO)
}

func (lib *Lib) sysfsAttrs(devNum int) (*attrs, error) {
	sa, err := lib.class.Attrs(devNum)
	if err != nil {
		return nil, err
	}
	a := &attrs{
		major:    ptr(int(sa.Major)),
		minor:    ptr(int(sa.Minor)),
		typ:      ptr(TypeOf(sa.Type)),
		name:     ptr(sa.Name),
		size:     ptr(sa.Size),
		ebSize:   ptr(int(sa.EraseSize)),
		minIO:    ptr(int(sa.WriteSize)),
		writable: ptr(sa.Flags&mtdabi.Writeable != 0),
	}
	if sa.SubpageSize != nil {
		a.subpage = ptr(int(*sa.SubpageSize))
	}
	if sa.OobSize != nil {
		a.oob = ptr(int(*sa.OobSize))
	}
	if sa.NumEraseRegions != nil {
		a.regions = ptr(int(*sa.NumEraseRegions))
	}
	return a, nil
}

func (lib *Lib) devNode(devNum int) string {
	return filepath.Join(lib.devDir, fmt.Sprint("mtd", devNum))
}

// ioctlAttrs asks the device node itself with MEMGETINFO and
// MEMGETREGIONCOUNT; it neither knows the name nor the sub-page size.
func (lib *Lib) ioctlAttrs(devNum int) (*attrs, error) {
	node := lib.devNode(devNum)
	st, err := lib.stat(node)
	if err != nil {
		return nil, err
	}
	if !st.IsChar {
		return nil, fmt.Errorf("%s: %w", node, ErrInvalidNode)
	}
	fd, err := lib.open(node, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	g, ok := fd.(mtdabi.Geometer)
	if !ok {
		return nil, fmt.Errorf("%s: geometry %w", node, ErrUnsupported)
	}
	info, err := g.Info()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", node, err)
	}
	a := &attrs{
		major:    ptr(int(st.Major)),
		minor:    ptr(int(st.Minor)),
		typ:      ptr(int(info.Type)),
		size:     ptr(int64(info.Size)),
		ebSize:   ptr(int(info.EraseSize)),
		minIO:    ptr(int(info.WriteSize)),
		oob:      ptr(int(info.OobSize)),
		writable: ptr(info.Flags&mtdabi.Writeable != 0),
	}
	if n, err := g.RegionCount(); err == nil {
		a.regions = ptr(n)
	}
	return a, nil
}

func (lib *Lib) procEntries() ([]procmtd.Entry, error) {
	return procmtd.Read(lib.fs, lib.procMtd)
}

func (lib *Lib) procAttrs(devNum int) (*attrs, error) {
	entries, err := lib.procEntries()
	if err != nil {
		return nil, err
	}
	e, found := procmtd.Lookup(entries, devNum)
	if !found {
		return nil, fs.ErrNotExist
	}
	return &attrs{
		name:   ptr(e.Name),
		size:   ptr(e.Size),
		ebSize: ptr(int(e.EraseSize)),
	}, nil
}
