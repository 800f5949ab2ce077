// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package mtd provides access to raw flash through the Linux Memory
// Technology Device subsystem.
//
// Open the library once, resolve the geometry of each device of interest,
// then pass that geometry with a separately opened device node to the
// eraseblock operations:
//
//	lib, err := mtd.Open()
//	...
//	defer lib.Close()
//	dev, err := lib.DevInfo("/dev/mtd3")
//	...
//	fd, err := mtd.OpenDevice("/dev/mtd3", os.O_RDWR)
//	...
//	defer fd.Close()
//	if bad, err := dev.IsBad(fd, eb); err == nil && !bad {
//		err = dev.Erase(fd, eb)
//	}
//
// The library neither retries nor serializes; callers own the device
// handles and the ordering of operations on each eraseblock.
package mtd

import (
	"fmt"
	"unicode/utf8"

	"github.com/platinasystems/mtd/internal/mtdabi"
)

// Maximum lengths of DevInfo.Name and DevInfo.TypeStr
const (
	NameMax = 127
	TypeMax = 64
)

// Flash types
const (
	Unknown      = -1
	Absent       = mtdabi.Absent
	Ram          = mtdabi.Ram
	Rom          = mtdabi.Rom
	NorFlash     = mtdabi.NorFlash
	NandFlash    = mtdabi.NandFlash
	DataFlash    = mtdabi.DataFlash
	UbiVolume    = mtdabi.UbiVolume
	MlcNandFlash = mtdabi.MlcNandFlash
)

var typeStrs = []struct {
	typ int
	str string
}{
	{Absent, "absent"},
	{Ram, "ram"},
	{Rom, "rom"},
	{NorFlash, "nor"},
	{NandFlash, "nand"},
	{DataFlash, "dataflash"},
	{UbiVolume, "ubi"},
	{MlcNandFlash, "mlc-nand"},
}

// TypeStr returns the kernel's name of a flash type, or "unknown".
func TypeStr(typ int) string {
	for _, x := range typeStrs {
		if x.typ == typ {
			return x.str
		}
	}
	return "unknown"
}

// TypeOf is the inverse of TypeStr.
func TypeOf(s string) int {
	for _, x := range typeStrs {
		if x.str == s {
			return x.typ
		}
	}
	return Unknown
}

// Info describes the MTD subsystem as a whole.
type Info struct {
	DevCount       int  `yaml:"dev_count"`
	LowestDevNum   int  `yaml:"lowest_dev_num"`
	HighestDevNum  int  `yaml:"highest_dev_num"`
	SysfsSupported bool `yaml:"sysfs_supported"`
}

// DevInfo is the geometry of one MTD device. It doesn't refer back to the
// Lib that resolved it and is never modified after it's returned.
type DevInfo struct {
	DevNum      int    `yaml:"dev_num"`
	Major       int    `yaml:"major"`
	Minor       int    `yaml:"minor"`
	Type        int    `yaml:"type"`
	TypeStr     string `yaml:"type_str"`
	Name        string `yaml:"name"`
	Size        int64  `yaml:"size"`
	EbCnt       int    `yaml:"eb_cnt"`
	EbSize      int    `yaml:"eb_size"`
	MinIOSize   int    `yaml:"min_io_size"`
	SubpageSize int    `yaml:"subpage_size"`
	OobSize     int    `yaml:"oob_size"`
	RegionCnt   int    `yaml:"region_cnt"`
	Writable    bool   `yaml:"writable"`
	BbAllowed   bool   `yaml:"bb_allowed"`
}

func (d *DevInfo) String() string {
	return fmt.Sprint("mtd", d.DevNum)
}

// Node returns the conventional device node of d in dir, e.g. /dev/mtd3
func (d *DevInfo) Node(dir string) string {
	return fmt.Sprint(dir, "/mtd", d.DevNum)
}

// truncate s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
