// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package mtdabi is the user space ABI of the Linux MTD character devices,
// linux: include/uapi/mtd/mtd-abi.h
package mtdabi

import "errors"

// Character device major of /dev/mtdN and /dev/mtdNro.
const CharMajor = 90

// Flash types, mtd_info_user.type
const (
	Absent       = 0
	Ram          = 1
	Rom          = 2
	NorFlash     = 3
	NandFlash    = 4
	DataFlash    = 6
	UbiVolume    = 7
	MlcNandFlash = 8
)

// Flags, mtd_info_user.flags
const (
	Writeable    = 0x400
	BitWriteable = 0x800
	NoErase      = 0x1000
	PowerupLock  = 0x2000
)

// ioctl requests
const (
	MEMGETINFO        = 0x80204d01
	MEMERASE          = 0x40084d02
	MEMLOCK           = 0x40084d05
	MEMUNLOCK         = 0x40084d06
	MEMGETREGIONCOUNT = 0x80044d07
	MEMGETREGIONINFO  = 0xc0104d08
	MEMGETBADBLOCK    = 0x40084d0b
	MEMSETBADBLOCK    = 0x40084d0c
	MEMERASE64        = 0x40104d14
	MEMISLOCKED       = 0x80084d17
)

var ErrNotSupported = errors.New("mtd ioctl not supported on this platform")

// Info is struct mtd_info_user.
type Info struct {
	Type      uint8
	_         [3]uint8
	Flags     uint32
	Size      uint32
	EraseSize uint32
	WriteSize uint32
	OobSize   uint32
	_         uint64
}

// EraseInfo is struct erase_info_user.
type EraseInfo struct {
	Start  uint32
	Length uint32
}

// EraseInfo64 is struct erase_info_user64.
type EraseInfo64 struct {
	Start  uint64
	Length uint64
}

// Region is struct region_info_user.
type Region struct {
	Offset    uint32
	EraseSize uint32
	NumBlocks uint32
	Index     uint32
}

// Geometer is implemented by devices that answer the geometry requests.
type Geometer interface {
	Info() (Info, error)
	RegionCount() (int, error)
	RegionInfo(index int) (Region, error)
}

// NodeStat is what a stat(2) of a device node says about it.
type NodeStat struct {
	IsChar bool
	Major  uint32
	Minor  uint32
}
