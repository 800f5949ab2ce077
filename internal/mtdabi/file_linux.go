// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

//go:build linux

package mtdabi

import (
	"errors"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// File is an open MTD character device.
type File struct {
	*os.File
}

func Open(path string, flag int) (*File, error) {
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	return &File{f}, nil
}

func (f *File) ioctl(req uintptr, arg unsafe.Pointer) (int, error) {
	r, _, e := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(arg))
	if e != 0 {
		return 0, os.NewSyscallError("ioctl", e)
	}
	return int(r), nil
}

func (f *File) Info() (Info, error) {
	var info Info
	_, err := f.ioctl(MEMGETINFO, unsafe.Pointer(&info))
	return info, err
}

func (f *File) RegionCount() (int, error) {
	var n int32
	_, err := f.ioctl(MEMGETREGIONCOUNT, unsafe.Pointer(&n))
	return int(n), err
}

func (f *File) RegionInfo(index int) (Region, error) {
	r := Region{Index: uint32(index)}
	_, err := f.ioctl(MEMGETREGIONINFO, unsafe.Pointer(&r))
	return r, err
}

// Erase uses MEMERASE64 and falls back to MEMERASE on kernels without it.
func (f *File) Erase(start, length int64) error {
	ei64 := EraseInfo64{uint64(start), uint64(length)}
	_, err := f.ioctl(MEMERASE64, unsafe.Pointer(&ei64))
	if err == nil || !errors.Is(err, unix.ENOTTY) {
		return err
	}
	ei := EraseInfo{uint32(start), uint32(length)}
	_, err = f.ioctl(MEMERASE, unsafe.Pointer(&ei))
	return err
}

func (f *File) IsBad(offs int64) (bool, error) {
	r, err := f.ioctl(MEMGETBADBLOCK, unsafe.Pointer(&offs))
	return r > 0, err
}

func (f *File) MarkBad(offs int64) error {
	_, err := f.ioctl(MEMSETBADBLOCK, unsafe.Pointer(&offs))
	return err
}

func (f *File) Lock(start, length int64) error {
	ei := EraseInfo{uint32(start), uint32(length)}
	_, err := f.ioctl(MEMLOCK, unsafe.Pointer(&ei))
	return err
}

func (f *File) Unlock(start, length int64) error {
	ei := EraseInfo{uint32(start), uint32(length)}
	_, err := f.ioctl(MEMUNLOCK, unsafe.Pointer(&ei))
	return err
}

func (f *File) IsLocked(start, length int64) (bool, error) {
	ei := EraseInfo{uint32(start), uint32(length)}
	r, err := f.ioctl(MEMISLOCKED, unsafe.Pointer(&ei))
	return r > 0, err
}

// Stat reports the character device identifiers of the named node.
func Stat(path string) (NodeStat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return NodeStat{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return NodeStat{
		IsChar: st.Mode&unix.S_IFMT == unix.S_IFCHR,
		Major:  unix.Major(uint64(st.Rdev)),
		Minor:  unix.Minor(uint64(st.Rdev)),
	}, nil
}
