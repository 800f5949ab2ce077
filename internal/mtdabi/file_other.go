// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

//go:build !linux

package mtdabi

import "os"

type File struct {
	*os.File
}

func Open(path string, flag int) (*File, error) {
	return nil, &os.PathError{Op: "open", Path: path, Err: ErrNotSupported}
}

func (*File) Info() (Info, error)                 { return Info{}, ErrNotSupported }
func (*File) RegionCount() (int, error)           { return 0, ErrNotSupported }
func (*File) RegionInfo(int) (Region, error)      { return Region{}, ErrNotSupported }
func (*File) Erase(int64, int64) error            { return ErrNotSupported }
func (*File) IsBad(int64) (bool, error)           { return false, ErrNotSupported }
func (*File) MarkBad(int64) error                 { return ErrNotSupported }
func (*File) Lock(int64, int64) error             { return ErrNotSupported }
func (*File) Unlock(int64, int64) error           { return ErrNotSupported }
func (*File) IsLocked(int64, int64) (bool, error) { return false, ErrNotSupported }

func Stat(path string) (NodeStat, error) {
	return NodeStat{}, &os.PathError{Op: "stat", Path: path, Err: ErrNotSupported}
}
