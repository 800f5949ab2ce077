// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"io"

	"github.com/platinasystems/mtd/internal/mtdabi"
)

// Device is an open MTD character device node. Offsets are absolute bytes
// from the start of the device.
type Device interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
	Erase(start, length int64) error
	IsBad(offs int64) (bool, error)
	MarkBad(offs int64) error
	Lock(start, length int64) error
	Unlock(start, length int64) error
	IsLocked(start, length int64) (bool, error)
}

// Opener opens a device node, e.g. OpenDevice.
type Opener func(path string, flag int) (Device, error)

// NodeStat is what stat(2) says about a device node.
type NodeStat = mtdabi.NodeStat

// Stater reports the device identifiers of a node, e.g. StatNode.
type Stater func(path string) (NodeStat, error)

// OpenDevice opens an MTD character device node with os.OpenFile flags.
// The caller must Close it.
func OpenDevice(path string, flag int) (Device, error) {
	f, err := mtdabi.Open(path, flag)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// StatNode is the default Stater.
func StatNode(path string) (NodeStat, error) {
	return mtdabi.Stat(path)
}

// OpenNode opens a device node with the library's Opener.
func (lib *Lib) OpenNode(path string, flag int) (Device, error) {
	return lib.open(path, flag)
}
