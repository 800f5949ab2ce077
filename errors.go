// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrNoDevice is MTD, or the requested device, missing from the host.
	ErrNoDevice = errors.New("no such MTD device")

	// ErrInvalidNode is a path that isn't an MTD character device.
	ErrInvalidNode = errors.New("not an MTD character device")

	// ErrNotMtdNode is the single failure of ProbeNode.
	ErrNotMtdNode = errors.New("not an MTD device node")

	ErrOutOfRange  = errors.New("out of range")
	ErrUnaligned   = errors.New("not aligned to the minimum I/O unit")
	ErrUnsupported = errors.New("not supported by this device")
	ErrSystem      = errors.New("MTD system error")
	ErrBadGeometry = errors.New("insane MTD geometry")
	ErrTorture     = errors.New("eraseblock failed torture test")
)

// IoError is a failure reported by the device transport.
type IoError struct {
	Op     string
	DevNum int
	Eb     int
	Err    error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("mtd%d: %s eraseblock %d: %v", e.DevNum, e.Op, e.Eb,
		e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// Errno is the native error code or zero if the transport didn't give one.
func (e *IoError) Errno() unix.Errno {
	var errno unix.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}
	return 0
}

func (d *DevInfo) ioError(op string, eb int, err error) error {
	if err == nil {
		return nil
	}
	return &IoError{Op: op, DevNum: d.DevNum, Eb: eb, Err: err}
}
