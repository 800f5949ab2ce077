// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/platinasystems/mtd/internal/mtdabi"
)

// Region is one of the additional, non-uniform erase regions of a device.
type Region struct {
	Index  int
	Offset int64
	EbSize int
	EbCnt  int
}

// Patterns written by Torture; the erased state is all ones.
var torturePatterns = []byte{0xa5, 0x5a, 0x00}

// Addr is the device offset of byte offs within eraseblock eb.
func (d *DevInfo) Addr(eb, offs int) int64 {
	return int64(eb)*int64(d.EbSize) + int64(offs)
}

func (d *DevInfo) checkEb(eb int) error {
	if eb < 0 || eb >= d.EbCnt {
		return fmt.Errorf("%w: mtd%d: eraseblock %d of %d", ErrOutOfRange,
			d.DevNum, eb, d.EbCnt)
	}
	return nil
}

func (d *DevInfo) checkRange(eb, offs, n int) error {
	if err := d.checkEb(eb); err != nil {
		return err
	}
	if offs < 0 || n < 0 || offs > d.EbSize || n > d.EbSize-offs {
		return fmt.Errorf("%w: mtd%d: %d bytes at offset %d of %d byte eraseblock",
			ErrOutOfRange, d.DevNum, n, offs, d.EbSize)
	}
	return nil
}

// Erase eraseblock eb. This is the only way back to the erased state;
// writes assume the region was erased and written at most once since.
func (d *DevInfo) Erase(fd Device, eb int) error {
	if err := d.checkEb(eb); err != nil {
		return err
	}
	return d.ioError("erase", eb,
		fd.Erase(d.Addr(eb, 0), int64(d.EbSize)))
}

// IsBad reports whether eb is marked bad. Devices without bad blocks always
// answer false without asking the device.
func (d *DevInfo) IsBad(fd Device, eb int) (bool, error) {
	if err := d.checkEb(eb); err != nil {
		return false, err
	}
	if !d.BbAllowed {
		return false, nil
	}
	bad, err := fd.IsBad(d.Addr(eb, 0))
	if err != nil {
		return false, d.ioError("check", eb, err)
	}
	return bad, nil
}

// MarkBad irreversibly marks eb bad.
func (d *DevInfo) MarkBad(fd Device, eb int) error {
	if err := d.checkEb(eb); err != nil {
		return err
	}
	if !d.BbAllowed {
		return fmt.Errorf("mtd%d: bad block marking %w", d.DevNum,
			ErrUnsupported)
	}
	return d.ioError("mark bad", eb, fd.MarkBad(d.Addr(eb, 0)))
}

// Read n bytes at offset offs of eraseblock eb. Reads are byte granular
// and don't consult the bad block table.
func (d *DevInfo) Read(fd Device, eb, offs, n int) ([]byte, error) {
	if err := d.checkRange(eb, offs, n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	got, err := fd.ReadAt(buf, d.Addr(eb, offs))
	if got == n {
		return buf, nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return nil, d.ioError("read", eb, err)
}

// Write buf at offset offs of eraseblock eb. Both offs and len(buf) must be
// multiples of the minimum I/O unit.
func (d *DevInfo) Write(fd Device, eb, offs int, buf []byte) error {
	if err := d.checkRange(eb, offs, len(buf)); err != nil {
		return err
	}
	if offs%d.MinIOSize != 0 || len(buf)%d.MinIOSize != 0 {
		return fmt.Errorf("%w: mtd%d: %d bytes at offset %d, unit %d",
			ErrUnaligned, d.DevNum, len(buf), offs, d.MinIOSize)
	}
	n, err := fd.WriteAt(buf, d.Addr(eb, offs))
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	return d.ioError("write", eb, err)
}

// Lock eraseblock eb against erase and write.
func (d *DevInfo) Lock(fd Device, eb int) error {
	if err := d.checkEb(eb); err != nil {
		return err
	}
	return d.ioError("lock", eb, fd.Lock(d.Addr(eb, 0), int64(d.EbSize)))
}

func (d *DevInfo) Unlock(fd Device, eb int) error {
	if err := d.checkEb(eb); err != nil {
		return err
	}
	return d.ioError("unlock", eb,
		fd.Unlock(d.Addr(eb, 0), int64(d.EbSize)))
}

func (d *DevInfo) IsLocked(fd Device, eb int) (bool, error) {
	if err := d.checkEb(eb); err != nil {
		return false, err
	}
	locked, err := fd.IsLocked(d.Addr(eb, 0), int64(d.EbSize))
	if err != nil {
		return false, d.ioError("check lock", eb, err)
	}
	return locked, nil
}

// RegionInfo describes erase region index of a device with RegionCnt > 0.
func (d *DevInfo) RegionInfo(fd Device, index int) (*Region, error) {
	if index < 0 || index >= d.RegionCnt {
		return nil, fmt.Errorf("%w: mtd%d: region %d of %d",
			ErrOutOfRange, d.DevNum, index, d.RegionCnt)
	}
	g, ok := fd.(mtdabi.Geometer)
	if !ok {
		return nil, fmt.Errorf("mtd%d: region info %w", d.DevNum,
			ErrUnsupported)
	}
	r, err := g.RegionInfo(index)
	if err != nil {
		return nil, fmt.Errorf("mtd%d: region %d: %w", d.DevNum, index,
			err)
	}
	return &Region{
		Index:  int(r.Index),
		Offset: int64(r.Offset),
		EbSize: int(r.EraseSize),
		EbCnt:  int(r.NumBlocks),
	}, nil
}

// Torture erases eb and verifies that it's all ones, then writes, reads
// back and verifies each test pattern in turn. The eraseblock is left
// erased if it passes. A failed verify is ErrTorture, after which the
// caller would usually MarkBad.
func (d *DevInfo) Torture(fd Device, eb int) error {
	if err := d.checkEb(eb); err != nil {
		return err
	}
	pattern := make([]byte, d.EbSize)
	verify := func(b byte, what string) error {
		buf, err := d.Read(fd, eb, 0, d.EbSize)
		if err != nil {
			return err
		}
		for i := range pattern {
			pattern[i] = b
		}
		if i := firstDiff(buf, pattern); i >= 0 {
			return fmt.Errorf("%w: mtd%d: eraseblock %d: %s at offset %d: %#02x != %#02x",
				ErrTorture, d.DevNum, eb, what, i, buf[i], b)
		}
		return nil
	}
	for _, b := range torturePatterns {
		if err := d.Erase(fd, eb); err != nil {
			return err
		}
		if err := verify(0xff, "erase"); err != nil {
			return err
		}
		for i := range pattern {
			pattern[i] = b
		}
		if err := d.Write(fd, eb, 0, pattern); err != nil {
			return err
		}
		if err := verify(b, "pattern"); err != nil {
			return err
		}
	}
	return d.Erase(fd, eb)
}

func firstDiff(a, b []byte) int {
	if bytes.Equal(a, b) {
		return -1
	}
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return len(a)
}
