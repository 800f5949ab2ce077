// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"bytes"
	"errors"
	"math"
	"os"
	"testing"

	"github.com/platinasystems/mtd/internal/flashsim"
	"github.com/platinasystems/mtd/internal/mtdabi"
	"github.com/platinasystems/mtd/internal/test"
	"golang.org/x/sys/unix"
)

// openNode resolves and opens a node of the simulated system with a clean
// call log.
func openNode(t *testing.T, sys *flashsim.System, node string) (*DevInfo, *flashsim.Flash) {
	t.Helper()
	d, err := simOpen(t, sys).DevInfo(node)
	if err != nil {
		t.Fatal(err)
	}
	f, err := sys.Open(node, os.O_RDWR)
	if err != nil {
		t.Fatal(err)
	}
	f.Calls()
	return d, f
}

func ioErrno(t *testing.T, err error) unix.Errno {
	t.Helper()
	var ioe *IoError
	if !errors.As(err, &ioe) {
		t.Fatal("not an IoError:", err)
	}
	return ioe.Errno()
}

func TestWriteReadBack(t *testing.T) {
	assert := test.Assert{TB: t}
	d, f := openNode(t, flash0(true), "/dev/flash0")
	assert.True(d.DevNum == 0 && d.EbCnt == 1024)
	page := bytes.Repeat([]byte{0xaa}, 2048)
	assert.Nil(d.Erase(f, 5))
	assert.Nil(d.Write(f, 5, 0, page))
	buf, err := d.Read(f, 5, 0, 2048)
	assert.Nil(err)
	assert.True(bytes.Equal(buf, page))
	assert.Calls(f.Calls(), "erase", "write", "read")
}

func TestEraseRestores(t *testing.T) {
	assert := test.Assert{TB: t}
	d, f := openNode(t, flash0(false), "/dev/mtd0")
	assert.Nil(d.Write(f, 1, 4096, make([]byte, 4096)))
	buf, err := d.Read(f, 1, 4095, 3)
	assert.Nil(err)
	assert.True(bytes.Equal(buf, []byte{0xff, 0, 0}))
	assert.Nil(d.Erase(f, 1))
	buf, err = d.Read(f, 1, 0, d.EbSize)
	assert.Nil(err)
	assert.True(bytes.Equal(buf, bytes.Repeat([]byte{0xff}, d.EbSize)))
}

func TestOutOfRange(t *testing.T) {
	assert := test.Assert{TB: t}
	d, f := openNode(t, flash0(true), "/dev/mtd0")
	for _, eb := range []int{-1, d.EbCnt, d.EbCnt + 1} {
		assert.Error(d.Erase(f, eb), ErrOutOfRange)
		_, err := d.IsBad(f, eb)
		assert.Error(err, ErrOutOfRange)
		assert.Error(d.MarkBad(f, eb), ErrOutOfRange)
		assert.Error(d.Lock(f, eb), ErrOutOfRange)
		assert.Error(d.Unlock(f, eb), ErrOutOfRange)
		_, err = d.IsLocked(f, eb)
		assert.Error(err, ErrOutOfRange)
		assert.Error(d.Torture(f, eb), ErrOutOfRange)
	}
	_, err := d.Read(f, 0, d.EbSize-10, 20)
	assert.Error(err, ErrOutOfRange)
	_, err = d.Read(f, 0, -1, 1)
	assert.Error(err, ErrOutOfRange)
	err = d.Write(f, 0, d.EbSize-2048, make([]byte, 4096))
	assert.Error(err, ErrOutOfRange)
	_, err = d.RegionInfo(f, 0)
	assert.Error(err, ErrOutOfRange)
	assert.Calls(f.Calls())
}

// Bounds near the int limit must not wrap past the check.
func TestOutOfRangeOverflow(t *testing.T) {
	assert := test.Assert{TB: t}
	d, f := openNode(t, flash0(true), "/dev/mtd0")
	huge := (math.MaxInt / d.MinIOSize) * d.MinIOSize
	assert.Error(d.Write(f, 0, huge, make([]byte, d.MinIOSize)),
		ErrOutOfRange)
	assert.Error(d.Write(f, 0, d.MinIOSize, make([]byte, d.EbSize)),
		ErrOutOfRange)
	_, err := d.Read(f, 0, 1, math.MaxInt)
	assert.Error(err, ErrOutOfRange)
	_, err = d.Read(f, 0, math.MaxInt, 1)
	assert.Error(err, ErrOutOfRange)
	_, err = d.Read(f, 0, d.EbSize, 0)
	assert.Nil(err)
	assert.Calls(f.Calls(), "read")
}

func TestUnaligned(t *testing.T) {
	assert := test.Assert{TB: t}
	d, f := openNode(t, flash0(true), "/dev/mtd0")
	assert.Error(d.Write(f, 0, 100, make([]byte, 2048)), ErrUnaligned)
	assert.Error(d.Write(f, 0, 0, make([]byte, 100)), ErrUnaligned)
	assert.Calls(f.Calls())
	// reads are byte granular
	_, err := d.Read(f, 0, 3, 5)
	assert.Nil(err)
}

func TestNORBadBlocks(t *testing.T) {
	assert := test.Assert{TB: t}
	sys := flashsim.NewSystem(true)
	sys.Add(1, "env", flashsim.NOR(16, 65536))
	d, f := openNode(t, sys, "/dev/mtd1")
	bad, err := d.IsBad(f, 3)
	assert.Nil(err)
	assert.False(bad)
	assert.Error(d.MarkBad(f, 3), ErrUnsupported)
	assert.Calls(f.Calls())
	// NOR programs bytes
	assert.Nil(d.Write(f, 3, 7, []byte("env")))
	buf, err := d.Read(f, 3, 7, 3)
	assert.Nil(err)
	assert.Equal(string(buf), "env")
}

func TestMarkBad(t *testing.T) {
	assert := test.Assert{TB: t}
	sys := flash0(true)
	sys.Flash(0).SetBad(9)
	d, f := openNode(t, sys, "/dev/mtd0")
	bad, err := d.IsBad(f, 9)
	assert.Nil(err)
	assert.True(bad)
	bad, err = d.IsBad(f, 7)
	assert.Nil(err)
	assert.False(bad)
	assert.Nil(d.MarkBad(f, 7))
	bad, err = d.IsBad(f, 7)
	assert.Nil(err)
	assert.True(bad)
	assert.Calls(f.Calls(), "isbad", "isbad", "markbad", "isbad")
	assert.True(ioErrno(t, d.Erase(f, 7)) == unix.EIO)
}

func TestIoError(t *testing.T) {
	assert := test.Assert{TB: t}
	d, f := openNode(t, flash0(true), "/dev/mtd0")
	f.Fail["erase"] = unix.EIO
	err := d.Erase(f, 3)
	var ioe *IoError
	assert.True(errors.As(err, &ioe))
	assert.Equal(ioe.Op, "erase")
	assert.True(ioe.DevNum == 0 && ioe.Eb == 3)
	assert.True(ioe.Errno() == unix.EIO)
	assert.Error(err, unix.EIO)

	f.Fail["isbad"] = unix.ENXIO
	_, err = d.IsBad(f, 3)
	assert.True(ioErrno(t, err) == unix.ENXIO)

	f.Fail["read"] = unix.EBADMSG
	_, err = d.Read(f, 3, 0, 16)
	assert.True(ioErrno(t, err) == unix.EBADMSG)
}

func TestWriteReadOnly(t *testing.T) {
	sys := flashsim.NewSystem(true)
	rom := flashsim.NOR(4, 65536)
	rom.Flags = 0
	sys.Add(0, "rom", rom)
	d, f := openNode(t, sys, "/dev/mtd0")
	test.Assert{TB: t}.False(d.Writable)
	err := d.Write(f, 0, 0, []byte{0})
	test.Assert{TB: t}.True(ioErrno(t, err) == unix.EROFS)
}

func TestLock(t *testing.T) {
	assert := test.Assert{TB: t}
	d, f := openNode(t, flash0(true), "/dev/mtd0")
	assert.Nil(d.Lock(f, 2))
	locked, err := d.IsLocked(f, 2)
	assert.Nil(err)
	assert.True(locked)
	locked, err = d.IsLocked(f, 3)
	assert.Nil(err)
	assert.False(locked)
	assert.True(ioErrno(t, d.Erase(f, 2)) == unix.EPERM)
	assert.Nil(d.Unlock(f, 2))
	locked, err = d.IsLocked(f, 2)
	assert.Nil(err)
	assert.False(locked)
	assert.Nil(d.Erase(f, 2))
}

func TestRegionInfo(t *testing.T) {
	assert := test.Assert{TB: t}
	sys := flashsim.NewSystem(true)
	sys.Add(0, "boot", flashsim.New(flashsim.Geometry{
		Type:        mtdabi.NorFlash,
		Flags:       mtdabi.Writeable,
		Size:        262144,
		EbSize:      65536,
		MinIO:       1,
		SubpageSize: 1,
		Regions: []mtdabi.Region{
			{Offset: 0, EraseSize: 8192, NumBlocks: 8, Index: 0},
			{Offset: 65536, EraseSize: 65536, NumBlocks: 3, Index: 1},
		},
	}))
	d, f := openNode(t, sys, "/dev/mtd0")
	assert.True(d.RegionCnt == 2)
	r, err := d.RegionInfo(f, 1)
	assert.Nil(err)
	if *r != (Region{Index: 1, Offset: 65536, EbSize: 65536, EbCnt: 3}) {
		t.Error("wrong:", r)
	}
	_, err = d.RegionInfo(f, 2)
	assert.Error(err, ErrOutOfRange)
}

func TestTorture(t *testing.T) {
	assert := test.Assert{TB: t}
	d, f := openNode(t, flash0(true), "/dev/mtd0")
	assert.Nil(d.Torture(f, 9))
	var expect []string
	for range torturePatterns {
		expect = append(expect, "erase", "read", "write", "read")
	}
	expect = append(expect, "erase")
	assert.Calls(f.Calls(), expect...)
	buf, err := d.Read(f, 9, 0, d.EbSize)
	assert.Nil(err)
	assert.True(firstDiff(buf, bytes.Repeat([]byte{0xff}, d.EbSize)) < 0)
}

func TestTortureWorn(t *testing.T) {
	d, f := openNode(t, flash0(true), "/dev/mtd0")
	f.Wear(d.Addr(9, 100), 0x01)
	err := d.Torture(f, 9)
	test.Assert{TB: t}.Error(err, ErrTorture)
	test.Assert{TB: t}.Match(err.Error(), "offset 100: 0xfe != 0xff")
}

func TestAddr(t *testing.T) {
	d := &DevInfo{EbSize: 131072}
	test.Assert{TB: t}.True(d.Addr(5, 10) == 5*131072+10)
}
