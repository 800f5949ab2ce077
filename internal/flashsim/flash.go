// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package flashsim simulates MTD flash chips and the kernel interfaces that
// describe them, for tests of code that would otherwise need real hardware.
package flashsim

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/platinasystems/mtd/internal/mtdabi"
	"golang.org/x/sys/unix"
)

// Geometry of a simulated chip; Size is EbSize times the eraseblock count.
type Geometry struct {
	Type        uint8
	Flags       uint32
	Size        int64
	EbSize      int
	MinIO       int
	SubpageSize int
	OobSize     int
	Regions     []mtdabi.Region
}

// Flash is an in-memory flash chip. Programming can only clear bits, so a
// write over a dirty page ANDs with the old contents just like NAND/NOR.
type Flash struct {
	Geometry

	mutex  sync.Mutex
	data   []byte
	bad    map[int64]bool
	locked map[int64]bool
	worn   map[int64]byte
	calls  []string

	// Fail injects an error for the named operation, e.g. "erase".
	Fail map[string]error
}

func New(g Geometry) *Flash {
	f := &Flash{
		Geometry: g,
		data:     make([]byte, g.Size),
		bad:      make(map[int64]bool),
		locked:   make(map[int64]bool),
		worn:     make(map[int64]byte),
		Fail:     make(map[string]error),
	}
	for i := range f.data {
		f.data[i] = 0xff
	}
	return f
}

// NAND returns a writable NAND chip of the given count of eraseblocks.
func NAND(ebCnt, ebSize, minIO int) *Flash {
	return New(Geometry{
		Type:        mtdabi.NandFlash,
		Flags:       mtdabi.Writeable,
		Size:        int64(ebCnt) * int64(ebSize),
		EbSize:      ebSize,
		MinIO:       minIO,
		SubpageSize: minIO,
		OobSize:     64,
	})
}

// NOR returns a writable, byte programmable NOR chip.
func NOR(ebCnt, ebSize int) *Flash {
	return New(Geometry{
		Type:        mtdabi.NorFlash,
		Flags:       mtdabi.Writeable | mtdabi.BitWriteable,
		Size:        int64(ebCnt) * int64(ebSize),
		EbSize:      ebSize,
		MinIO:       1,
		SubpageSize: 1,
	})
}

// Calls returns and clears the log of transport requests.
func (f *Flash) Calls() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	calls := f.calls
	f.calls = nil
	return calls
}

// Bad is true if the eraseblock holding offs was marked bad.
func (f *Flash) Bad(offs int64) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.bad[f.eb(offs)]
}

// SetBad marks an eraseblock bad at the factory, without logging a call.
func (f *Flash) SetBad(eb int) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.bad[int64(eb)] = true
}

// Wear sticks the given bits of the byte at offs at zero; erase can no
// longer set them.
func (f *Flash) Wear(offs int64, bits byte) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.worn[offs] |= bits
	f.data[offs] &^= bits
}

func (f *Flash) eb(offs int64) int64 { return offs / int64(f.EbSize) }

func (f *Flash) call(op string) error {
	f.calls = append(f.calls, op)
	if err := f.Fail[op]; err != nil {
		return os.NewSyscallError("ioctl", err)
	}
	return nil
}

func (f *Flash) span(start, length int64) error {
	if start < 0 || length < 0 || start > f.Size || length > f.Size-start {
		return os.NewSyscallError("ioctl", unix.EINVAL)
	}
	return nil
}

func (f *Flash) ReadAt(p []byte, off int64) (int, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("read"); err != nil {
		return 0, err
	}
	if off < 0 || off > f.Size {
		return 0, unix.EINVAL
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *Flash) WriteAt(p []byte, off int64) (int, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("write"); err != nil {
		return 0, err
	}
	if f.Flags&mtdabi.Writeable == 0 {
		return 0, unix.EROFS
	}
	if off < 0 || off > f.Size-int64(len(p)) {
		return 0, unix.ENOSPC
	}
	if f.MinIO > 1 && (off%int64(f.MinIO) != 0 ||
		len(p)%f.MinIO != 0) {
		return 0, unix.EINVAL
	}
	for i, b := range p {
		f.data[off+int64(i)] &= b
	}
	return len(p), nil
}

func (f *Flash) Erase(start, length int64) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("erase"); err != nil {
		return err
	}
	if err := f.span(start, length); err != nil {
		return err
	}
	ebSize := int64(f.EbSize)
	if start%ebSize != 0 || length%ebSize != 0 {
		return os.NewSyscallError("ioctl", unix.EINVAL)
	}
	for eb := start / ebSize; eb < (start+length)/ebSize; eb++ {
		if f.bad[eb] {
			return os.NewSyscallError("ioctl", unix.EIO)
		}
		if f.locked[eb] {
			return os.NewSyscallError("ioctl", unix.EPERM)
		}
	}
	for i := start; i < start+length; i++ {
		f.data[i] = 0xff &^ f.worn[i]
	}
	return nil
}

func (f *Flash) IsBad(offs int64) (bool, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("isbad"); err != nil {
		return false, err
	}
	if err := f.span(offs, 0); err != nil {
		return false, err
	}
	return f.bad[f.eb(offs)], nil
}

func (f *Flash) MarkBad(offs int64) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("markbad"); err != nil {
		return err
	}
	if err := f.span(offs, 0); err != nil {
		return err
	}
	f.bad[f.eb(offs)] = true
	return nil
}

func (f *Flash) lock(op string, start, length int64, v bool) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call(op); err != nil {
		return err
	}
	if err := f.span(start, length); err != nil {
		return err
	}
	for eb := f.eb(start); eb < f.eb(start+length); eb++ {
		f.locked[eb] = v
	}
	return nil
}

func (f *Flash) Lock(start, length int64) error {
	return f.lock("lock", start, length, true)
}

func (f *Flash) Unlock(start, length int64) error {
	return f.lock("unlock", start, length, false)
}

func (f *Flash) IsLocked(start, length int64) (bool, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("islocked"); err != nil {
		return false, err
	}
	if err := f.span(start, length); err != nil {
		return false, err
	}
	for eb := f.eb(start); eb < f.eb(start+length); eb++ {
		if f.locked[eb] {
			return true, nil
		}
	}
	return false, nil
}

func (f *Flash) Info() (mtdabi.Info, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("info"); err != nil {
		return mtdabi.Info{}, err
	}
	return mtdabi.Info{
		Type:      f.Type,
		Flags:     f.Flags,
		Size:      uint32(f.Size),
		EraseSize: uint32(f.EbSize),
		WriteSize: uint32(f.MinIO),
		OobSize:   uint32(f.OobSize),
	}, nil
}

func (f *Flash) RegionCount() (int, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("regioncount"); err != nil {
		return 0, err
	}
	return len(f.Regions), nil
}

func (f *Flash) RegionInfo(index int) (mtdabi.Region, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if err := f.call("regioninfo"); err != nil {
		return mtdabi.Region{}, err
	}
	if index < 0 || index >= len(f.Regions) {
		return mtdabi.Region{}, os.NewSyscallError("ioctl", unix.EINVAL)
	}
	return f.Regions[index], nil
}

// Close is a no-op; the chip outlives its handles.
func (f *Flash) Close() error { return nil }

func (f *Flash) String() string {
	return fmt.Sprintf("flash type %d, %d bytes, %d byte eraseblocks",
		f.Type, f.Size, f.EbSize)
}
