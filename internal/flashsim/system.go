// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package flashsim

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/platinasystems/mtd/internal/mtdabi"
	"github.com/platinasystems/mtd/internal/procmtd"
	"github.com/platinasystems/mtd/internal/sysfs"
	"github.com/spf13/afero"
)

var kernelTypeNames = map[uint8]string{
	mtdabi.Absent:       "absent",
	mtdabi.Ram:          "ram",
	mtdabi.Rom:          "rom",
	mtdabi.NorFlash:     "nor",
	mtdabi.NandFlash:    "nand",
	mtdabi.DataFlash:    "dataflash",
	mtdabi.UbiVolume:    "ubi",
	mtdabi.MlcNandFlash: "mlc-nand",
}

// System simulates the MTD subsystem of a host: the sysfs class or the
// legacy /proc/mtd table, the /dev nodes, and the chips behind them.
type System struct {
	Fs    afero.Fs
	Sysfs bool

	mutex sync.Mutex
	devs  map[int]*Flash
	names map[int]string
	nodes map[string]mtdabi.NodeStat
}

// NewSystem returns a host with an empty MTD subsystem. Without sysfs, the
// subsystem is described by /proc/mtd alone.
func NewSystem(withSysfs bool) *System {
	s := &System{
		Fs:    afero.NewMemMapFs(),
		Sysfs: withSysfs,
		devs:  make(map[int]*Flash),
		names: make(map[int]string),
		nodes: make(map[string]mtdabi.NodeStat),
	}
	if withSysfs {
		s.Fs.MkdirAll(sysfs.Dir, 0755)
	}
	s.writeProc()
	return s
}

// NoMTD returns a host whose kernel lacks MTD support.
func NoMTD() *System {
	return &System{
		Fs:    afero.NewMemMapFs(),
		devs:  make(map[int]*Flash),
		names: make(map[int]string),
		nodes: make(map[string]mtdabi.NodeStat),
	}
}

// Add plugs in a chip as mtdN with /dev/mtdN and /dev/mtdNro nodes.
func (s *System) Add(devNum int, name string, f *Flash) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.devs[devNum] = f
	s.names[devNum] = name
	minor := uint32(devNum * 2)
	s.nodes[fmt.Sprint("/dev/mtd", devNum)] =
		mtdabi.NodeStat{IsChar: true, Major: mtdabi.CharMajor, Minor: minor}
	s.nodes[fmt.Sprint("/dev/mtd", devNum, "ro")] =
		mtdabi.NodeStat{IsChar: true, Major: mtdabi.CharMajor, Minor: minor + 1}
	if s.Sysfs {
		s.writeSysfs(devNum, name, f)
	}
	s.writeProc()
}

// Remove unplugs mtdN.
func (s *System) Remove(devNum int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.devs, devNum)
	delete(s.names, devNum)
	delete(s.nodes, fmt.Sprint("/dev/mtd", devNum))
	delete(s.nodes, fmt.Sprint("/dev/mtd", devNum, "ro"))
	s.Fs.RemoveAll(filepath.Join(sysfs.Dir, fmt.Sprint("mtd", devNum)))
	s.Fs.RemoveAll(filepath.Join(sysfs.Dir, fmt.Sprint("mtd", devNum, "ro")))
	s.writeProc()
}

// Link makes path another name of an existing node, like a udev symlink.
func (s *System) Link(path, target string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.nodes[path] = s.nodes[target]
}

// Node adds an arbitrary device node; IsChar false makes a plain file.
func (s *System) Node(path string, st mtdabi.NodeStat) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.nodes[path] = st
}

// Attr overwrites a sysfs attribute of mtdN.
func (s *System) Attr(devNum int, name, value string) {
	s.writeAttr(devNum, name, value)
}

// DropAttr removes a sysfs attribute of mtdN, as on older kernels.
func (s *System) DropAttr(devNum int, name string) {
	s.Fs.Remove(filepath.Join(sysfs.Dir, fmt.Sprint("mtd", devNum), name))
}

func (s *System) Flash(devNum int) *Flash {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.devs[devNum]
}

func (s *System) Stat(path string) (mtdabi.NodeStat, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	st, found := s.nodes[path]
	if !found {
		return st, &os.PathError{Op: "stat", Path: path,
			Err: fs.ErrNotExist}
	}
	return st, nil
}

// Open returns the chip behind a /dev node.
func (s *System) Open(path string, flag int) (*Flash, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	st, found := s.nodes[path]
	if !found {
		return nil, &os.PathError{Op: "open", Path: path,
			Err: fs.ErrNotExist}
	}
	if !st.IsChar || st.Major != mtdabi.CharMajor {
		return nil, &os.PathError{Op: "open", Path: path,
			Err: fs.ErrPermission}
	}
	f := s.devs[int(st.Minor/2)]
	if f == nil {
		return nil, &os.PathError{Op: "open", Path: path,
			Err: fs.ErrNotExist}
	}
	return f, nil
}

func (s *System) writeAttr(devNum int, name, value string) {
	fn := filepath.Join(sysfs.Dir, fmt.Sprint("mtd", devNum), name)
	afero.WriteFile(s.Fs, fn, []byte(value+"\n"), 0444)
}

func (s *System) writeSysfs(devNum int, name string, f *Flash) {
	typ, found := kernelTypeNames[f.Type]
	if !found {
		typ = "unknown"
	}
	for _, attr := range [][2]string{
		{"dev", fmt.Sprintf("%d:%d", mtdabi.CharMajor, devNum*2)},
		{"name", name},
		{"type", typ},
		{"flags", fmt.Sprintf("0x%x", f.Flags)},
		{"size", fmt.Sprint(f.Size)},
		{"erasesize", fmt.Sprint(f.EbSize)},
		{"writesize", fmt.Sprint(f.MinIO)},
		{"subpagesize", fmt.Sprint(f.SubpageSize)},
		{"oobsize", fmt.Sprint(f.OobSize)},
		{"numeraseregions", fmt.Sprint(len(f.Regions))},
	} {
		s.writeAttr(devNum, attr[0], attr[1])
	}
	ro := filepath.Join(sysfs.Dir, fmt.Sprint("mtd", devNum, "ro"))
	afero.WriteFile(s.Fs, filepath.Join(ro, "dev"),
		[]byte(fmt.Sprintf("%d:%d\n", mtdabi.CharMajor, devNum*2+1)),
		0444)
}

func (s *System) writeProc() {
	if s.Sysfs {
		return
	}
	nums := make([]int, 0, len(s.devs))
	for n := range s.devs {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	var b strings.Builder
	b.WriteString("dev:    size   erasesize  name\n")
	for _, n := range nums {
		f := s.devs[n]
		fmt.Fprintf(&b, "mtd%d: %08x %08x \"%s\"\n", n, f.Size,
			f.EbSize, s.names[n])
	}
	afero.WriteFile(s.Fs, procmtd.File, []byte(b.String()), 0444)
}
