// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"fmt"

	"github.com/platinasystems/log"
	"github.com/platinasystems/mtd/internal/mtdabi"
	"github.com/platinasystems/mtd/internal/procmtd"
)

// Info returns a fresh census of MTD devices. With no devices, the lowest
// and highest numbers are -1.
func (lib *Lib) Info() (*Info, error) {
	var nums []int
	if lib.sysfsSupported {
		var err error
		if nums, err = lib.class.DevNums(); err != nil {
			return nil, lib.devErr(-1, err)
		}
	} else {
		entries, err := lib.procEntries()
		if err != nil {
			return nil, lib.devErr(-1, err)
		}
		for _, e := range entries {
			nums = append(nums, e.DevNum)
		}
	}
	info := &Info{
		DevCount:       len(nums),
		LowestDevNum:   -1,
		HighestDevNum:  -1,
		SysfsSupported: lib.sysfsSupported,
	}
	for i, n := range nums {
		if i == 0 || n < info.LowestDevNum {
			info.LowestDevNum = n
		}
		if i == 0 || n > info.HighestDevNum {
			info.HighestDevNum = n
		}
	}
	return info, nil
}

// DevPresent reports whether mtdN currently exists.
func (lib *Lib) DevPresent(devNum int) bool {
	if devNum < 0 {
		return false
	}
	if lib.sysfsSupported {
		return lib.class.Present(devNum)
	}
	entries, err := lib.procEntries()
	if err != nil {
		return false
	}
	_, found := procmtd.Lookup(entries, devNum)
	return found
}

// DevInfo resolves the geometry of the MTD device behind a character device
// node such as /dev/mtd0 or a udev alias of it.
func (lib *Lib) DevInfo(node string) (*DevInfo, error) {
	devNum, err := lib.nodeDevNum(node)
	if err != nil {
		return nil, err
	}
	return lib.DevInfoByNum(devNum)
}

// DevInfoByNum resolves the geometry of mtdN. Sysfs attributes take
// precedence over the ioctl answers of /dev/mtdN; without sysfs, the ioctl
// answers are required and /proc/mtd supplies the name along with sizes
// that MEMGETINFO would truncate to 32 bits.
func (lib *Lib) DevInfoByNum(devNum int) (*DevInfo, error) {
	if devNum < 0 {
		return nil, fmt.Errorf("%w: mtd%d", ErrNoDevice, devNum)
	}
	var recs []*attrs
	if lib.sysfsSupported {
		sa, err := lib.sysfsAttrs(devNum)
		if err != nil {
			return nil, lib.devErr(devNum, err)
		}
		recs = append(recs, sa)
		ia, err := lib.ioctlAttrs(devNum)
		switch {
		case err != nil:
			log.Print("debug", "mtd", devNum, ": sysfs only: ", err)
		case *ia.major != *sa.major || *ia.minor != *sa.minor:
			log.Print("debug", "mtd", devNum, ": ", lib.devNode(devNum),
				" is ", *ia.major, ":", *ia.minor, " not ",
				*sa.major, ":", *sa.minor)
		default:
			recs = append(recs, ia)
		}
	} else {
		pa, err := lib.procAttrs(devNum)
		if err != nil {
			return nil, lib.devErr(devNum, err)
		}
		ia, err := lib.ioctlAttrs(devNum)
		if err != nil {
			return nil, lib.devErr(devNum, err)
		}
		recs = append(recs, pa, ia)
	}
	return merge(recs...).devInfo(devNum)
}

func (lib *Lib) devErr(devNum int, err error) error {
	what := "MTD"
	if devNum >= 0 {
		what = fmt.Sprint("mtd", devNum)
	}
	if gone(err) {
		return fmt.Errorf("%w: %s: %v", ErrNoDevice, what, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrSystem, what, err)
}

// nodeDevNum finds the device number of an MTD character device node.
func (lib *Lib) nodeDevNum(node string) (int, error) {
	st, err := lib.stat(node)
	if err != nil {
		return -1, fmt.Errorf("%w: %w", ErrInvalidNode, err)
	}
	if !st.IsChar {
		return -1, fmt.Errorf("%w: %s", ErrInvalidNode, node)
	}
	if !lib.sysfsSupported {
		if st.Major != mtdabi.CharMajor {
			return -1, fmt.Errorf("%w: %s: major %d", ErrInvalidNode,
				node, st.Major)
		}
		return int(st.Minor / 2), nil
	}
	nums, err := lib.class.DevNums()
	if err != nil {
		return -1, lib.devErr(-1, err)
	}
	for _, n := range nums {
		major, minor, err := lib.class.Dev(n)
		if err != nil {
			continue
		}
		if major != st.Major {
			continue
		}
		// the read-only alias, /dev/mtdNro, is the odd minor
		if minor == st.Minor || minor+1 == st.Minor {
			return n, nil
		}
	}
	return -1, fmt.Errorf("%w: %s: %d:%d", ErrInvalidNode, node, st.Major,
		st.Minor)
}
