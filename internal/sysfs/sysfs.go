// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package sysfs reads MTD device attributes from /sys/class/mtd.
package sysfs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

const Dir = "/sys/class/mtd"

var ErrFormat = errors.New("malformed sysfs attribute")

var devRe = regexp.MustCompile(`^mtd([0-9]+)$`)

// Class is the MTD device class directory, e.g. /sys/class/mtd
type Class struct {
	Fs  afero.Fs
	Dir string
}

// Attrs are the raw, unvalidated attributes of /sys/class/mtd/mtdN.
// Nil pointers are attributes the running kernel doesn't export.
type Attrs struct {
	Major, Minor    uint32
	Name            string
	Type            string
	Flags           uint64
	Size            int64
	EraseSize       int64
	WriteSize       int64
	SubpageSize     *int64
	OobSize         *int64
	NumEraseRegions *int64
}

// Exists reports whether the class directory is present.
func (c Class) Exists() (bool, error) {
	fi, err := c.Fs.Stat(c.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return fi.IsDir(), nil
}

// Supported is true if the class directory exists and its devices have
// attributes; very old kernels had the class without them.
func (c Class) Supported() (bool, error) {
	if ok, err := c.Exists(); !ok || err != nil {
		return ok, err
	}
	nums, err := c.DevNums()
	if err != nil || len(nums) == 0 {
		return err == nil, err
	}
	_, err = c.Fs.Stat(c.attr(nums[0], "name"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DevNums lists the present devices in ascending order; read-only aliases
// like mtd0ro are skipped.
func (c Class) DevNums() ([]int, error) {
	fis, err := afero.ReadDir(c.Fs, c.Dir)
	if err != nil {
		return nil, err
	}
	var nums []int
	for _, fi := range fis {
		m := devRe.FindStringSubmatch(fi.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums, nil
}

// Present reports whether /sys/class/mtd/mtdN exists.
func (c Class) Present(devNum int) bool {
	_, err := c.Fs.Stat(filepath.Join(c.Dir, fmt.Sprint("mtd", devNum)))
	return err == nil
}

// Dev returns the character device numbers from the "dev" attribute.
func (c Class) Dev(devNum int) (major, minor uint32, err error) {
	s, err := c.String(devNum, "dev")
	if err != nil {
		return
	}
	var ma, mi uint64
	i := strings.IndexByte(s, ':')
	if i < 0 {
		err = fmt.Errorf("%s: %q: %w", c.attr(devNum, "dev"), s, ErrFormat)
		return
	}
	if ma, err = strconv.ParseUint(s[:i], 10, 32); err == nil {
		mi, err = strconv.ParseUint(s[i+1:], 10, 32)
	}
	if err != nil {
		err = fmt.Errorf("%s: %q: %w", c.attr(devNum, "dev"), s, ErrFormat)
		return
	}
	return uint32(ma), uint32(mi), nil
}

// String returns the attribute without its trailing newline.
func (c Class) String(devNum int, name string) (string, error) {
	b, err := afero.ReadFile(c.Fs, c.attr(devNum, name))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// Int parses a decimal or 0x prefixed hexadecimal attribute.
func (c Class) Int(devNum int, name string) (int64, error) {
	s, err := c.String(devNum, name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q: %w", c.attr(devNum, name), s,
			ErrFormat)
	}
	return i, nil
}

func (c Class) optInt(devNum int, name string) (*int64, error) {
	i, err := c.Int(devNum, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

// Attrs reads every attribute of the device. A device removed before or
// during the read fails with an error satisfying errors.Is(err,
// fs.ErrNotExist).
func (c Class) Attrs(devNum int) (*Attrs, error) {
	var err error
	a := new(Attrs)
	if a.Major, a.Minor, err = c.Dev(devNum); err != nil {
		return nil, err
	}
	if a.Name, err = c.String(devNum, "name"); err != nil {
		return nil, err
	}
	if a.Type, err = c.String(devNum, "type"); err != nil {
		return nil, err
	}
	flags, err := c.Int(devNum, "flags")
	if err != nil {
		return nil, err
	}
	a.Flags = uint64(flags)
	for _, x := range []struct {
		name string
		p    *int64
	}{
		{"size", &a.Size},
		{"erasesize", &a.EraseSize},
		{"writesize", &a.WriteSize},
	} {
		if *x.p, err = c.Int(devNum, x.name); err != nil {
			return nil, err
		}
	}
	for _, x := range []struct {
		name string
		pp   **int64
	}{
		{"subpagesize", &a.SubpageSize},
		{"oobsize", &a.OobSize},
		{"numeraseregions", &a.NumEraseRegions},
	} {
		if *x.pp, err = c.optInt(devNum, x.name); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (c Class) attr(devNum int, name string) string {
	return filepath.Join(c.Dir, fmt.Sprint("mtd", devNum), name)
}
