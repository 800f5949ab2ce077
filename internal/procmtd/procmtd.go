// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package procmtd parses the legacy /proc/mtd device table,
//
//	dev:    size   erasesize  name
//	mtd0: 00080000 00020000 "u-boot"
package procmtd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

const File = "/proc/mtd"

var ErrFormat = errors.New("malformed /proc/mtd line")

type Entry struct {
	DevNum    int
	Size      int64
	EraseSize int64
	Name      string
}

// Read opens and parses the named table.
func Read(fs afero.Fs, name string) ([]Entry, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 ||
			strings.HasPrefix(line, "dev:") {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseLine(line string) (e Entry, err error) {
	bad := func() (Entry, error) {
		return Entry{}, fmt.Errorf("%q: %w", line, ErrFormat)
	}
	q := strings.IndexByte(line, '"')
	if q < 0 || !strings.HasSuffix(line, `"`) || q == len(line)-1 {
		return bad()
	}
	e.Name = line[q+1 : len(line)-1]
	fields := strings.Fields(line[:q])
	if len(fields) != 3 || !strings.HasPrefix(fields[0], "mtd") ||
		!strings.HasSuffix(fields[0], ":") {
		return bad()
	}
	if e.DevNum, err = strconv.Atoi(fields[0][3 : len(fields[0])-1]); err != nil {
		return bad()
	}
	if e.Size, err = strconv.ParseInt(fields[1], 16, 64); err != nil {
		return bad()
	}
	if e.EraseSize, err = strconv.ParseInt(fields[2], 16, 64); err != nil {
		return bad()
	}
	return e, nil
}

// Lookup returns the entry of the given device or false.
func Lookup(entries []Entry, devNum int) (Entry, bool) {
	for _, e := range entries {
		if e.DevNum == devNum {
			return e, true
		}
	}
	return Entry{}, false
}
