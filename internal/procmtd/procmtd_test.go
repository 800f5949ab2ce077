// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package procmtd

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const table = `dev:    size   erasesize  name
mtd0: 00080000 00010000 "u-boot"
mtd1: 00040000 00010000 "u-boot env"
mtd3: 08000000 00020000 "rootfs"
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(entries, []Entry{
		{0, 0x80000, 0x10000, "u-boot"},
		{1, 0x40000, 0x10000, "u-boot env"},
		{3, 0x8000000, 0x20000, "rootfs"},
	}) {
		t.Error("wrong:", entries)
	}
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse(strings.NewReader("dev:    size   erasesize  name\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("wrong:", entries)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, line := range []string{
		`mtd0: 00080000 "u-boot"`,
		`mtd0: 00080000 00010000 u-boot`,
		`mtdX: 00080000 00010000 "u-boot"`,
		`mtd0: zz 00010000 "u-boot"`,
		`mtd0 00080000 00010000 "u-boot"`,
	} {
		_, err := Parse(strings.NewReader(line))
		if !errors.Is(err, ErrFormat) {
			t.Errorf("%q: wrong: %v", line, err)
		}
	}
}

func TestReadLookup(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, File, []byte(table), 0444); err != nil {
		t.Fatal(err)
	}
	entries, err := Read(fs, File)
	if err != nil {
		t.Fatal(err)
	}
	e, found := Lookup(entries, 3)
	if !found || e.Name != "rootfs" {
		t.Error("wrong:", e, found)
	}
	if _, found = Lookup(entries, 2); found {
		t.Error("mtd2 shouldn't exist")
	}
	if _, err = Read(fs, "/proc/nonesuch"); err == nil {
		t.Error("expected error")
	}
}
