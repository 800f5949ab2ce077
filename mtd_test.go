// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/platinasystems/mtd/internal/flashsim"
	"github.com/platinasystems/mtd/internal/test"
)

func simOptions(sys *flashsim.System) []Option {
	return []Option{
		WithFs(sys.Fs),
		WithSysfsDir("/sys/class/mtd"),
		WithProcMtd("/proc/mtd"),
		WithDevDir("/dev"),
		WithStater(sys.Stat),
		WithOpener(func(path string, flag int) (Device, error) {
			f, err := sys.Open(path, flag)
			if err != nil {
				return nil, err
			}
			return f, nil
		}),
	}
}

func simOpen(t *testing.T, sys *flashsim.System) *Lib {
	t.Helper()
	lib, err := Open(simOptions(sys)...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

// flash0 is a host with a 128MiB NAND chip at mtd0, aliased /dev/flash0
func flash0(withSysfs bool) *flashsim.System {
	sys := flashsim.NewSystem(withSysfs)
	sys.Add(0, "flash0", flashsim.NAND(1024, 131072, 2048))
	sys.Link("/dev/flash0", "/dev/mtd0")
	return sys
}

func TestTypeStr(t *testing.T) {
	assert := test.Assert{TB: t}
	for typ, s := range map[int]string{
		Absent:       "absent",
		Ram:          "ram",
		Rom:          "rom",
		NorFlash:     "nor",
		NandFlash:    "nand",
		DataFlash:    "dataflash",
		UbiVolume:    "ubi",
		MlcNandFlash: "mlc-nand",
		5:            "unknown",
		Unknown:      "unknown",
	} {
		assert.Equal(TypeStr(typ), s)
	}
	assert.True(TypeOf("nand") == NandFlash)
	assert.True(TypeOf("mlc-nand") == MlcNandFlash)
	assert.True(TypeOf("mram") == Unknown)
}

func TestTruncate(t *testing.T) {
	assert := test.Assert{TB: t}
	assert.Equal(truncate("short", 127), "short")
	long := strings.Repeat("x", 200)
	assert.Equal(truncate(long, NameMax), long[:NameMax])
	// "é" is two bytes, the cut must not split it
	s := strings.Repeat("a", 126) + "é"
	got := truncate(s, NameMax)
	assert.Equal(got, strings.Repeat("a", 126))
	assert.True(utf8.ValidString(got))
}

func TestDevInfoNode(t *testing.T) {
	d := &DevInfo{DevNum: 3}
	test.Assert{TB: t}.Equal(d.Node("/dev"), "/dev/mtd3")
	test.Assert{TB: t}.Equal(d.String(), "mtd3")
}
