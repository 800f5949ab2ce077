// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"testing"

	"github.com/platinasystems/mtd/internal/mtdabi"
	"github.com/platinasystems/mtd/internal/test"
)

func TestProbeNode(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.name, func(t *testing.T) {
			assert := test.Assert{TB: t}
			sys := flash0(mode.sysfs)
			sys.Node("/dev/null", mtdabi.NodeStat{IsChar: true,
				Major: 1, Minor: 3})
			sys.Node("/dev/mtd5", mtdabi.NodeStat{IsChar: true,
				Major: mtdabi.CharMajor, Minor: 10})
			sys.Node("/boot/image", mtdabi.NodeStat{})
			lib := simOpen(t, sys)
			for _, node := range []string{
				"/dev/mtd0",
				"/dev/mtd0ro",
				"/dev/flash0",
			} {
				assert.Nil(lib.ProbeNode(node))
			}
			for _, node := range []string{
				"/dev/nowhere",
				"/dev/null",
				"/dev/mtd5",
				"/boot/image",
			} {
				assert.Error(lib.ProbeNode(node), ErrNotMtdNode)
			}
			assert.Calls(sys.Flash(0).Calls())
		})
	}
}
