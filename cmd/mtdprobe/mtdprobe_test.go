// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtdprobe

import (
	"testing"

	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/internal/mtdabi"
	"github.com/platinasystems/mtd/internal/mtdcmd/mtdcmdtest"
	"github.com/platinasystems/mtd/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestProbe(t *testing.T) {
	sys := mtdcmdtest.Flash0(false)
	sys.Node("/dev/null", mtdabi.NodeStat{IsChar: true, Major: 1, Minor: 3})
	mtdcmdtest.Use(t, sys)
	out, err := test.Output(Command{}.Main, "/dev/flash0", "/dev/mtd1ro")
	require.NoError(t, err)
	assert.Equal(t, "/dev/flash0\n/dev/mtd1ro\n", out)

	out, err = test.Output(Command{}.Main, "/dev/null", "/dev/mtd1",
		"/dev/nowhere")
	assert.ErrorIs(t, err, mtd.ErrNotMtdNode)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, "/dev/mtd1\n", out)

	out, err = test.Output(Command{}.Main, "-q", "/dev/mtd0")
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}
