// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"fmt"
	"strings"
	"testing"

	"github.com/platinasystems/mtd/internal/test"
	"github.com/platinasystems/mtd/lang"
)

type echo struct{}

func (echo) String() string { return "echo" }
func (echo) Usage() string  { return "echo [STRING]..." }

func (echo) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "print a line of text",
	}
}

func (echo) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Echo the STRING(s) to standard output.`,
	}
}

func (echo) Main(args ...string) error {
	fmt.Println(strings.Join(args, " "))
	return nil
}

func newGoes() *Goes {
	g := &Goes{NAME: "mtd-utils"}
	g.Plot(echo{})
	return g
}

func TestMain(t *testing.T) {
	assert := test.Assert{TB: t}
	g := newGoes()
	for _, args := range [][]string{
		{"echo", "hello", "world"},
		{"/usr/bin/mtd-utils", "echo", "hello", "world"},
		{"/usr/sbin/echo", "hello", "world"},
	} {
		out, err := test.Output(g.Main, args...)
		assert.Nil(err)
		assert.Equal(out, "hello world\n")
	}
	_, err := test.Output(g.Main, "mtd-utils", "nothing")
	assert.Error(err, "nothing: command not found")
	_, err = test.Output(g.Main, "mtd-utils")
	assert.Match(err.Error(), "^usage:")
}

func TestHelpers(t *testing.T) {
	assert := test.Assert{TB: t}
	g := newGoes()
	for _, args := range [][]string{
		{"echo", "-h"},
		{"echo", "--help"},
		{"mtd-utils", "help", "echo"},
		{"usage", "echo"},
	} {
		out, err := test.Output(g.Main, args...)
		assert.Nil(err)
		assert.Equal(out, "usage:\techo [STRING]...\n")
	}
	out, err := test.Output(g.Main, "apropos")
	assert.Nil(err)
	assert.Equal(out, "echo  print a line of text\n")
	out, err = test.Output(g.Main, "echo", "-man")
	assert.Nil(err)
	assert.Match(out, `(?s)^NAME\n\techo - print a line of text\n\nSYNOPSIS\n\techo \[STRING\]\.\.\.\n\nDESCRIPTION`)
	out, err = test.Output(g.Main, "man")
	assert.Nil(err)
	assert.Match(out, `mtd-utils - memory technology device utilities`)
	assert.Match(out, "\nCOMMANDS\n\techo  print a line of text\n$")
	_, err = test.Output(g.Main, "man", "nothing")
	assert.Error(err, "nothing: not found")
	_, err = test.Output(g.Main, "help", "nothing")
	assert.Error(err, "nothing: not found")
	assert.Equal(strings.Join(g.Names(), ","), "echo")
}

type yes struct{}

func (yes) String() string       { return "yes" }
func (yes) Usage() string        { return "yes [STRING]" }
func (yes) Main(...string) error { return nil }

func (yes) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "output a string repeatedly",
	}
}

func TestAproposKeyword(t *testing.T) {
	assert := test.Assert{TB: t}
	g := newGoes()
	g.Plot(yes{})
	out, err := test.Output(g.Main, "apropos", "LINE")
	assert.Nil(err)
	assert.Equal(out, "echo  print a line of text\n")
	out, err = test.Output(g.Main, "apropos", "yes", "t")
	assert.Nil(err)
	assert.Equal(out, "yes   output a string repeatedly\n"+
		"echo  print a line of text\n")
	_, err = test.Output(g.Main, "apropos", "flash")
	assert.Error(err, "flash: nothing appropriate")
}

func TestUsage(t *testing.T) {
	assert := test.Assert{TB: t}
	g := newGoes()
	g.Plot(yes{})
	out, err := test.Output(g.Main, "usage", "yes", "echo")
	assert.Nil(err)
	assert.Equal(out, "usage:\tyes [STRING]\nusage:\techo [STRING]...\n")
	out, err = test.Output(g.Main, "usage")
	assert.Nil(err)
	assert.Match(out, `(?m)^\tCOMMAND := \{ echo \| yes \}$`)
	_, err = test.Output(g.Main, "usage", "echo", "nothing")
	assert.Error(err, "nothing: not found")
}
