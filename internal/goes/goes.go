// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes is a multi-call command dispatcher. A program plots its
// commands then runs Main with either "PROG COMMAND ARGS..." or, through a
// symlink named after the command, "COMMAND ARGS...".
package goes

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/platinasystems/mtd/lang"
)

var (
	Exit = os.Exit

	// Helpers may also follow a command as a flag, e.g. "mtdinfo -help"
	Helpers = map[string]string{
		"apropos": "apropos",
		"h":       "help",
		"help":    "help",
		"man":     "man",
		"usage":   "usage",
	}
)

type Cmd interface {
	Apropos() lang.Alt
	Main(...string) error
	// String returns the command name.
	String() string
	Usage() string
	/* Optional
	Help(...string) string
	Man() lang.Alt
	*/
}

type ByName map[string]Cmd

type Goes struct {
	NAME    string
	USAGE   string
	APROPOS lang.Alt
	MAN     lang.Alt

	ByName ByName
}

func (g *Goes) String() string { return g.NAME }

// Plot commands by name; a later command of the same name replaces the
// earlier.
func (g *Goes) Plot(cmds ...Cmd) {
	if g.ByName == nil {
		g.ByName = make(ByName)
	}
	for _, v := range cmds {
		g.ByName[v.String()] = v
	}
}

// Names returns the sorted command names.
func (g *Goes) Names() []string {
	names := make([]string, 0, len(g.ByName))
	for k := range g.ByName {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Main runs the args[0] command. When run w/o args this uses os.Args,
// prints any error, and exits instead of returning it.
//
// If args has "-h", "-help", or "--help" following the command, this runs
// the help helper; similarly for "-apropos", "-man", and "-usage".
func (g *Goes) Main(args ...string) (err error) {
	if len(args) == 0 {
		args = os.Args
		if len(args) == 0 {
			return nil
		}
		defer func() {
			if err != nil && err != io.EOF {
				fmt.Fprintf(os.Stderr, "%s: %v\n", ProgBase(), err)
				Exit(1)
			}
		}()
	}
	base := filepath.Base(args[0])
	if _, isHelper := Helpers[base]; isHelper || g.ByName[base] != nil {
		args = append([]string{base}, args[1:]...)
	} else {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("%s", Usage(g))
	}
	g.swap(args)
	switch name := strings.TrimLeft(args[0], "-"); Helpers[name] {
	case "apropos":
		return g.apropos(args[1:]...)
	case "help":
		return g.help(args[1:]...)
	case "man":
		return g.man(args[1:]...)
	case "usage":
		return g.usage(args[1:]...)
	}
	v, found := g.ByName[args[0]]
	if !found {
		return fmt.Errorf("%s: command not found", args[0])
	}
	return v.Main(args[1:]...)
}

// swap moves a trailing helper flag in front of its command, so
// "COMMAND -help" becomes "help COMMAND".
func (g *Goes) swap(args []string) {
	if len(args) > 1 && strings.HasPrefix(args[1], "-") {
		if h, found := Helpers[strings.TrimLeft(args[1], "-")]; found {
			args[1] = args[0]
			args[0] = h
		}
	}
}
