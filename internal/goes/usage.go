// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"fmt"
	"strings"
)

func Usage(v Usager) string {
	return fmt.Sprint("usage:\t", strings.TrimSpace(v.Usage()))
}

type Usager interface {
	Usage() string
}

// Usage of the program itself ends with the list of its commands.
func (g *Goes) Usage() string {
	if len(g.USAGE) > 0 {
		return g.USAGE
	}
	var b strings.Builder
	fmt.Fprint(&b, "\n\t", g.NAME, " COMMAND [ ARGS ]...",
		"\n\t", g.NAME, " COMMAND -[-]HELPER",
		"\n\t", g.NAME, " HELPER [ COMMAND | KEYWORD ]...",
		"\n\n\tHELPER := { apropos | help | man | usage }",
		"\n\tCOMMAND := {")
	col := 20
	for i, name := range g.Names() {
		if i > 0 {
			b.WriteString(" |")
			col += 2
		}
		if col+len(name)+1 > 72 {
			b.WriteString("\n\t\t")
			col = 16
		}
		b.WriteString(" " + name)
		col += len(name) + 1
	}
	b.WriteString(" }")
	return b.String()
}

// usage prints the usage of each named command, or of the program.
func (g *Goes) usage(args ...string) error {
	if len(args) == 0 {
		fmt.Println(Usage(g))
		return nil
	}
	for _, arg := range args {
		v := g.ByName[arg]
		if v == nil {
			return fmt.Errorf("%s: not found", arg)
		}
		fmt.Println(Usage(v))
	}
	return nil
}
