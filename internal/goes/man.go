// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"fmt"
	"strings"

	"github.com/platinasystems/mtd/lang"
)

type maner interface {
	Man() lang.Alt
}

var section = struct {
	name, synopsis, commands lang.Alt
}{
	name: lang.Alt{
		lang.EnUS: "NAME",
	},
	synopsis: lang.Alt{
		lang.EnUS: "SYNOPSIS",
	},
	commands: lang.Alt{
		lang.EnUS: "COMMANDS",
	},
}

func (g *Goes) Man() lang.Alt {
	if g.MAN != nil {
		return g.MAN
	}
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Run COMMAND, or a HELPER about it. Each COMMAND may also be run
	through a symbolic link of its name to ` + g.NAME + `.`,
	}
}

// man prints the page of each named command. The program's own page,
// printed without arguments, also lists its commands.
func (g *Goes) man(args ...string) error {
	var cmds []Cmd
	for _, arg := range args {
		v := g.ByName[arg]
		if v == nil {
			return fmt.Errorf("%s: not found", arg)
		}
		cmds = append(cmds, v)
	}
	if len(cmds) == 0 {
		cmds = []Cmd{g}
	}
	for i, v := range cmds {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(page(v))
		if v == Cmd(g) {
			fmt.Print("\n", section.commands, "\n")
			for _, line := range g.aproposLines(g.Names()) {
				fmt.Print("\t", line, "\n")
			}
		}
	}
	return nil
}

func page(v Cmd) string {
	var b strings.Builder
	fmt.Fprint(&b, section.name, "\n\t", v, " - ", v.Apropos(),
		"\n\n", section.synopsis, "\n\t",
		strings.TrimSpace(v.Usage()), "\n")
	if method, found := v.(maner); found {
		man := method.Man().String()
		if !strings.HasPrefix(man, "\n") {
			b.WriteString("\n")
		}
		b.WriteString(man)
		if !strings.HasSuffix(man, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
