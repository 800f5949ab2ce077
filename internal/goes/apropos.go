// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"fmt"
	"strings"

	"github.com/platinasystems/mtd/lang"
)

func (g *Goes) Apropos() lang.Alt {
	if g.APROPOS != nil {
		return g.APROPOS
	}
	return lang.Alt{
		lang.EnUS: "memory technology device utilities",
	}
}

// apropos prints the description of each named command, or of all. An
// argument that isn't a command name is a keyword matched, regardless of
// case, against the names and descriptions.
func (g *Goes) apropos(args ...string) error {
	if len(args) == 0 {
		args = g.Names()
	}
	var names []string
	seen := make(map[string]bool)
	for _, arg := range args {
		if len(arg) == 0 {
			continue
		}
		matches := []string{arg}
		if g.ByName[arg] == nil {
			matches = g.search(arg)
			if len(matches) == 0 {
				return fmt.Errorf("%s: nothing appropriate", arg)
			}
		}
		for _, name := range matches {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	for _, line := range g.aproposLines(names) {
		fmt.Println(line)
	}
	return nil
}

func (g *Goes) search(keyword string) []string {
	keyword = strings.ToLower(keyword)
	var found []string
	for _, name := range g.Names() {
		s := strings.ToLower(name + " " + g.ByName[name].Apropos().String())
		if strings.Contains(s, keyword) {
			found = append(found, name)
		}
	}
	return found
}

// aproposLines formats "NAME  DESCRIPTION" with descriptions aligned past
// the longest command name.
func (g *Goes) aproposLines(names []string) []string {
	width := 0
	for name := range g.ByName {
		width = max(width, len(name))
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%-*s%s", width+2, name,
			g.ByName[name].Apropos()))
	}
	return lines
}
