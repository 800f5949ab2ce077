// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import "fmt"

type helper interface {
	Help(...string) string
}

// Help returns the named command's own help, if it has any, or its usage.
// Without a command it's the program's usage.
func (g *Goes) Help(args ...string) string {
	if len(args) == 0 {
		return Usage(g)
	}
	v := g.ByName[args[0]]
	if v == nil {
		return ""
	}
	if method, found := v.(helper); found {
		return method.Help(args[1:]...)
	}
	return Usage(v)
}

func (g *Goes) help(args ...string) error {
	if len(args) > 0 && g.ByName[args[0]] == nil {
		return fmt.Errorf("%s: not found", args[0])
	}
	if h := g.Help(args...); len(h) > 0 {
		fmt.Println(h)
	}
	return nil
}
