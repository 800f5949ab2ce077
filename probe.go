// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import "fmt"

// ProbeNode returns nil if path is an MTD character device node. Otherwise
// it fails with ErrNotMtdNode whether the path is missing, isn't a
// character device, or belongs to another driver; use DevInfo to tell
// these apart.
func (lib *Lib) ProbeNode(path string) error {
	devNum, err := lib.nodeDevNum(path)
	if err == nil && !lib.sysfsSupported && !lib.DevPresent(devNum) {
		err = ErrNoDevice
	}
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotMtdNode, path)
	}
	return nil
}
