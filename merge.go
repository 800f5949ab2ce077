// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import "fmt"

// attrs is one source's view of a device. Nil fields weren't reported by
// that source.
type attrs struct {
	major, minor *int
	typ          *int
	name         *string
	size         *int64
	ebSize       *int
	minIO        *int
	subpage      *int
	oob          *int
	regions      *int
	writable     *bool
}

func ptr[T any](v T) *T { return &v }

func fill[T any](dst **T, src *T) {
	if *dst == nil {
		*dst = src
	}
}

// merge folds the records in precedence order; the first record to report a
// field provides it.
func merge(recs ...*attrs) *attrs {
	m := new(attrs)
	for _, r := range recs {
		if r == nil {
			continue
		}
		fill(&m.major, r.major)
		fill(&m.minor, r.minor)
		fill(&m.typ, r.typ)
		fill(&m.name, r.name)
		fill(&m.size, r.size)
		fill(&m.ebSize, r.ebSize)
		fill(&m.minIO, r.minIO)
		fill(&m.subpage, r.subpage)
		fill(&m.oob, r.oob)
		fill(&m.regions, r.regions)
		fill(&m.writable, r.writable)
	}
	return m
}

func deref[T any](p *T) (v T) {
	if p != nil {
		v = *p
	}
	return
}

// devInfo derives and validates the geometry of mtdN.
func (a *attrs) devInfo(devNum int) (*DevInfo, error) {
	insane := func(format string, args ...interface{}) (*DevInfo, error) {
		return nil, fmt.Errorf("%w: mtd%d: %s", ErrBadGeometry, devNum,
			fmt.Sprintf(format, args...))
	}
	switch {
	case a.typ == nil:
		return insane("unknown type")
	case a.size == nil, a.ebSize == nil, a.minIO == nil:
		return insane("incomplete geometry")
	}
	d := &DevInfo{
		DevNum:      devNum,
		Major:       deref(a.major),
		Minor:       deref(a.minor),
		Type:        *a.typ,
		TypeStr:     truncate(TypeStr(*a.typ), TypeMax),
		Name:        truncate(deref(a.name), NameMax),
		Size:        *a.size,
		EbSize:      *a.ebSize,
		MinIOSize:   *a.minIO,
		SubpageSize: deref(a.subpage),
		OobSize:     deref(a.oob),
		RegionCnt:   deref(a.regions),
		Writable:    deref(a.writable),
		BbAllowed:   *a.typ == NandFlash || *a.typ == MlcNandFlash,
	}
	switch {
	case d.MinIOSize <= 0:
		return insane("min. I/O unit size %d", d.MinIOSize)
	case d.EbSize <= 0 || d.EbSize < d.MinIOSize:
		return insane("eraseblock size %d", d.EbSize)
	case d.EbSize%d.MinIOSize != 0:
		return insane("eraseblock size %d isn't a multiple of %d",
			d.EbSize, d.MinIOSize)
	case d.Size <= 0 || d.Size < int64(d.EbSize):
		return insane("size %d", d.Size)
	case d.RegionCnt == 0 && d.Size%int64(d.EbSize) != 0:
		return insane("size %d isn't a multiple of %d", d.Size,
			d.EbSize)
	case d.OobSize < 0 || d.RegionCnt < 0:
		return insane("oob size %d, %d regions", d.OobSize,
			d.RegionCnt)
	}
	if d.SubpageSize <= 0 {
		d.SubpageSize = d.MinIOSize
	}
	d.EbCnt = int(d.Size / int64(d.EbSize))
	return d, nil
}
