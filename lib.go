// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/platinasystems/log"
	"github.com/platinasystems/mtd/internal/procmtd"
	"github.com/platinasystems/mtd/internal/sysfs"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// These environment variables relocate the kernel interfaces, e.g. to a
// chroot or a captured sysfs tree. Options take precedence.
const (
	EnvSysfs = "MTD_SYSFS"
	EnvProc  = "MTD_PROC"
	EnvDev   = "MTD_DEV"
)

const DevDir = "/dev"

// Lib is an open session with the MTD subsystem. It's safe for concurrent
// queries but must not be used after Close.
type Lib struct {
	fs      afero.Fs
	class   sysfs.Class
	procMtd string
	devDir  string
	stat    Stater
	open    Opener

	sysfsSupported bool
}

type Option func(*Lib)

// WithFs reads sysfs and procfs from the given filesystem.
func WithFs(fs afero.Fs) Option {
	return func(lib *Lib) { lib.fs = fs }
}

func WithSysfsDir(dir string) Option {
	return func(lib *Lib) { lib.class.Dir = dir }
}

func WithProcMtd(name string) Option {
	return func(lib *Lib) { lib.procMtd = name }
}

// WithDevDir is where /dev/mtdN nodes are found.
func WithDevDir(dir string) Option {
	return func(lib *Lib) { lib.devDir = dir }
}

func WithStater(stat Stater) Option {
	return func(lib *Lib) { lib.stat = stat }
}

// WithOpener is used to open /dev/mtdN for its ioctl geometry.
func WithOpener(open Opener) Option {
	return func(lib *Lib) { lib.open = open }
}

func getenv(name, dflt string) string {
	if s := os.Getenv(name); len(s) > 0 {
		return s
	}
	return dflt
}

// Open the MTD library. If the host has no MTD subsystem at all, this
// fails with ErrNoDevice; any other failure wraps both ErrSystem and the
// OS error.
func Open(opts ...Option) (*Lib, error) {
	lib := &Lib{
		fs:      afero.NewOsFs(),
		class:   sysfs.Class{Dir: getenv(EnvSysfs, sysfs.Dir)},
		procMtd: getenv(EnvProc, procmtd.File),
		devDir:  getenv(EnvDev, DevDir),
		stat:    StatNode,
		open:    OpenDevice,
	}
	for _, opt := range opts {
		opt(lib)
	}
	lib.class.Fs = lib.fs

	supported, err := lib.class.Supported()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSystem, err)
	}
	if supported {
		lib.sysfsSupported = true
		return lib, nil
	}
	_, err = lib.fs.Stat(lib.procMtd)
	switch {
	case err == nil:
		log.Print("debug", "mtd: no sysfs support, using ", lib.procMtd)
		return lib, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, ErrNoDevice
	default:
		return nil, fmt.Errorf("%w: %w", ErrSystem, err)
	}
}

// Close releases the library. Call it once.
func (lib *Lib) Close() error {
	lib.fs = nil
	lib.class.Fs = nil
	lib.stat = nil
	lib.open = nil
	return nil
}

// With opens the library, runs fn, and closes the library on every path.
func With(fn func(*Lib) error, opts ...Option) (err error) {
	lib, err := Open(opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, lib.Close())
	}()
	return fn(lib)
}

// SysfsSupported is true if device attributes come from sysfs rather than
// ioctl and /proc/mtd alone.
func (lib *Lib) SysfsSupported() bool { return lib.sysfsSupported }

// DevDir is the directory of MTD device nodes.
func (lib *Lib) DevDir() string { return lib.devDir }
