// Copyright © 2015-2026 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mtdinfo

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/mtd"
	"github.com/platinasystems/mtd/internal/mtdcmd"
	"github.com/platinasystems/mtd/lang"
	"gopkg.in/yaml.v3"
)

type Command struct{}

func (Command) String() string { return "mtdinfo" }

func (Command) Usage() string {
	return "mtdinfo [-a] [-yaml] [MTD-DEVICE]"
}

func (Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "print MTD device information",
	}
}

func (Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Without a device, print the count and numbers of the MTD devices
	present. With a device node or number, print its geometry.

OPTIONS
	-a	print the geometry of every present device
	-yaml	print YAML instead of text

EXAMPLES
	mtdinfo /dev/mtd0
	mtdinfo -a -yaml`,
	}
}

// Report is what -yaml prints.
type Report struct {
	Info    *mtd.Info      `yaml:"info,omitempty"`
	Devices []*mtd.DevInfo `yaml:"devices,omitempty"`
}

func (c Command) Main(args ...string) error {
	flag, args := flags.New(args, "-a", "-yaml")
	if len(args) > 1 {
		return fmt.Errorf("%v: unexpected", args[1:])
	}
	return mtd.With(func(lib *mtd.Lib) error {
		var report Report
		var present []int
		var err error
		if len(args) == 1 {
			d, err := lib.DevInfo(mtdcmd.Node(lib, args[0]))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			report.Devices = append(report.Devices, d)
		} else {
			if report.Info, err = lib.Info(); err != nil {
				return err
			}
			for n := report.Info.LowestDevNum; n >= 0 &&
				n <= report.Info.HighestDevNum; n++ {
				if lib.DevPresent(n) {
					present = append(present, n)
				}
			}
			if flag.ByName["-a"] {
				for _, n := range present {
					d, err := lib.DevInfoByNum(n)
					if err != nil {
						return err
					}
					report.Devices = append(report.Devices, d)
				}
			}
		}
		if flag.ByName["-yaml"] {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err = enc.Encode(&report); err == nil {
				err = enc.Close()
			}
			return err
		}
		if report.Info != nil {
			printInfo(report.Info, present)
		}
		for i, d := range report.Devices {
			if i > 0 || report.Info != nil {
				fmt.Println()
			}
			printDevInfo(d)
		}
		return nil
	}, mtdcmd.Options...)
}

func yesno(t bool) string {
	if t {
		return "yes"
	}
	return "no"
}

func field(name string, v ...interface{}) {
	fmt.Printf("%-32s", name+":")
	fmt.Println(v...)
}

func printInfo(info *mtd.Info, present []int) {
	field("Count of MTD devices", info.DevCount)
	if len(present) > 0 {
		names := make([]string, len(present))
		for i, n := range present {
			names[i] = fmt.Sprint("mtd", n)
		}
		field("Present MTD devices", strings.Join(names, ", "))
	}
	field("Sysfs interface supported", yesno(info.SysfsSupported))
}

func size(n int64) string {
	if n < 1024 {
		return fmt.Sprint(n, " bytes")
	}
	return fmt.Sprint(n, " bytes, ", humanize.IBytes(uint64(n)))
}

func printDevInfo(d *mtd.DevInfo) {
	fmt.Println(d)
	field("Name", d.Name)
	field("Type", d.TypeStr)
	field("Eraseblock size", size(int64(d.EbSize)))
	field("Amount of eraseblocks", fmt.Sprint(d.EbCnt, " (",
		size(d.Size), ")"))
	field("Minimum input/output unit size", size(int64(d.MinIOSize)))
	field("Sub-page size", size(int64(d.SubpageSize)))
	if d.OobSize > 0 {
		field("OOB size", size(int64(d.OobSize)))
	}
	if d.RegionCnt > 0 {
		field("Additional erase regions", d.RegionCnt)
	}
	field("Character device major/minor", fmt.Sprint(d.Major, ":",
		d.Minor))
	field("Bad blocks are allowed", d.BbAllowed)
	field("Device is writable", d.Writable)
}
