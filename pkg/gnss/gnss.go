// Package gnss contains common constants and type definitions.
package gnss

import (
	"fmt"
	"strings"
)

// System is a satellite system.
type System int

// Available satellite systems.
const (
	SysGPS System = iota + 1
	SysGLO
	SysGAL
	SysQZSS
	SysBDS
	SysIRNSS
	SysSBAS
	SysMIXED
)

func (sys System) String() string {
	return [...]string{"", "GPS", "GLO", "GAL", "QZSS", "BDS", "IRNSS", "SBAS", "MIXED"}[sys]
}

// Systems specifies a list of satellite systems.
type Systems []System

// String returns the contained systems in sitelog manner GPS+GLO+...
func (syss Systems) String() string {
	str := make([]string, 0, len(syss))
	for _, sys := range syss {
		str = append(str, sys.String())
	}
	return strings.Join(str, "+")
}

// GPS PRN range.
const (
	MinPRNGPS = 1
	MaxPRNGPS = 32
)

// SystemOfSat returns the satellite system for a GNSS-IR satellite number.
// GNSS-IR results number GPS satellites 1-99, Glonass 101-199, Galileo 201-299
// and Beidou 301-399.
func SystemOfSat(sat int) (System, error) {
	switch {
	case sat >= 1 && sat < 100:
		return SysGPS, nil
	case sat > 100 && sat < 200:
		return SysGLO, nil
	case sat > 200 && sat < 300:
		return SysGAL, nil
	case sat > 300 && sat < 400:
		return SysBDS, nil
	}
	return 0, fmt.Errorf("unknown satellite number %d", sat)
}

// Frequency is the frequency code used in GNSS-IR result files.
type Frequency int

// Frequency codes.
const (
	FreqL1  Frequency = 1
	FreqL2  Frequency = 2
	FreqL5  Frequency = 5
	FreqL2C Frequency = 20
)

var freqNames = map[Frequency]string{
	FreqL1:  "L1",
	FreqL2:  "L2",
	FreqL5:  "L5",
	FreqL2C: "L2C",
	101:     "GLO L1",
	102:     "GLO L2",
	201:     "GAL E1",
	205:     "GAL E5a",
	206:     "GAL E6",
	207:     "GAL E5b",
	208:     "GAL E5",
	302:     "BDS B1",
	306:     "BDS B3",
	307:     "BDS B2b",
}

func (f Frequency) String() string {
	if name, ok := freqNames[f]; ok {
		return name
	}
	return fmt.Sprintf("freq %d", int(f))
}

// GPSRange returns the full list of GPS PRNs.
func GPSRange() []int {
	prns := make([]int, 0, MaxPRNGPS-MinPRNGPS+1)
	for prn := MinPRNGPS; prn <= MaxPRNGPS; prn++ {
		prns = append(prns, prn)
	}
	return prns
}

// DecimalYear returns year plus the fraction doy/365.25.
func DecimalYear(year, doy int) float64 {
	return float64(year) + float64(doy)/365.25
}
