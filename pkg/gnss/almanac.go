package gnss

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed almanac.toml
var defaultAlmanac []byte

// Launch is the launch date of a satellite occupying a PRN.
type Launch struct {
	PRN  int `toml:"prn"`
	Year int `toml:"year"`
	DOY  int `toml:"doy"`
}

// Almanac lists the GPS satellites transmitting the modernized signals L2C and L5.
type Almanac struct {
	L2C []Launch `toml:"l2c"`
	L5  []Launch `toml:"l5"`
}

// DefaultAlmanac returns the almanac compiled into the binary.
func DefaultAlmanac() *Almanac {
	alm, err := DecodeAlmanac(defaultAlmanac)
	if err != nil {
		panic(fmt.Sprintf("gnss: embedded almanac: %v", err))
	}
	return alm
}

// LoadAlmanac reads an almanac from the TOML file at path.
func LoadAlmanac(path string) (*Almanac, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	alm, err := DecodeAlmanac(b)
	if err != nil {
		return nil, fmt.Errorf("almanac %s: %w", path, err)
	}
	return alm, nil
}

// DecodeAlmanac parses a TOML formated almanac.
func DecodeAlmanac(b []byte) (*Almanac, error) {
	alm := &Almanac{}
	if err := toml.Unmarshal(b, alm); err != nil {
		return nil, err
	}
	if err := alm.validate(); err != nil {
		return nil, err
	}
	return alm, nil
}

func (alm *Almanac) validate() error {
	check := func(name string, launches []Launch) error {
		for i, l := range launches {
			if l.PRN < MinPRNGPS || l.PRN > MaxPRNGPS {
				return fmt.Errorf("%s entry %d: invalid PRN %d", name, i+1, l.PRN)
			}
			if l.DOY < 1 || l.DOY > 366 {
				return fmt.Errorf("%s entry %d: invalid doy %d", name, i+1, l.DOY)
			}
		}
		return nil
	}
	if err := check("l2c", alm.L2C); err != nil {
		return err
	}
	return check("l5", alm.L5)
}

// L2CL5List returns the PRNs transmitting L2C and L5 at the given year and day of year.
// A satellite is listed if it was launched before that day.
func (alm *Almanac) L2CL5List(year, doy int) (l2c, l5 []int) {
	t := DecimalYear(year, doy)
	return launchedBefore(alm.L2C, t), launchedBefore(alm.L5, t)
}

func launchedBefore(launches []Launch, t float64) []int {
	prns := []int{}
	for _, l := range launches {
		if DecimalYear(l.Year, l.DOY) < t {
			prns = append(prns, l.PRN)
		}
	}
	return prns
}
