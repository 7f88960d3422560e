// Package gnssir reads the daily reflector height results of a GNSS interferometric reflectometry (GNSS-IR) analysis.
//
// A result file holds one line per satellite track with whitespace separated columns:
//
//	% year, doy, RH, sat,UTCtime, Azim, Amp,  eminO, emaxO,NumbOf,freq,rise,EdotF, PkNoise  DelT     MJD   refr-appl
//	% (1)  (2)   (3) (4)  (5)     (6)   (7)    (8)    (9)   (10)  (11) (12) (13)  (14)    (15)     (16)   (17)
//	2020   1  2.142   2  9.621 152.47  13.85   5.00  15.00   216   20  -1   0.003  4.29   21.38 58849.400906  1
//
// Lines starting with % are comments.
package gnssir

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/de-bkg/gnssrefl/pkg/gnss"
)

// minFields is the number of mandatory columns, i.e. up to and including the frequency.
const minFields = 11

// ErrNoResults is returned if no result files could be found.
var ErrNoResults = errors.New("gnssir: no result files found")

// Record is one reflector height retrieval for one satellite track.
type Record struct {
	Year      int
	DOY       int
	RH        float64        // Reflector height in m.
	Sat       int            // Satellite number, GPS 1-32, Glonass +100, Galileo +200, Beidou +300.
	UTCHour   float64        // UTC time of the track in hours of day.
	Azimuth   float64        // Mean azimuth of the track in degrees.
	Amplitude float64        // Amplitude of the spectral peak.
	MinElev   float64        // Minimum elevation angle in degrees.
	MaxElev   float64        // Maximum elevation angle in degrees.
	NumPoints int            // Number of observations used in the periodogram.
	Freq      gnss.Frequency // Frequency code, e.g. 1 for L1 or 20 for L2C.
	Rising    int            // 1 for a rising, -1 for a setting arc.

	// Optional columns, zero if missing.
	EdotF     float64 // Elevation angle rate divided by the elevation angle tangent.
	PeakNoise float64 // Peak to noise ratio of the periodogram.
	DeltaT    float64 // Duration of the track in minutes.
	MJD       float64 // Modified julian date of the track.
	Refr      int     // Refraction model applied.
}

// Records is a list of reflector height retrievals, e.g. for a station and year.
type Records []Record

// UnmarshalGNSSIR parses a data line of a result file.
func (rec *Record) UnmarshalGNSSIR(line string) error {
	f := strings.Fields(line)
	if len(f) < minFields {
		return fmt.Errorf("%d fields, need at least %d", len(f), minFields)
	}

	var err error
	if rec.Year, err = parseInt(f[0]); err != nil {
		return fmt.Errorf("parse year: %v", err)
	}
	if rec.DOY, err = parseInt(f[1]); err != nil {
		return fmt.Errorf("parse doy: %v", err)
	}
	if rec.RH, err = strconv.ParseFloat(f[2], 64); err != nil {
		return fmt.Errorf("parse RH: %v", err)
	}
	if rec.Sat, err = parseInt(f[3]); err != nil {
		return fmt.Errorf("parse sat: %v", err)
	}
	if _, err = gnss.SystemOfSat(rec.Sat); err != nil {
		return err
	}
	if rec.UTCHour, err = strconv.ParseFloat(f[4], 64); err != nil {
		return fmt.Errorf("parse UTC time: %v", err)
	}
	if rec.Azimuth, err = strconv.ParseFloat(f[5], 64); err != nil {
		return fmt.Errorf("parse azimuth: %v", err)
	}
	if rec.Amplitude, err = strconv.ParseFloat(f[6], 64); err != nil {
		return fmt.Errorf("parse amplitude: %v", err)
	}
	if rec.MinElev, err = strconv.ParseFloat(f[7], 64); err != nil {
		return fmt.Errorf("parse min elevation: %v", err)
	}
	if rec.MaxElev, err = strconv.ParseFloat(f[8], 64); err != nil {
		return fmt.Errorf("parse max elevation: %v", err)
	}
	if rec.NumPoints, err = parseInt(f[9]); err != nil {
		return fmt.Errorf("parse number of points: %v", err)
	}
	freq, err := parseInt(f[10])
	if err != nil {
		return fmt.Errorf("parse frequency: %v", err)
	}
	rec.Freq = gnss.Frequency(freq)

	// optional columns
	opt := f[minFields:]
	if len(opt) > 0 {
		if rec.Rising, err = parseInt(opt[0]); err != nil {
			return fmt.Errorf("parse rising: %v", err)
		}
	}
	floats := []*float64{&rec.EdotF, &rec.PeakNoise, &rec.DeltaT, &rec.MJD}
	for i, p := range floats {
		if len(opt) <= i+1 {
			break
		}
		if *p, err = strconv.ParseFloat(opt[i+1], 64); err != nil {
			return fmt.Errorf("parse column %d: %v", minFields+i+2, err)
		}
	}
	if len(opt) > 5 {
		if rec.Refr, err = parseInt(opt[5]); err != nil {
			return fmt.Errorf("parse refraction: %v", err)
		}
	}

	return nil
}

// System returns the satellite system of the record.
func (rec Record) System() gnss.System {
	sys, _ := gnss.SystemOfSat(rec.Sat)
	return sys
}

// Systems returns the satellite systems contained in the records, in order of appearance.
func (recs Records) Systems() gnss.Systems {
	syss := gnss.Systems{}
	seen := map[gnss.System]bool{}
	for _, rec := range recs {
		sys := rec.System()
		if sys == 0 || seen[sys] {
			continue
		}
		seen[sys] = true
		syss = append(syss, sys)
	}
	return syss
}

// Dir returns the directory holding the daily result files of a station and year,
// i.e. <root>/<year>/results/<station>.
func Dir(root, station string, year int) string {
	return filepath.Join(root, strconv.Itoa(year), "results", station)
}

// parseInt parses integers that may have been written as floats, e.g. "20" or "20.0".
func parseInt(s string) (int, error) {
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}
