// Package vwc prepares the volumetric water content (VWC) analysis of a GNSS-IR station.
//
// It computes the apriori reflector heights per satellite and azimuth quadrant from the daily
// GNSS-IR results of one year and writes them to $REFL_CODE/input/<station>_phaseRH.txt.
// These are used later to compute a consistent set of phase estimates.
package vwc

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/de-bkg/gnssrefl/pkg/gnss"
	"github.com/de-bkg/gnssrefl/pkg/gnssir"
	"github.com/go-playground/validator/v10"
)

// Defaults of a Request.
const (
	DefaultMinTracks = 100
	DefaultFreq      = gnss.FreqL2C
)

// EnvReflCode is the environment variable with the root directory of the GNSS-IR data.
const EnvReflCode = "REFL_CODE"

// errors
var (
	// ErrInvalidInput is returned for a request with an invalid station or year.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoReflCode is returned if the REFL_CODE root directory is not configured.
	ErrNoReflCode = errors.New("environment variable " + EnvReflCode + " is not set")

	// ErrNoResults is returned if there are no GNSS-IR results for the station and year.
	ErrNoResults = gnssir.ErrNoResults

	// ErrEmptyResult is returned by WriteTable if there is nothing to write.
	ErrEmptyResult = errors.New("no apriori RH values to write")
)

// use a single instance of Validate, it caches struct info
var validate = validator.New()

// Env is the process environment, resolved once at startup.
type Env struct {
	ReflCode string // Root directory of the GNSS-IR data and results.
}

// EnvFromOS reads the environment. ErrNoReflCode is returned if REFL_CODE is unset or empty.
func EnvFromOS() (Env, error) {
	root, ok := os.LookupEnv(EnvReflCode)
	if !ok || root == "" {
		return Env{}, ErrNoReflCode
	}
	return Env{ReflCode: root}, nil
}

// Request specifies the station and year to process.
type Request struct {
	// 4 character station ID.
	Station string `validate:"len=4"`

	// 4 digit year.
	Year int `validate:"min=1000,max=9999"`

	// Minimum number of tracks needed to keep a mean RH.
	// 0 keeps every bin with at least one track.
	MinTracks int `validate:"min=0"`

	// Frequency code, 20 for L2C or 1 for L1.
	Freq gnss.Frequency
}

// NewRequest returns a request for station and year with the default minimum tracks and frequency.
func NewRequest(station string, year int) Request {
	return Request{Station: station, Year: year, MinTracks: DefaultMinTracks, Freq: DefaultFreq}
}

// Validate checks the request. The returned error wraps ErrInvalidInput.
func (req Request) Validate() error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Station":
			msgs = append(msgs, fmt.Sprintf("station name must be four characters: %q", req.Station))
		case "Year":
			msgs = append(msgs, fmt.Sprintf("year must be four digits: %d", req.Year))
		case "MinTracks":
			msgs = append(msgs, fmt.Sprintf("minimum number of tracks must not be negative: %d", req.MinTracks))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed on %q", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}

// Status is the outcome of a successful run.
type Status int

// Run outcomes.
const (
	StatusWritten Status = iota + 1 // The apriori RH file was written.
	StatusEmpty                     // No bin had enough tracks, nothing was written.
)

func (s Status) String() string {
	return [...]string{"", "written", "empty"}[s]
}

// Report summarizes a run.
type Report struct {
	Status Status
	Path   string // The apriori RH file.
	Rows   []Row
}

// Run computes the apriori reflector heights for the request and writes them to the apriori RH file.
// If alm is nil, the built-in almanac is used.
//
// Errors wrap ErrNoReflCode, ErrInvalidInput or ErrNoResults, or are I/O errors.
// Finding no bin with enough tracks is not an error, the report then has StatusEmpty.
func Run(env Env, req Request, alm *gnss.Almanac) (Report, error) {
	if env.ReflCode == "" {
		return Report{}, ErrNoReflCode
	}
	if err := req.Validate(); err != nil {
		return Report{}, err
	}
	if alm == nil {
		alm = gnss.DefaultAlmanac()
	}

	log.Printf("Minimum number of tracks required %d", req.MinTracks)

	recs, err := gnssir.ReadDir(gnssir.Dir(env.ReflCode, req.Station, req.Year))
	if err != nil {
		return Report{}, err
	}

	if req.Freq != gnss.FreqL1 {
		log.Printf("Using L2C satellite list for December 31 on %d", req.Year)
	}
	sats := SatelliteList(alm, req.Year, req.Freq)

	cols := FilterFrequency(recs, req.Freq)
	rows := Aggregate(cols, sats, req.MinTracks)

	rep := Report{Path: OutputPath(env.ReflCode, req.Station, req.Freq), Rows: rows}
	if len(rows) == 0 {
		log.Printf("Found no results - perhaps wrong year? %d of %d %s records with frequency %s", cols.Len(), len(recs), recs.Systems(), req.Freq)
		rep.Status = StatusEmpty
		return rep, nil
	}

	if err := WriteTable(rep.Path, rows, req.Year, req.Station); err != nil {
		return Report{}, err
	}
	log.Printf(">>>> Apriori RH file written to %s", rep.Path)
	rep.Status = StatusWritten
	return rep, nil
}
