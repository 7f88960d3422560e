// vwcinput computes the apriori reflector heights per satellite and azimuth quadrant
// for a GNSS-IR station and year. The results are written to $REFL_CODE/input/<station>_phaseRH.txt
// and used later to compute a consistent set of phase estimates for the volumetric water content.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/de-bkg/gnssrefl/pkg/gnss"
	"github.com/de-bkg/gnssrefl/pkg/vwc"
	"github.com/urfave/cli/v2"
)

const (
	version = "0.1.0"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "vwcinput",
		Usage:     "compute the apriori RH values used for phase estimation",
		UsageText: "vwcinput [OPTIONS] STATION YEAR [OPTIONS]",
		Version:   version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "min_tracks",
				Value: vwc.DefaultMinTracks,
				Usage: "minimum number of tracks needed to keep the mean RH",
			},
			&cli.IntFlag{
				Name:  "fr",
				Value: int(vwc.DefaultFreq),
				Usage: "frequency, 20 for L2C or 1 for L1",
			},
			&cli.StringFlag{
				Name:  "almanac",
				Usage: "TOML file with the L2C/L5 satellite launch dates, overrides the built-in list",
			},
		},
		Action: run,
	}
}

// options holds the flag values, possibly given after the positional arguments.
type options struct {
	minTracks int
	fr        int
	almanac   string
}

// parseArgs returns the positional arguments and the options. Flags following STATION YEAR
// are parsed as well, so both "vwcinput -fr 1 p038 2020" and "vwcinput p038 2020 -fr 1" work.
func parseArgs(c *cli.Context) ([]string, options, error) {
	opts := options{
		minTracks: c.Int("min_tracks"),
		fr:        c.Int("fr"),
		almanac:   c.String("almanac"),
	}

	args := c.Args().Slice()
	if len(args) <= 2 {
		return args, opts, nil
	}

	fs := flag.NewFlagSet(c.App.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&opts.minTracks, "min_tracks", opts.minTracks, "")
	fs.IntVar(&opts.fr, "fr", opts.fr, "")
	fs.StringVar(&opts.almanac, "almanac", opts.almanac, "")
	if err := fs.Parse(args[2:]); err != nil {
		return nil, opts, err
	}
	return append(args[:2:2], fs.Args()...), opts, nil
}

func run(c *cli.Context) error {
	args, opts, err := parseArgs(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if len(args) != 2 {
		return cli.Exit("station and year are required", 1)
	}

	// REFL_CODE must be known before touching any file.
	env, err := vwc.EnvFromOS()
	if err != nil {
		return cli.Exit(err, 1)
	}

	year, err := strconv.Atoi(args[1])
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid year %q", args[1]), 1)
	}

	req := vwc.Request{
		Station:   args[0],
		Year:      year,
		MinTracks: opts.minTracks,
		Freq:      gnss.Frequency(opts.fr),
	}

	var alm *gnss.Almanac
	if opts.almanac != "" {
		alm, err = gnss.LoadAlmanac(opts.almanac)
		if err != nil {
			return cli.Exit(err, 1)
		}
	}

	rep, err := vwc.Run(env, req, alm)
	switch {
	case errors.Is(err, vwc.ErrInvalidInput):
		return cli.Exit(fmt.Sprintf("%v. Exiting.", err), 1)
	case errors.Is(err, vwc.ErrNoResults):
		return cli.Exit(fmt.Sprintf("%v. Exiting.", err), 1)
	case err != nil:
		return err
	}

	if rep.Status == vwc.StatusEmpty {
		log.Printf("no apriori RH file written for %s %d", req.Station, req.Year)
	}
	return nil
}
