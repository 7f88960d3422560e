package vwc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-bkg/gnssrefl/pkg/gnss"
)

// rowFormat is the line format of a row in the apriori RH file.
const rowFormat = "%3.0f %6.3f %4.0f %7.2f   %4.0f  %3.0f  %3.0f\n"

// OutputPath returns the path of the apriori RH file, <root>/input/<station>_phaseRH.txt,
// or <station>_phaseRH_L1.txt for L1.
func OutputPath(root, station string, fr gnss.Frequency) string {
	name := station + "_phaseRH.txt"
	if fr == gnss.FreqL1 {
		name = station + "_phaseRH_L1.txt"
	}
	return filepath.Join(root, "input", name)
}

// Encode writes the apriori RH table with its header to w.
func Encode(w io.Writer, rows []Row, year int, station string) error {
	bw := bufio.NewWriter(w)
	header := []string{
		"% apriori RH values used for phase estimation",
		fmt.Sprintf("%% year/station %d %s", year, station),
		"% tmin 0.05 (default)",
		"% tmax 0.50 (default)",
		"% Track  RefH SatNu MeanAz  Nval   Azimuths ",
		"%         m   ",
	}
	for _, line := range header {
		fmt.Fprintf(bw, "%s  \n", line)
	}

	for _, r := range rows {
		fmt.Fprintf(bw, rowFormat, float64(r.Rank), r.MeanRH, float64(r.Sat), r.MeanAzimuth,
			float64(r.Count), float64(r.AzimuthMin), float64(r.AzimuthMax))
	}
	return bw.Flush()
}

// WriteTable writes the rows to the apriori RH file at path, replacing an existing file.
// If there are no rows, nothing is written and ErrEmptyResult is returned.
//
// Runs for the same station and frequency write to the same path without any locking,
// the last one wins.
func WriteTable(path string, rows []Row, year int, station string) error {
	if len(rows) == 0 {
		return ErrEmptyResult
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, rows, year, station); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
