package vwc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-bkg/gnssrefl/pkg/gnss"
	"github.com/stretchr/testify/assert"
)

const wantHeader = "% apriori RH values used for phase estimation  \n" +
	"% year/station 2020 p038  \n" +
	"% tmin 0.05 (default)  \n" +
	"% tmax 0.50 (default)  \n" +
	"% Track  RefH SatNu MeanAz  Nval   Azimuths   \n" +
	"%         m     \n"

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/refl", "input", "p038_phaseRH.txt"), OutputPath("/refl", "p038", gnss.FreqL2C))
	assert.Equal(t, filepath.Join("/refl", "input", "p038_phaseRH.txt"), OutputPath("/refl", "p038", gnss.FreqL5))
	assert.Equal(t, filepath.Join("/refl", "input", "p038_phaseRH_L1.txt"), OutputPath("/refl", "p038", gnss.FreqL1))
}

func TestEncode(t *testing.T) {
	rows := []Row{
		{Rank: 1, MeanRH: 1.5, Sat: 7, MeanAzimuth: 15.000000000000004, Count: 150, AzimuthMin: 0, AzimuthMax: 90},
		{Rank: 2, MeanRH: 2.25, Sat: 12, MeanAzimuth: 300.5, Count: 101, AzimuthMin: 270, AzimuthMax: 360},
	}

	var buf bytes.Buffer
	err := Encode(&buf, rows, 2020, "p038")
	assert.NoError(t, err)

	want := wantHeader +
		"  1  1.500    7   15.00    150    0   90\n" +
		"  2  2.250   12  300.50    101  270  360\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTable(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "input", "p038_phaseRH.txt")
	rows := []Row{{Rank: 1, MeanRH: 1.5, Sat: 7, MeanAzimuth: 15, Count: 150, AzimuthMin: 0, AzimuthMax: 90}}

	err := WriteTable(path, rows, 2020, "p038")
	assert.NoError(err)
	first, err := os.ReadFile(path)
	assert.NoError(err)

	// rewriting truncates and gives the same bytes
	err = WriteTable(path, rows, 2020, "p038")
	assert.NoError(err)
	second, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal(first, second)
}

func TestWriteTable_Empty(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "p038_phaseRH.txt")
	assert.NoError(os.WriteFile(path, []byte("old\n"), 0o644))

	err := WriteTable(path, nil, 2020, "p038")
	assert.True(errors.Is(err, ErrEmptyResult))

	b, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal("old\n", string(b), "existing file is left untouched")
}
