package vwc

import (
	"github.com/de-bkg/gnssrefl/pkg/gnss"
	"github.com/de-bkg/gnssrefl/pkg/gnssir"
)

// Quadrant is an azimuth bin in degrees. An azimuth belongs to the quadrant if Min < azimuth < Max,
// so values exactly on the edges belong to no quadrant.
type Quadrant struct {
	Min, Max int
}

// Contains reports whether az lies strictly inside the quadrant.
func (q Quadrant) Contains(az float64) bool {
	return az > float64(q.Min) && az < float64(q.Max)
}

// Quadrants are the four azimuth bins in processing order.
var Quadrants = []Quadrant{{0, 90}, {90, 180}, {180, 270}, {270, 360}}

// Row is one line of the apriori RH file: the mean reflector height of a satellite in a quadrant.
type Row struct {
	Rank        int     // Track number, starting at 1.
	MeanRH      float64 // Mean reflector height in m.
	Sat         int
	MeanAzimuth float64 // Mean azimuth in degrees.
	Count       int     // Number of reflector heights in the mean.
	AzimuthMin  int
	AzimuthMax  int
}

// Columns holds the reflector heights, satellites and azimuths of the records of one frequency.
// All slices have the same length.
type Columns struct {
	RH      []float64
	Sat     []int
	Azimuth []float64
}

// Len returns the number of observations.
func (c Columns) Len() int {
	return len(c.RH)
}

// FilterFrequency returns the columns of all records with the frequency code fr.
func FilterFrequency(recs gnssir.Records, fr gnss.Frequency) Columns {
	cols := Columns{RH: []float64{}, Sat: []int{}, Azimuth: []float64{}}
	for _, rec := range recs {
		if rec.Freq != fr {
			continue
		}
		cols.RH = append(cols.RH, rec.RH)
		cols.Sat = append(cols.Sat, rec.Sat)
		cols.Azimuth = append(cols.Azimuth, rec.Azimuth)
	}
	return cols
}

// SatelliteList returns the satellites to bin for frequency fr.
// L1 uses all GPS PRNs. Any other frequency uses the L2C satellites at the end of the year,
// even L5 or non GPS codes.
func SatelliteList(alm *gnss.Almanac, year int, fr gnss.Frequency) []int {
	if fr == gnss.FreqL1 {
		return gnss.GPSRange()
	}
	l2c, _ := alm.L2CL5List(year, 365)
	return l2c
}

// Aggregate bins the observations by quadrant and satellite and returns a row for each bin
// holding more than minTracks observations. Rows are ordered by quadrant, then by the order of sats.
func Aggregate(cols Columns, sats []int, minTracks int) []Row {
	rows := []Row{}
	rank := 0
	for _, q := range Quadrants {
		for _, sat := range sats {
			var sumRH, sumAz float64
			n := 0
			for i := 0; i < cols.Len(); i++ {
				if cols.Sat[i] != sat || !q.Contains(cols.Azimuth[i]) {
					continue
				}
				sumRH += cols.RH[i]
				sumAz += cols.Azimuth[i]
				n++
			}
			// n == 0 matters for direct callers passing a negative minTracks.
			if n == 0 || n <= minTracks {
				continue
			}

			rank++
			rows = append(rows, Row{
				Rank:        rank,
				MeanRH:      sumRH / float64(n),
				Sat:         sat,
				MeanAzimuth: sumAz / float64(n),
				Count:       n,
				AzimuthMin:  q.Min,
				AzimuthMax:  q.Max,
			})
		}
	}
	return rows
}
