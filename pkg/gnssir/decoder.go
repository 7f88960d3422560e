package gnssir

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Decoder reads and decodes the records of a GNSS-IR result file.
type Decoder struct {
	sc      *bufio.Scanner
	rec     Record // the current record
	lineNum int
	err     error
}

// NewDecoder returns a new decoder that reads from r.
// Closing r is left to the caller.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{sc: bufio.NewScanner(r)}
}

// Next reads the next record, which will then be available through the Record method.
// It returns false when the scan stops, either by reaching the end of the input or an error.
// After Next returns false, the Err method will return any error that occurred during scanning,
// except that if it was io.EOF, Err will return nil.
func (dec *Decoder) Next() bool {
	if dec.err != nil {
		return false
	}

	for dec.sc.Scan() {
		dec.lineNum++
		line := dec.sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}

		dec.rec = Record{}
		if err := dec.rec.UnmarshalGNSSIR(line); err != nil {
			dec.err = fmt.Errorf("line %d: %v", dec.lineNum, err)
			return false
		}
		return true
	}

	if err := dec.sc.Err(); err != nil {
		dec.err = fmt.Errorf("read line %d: %v", dec.lineNum+1, err)
	}
	return false
}

// Record returns the most recent record read by a call to Next.
func (dec *Decoder) Record() Record {
	return dec.rec
}

// Err returns the first non-EOF error that was encountered by the decoder.
func (dec *Decoder) Err() error {
	return dec.err
}

// Decode reads all records from r.
func Decode(r io.Reader) (Records, error) {
	dec := NewDecoder(r)
	var recs Records
	for dec.Next() {
		recs = append(recs, dec.Record())
	}
	return recs, dec.Err()
}
