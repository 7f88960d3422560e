package gnssir

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mholt/archiver/v3"
)

// ReadDir reads all result files in dir and returns their records in the order of the filenames.
// Subdirectories, e.g. failQC, and hidden files are ignored, symbolic links to files are followed.
// Compressed files (gz, bz2, xz, zst, lz4, sz) are decompressed on the fly.
//
// ErrNoResults is returned if dir does not exist or contains no result files.
func ReadDir(dir string) (Records, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoResults, dir)
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !e.Type().IsRegular() {
			// symlinks count if they point to a regular file
			fi, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoResults, dir)
	}
	sort.Strings(names)

	var recs Records
	for _, name := range names {
		path := filepath.Join(dir, name)
		fileRecs, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		recs = append(recs, fileRecs...)
	}
	log.Printf("read %d %s records from %d files in %s", len(recs), recs.Systems(), len(names), dir)
	return recs, nil
}

// ReadFile reads the records of a single result file, which may be compressed.
func ReadFile(path string) (Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if dc := decompressorFor(path); dc != nil {
		buf := &bytes.Buffer{}
		if err := dc.Decompress(f, buf); err != nil {
			return nil, fmt.Errorf("decompress %s: %v", path, err)
		}
		r = buf
	}

	recs, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %v", path, err)
	}
	return recs, nil
}

// decompressorFor returns the decompressor matching the file extension or nil for uncompressed files.
func decompressorFor(path string) archiver.Decompressor {
	format, err := archiver.ByExtension(filepath.Base(path))
	if err != nil {
		return nil
	}
	dc, ok := format.(archiver.Decompressor)
	if !ok {
		return nil
	}
	return dc
}
