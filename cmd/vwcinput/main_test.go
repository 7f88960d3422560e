package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-bkg/gnssrefl/pkg/gnssir"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

// setupRefl writes 12 L1 tracks of PRN13 in the second quadrant and sets REFL_CODE.
func setupRefl(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("REFL_CODE", root)

	dir := gnssir.Dir(root, "p038", 2020)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, "2020 1 3.000 13 1.0 %.3f 10.0 5 25 100 1\n", 100+float64(i)*5)
	}
	if err := os.WriteFile(filepath.Join(dir, "001.txt"), []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

// testApp returns the app without exiting the process on errors.
func testApp() *cli.App {
	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func TestRun_FlagPositions(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "flags first", args: []string{"vwcinput", "-fr", "1", "-min_tracks", "10", "p038", "2020"}},
		{name: "flags last", args: []string{"vwcinput", "p038", "2020", "-fr", "1", "-min_tracks", "10"}},
		{name: "mixed", args: []string{"vwcinput", "--min_tracks", "10", "p038", "2020", "--fr=1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			root := setupRefl(t)

			err := testApp().Run(tt.args)
			assert.NoError(err)

			b, err := os.ReadFile(filepath.Join(root, "input", "p038_phaseRH_L1.txt"))
			if assert.NoError(err) {
				assert.Contains(string(b), "  1  3.000   13  127.50     12   90  180\n")
			}
		})
	}
}

func TestRun_Args(t *testing.T) {
	assert := assert.New(t)
	setupRefl(t)

	err := testApp().Run([]string{"vwcinput", "p038"})
	if assert.Error(err) {
		assert.Contains(err.Error(), "station and year are required")
	}

	err = testApp().Run([]string{"vwcinput", "p038", "2020", "extra"})
	if assert.Error(err) {
		assert.Contains(err.Error(), "station and year are required")
	}

	err = testApp().Run([]string{"vwcinput", "p038", "2020", "-fr", "x"})
	assert.Error(err)

	err = testApp().Run([]string{"vwcinput", "p03", "2020"})
	if assert.Error(err) {
		assert.Contains(err.Error(), "station name must be four characters")
	}
}
