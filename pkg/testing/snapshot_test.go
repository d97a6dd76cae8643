package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/statefade/pkg/graphics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeT struct {
	fatals []string
	errors []string
}

func (f *fakeT) Helper()      {}
func (f *fakeT) Name() string { return "TestFake" }
func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatals = append(f.fatals, fmt.Sprintf(format, args...))
}
func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func recordFace() *RecordingCanvas {
	c := NewRecordingCanvas(graphics.Size{Width: 40, Height: 20})
	c.DrawRect(graphics.RectFromLTWH(0, 0, 40, 20), graphics.FillPaint(graphics.ColorWhite))
	c.DrawLine(graphics.Offset{X: 30, Y: 8}, graphics.Offset{X: 34, Y: 12}, graphics.StrokePaint(graphics.ColorBlack))
	return c
}

func TestSnapshot_RoundTripThroughFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	path := filepath.Join(t.TempDir(), "golden", "face.json")

	snap := recordFace().CaptureSnapshot()
	require.NoError(t, snap.UpdateFile(path))

	ft := &fakeT{}
	snap.MatchesFile(ft, path)
	assert.Empty(t, ft.fatals)
	assert.Empty(t, ft.errors)
}

func TestSnapshot_MismatchReportsDiff(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	path := filepath.Join(t.TempDir(), "face.json")
	require.NoError(t, recordFace().CaptureSnapshot().UpdateFile(path))

	c := recordFace()
	c.DrawRect(graphics.RectFromLTWH(1, 1, 38, 18), graphics.Paint{Color: graphics.ColorBlack, Style: graphics.PaintStyleStroke, StrokeWidth: 1, Dash: graphics.DottedPattern})

	ft := &fakeT{}
	c.CaptureSnapshot().MatchesFile(ft, path)
	require.Len(t, ft.errors, 1)
	assert.Contains(t, ft.errors[0], "+")
	assert.Contains(t, ft.errors[0], UpdateSnapshotsEnv)
}

func TestSnapshot_MissingFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "")
	ft := &fakeT{}
	recordFace().CaptureSnapshot().MatchesFile(ft, filepath.Join(t.TempDir(), "none.json"))
	require.Len(t, ft.fatals, 1)
	assert.Contains(t, ft.fatals[0], "snapshot file missing")
}

func TestSnapshot_UpdateEnvWritesFile(t *testing.T) {
	t.Setenv(UpdateSnapshotsEnv, "1")
	path := filepath.Join(t.TempDir(), "nested", "face.json")

	ft := &fakeT{}
	recordFace().CaptureSnapshot().MatchesFile(ft, path)
	assert.Empty(t, ft.fatals)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSnapshot_Diff(t *testing.T) {
	a := recordFace().CaptureSnapshot()
	assert.Empty(t, a.Diff(recordFace().CaptureSnapshot()))

	c := recordFace()
	c.Clear(graphics.ColorBlack)
	assert.NotEmpty(t, c.CaptureSnapshot().Diff(a))
}
