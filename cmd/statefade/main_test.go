package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/statefade/pkg/config"
	"github.com/go-drift/statefade/pkg/logging"
	"github.com/go-drift/statefade/pkg/visualstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "--log-level", "error"}, args...))
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "list.png")
	stdout := execute(t, "render", "-o", out, "--width", "180", "--selected", "1", "--focused")

	assert.Contains(t, stdout, "wrote "+out)
	img := decodePNG(t, out)
	assert.Equal(t, 180, img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), 5*16, "face plus five rows and two headers")
}

func TestAnimateCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	stdout := execute(t, "animate", "-o", dir, "--from", "normal", "--to", "pressed", "--frames", "4")

	assert.Contains(t, stdout, "wrote 5 frames")
	for _, name := range []string{"frame_000.png", "frame_002.png", "frame_004.png"} {
		img := decodePNG(t, filepath.Join(dir, name))
		assert.Equal(t, image.Rect(0, 0, 160, 28), img.Bounds(), name)
	}
	first := decodePNG(t, filepath.Join(dir, "frame_000.png"))
	last := decodePNG(t, filepath.Join(dir, "frame_004.png"))
	assert.NotEqual(t, first.At(1, 1), last.At(1, 1), "face colour must change across the fade")
}

func TestAnimateCommand_RejectsBadState(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "animate", "--from", " ", "-o", t.TempDir()})
	assert.Error(t, rootCmd.Execute())
}

func TestConfigCommand(t *testing.T) {
	stdout := execute(t, "config")
	assert.Contains(t, stdout, "default_state: normal")
	assert.Contains(t, stdout, "curve: ease-in-out")
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "statefade version")
}

func TestLoadItems(t *testing.T) {
	dir := t.TempDir()
	icon := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	icon.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, icon))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mail.png"), buf.Bytes(), 0o644))

	path := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`items:
  - {name: Drafts, group: Mail, icon: mail.png}
  - {name: Inbox}
  - {name: Broken, icon: missing.png}
`), 0o644))

	items, err := loadItems(path)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Mail", items[0].Group)
	require.NotNil(t, items[0].Icon)
	assert.Equal(t, 4, items[0].Icon.Bounds().Dx())
	assert.Nil(t, items[1].Icon)
	assert.Nil(t, items[2].Icon, "undecodable icons are skipped")

	_, err = loadItems(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestBuildList_HonoursZeroDefaultDuration(t *testing.T) {
	cfg, err := config.Parse([]byte("animation:\n  default_duration: 0s\n"))
	require.NoError(t, err)
	require.Zero(t, cfg.DefaultDuration())

	l, err := buildList(&env{cfg: cfg, logger: logging.NewNop()}, sampleItems(), nil, "")
	require.NoError(t, err)
	defer l.Dispose()
	assert.Zero(t, l.Animator().DurationFor(visualstate.Normal, visualstate.Pressed))

	l, err = buildList(&env{cfg: config.Default(), logger: logging.NewNop()}, sampleItems(), nil, "")
	require.NoError(t, err)
	defer l.Dispose()
	assert.Equal(t, config.Default().DefaultDuration(), l.Animator().DurationFor(visualstate.Normal, visualstate.Pressed))
}
