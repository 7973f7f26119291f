package composite

import (
	"context"
	"errors"
	"image"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/street-orientation/internal/config"
	"github.com/street-orientation/internal/domain"
	"github.com/street-orientation/internal/repository/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeInputs(t *testing.T, fs afero.Fs) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	polar := filepath.Join(dir, "Berlin_polar.png")
	mapPath := filepath.Join(dir, "Berlin_map.png")
	require.NoError(t, afero.WriteFile(fs, polar, []byte("polar"), 0o644))
	require.NoError(t, afero.WriteFile(fs, mapPath, []byte("map"), 0o644))
	return polar, mapPath, filepath.Join(dir, "Berlin.png")
}

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"a.png", "b.png", "-gravity", "SouthEast", "-blend", "100", "c.png"},
		Args("a.png", "b.png", "c.png"))
}

func TestCompose_Disabled(t *testing.T) {
	c := NewCompositor(&config.CompositeConfig{Enabled: false, Binary: "composite"}, images.NewImageRepository(afero.NewMemMapFs(), zap.NewNop()), zap.NewNop())

	result := c.Compose(context.Background(), "a.png", "b.png", "c.png")
	assert.Equal(t, domain.PostProcessSkipped, result.Status)
	assert.NotEmpty(t, result.Reason)
}

func TestCompose_MissingBinary(t *testing.T) {
	fs := afero.NewOsFs()
	polar, mapPath, goal := writeInputs(t, fs)

	c := NewCompositor(&config.CompositeConfig{Enabled: true, Binary: "no-such-composite-binary"}, images.NewImageRepository(fs, zap.NewNop()), zap.NewNop())

	result := c.Compose(context.Background(), polar, mapPath, goal)
	assert.Equal(t, domain.PostProcessSkipped, result.Status)

	exists, _ := afero.Exists(fs, polar)
	assert.True(t, exists, "inputs are kept when compositing is skipped")
}

func TestCompose_Success(t *testing.T) {
	requireBinary(t, "true")
	fs := afero.NewOsFs()
	polar, mapPath, goal := writeInputs(t, fs)

	c := NewCompositor(&config.CompositeConfig{Enabled: true, Binary: "true"}, images.NewImageRepository(fs, zap.NewNop()), zap.NewNop())

	result := c.Compose(context.Background(), polar, mapPath, goal)
	assert.Equal(t, domain.PostProcessSuccess, result.Status)
	assert.Equal(t, goal, result.Path)

	for _, path := range []string{polar, mapPath} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.False(t, exists)
	}
}

func TestCompose_NonZeroExit(t *testing.T) {
	requireBinary(t, "false")
	fs := afero.NewOsFs()
	polar, mapPath, goal := writeInputs(t, fs)

	c := NewCompositor(&config.CompositeConfig{Enabled: true, Binary: "false"}, images.NewImageRepository(fs, zap.NewNop()), zap.NewNop())

	result := c.Compose(context.Background(), polar, mapPath, goal)
	assert.Equal(t, domain.PostProcessSkipped, result.Status)

	exists, _ := afero.Exists(fs, mapPath)
	assert.True(t, exists)
}

type recordingImages struct {
	removed []string
}

func (r *recordingImages) NextPath(base, ext string) (string, error) { return base + "." + ext, nil }

func (r *recordingImages) SavePNG(base string, img image.Image) (string, error) { return base + ".png", nil }

func (r *recordingImages) Remove(path string) error {
	r.removed = append(r.removed, path)
	return errors.New("read-only")
}

func TestCompose_RemovesInputsThroughImageRepository(t *testing.T) {
	requireBinary(t, "true")
	store := &recordingImages{}

	c := NewCompositor(&config.CompositeConfig{Enabled: true, Binary: "true"}, store, zap.NewNop())

	result := c.Compose(context.Background(), "out/a_polar.png", "out/a_map.png", "out/a.png")
	assert.Equal(t, domain.PostProcessSuccess, result.Status, "a failed cleanup does not fail compositing")
	assert.Equal(t, []string{"out/a_polar.png", "out/a_map.png"}, store.removed)
}
