package render

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type faceKey struct {
	size float64
	bold bool
}

// fontSet кеширует font.Face по размеру и начертанию
type fontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
	dpi     float64

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func loadFonts(path string, dpi float64) (*fontSet, error) {
	regularTTF, boldTTF := goregular.TTF, gobold.TTF
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
		regularTTF, boldTTF = data, data
	}

	regular, err := truetype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	bold, err := truetype.Parse(boldTTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	return &fontSet{
		regular: regular,
		bold:    bold,
		dpi:     dpi,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (f *fontSet) face(style FontStyle) font.Face {
	key := faceKey{size: style.Size, bold: style.Bold}

	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[key]; ok {
		return face
	}

	ttf := f.regular
	if style.Bold {
		ttf = f.bold
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    style.Size,
		DPI:     f.dpi,
		Hinting: font.HintingFull,
	})
	f.faces[key] = face
	return face
}
