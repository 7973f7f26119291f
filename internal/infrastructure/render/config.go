package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/street-orientation/internal/config"
)

// FontStyle - размер шрифта в пунктах, прозрачность и начертание
type FontStyle struct {
	Size  float64
	Alpha float64
	Bold  bool
}

// Config - все параметры отрисовки. Передается явно, глобального состояния нет.
type Config struct {
	DPI       float64
	PanelSize float64 // дюймы, сторона одной полярной диаграммы
	MapSize   float64 // дюймы, высота карты улиц
	RowGap    float64 // доля PanelSize между рядами сетки

	FontPath string // пусто - встроенные шрифты Go

	Title    FontStyle
	XTick    FontStyle
	YTick    FontStyle
	Suptitle FontStyle

	Background color.Color
	BarColor   color.Color
	BarAlpha   float64
	EdgeColor  color.Color
	EdgeWidth  float64 // пункты
	GridColor  color.Color
	GridWidth  float64

	MapBackground color.Color
	MapEdgeColor  color.Color
	MapEdgeWidth  float64

	ShowStats bool
}

// DefaultConfig повторяет оформление исходных диаграмм
func DefaultConfig() Config {
	return Config{
		DPI:       120,
		PanelSize: 5,
		MapSize:   12,
		RowGap:    0.1,

		Title:    FontStyle{Size: 24, Alpha: 1, Bold: true},
		XTick:    FontStyle{Size: 10, Alpha: 1, Bold: true},
		YTick:    FontStyle{Size: 9, Alpha: 0.2, Bold: true},
		Suptitle: FontStyle{Size: 60, Alpha: 1},

		Background: color.White,
		BarColor:   color.NRGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xff},
		BarAlpha:   0.7,
		EdgeColor:  color.Black,
		EdgeWidth:  0.5,
		GridColor:  color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff},
		GridWidth:  0.8,

		MapBackground: color.White,
		MapEdgeColor:  color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
		MapEdgeWidth:  0.8,
	}
}

// NewConfig строит Config из секции RENDER_* конфигурации приложения
func NewConfig(rc *config.RenderConfig) (Config, error) {
	cfg := DefaultConfig()
	if rc == nil {
		return cfg, nil
	}

	if rc.DPI > 0 {
		cfg.DPI = rc.DPI
	}
	if rc.PanelSize > 0 {
		cfg.PanelSize = rc.PanelSize
	}
	if rc.MapSize > 0 {
		cfg.MapSize = rc.MapSize
	}
	if rc.BarColor != "" {
		c, err := parseHexColor(rc.BarColor)
		if err != nil {
			return Config{}, err
		}
		cfg.BarColor = c
	}
	cfg.BarAlpha = rc.BarAlpha
	cfg.FontPath = rc.FontPath
	cfg.ShowStats = rc.ShowStats

	return cfg, nil
}

// parseHexColor разбирает #rgb, #rrggbb и #rrggbbaa
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// withAlpha умножает альфа-канал цвета на alpha
func withAlpha(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	n.A = uint8(float64(n.A)*alpha + 0.5)
	return n
}
