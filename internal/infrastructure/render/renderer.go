package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/street-orientation/internal/domain"
	"go.uber.org/zap"
)

// Renderer рисует полярные гистограммы и карты улиц
type Renderer struct {
	cfg    Config
	fonts  *fontSet
	logger *zap.Logger
}

// New создает Renderer и загружает шрифты
func New(cfg Config, logger *zap.Logger) (*Renderer, error) {
	if cfg.DPI <= 0 || cfg.PanelSize <= 0 || cfg.MapSize <= 0 {
		return nil, fmt.Errorf("render sizes must be positive")
	}

	fonts, err := loadFonts(cfg.FontPath, cfg.DPI)
	if err != nil {
		return nil, err
	}

	return &Renderer{cfg: cfg, fonts: fonts, logger: logger}, nil
}

// px переводит пункты в пиксели
func (r *Renderer) px(points float64) float64 {
	return points * r.cfg.DPI / 72
}

func (r *Renderer) panelPixels() int {
	return int(math.Round(r.cfg.PanelSize * r.cfg.DPI))
}

// Polar рисует одну полярную гистограмму
func (r *Renderer) Polar(panel domain.PolarPanel) image.Image {
	size := r.panelPixels()
	dc := gg.NewContext(size, size)
	dc.SetColor(r.cfg.Background)
	dc.Clear()

	r.drawPanel(dc, 0, 0, float64(size), panel)
	return dc.Image()
}

// Grid раскладывает диаграммы по сетке ncols = ceil(sqrt(n)), nrows = ceil(n / ncols)
func (r *Renderer) Grid(panels []domain.PolarPanel, suptitle string) image.Image {
	n := len(panels)
	if n == 0 {
		n = 1
	}
	ncols := int(math.Ceil(math.Sqrt(float64(n))))
	nrows := int(math.Ceil(float64(n) / float64(ncols)))

	size := float64(r.panelPixels())
	gap := size * r.cfg.RowGap

	var header float64
	if suptitle != "" {
		header = r.px(r.cfg.Suptitle.Size) * 1.6
	}

	width := int(math.Round(float64(ncols) * size))
	height := int(math.Round(header + float64(nrows)*size + float64(nrows-1)*gap))

	dc := gg.NewContext(width, height)
	dc.SetColor(r.cfg.Background)
	dc.Clear()

	if suptitle != "" {
		dc.SetFontFace(r.fonts.face(r.cfg.Suptitle))
		dc.SetColor(withAlpha(r.cfg.EdgeColor, r.cfg.Suptitle.Alpha))
		dc.DrawStringAnchored(suptitle, float64(width)/2, header/2, 0.5, 0.5)
	}

	for i, panel := range panels {
		row, col := i/ncols, i%ncols
		x := float64(col) * size
		y := header + float64(row)*(size+gap)
		r.drawPanel(dc, x, y, size, panel)
	}

	r.logger.Debug("Grid rendered",
		zap.Int("panels", len(panels)),
		zap.Int("cols", ncols),
		zap.Int("rows", nrows))

	return dc.Image()
}

// compassToScreen: 0° - север, по часовой стрелке; gg считает углы от оси x по часовой
func compassToScreen(deg float64) float64 {
	return gg.Radians(deg - 90)
}

// polarLayout возвращает центр и радиус круга диаграммы внутри панели
func (r *Renderer) polarLayout(x0, y0, size float64, withStats bool) (cx, cy, radius float64) {
	titleH := r.px(r.cfg.Title.Size)
	tickH := r.px(r.cfg.XTick.Size)

	top := y0 + titleH*2
	if withStats {
		top += tickH * 1.5
	}
	bottom := y0 + size - tickH*1.5

	cx = x0 + size/2
	cy = (top + bottom) / 2
	radius = math.Min(size/2-tickH*2, (bottom-top)/2-tickH)
	if radius <= 0 {
		radius = size / 4
	}
	return cx, cy, radius
}

func (r *Renderer) drawPanel(dc *gg.Context, x0, y0, size float64, panel domain.PolarPanel) {
	titleH := r.px(r.cfg.Title.Size)
	tickH := r.px(r.cfg.XTick.Size)
	cx, cy, radius := r.polarLayout(x0, y0, size, r.cfg.ShowStats && panel.Summary != nil)

	// заголовок
	dc.SetFontFace(r.fonts.face(r.cfg.Title))
	dc.SetColor(withAlpha(r.cfg.EdgeColor, r.cfg.Title.Alpha))
	dc.DrawStringAnchored(strings.ToUpper(panel.Title), cx, y0+titleH, 0.5, 0.5)

	if r.cfg.ShowStats && panel.Summary != nil {
		dc.SetFontFace(r.fonts.face(FontStyle{Size: r.cfg.XTick.Size}))
		dc.SetColor(withAlpha(r.cfg.EdgeColor, 0.7))
		stats := fmt.Sprintf("dominant %.0f°   entropy %.3f   order %.3f",
			panel.Summary.DominantBearing, panel.Summary.Entropy, panel.Summary.Order)
		dc.DrawStringAnchored(stats, cx, y0+titleH*1.9, 0.5, 0.5)
	}

	// сетка: внешняя окружность и лучи через 45°
	dc.SetColor(r.cfg.GridColor)
	dc.SetLineWidth(r.px(r.cfg.GridWidth))
	for deg := 0.0; deg < 360; deg += 45 {
		a := compassToScreen(deg)
		dc.DrawLine(cx, cy, cx+radius*math.Cos(a), cy+radius*math.Sin(a))
		dc.Stroke()
	}
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()

	h := panel.Histogram
	limit := 0.0
	if h != nil {
		limit = h.Max()
	}

	if limit > 0 {
		// радиальные деления linspace(0, max, 5)
		for i := 1; i < 4; i++ {
			dc.DrawCircle(cx, cy, radius*float64(i)/4)
			dc.Stroke()
		}

		r.drawBars(dc, cx, cy, radius, h, limit)

		dc.SetFontFace(r.fonts.face(r.cfg.YTick))
		dc.SetColor(withAlpha(r.cfg.EdgeColor, r.cfg.YTick.Alpha))
		a := compassToScreen(22.5)
		for i := 1; i <= 4; i++ {
			rr := radius * float64(i) / 4
			label := fmt.Sprintf("%.2f", limit*float64(i)/4)
			dc.DrawStringAnchored(label, cx+rr*math.Cos(a), cy+rr*math.Sin(a), 0, 0.5)
		}
	}

	// подписи сторон света
	dc.SetFontFace(r.fonts.face(r.cfg.XTick))
	dc.SetColor(withAlpha(r.cfg.EdgeColor, r.cfg.XTick.Alpha))
	for i, label := range []string{"N", "", "E", "", "S", "", "W", ""} {
		if label == "" {
			continue
		}
		a := compassToScreen(float64(i) * 45)
		rr := radius + tickH*0.9
		dc.DrawStringAnchored(label, cx+rr*math.Cos(a), cy+rr*math.Sin(a), 0.5, 0.5)
	}
}

func (r *Renderer) drawBars(dc *gg.Context, cx, cy, radius float64, h *domain.Histogram, limit float64) {
	width := 360 / float64(h.Slices)
	centers := h.Centers()

	dc.SetLineWidth(r.px(r.cfg.EdgeWidth))
	for i, freq := range h.Frequencies {
		if freq <= 0 {
			continue
		}
		rr := radius * freq / limit
		a1 := compassToScreen(centers[i] - width/2)
		a2 := compassToScreen(centers[i] + width/2)

		dc.NewSubPath()
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, rr, a1, a2)
		dc.ClosePath()

		dc.SetColor(withAlpha(r.cfg.BarColor, r.cfg.BarAlpha))
		dc.FillPreserve()
		dc.SetColor(r.cfg.EdgeColor)
		dc.Stroke()
	}
}

// StreetMap рисует ребра сети в равнопромежуточной проекции по bbox сети
func (r *Renderer) StreetMap(network *domain.StreetNetwork) image.Image {
	height := int(math.Round(r.cfg.MapSize * r.cfg.DPI))

	if network == nil || network.BBox.IsEmpty() {
		dc := gg.NewContext(height, height)
		dc.SetColor(r.cfg.MapBackground)
		dc.Clear()
		return dc.Image()
	}

	bbox := network.BBox
	kx := math.Cos(gg.Radians((bbox.MinLat + bbox.MaxLat) / 2))
	spanX := (bbox.MaxLon - bbox.MinLon) * kx
	spanY := bbox.MaxLat - bbox.MinLat

	aspect := 1.0
	if spanX > 0 && spanY > 0 {
		aspect = math.Max(0.25, math.Min(4, spanX/spanY))
	}
	width := int(math.Round(float64(height) * aspect))

	margin := float64(height) * 0.02
	innerW := float64(width) - 2*margin
	innerH := float64(height) - 2*margin
	scale := math.Inf(1)
	if spanX > 0 {
		scale = innerW / spanX
	}
	if spanY > 0 {
		scale = math.Min(scale, innerH/spanY)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	offX := margin + (innerW-spanX*scale)/2
	offY := margin + (innerH-spanY*scale)/2

	project := func(p domain.Point) (float64, float64) {
		x := offX + (p.Lon-bbox.MinLon)*kx*scale
		y := offY + (bbox.MaxLat-p.Lat)*scale
		return x, y
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(r.cfg.MapBackground)
	dc.Clear()
	dc.SetColor(r.cfg.MapEdgeColor)
	dc.SetLineWidth(r.px(r.cfg.MapEdgeWidth))
	dc.SetLineCap(gg.LineCapRound)

	var drawn int
	for _, edge := range network.Edges {
		if len(edge.Geometry) < 2 {
			continue
		}
		dc.NewSubPath()
		for i, p := range edge.Geometry {
			x, y := project(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		drawn++
	}

	r.logger.Debug("Street map rendered",
		zap.String("place", network.Place),
		zap.Int("segments", drawn),
		zap.Int("width", width),
		zap.Int("height", height))

	return dc.Image()
}
