// Package inspector draws live mesh statistics as line graphs.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Series indices
const (
	SeriesLinks = iota
	SeriesParticles
	SeriesFrameMS
	numSeries
)

// Panel colors
var (
	colorTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGrid    = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorBorder  = rl.Color{R: 60, G: 60, B: 70, A: 255}
	colorText    = rl.Color{R: 180, G: 180, B: 190, A: 255}
	colorDim     = rl.Color{R: 110, G: 110, B: 120, A: 255}
)

// StatsPanel plots links per frame, particle count and frame time.
// Each series is scaled to its own range.
type StatsPanel struct {
	X, Y, W, H int32

	history [numSeries]*History
	visible [numSeries]bool
	names   [numSeries]string
	colors  [numSeries]rl.Color
}

// NewStatsPanel creates a panel at the given rectangle keeping size samples.
func NewStatsPanel(x, y, w, h int32, size int) *StatsPanel {
	p := &StatsPanel{X: x, Y: y, W: w, H: h}
	for i := range p.history {
		p.history[i] = NewHistory(size)
		p.visible[i] = true
	}
	p.names = [numSeries]string{"links", "particles", "frame ms"}
	p.colors = [numSeries]rl.Color{
		{R: 125, G: 211, B: 252, A: 255},
		{R: 150, G: 255, B: 150, A: 255},
		{R: 255, G: 150, B: 130, A: 255},
	}
	return p
}

// Record adds one frame's sample to every series.
func (p *StatsPanel) Record(links, particles int, frameMS float64) {
	p.history[SeriesLinks].Push(float64(links))
	p.history[SeriesParticles].Push(float64(particles))
	p.history[SeriesFrameMS].Push(frameMS)
}

// History returns the samples of one series.
func (p *StatsPanel) History(series int) *History {
	return p.history[series]
}

// Toggle flips a series' visibility.
func (p *StatsPanel) Toggle(series int) {
	p.visible[series] = !p.visible[series]
}

// legendY is the top of the legend row.
func (p *StatsPanel) legendY() int32 {
	return p.Y + p.H - 22
}

// HandleInput toggles series when their legend entry is clicked.
func (p *StatsPanel) HandleInput() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	mx, my := rl.GetMouseX(), rl.GetMouseY()
	y := p.legendY()
	for i := 0; i < numSeries; i++ {
		x := p.X + 10 + int32(i)*90
		if mx >= x && mx < x+85 && my >= y && my < y+18 {
			p.Toggle(i)
			return
		}
	}
}

// Draw renders the panel.
func (p *StatsPanel) Draw() {
	rl.DrawRectangle(p.X, p.Y, p.W, p.H, colorPanelBg)
	rl.DrawRectangleLines(p.X, p.Y, p.W, p.H, colorBorder)
	rl.DrawText("MESH", p.X+10, p.Y+6, 14, colorTitle)

	if p.history[SeriesLinks].Len() == 0 {
		rl.DrawText("Waiting for frames...", p.X+80, p.Y+6, 12, colorDim)
		return
	}

	gx, gy := p.X+10, p.Y+24
	gw, gh := p.W-20, p.H-52
	rl.DrawRectangle(gx, gy, gw, gh, colorGraphBg)
	rl.DrawRectangleLines(gx, gy, gw, gh, colorBorder)
	for i := int32(1); i < 4; i++ {
		rl.DrawLine(gx, gy+gh*i/4, gx+gw, gy+gh*i/4, colorGrid)
	}

	for s := 0; s < numSeries; s++ {
		if p.visible[s] {
			p.drawSeries(gx, gy, gw, gh, s)
		}
	}
	p.drawLegend(p.X+10, p.legendY())
}

// drawSeries draws one series as a polyline scaled to its own range.
func (p *StatsPanel) drawSeries(x, y, w, h int32, series int) {
	hist := p.history[series]
	n := hist.Len()
	if n < 2 {
		return
	}
	lo, hi := hist.Range()
	color := p.colors[series]

	var prevX, prevY int32
	for i := 0; i < n; i++ {
		px := x + int32(float64(i)*float64(w)/float64(n-1))
		py := y + h - int32((hist.At(i)-lo)/(hi-lo)*float64(h))
		py = min(max(py, y), y+h)
		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawLegend draws series names with their latest value.
func (p *StatsPanel) drawLegend(x, y int32) {
	for i := 0; i < numSeries; i++ {
		ix := x + int32(i)*90
		color, text := p.colors[i], colorText
		if !p.visible[i] {
			color.A = 80
			text = colorDim
		}
		rl.DrawRectangle(ix, y+2, 10, 10, color)
		rl.DrawText(fmt.Sprintf("%s %s", p.names[i], formatValue(p.history[i].Last())), ix+14, y, 10, text)
	}
}

// formatValue formats a sample for the legend.
func formatValue(v float64) string {
	switch {
	case v >= 10000:
		return fmt.Sprintf("%.0fk", v/1000)
	case v >= 100:
		return fmt.Sprintf("%.0f", v)
	case v >= 10:
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
