// Package chartlib renders frequency tables into PNG charts: single bar
// charts, per-book faceted grids and seeded word clouds. Rendering never
// changes the tables it draws.
package chartlib

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"math/rand"
	"os"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mlombera94/harry-potter-text-analysis-part1/freqlib"
)

/***************************************************************************************************************
****************************************************************************************************************
* BAR CHARTS ***************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// BarOpts sizes a bar chart, zero values fall back to defaults
type BarOpts struct {
	Title  string
	Width  int
	Height int
}

func (o BarOpts) withDefaults() BarOpts {
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 512
	}
	return o
}

// BarChartTo renders the entries as a bar chart PNG onto w, order preserved
func BarChartTo(w io.Writer, entries []freqlib.KV, opts BarOpts) error {
	if len(entries) == 0 {
		return fmt.Errorf("bar chart %q: no values", opts.Title)
	}
	opts = opts.withDefaults()

	bars := make([]chart.Value, 0, len(entries))
	for _, keyValue := range entries {
		bars = append(bars, chart.Value{Label: keyValue.Key, Value: float64(keyValue.Value)})
	}

	// spread the bars over the full canvas width
	barTotal := opts.Width / len(entries)
	barWidth := barTotal * 2 / 3
	if barWidth < 4 {
		barWidth = 4
	}
	barSpacing := barTotal - barWidth
	if barSpacing < 2 {
		barSpacing = 2
	}

	graph := chart.BarChart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 30}},
		XAxis:      chart.Style{TextRotationDegrees: 45.0},
		Bars:       bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("bar chart %q: %w", opts.Title, err)
	}
	return nil
}

// BarChart renders the entries into a PNG file
func BarChart(path string, entries []freqlib.KV, opts BarOpts) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bar chart %q: %w", opts.Title, err)
	}
	defer file.Close()
	return BarChartTo(file, entries, opts)
}

/***************************************************************************************************************
****************************************************************************************************************
* FACETED BAR CHARTS *******************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// Panel is one facet of a grid chart
type Panel struct {
	Title   string
	Entries []freqlib.KV
}

// FacetOpts sizes a facet grid, zero values fall back to defaults
type FacetOpts struct {
	Columns     int
	PanelWidth  int
	PanelHeight int
}

func (o FacetOpts) withDefaults() FacetOpts {
	if o.Columns <= 0 {
		o.Columns = 2
	}
	if o.PanelWidth <= 0 {
		o.PanelWidth = 640
	}
	if o.PanelHeight <= 0 {
		o.PanelHeight = 400
	}
	return o
}

// FacetedBar renders one bar chart panel per entry group and composes them
// into a single PNG grid, panel order preserved left to right, top to bottom
func FacetedBar(path string, panels []Panel, opts FacetOpts) error {
	if len(panels) == 0 {
		return fmt.Errorf("faceted chart %s: no panels", path)
	}
	opts = opts.withDefaults()

	rows := (len(panels) + opts.Columns - 1) / opts.Columns
	dc := gg.NewContext(opts.Columns*opts.PanelWidth, rows*opts.PanelHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("faceted chart %s: %w", path, err)
	}

	for i, panel := range panels {
		x := (i % opts.Columns) * opts.PanelWidth
		y := (i / opts.Columns) * opts.PanelHeight

		if len(panel.Entries) == 0 {
			// keep the slot so the grid stays aligned w/ the book order
			dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 16}))
			dc.SetRGB(0.4, 0.4, 0.4)
			dc.DrawStringAnchored(panel.Title+" (no words)", float64(x)+float64(opts.PanelWidth)/2, float64(y)+float64(opts.PanelHeight)/2, 0.5, 0.5)
			continue
		}

		var buf bytes.Buffer
		barOpts := BarOpts{Title: panel.Title, Width: opts.PanelWidth, Height: opts.PanelHeight}
		if err := BarChartTo(&buf, panel.Entries, barOpts); err != nil {
			return err
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("faceted chart %s: %w", path, err)
		}
		dc.DrawImage(img, x, y)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("faceted chart %s: %w", path, err)
	}
	return nil
}

/***************************************************************************************************************
****************************************************************************************************************
* WORD CLOUD ***************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// CloudOpts sizes a word cloud, zero values fall back to defaults
type CloudOpts struct {
	Width         int
	Height        int
	MaxWords      int
	MinFontSize   float64
	MaxFontSize   float64
	RotationRatio float64 // share of words drawn vertically, 0..1
}

func (o CloudOpts) withDefaults() CloudOpts {
	if o.Width <= 0 {
		o.Width = 1600
	}
	if o.Height <= 0 {
		o.Height = 1000
	}
	if o.MaxWords <= 0 {
		o.MaxWords = 100
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = 14
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = 96
	}
	return o
}

var cloudPalette = []string{"#264653", "#2a9d8f", "#e76f51", "#e9c46a", "#8ab17d", "#6d597a"}

// RotationAngles assigns one rotation angle in degrees per word, vertical w/
// probability ratio. All randomness comes from rng, the same seed always
// produces the same assignment.
func RotationAngles(rng *rand.Rand, n int, ratio float64) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		if rng.Float64() < ratio {
			angles[i] = 90
		}
	}
	return angles
}

// box is an axis-aligned placement footprint
type box struct {
	x, y, w, h float64
}

func (b box) intersects(other box) bool {
	return b.x < other.x+other.w && other.x < b.x+b.w &&
		b.y < other.y+other.h && other.y < b.y+b.h
}

// WordCloudImage lays the most frequent words out on a spiral around the
// canvas center, font size scaled by the square root of the count. Words
// that fit nowhere are skipped. Identical entries, opts and rng seed produce
// an identical image.
func WordCloudImage(entries []freqlib.KV, opts CloudOpts, rng *rand.Rand) (image.Image, error) {
	opts = opts.withDefaults()

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if len(entries) == 0 {
		return dc.Image(), nil
	}

	words := make([]freqlib.KV, len(entries))
	copy(words, entries)
	sort.Slice(words, func(i, j int) bool {
		if words[i].Value == words[j].Value {
			return words[i].Key < words[j].Key
		}
		return words[i].Value > words[j].Value
	})
	if len(words) > opts.MaxWords {
		words = words[:opts.MaxWords]
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("word cloud: %w", err)
	}

	maxCount := float64(words[0].Value)
	if maxCount <= 0 {
		maxCount = 1
	}
	angles := RotationAngles(rng, len(words), opts.RotationRatio)

	var placed []box
	cx := float64(opts.Width) / 2
	cy := float64(opts.Height) / 2

	for i, keyValue := range words {
		// sqrt scaling keeps mid-frequency words readable next to the leaders
		scale := math.Sqrt(float64(keyValue.Value) / maxCount)
		size := opts.MinFontSize + (opts.MaxFontSize-opts.MinFontSize)*scale
		dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))

		tw, th := dc.MeasureString(keyValue.Key)
		bw, bh := tw, th
		if angles[i] != 0 {
			bw, bh = th, tw
		}

		x, y, ok := placeOnSpiral(rng, cx, cy, bw, bh, float64(opts.Width), float64(opts.Height), placed)
		if !ok {
			continue
		}
		placed = append(placed, box{x: x - bw/2, y: y - bh/2, w: bw, h: bh})

		dc.SetHexColor(cloudPalette[i%len(cloudPalette)])
		if angles[i] != 0 {
			dc.Push()
			dc.RotateAbout(gg.Radians(angles[i]), x, y)
			dc.DrawStringAnchored(keyValue.Key, x, y, 0.5, 0.5)
			dc.Pop()
		} else {
			dc.DrawStringAnchored(keyValue.Key, x, y, 0.5, 0.5)
		}
	}

	return dc.Image(), nil
}

// placeOnSpiral walks an archimedean spiral from the center until the
// footprint fits inside the canvas w/o touching any placed box
func placeOnSpiral(rng *rand.Rand, cx, cy, bw, bh, width, height float64, placed []box) (float64, float64, bool) {
	phase := rng.Float64() * 2 * math.Pi
	for t := 0.0; t < 120*math.Pi; t += 0.35 {
		r := 3.5 * t
		x := cx + r*math.Cos(t+phase)
		y := cy + r*math.Sin(t+phase)*0.65 // flatten toward the wide axis

		candidate := box{x: x - bw/2, y: y - bh/2, w: bw, h: bh}
		if candidate.x < 0 || candidate.y < 0 || candidate.x+candidate.w > width || candidate.y+candidate.h > height {
			continue
		}

		hit := false
		for _, p := range placed {
			if candidate.intersects(p) {
				hit = true
				break
			}
		}
		if !hit {
			return x, y, true
		}
	}
	return 0, 0, false
}

// WordCloud renders the word cloud into a PNG file
func WordCloud(path string, entries []freqlib.KV, opts CloudOpts, rng *rand.Rand) error {
	img, err := WordCloudImage(entries, opts, rng)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("word cloud %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("word cloud %s: %w", path, err)
	}
	return nil
}
