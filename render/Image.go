package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/gemgrid/environment"
	"github.com/samuelfneumann/gemgrid/environment/gridworld"
	"github.com/samuelfneumann/gemgrid/experiment"
)

// DefaultCellSize is the default width and height of a cell in pixels
const DefaultCellSize int = 64

// Colours used in images
var (
	BackgroundColour = color.RGBA{0xf5, 0xf5, 0xf0, 0xff}
	GridLineColour   = color.RGBA{0x40, 0x40, 0x40, 0xff}
	StartColour      = color.RGBA{0x9e, 0xc5, 0xfe, 0xff}
	GemColour        = color.RGBA{0x2e, 0xb8, 0x72, 0xff}
	SkullColour      = color.RGBA{0xd6, 0x33, 0x3a, 0xff}
	PathColour       = color.RGBA{0xf2, 0xb1, 0x34, 0xff}
	AgentColour      = color.RGBA{0x1d, 0x35, 0x57, 0xff}
)

// Image draws s on a new gg.Context with cells of cellSize pixels. If
// cellSize < 1, DefaultCellSize is used.
func Image(s experiment.Snapshot, cellSize int) *gg.Context {
	if cellSize < 1 {
		cellSize = DefaultCellSize
	}
	size := float64(cellSize)
	dc := gg.NewContext(cellSize*gridworld.GridSize,
		cellSize*gridworld.GridSize)

	dc.SetColor(BackgroundColour)
	dc.Clear()

	// Cells
	for r := 0; r < gridworld.GridSize; r++ {
		for c := 0; c < gridworld.GridSize; c++ {
			var fill color.Color
			switch s.Grid[r][c] {
			case gridworld.Start:
				fill = StartColour
			case gridworld.Gem:
				fill = GemColour
			case gridworld.Skull:
				fill = SkullColour
			default:
				continue
			}
			dc.DrawRectangle(float64(c)*size, float64(r)*size, size, size)
			dc.SetColor(fill)
			dc.Fill()
		}
	}

	// Grid lines
	dc.SetColor(GridLineColour)
	dc.SetLineWidth(2)
	for i := 0; i <= gridworld.GridSize; i++ {
		offset := float64(i) * size
		dc.DrawLine(offset, 0, offset, size*float64(gridworld.GridSize))
		dc.DrawLine(0, offset, size*float64(gridworld.GridSize), offset)
	}
	dc.Stroke()

	// Optimal path, through cell centres
	if s.ShowOptimalPath && len(s.OptimalPath) > 1 {
		dc.SetColor(PathColour)
		dc.SetLineWidth(size / 8)
		for i, p := range s.OptimalPath {
			x, y := centre(p, size)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	// Agent
	x, y := centre(s.Position, size)
	dc.DrawCircle(x, y, size/4)
	dc.SetColor(AgentColour)
	dc.Fill()

	return dc
}

func centre(p environment.Position, size float64) (x, y float64) {
	return (float64(p.Col) + 0.5) * size, (float64(p.Row) + 0.5) * size
}

// EncodePNG draws s and writes it to w as a PNG
func EncodePNG(w io.Writer, s experiment.Snapshot, cellSize int) error {
	if err := Image(s, cellSize).EncodePNG(w); err != nil {
		return fmt.Errorf("encodePNG: %w", err)
	}
	return nil
}

// SavePNG draws s and saves it as a PNG at filename
func SavePNG(filename string, s experiment.Snapshot, cellSize int) error {
	if err := Image(s, cellSize).SavePNG(filename); err != nil {
		return fmt.Errorf("savePNG: %w", err)
	}
	return nil
}
