package formats

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"

	_ "github.com/jbuchbinder/gopnm"
	"github.com/vovakirdan/robopath/internal/route"
	_ "golang.org/x/image/bmp"
)

// DarkThreshold is the 8-bit luminance below which a pixel is an obstacle.
const DarkThreshold = 128

// ParseImage decodes an occupancy image, one pixel per cell. Dark pixels are
// obstacles. In colour images a pure green pixel marks the start and a pure
// red one the goal; otherwise the corners are used like in YAML maps.
func ParseImage(data []byte, id string) (Map, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Map{}, fmt.Errorf("image decode: %w", err)
	}

	b := img.Bounds()
	m := Map{
		ID:       id,
		Name:     id,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Start:    route.C(0, 0),
		Goal:     route.C(b.Dx()-1, b.Dy()-1),
		Metadata: map[string]string{"format": format},
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := route.C(x-b.Min.X, y-b.Min.Y)
			switch classify(img.At(x, y)) {
			case pixelObstacle:
				m.Obstacles = append(m.Obstacles, c)
			case pixelStart:
				m.Start = c
			case pixelGoal:
				m.Goal = c
			}
		}
	}

	return m, nil
}

type pixelKind uint8

const (
	pixelFree pixelKind = iota
	pixelObstacle
	pixelStart
	pixelGoal
)

func classify(c color.Color) pixelKind {
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := r>>8, g>>8, b>>8

	switch {
	case g8 >= 200 && r8 < 64 && b8 < 64:
		return pixelStart
	case r8 >= 200 && g8 < 64 && b8 < 64:
		return pixelGoal
	}

	gray := color.GrayModel.Convert(c).(color.Gray)
	if gray.Y < DarkThreshold {
		return pixelObstacle
	}
	return pixelFree
}
