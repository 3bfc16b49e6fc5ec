package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"gridcaster/engine"
	"gridcaster/level"
)

// Textures holds the wall atlas, its darkened copy for vertical hits, and one
// sprite sheet per agent kind.
type Textures struct {
	walls     *ebiten.Image
	wallsDark *ebiten.Image
	agent     *ebiten.Image
	fastAgent *ebiten.Image
	sheet     engine.SpriteSheet
}

func NewTextures(sheet engine.SpriteSheet) *Textures {
	atlas := wallAtlas()
	return &Textures{
		walls:     ebiten.NewImageFromImage(atlas),
		wallsDark: ebiten.NewImageFromImage(darkenImage(atlas, level.DarkRatio)),
		agent:     ebiten.NewImageFromImage(agentSheet(sheet, color.RGBA{40, 160, 60, 255})),
		fastAgent: ebiten.NewImageFromImage(agentSheet(sheet, color.RGBA{60, 90, 220, 255})),
		sheet:     sheet,
	}
}

func (t *Textures) wallAtlas(vertical bool) *ebiten.Image {
	if vertical {
		return t.wallsDark
	}
	return t.walls
}

func (t *Textures) agentSheet(fast bool) *ebiten.Image {
	if fast {
		return t.fastAgent
	}
	return t.agent
}

// wallAtlas draws TextureCount procedural bands side by side, one tile wide each.
func wallAtlas() *image.RGBA {
	const ts = level.TileSize
	img := image.NewRGBA(image.Rect(0, 0, ts*level.TextureCount, ts))

	bands := []func(x, y int) color.RGBA{
		// red brick
		func(x, y int) color.RGBA {
			row := y / 16
			off := 0
			if row%2 == 1 {
				off = 16
			}
			if y%16 == 0 || (x+off)%32 == 0 {
				return color.RGBA{200, 200, 190, 255}
			}
			return color.RGBA{150, 40, 30, 255}
		},
		// stone blocks
		func(x, y int) color.RGBA {
			if x%32 == 0 || y%32 == 0 {
				return color.RGBA{60, 60, 60, 255}
			}
			v := uint8(110 + (x*7+y*13)%30)
			return color.RGBA{v, v, v, 255}
		},
		// wood planks
		func(x, y int) color.RGBA {
			if x%16 == 0 {
				return color.RGBA{70, 40, 15, 255}
			}
			v := uint8(120 + (y*3+x)%25)
			return color.RGBA{v, v / 2, 20, 255}
		},
		// blue tiles
		func(x, y int) color.RGBA {
			if (x/8+y/8)%2 == 0 {
				return color.RGBA{30, 60, 160, 255}
			}
			return color.RGBA{50, 100, 200, 255}
		},
		// mossy stripes
		func(x, y int) color.RGBA {
			if (x+y)%12 < 3 {
				return color.RGBA{40, 110, 40, 255}
			}
			return color.RGBA{90, 90, 70, 255}
		},
		// metal panel
		func(x, y int) color.RGBA {
			edge := x < 2 || y < 2 || x > ts-3 || y > ts-3
			rivet := (x == 6 || x == ts-7) && (y == 6 || y == ts-7)
			if edge || rivet {
				return color.RGBA{200, 200, 210, 255}
			}
			return color.RGBA{120, 125, 135, 255}
		},
	}

	for i, band := range bands {
		for y := 0; y < ts; y++ {
			for x := 0; x < ts; x++ {
				img.SetRGBA(i*ts+x, y, band(x, y))
			}
		}
	}
	return img
}

func darkenImage(src *image.RGBA, ratio float64) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(c.R) * ratio),
				G: uint8(float64(c.G) * ratio),
				B: uint8(float64(c.B) * ratio),
				A: c.A,
			})
		}
	}
	return dst
}

// agentSheet draws SheetRows frames stacked vertically. Row 0 faces the viewer;
// rows step a quarter turn every two rows, so the eyes slide across the body
// and vanish on the back-facing rows.
func agentSheet(sheet engine.SpriteSheet, body color.RGBA) *image.RGBA {
	w, h := sheet.FrameW, sheet.FrameH
	img := image.NewRGBA(image.Rect(0, 0, w, h*engine.SheetRows))

	// horizontal eye offset per row, in eighths of the frame
	eyeShift := []int{0, 2, 3, -9, -9, -9, -3, -2}
	eye := color.RGBA{250, 250, 250, 255}

	for row := 0; row < engine.SheetRows; row++ {
		top := row * h
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx := float64(x-w/2) / float64(w/3)
				dy := float64(y-h/2) / float64(h/2-2)
				if dx*dx+dy*dy <= 1 {
					img.SetRGBA(x, top+y, body)
				}
			}
		}

		shift := eyeShift[row]
		if shift == -9 {
			continue
		}
		cx := w/2 + shift*w/8
		for _, ex := range []int{cx - w/8, cx + w/8} {
			for y := h/3 - 2; y < h/3+2; y++ {
				for x := ex - 2; x < ex+2; x++ {
					if x >= 0 && x < w {
						img.SetRGBA(x, top+y, eye)
					}
				}
			}
		}
	}
	return img
}
