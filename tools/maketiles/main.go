// Command maketiles writes the 4-cell terrain atlas the game client
// loads: one TileWidth x TileHeight diamond per tile type in a single
// row, either procedurally shaded or resampled from per-type source
// images with -import.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/wrenware/isoworld/engine/iso"
	"github.com/wrenware/isoworld/engine/world"
)

type shadeFunc func(x, y int, rng *rand.Rand) color.RGBA

var shades = map[world.TileType]shadeFunc{
	world.TypeGrass: func(x, y int, rng *rand.Rand) color.RGBA {
		v := 120.0 + rng.Float64()*16 - 8 + 4.0*math.Sin(float64(x)*0.7+float64(y)*0.4)
		return color.RGBA{clamp8(v * 0.35), clamp8(v), clamp8(v * 0.3), 255}
	},
	world.TypeDirt: func(x, y int, rng *rand.Rand) color.RGBA {
		v := 120.0 + rng.Float64()*20 - 10 + 5.0*math.Sin(float64(x)*0.8+float64(y)*0.3)
		return color.RGBA{clamp8(v * 1.05), clamp8(v * 0.82), clamp8(v * 0.55), 255}
	},
	world.TypeSand: func(x, y int, rng *rand.Rand) color.RGBA {
		v := 185.0 + rng.Float64()*12 - 6 + 4.0*math.Sin(float64(x)*0.15+float64(y)*0.08)
		return color.RGBA{clamp8(v), clamp8(v * 0.92), clamp8(v * 0.65), 255}
	},
	world.TypeStone: func(x, y int, rng *rand.Rand) color.RGBA {
		v := 115.0 + rng.Float64()*18 - 9 + 8.0*math.Sin(float64(x)*0.4+float64(y)*0.6)
		return color.RGBA{clamp8(v * 0.95), clamp8(v * 0.92), clamp8(v * 0.88), 255}
	},
}

var typeNames = map[world.TileType]string{
	world.TypeGrass: "grass",
	world.TypeDirt:  "dirt",
	world.TypeSand:  "sand",
	world.TypeStone: "stone",
}

func main() {
	var (
		out       = flag.String("out", filepath.Join("assets", "tiles.png"), "atlas output path")
		importDir = flag.String("import", "", "directory of per-type PNGs (grass.png, ...) to resample instead of generating")
		seed      = flag.Int64("seed", 7, "shading noise seed")
	)
	flag.Parse()

	sheet := image.NewRGBA(image.Rect(0, 0, int(world.TypeCount)*iso.TileWidth, iso.TileHeight))

	for t := world.TileType(0); t < world.TypeCount; t++ {
		cell := image.Rect(int(t)*iso.TileWidth, 0, (int(t)+1)*iso.TileWidth, iso.TileHeight)
		if *importDir != "" {
			if err := importCell(sheet, cell, filepath.Join(*importDir, typeNames[t]+".png")); err != nil {
				log.Fatal(err)
			}
			continue
		}
		generateCell(sheet, cell, shades[t], *seed+int64(t))
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(f, sheet); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *out, sheet.Bounds().Dx(), sheet.Bounds().Dy())
}

// generateCell fills one atlas cell with a shaded diamond. Pixels
// outside the diamond stay transparent.
func generateCell(dst *image.RGBA, cell image.Rectangle, shade shadeFunc, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			lx, ly := x-cell.Min.X, y-cell.Min.Y
			d := diamondDist(lx, ly)
			if d > 1 {
				continue
			}
			c := shade(lx, ly, rng)
			if d > 0.82 { // darker rim reads as the tile edge
				c.R = uint8(float64(c.R) * 0.72)
				c.G = uint8(float64(c.G) * 0.72)
				c.B = uint8(float64(c.B) * 0.72)
			}
			dst.SetRGBA(x, y, c)
		}
	}
}

// importCell resamples one source image into an atlas cell and masks it
// to the diamond.
func importCell(dst *image.RGBA, cell image.Rectangle, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cell.Dx(), cell.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	for y := 0; y < cell.Dy(); y++ {
		for x := 0; x < cell.Dx(); x++ {
			if diamondDist(x, y) > 1 {
				continue
			}
			dst.SetRGBA(cell.Min.X+x, cell.Min.Y+y, scaled.RGBAAt(x, y))
		}
	}
	return nil
}

// diamondDist is the normalized L1 distance of a cell pixel center from
// the diamond center; values above 1 lie outside the diamond.
func diamondDist(x, y int) float64 {
	dx := math.Abs(float64(x)+0.5-float64(iso.TileWidth)/2) / (float64(iso.TileWidth) / 2)
	dy := math.Abs(float64(y)+0.5-float64(iso.TileHeight)/2) / (float64(iso.TileHeight) / 2)
	return dx + dy
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
