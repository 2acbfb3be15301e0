package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/colornames"
)

const (
	TileSize     = 32
	MarioFrameW  = 32
	MarioFrameH  = 48
	MarioFrames  = 9
	tilesetTiles = 5
)

// RGBA renders the image stored under key.
func RGBA(key string) (*image.RGBA, error) {
	switch key {
	case KeyTiles:
		return tilesetImage(), nil
	case KeyMario:
		return marioSheet(), nil
	case KeyCoin:
		return coinImage(), nil
	}
	if _, err := KindOf(key); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q is not an image", ErrUnknownKey, key)
}

// tilesetImage lays out, left to right: ground, coin, lava, gem, stone.
func tilesetImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize*tilesetTiles, TileSize))

	ground := tileRect(0)
	fill(img, ground, colornames.Saddlebrown)
	fill(img, image.Rect(ground.Min.X, 0, ground.Max.X, 6), colornames.Forestgreen)

	drawCoin(img, tileRect(1).Min, colornames.Gold, colornames.Darkgoldenrod)

	lava := tileRect(2)
	fill(img, lava, colornames.Orangered)
	for x := lava.Min.X; x < lava.Max.X; x++ {
		crest := 4 + int(3*math.Sin(float64(x)/4))
		fill(img, image.Rect(x, 0, x+1, crest), colornames.Orange)
	}

	gem := tileRect(3)
	cx, cy := gem.Min.X+TileSize/2, TileSize/2
	for y := 4; y < TileSize-4; y++ {
		half := 12 - abs(y-cy)
		if half <= 0 {
			continue
		}
		fill(img, image.Rect(cx-half, y, cx+half, y+1), colornames.Deepskyblue)
	}

	stone := tileRect(4)
	fill(img, stone, colornames.Slategray)
	for _, y := range []int{10, 21} {
		fill(img, image.Rect(stone.Min.X, y, stone.Max.X, y+1), colornames.Dimgray)
	}
	return img
}

func coinImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	drawCoin(img, image.Point{}, colornames.Gold, colornames.Darkgoldenrod)
	return img
}

// marioSheet has nine 32x48 frames: four facing left, one facing front,
// four facing right.
func marioSheet() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, MarioFrameW*MarioFrames, MarioFrameH))
	for f := 0; f < MarioFrames; f++ {
		ox := f * MarioFrameW
		facing := 0
		switch {
		case f < 4:
			facing = -1
		case f > 4:
			facing = 1
		}
		stride := []int{0, 3, 0, -3}[f%4]

		fill(img, image.Rect(ox+8, 2, ox+24, 9), colornames.Red)
		fill(img, image.Rect(ox+8+facing*4, 7, ox+24+facing*4, 10), colornames.Red)
		fill(img, image.Rect(ox+9, 10, ox+23, 20), colornames.Peachpuff)
		if facing != 0 {
			eye := ox + 16 + facing*4
			fill(img, image.Rect(eye, 13, eye+2, 15), color.Black)
		} else {
			fill(img, image.Rect(ox+12, 13, ox+14, 15), color.Black)
			fill(img, image.Rect(ox+18, 13, ox+20, 15), color.Black)
		}
		fill(img, image.Rect(ox+7, 20, ox+25, 36), colornames.Red)
		fill(img, image.Rect(ox+10, 24, ox+22, 38), colornames.Royalblue)
		fill(img, image.Rect(ox+9+stride, 38, ox+15+stride, 46), colornames.Royalblue)
		fill(img, image.Rect(ox+17-stride, 38, ox+23-stride, 46), colornames.Royalblue)
		fill(img, image.Rect(ox+8+stride, 45, ox+15+stride, 48), colornames.Saddlebrown)
		fill(img, image.Rect(ox+17-stride, 45, ox+24-stride, 48), colornames.Saddlebrown)
	}
	return img
}

func drawCoin(img *image.RGBA, at image.Point, face, rim color.Color) {
	const r = 11.0
	c := float64(TileSize) / 2
	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			switch {
			case d <= r-2:
				img.Set(at.X+x, at.Y+y, face)
			case d <= r:
				img.Set(at.X+x, at.Y+y, rim)
			}
		}
	}
}

func tileRect(i int) image.Rectangle {
	return image.Rect(i*TileSize, 0, (i+1)*TileSize, TileSize)
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
