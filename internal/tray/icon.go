package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 64

var (
	iconBackground = color.RGBA{B: 0xff, A: 0xff}
	iconFill       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	iconOutline    = color.RGBA{A: 0xff}
)

// Image draws the tray icon: a blue square holding a white frame with a
// black outline from 16 to 48 inclusive.
func Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			c := iconBackground
			if x >= 16 && x <= 48 && y >= 16 && y <= 48 {
				c = iconFill
				if x == 16 || x == 48 || y == 16 || y == 48 {
					c = iconOutline
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// PNG encodes Image
func PNG() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Image()); err != nil {
		return nil
	}
	return buf.Bytes()
}

// Icon returns the bytes the platform tray expects
func Icon() []byte {
	return platformIcon(PNG())
}

// wrapICO embeds a PNG in a single-image ICO container
func wrapICO(data []byte) []byte {
	var buf bytes.Buffer
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 1})
	// ICONDIRENTRY; 0 width/height means 256, so 64 fits directly
	buf.Write([]byte{iconSize, iconSize, 0, 0})
	binary.Write(&buf, binary.LittleEndian, []uint16{1, 32})
	binary.Write(&buf, binary.LittleEndian, []uint32{uint32(len(data)), 6 + 16})
	buf.Write(data)
	return buf.Bytes()
}
