// Package stego implements LSB embedding of encrypted payload frames
// into the red, green and blue channels of a carrier image.
package stego

import (
	"fmt"
	"image"
)

// Bits carried per pixel: the low bit of R, G and B. Alpha is never touched.
const channelsPerPixel = 3

// Capacity returns how many whole bytes of frame data the carrier can hold.
func Capacity(img *image.RGBA) int {
	pixels := img.Bounds().Dx() * img.Bounds().Dy()
	return pixels * channelsPerPixel / 8
}

// Embed overwrites the low bit of each R, G and B channel in raster
// order (row-major, left to right, top to bottom) with the frame's
// bits, MSB-first per byte. The carrier is modified in place; alpha
// bytes stay byte-identical. Capacity is checked before any pixel is
// written, so a too-large frame never partially embeds.
func Embed(img *image.RGBA, frame []byte) error {
	bounds := img.Bounds()
	needed := len(frame) * 8
	available := bounds.Dx() * bounds.Dy() * channelsPerPixel
	if needed > available {
		return fmt.Errorf("%w: frame needs %d bits, carrier holds %d", ErrCapacityExceeded, needed, available)
	}

	bits := bytesToBits(frame)

	bitIndex := 0
	for y := bounds.Min.Y; y < bounds.Max.Y && bitIndex < len(bits); y++ {
		for x := bounds.Min.X; x < bounds.Max.X && bitIndex < len(bits); x++ {
			idx := img.PixOffset(x, y)
			for ch := 0; ch < channelsPerPixel && bitIndex < len(bits); ch++ {
				img.Pix[idx+ch] = (img.Pix[idx+ch] &^ 1) | bits[bitIndex]
				bitIndex++
			}
		}
	}

	return nil
}

// Extract reads the low bit of R, G and B of every pixel in the same
// raster order used by Embed and regroups them into bytes, MSB first.
// A final group shorter than 8 bits is discarded.
func Extract(img *image.RGBA) []byte {
	bounds := img.Bounds()
	bits := make([]byte, 0, bounds.Dx()*bounds.Dy()*channelsPerPixel)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			idx := img.PixOffset(x, y)
			bits = append(bits, img.Pix[idx]&1, img.Pix[idx+1]&1, img.Pix[idx+2]&1)
		}
	}

	return bitsToBytes(bits)
}

func bytesToBits(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>i)&1)
		}
	}
	return bits
}

func bitsToBytes(bits []byte) []byte {
	out := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var b byte
		for j := range 8 {
			b = (b << 1) | (bits[i+j] & 1)
		}
		out = append(out, b)
	}
	return out
}
