// Package imaging handles carrier decode, PNG re-encode and dimension
// probing for the steganography codec.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"
)

// ErrLossyCarrier is returned when a decode-side carrier arrives in a
// format that does not preserve exact channel bytes. LSB data cannot
// survive lossy re-encoding, so such carriers are rejected outright.
var ErrLossyCarrier = errors.New("imaging: carrier format does not preserve pixel bytes")

// pixel-preserving formats accepted on the decode path
var losslessFormats = map[string]bool{
	"png": true,
}

// DecodeRGBA decodes any registered image format into an owned RGBA
// grid. The returned format name is as reported by image.Decode.
func DecodeRGBA(data []byte) (*image.RGBA, string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	return dst, format, nil
}

// DecodeCarrier decodes a stego carrier on the extraction path,
// rejecting lossy formats whose low bits are meaningless.
func DecodeCarrier(data []byte) (*image.RGBA, error) {
	img, format, err := DecodeRGBA(data)
	if err != nil {
		return nil, err
	}
	if !losslessFormats[format] {
		return nil, fmt.Errorf("%w: %s", ErrLossyCarrier, format)
	}
	return img, nil
}

// EncodePNG re-encodes an RGBA grid into PNG bytes for download.
func EncodePNG(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Probe reports an image's pixel dimensions and format without
// decoding the full raster.
func Probe(data []byte) (width, height int, format string, err error) {
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("failed to probe image: %w", err)
	}
	return config.Width, config.Height, format, nil
}

// CloneRGBA copies an RGBA grid, used to keep the original pixels
// around for quality measurement after in-place embedding.
func CloneRGBA(img *image.RGBA) *image.RGBA {
	clone := image.NewRGBA(img.Bounds())
	copy(clone.Pix, img.Pix)
	return clone
}
