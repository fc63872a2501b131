package stego

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCarrier(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		// Uneven channel values so LSBs actually change.
		img.Pix[i] = byte(i*7 + 13)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff // opaque
	}
	return img
}

func TestEmbedExtract_RoundTrip(t *testing.T) {
	img := newCarrier(16, 16)
	frame := []byte("the quick brown fox")

	require.NoError(t, Embed(img, frame))
	assert.Equal(t, frame, Extract(img)[:len(frame)])
}

func TestEmbed_AlphaUntouched(t *testing.T) {
	img := newCarrier(8, 8)
	var alphaBefore []byte
	for i := 3; i < len(img.Pix); i += 4 {
		alphaBefore = append(alphaBefore, img.Pix[i])
	}

	require.NoError(t, Embed(img, []byte{0xff, 0xff, 0xff, 0xff}))

	var alphaAfter []byte
	for i := 3; i < len(img.Pix); i += 4 {
		alphaAfter = append(alphaAfter, img.Pix[i])
	}
	assert.Equal(t, alphaBefore, alphaAfter)
}

func TestEmbed_OnlyLowBitsChange(t *testing.T) {
	img := newCarrier(8, 8)
	original := append([]byte(nil), img.Pix...)

	require.NoError(t, Embed(img, []byte{0xaa, 0x55}))

	for i := range img.Pix {
		assert.Equal(t, original[i]&0xfe, img.Pix[i]&0xfe, "high bits must not change at %d", i)
	}
}

func TestCapacity(t *testing.T) {
	// 10x10 pixels * 3 channels = 300 bits = 37 whole bytes.
	assert.Equal(t, 37, Capacity(newCarrier(10, 10)))
	assert.Equal(t, 0, Capacity(newCarrier(0, 0)))
}

func TestEmbed_ExactFit(t *testing.T) {
	// 8x8 * 3 = 192 bits = exactly 24 bytes.
	img := newCarrier(8, 8)
	frame := make([]byte, 24)
	for i := range frame {
		frame[i] = byte(i)
	}

	require.NoError(t, Embed(img, frame))
	assert.Equal(t, frame, Extract(img))
}

func TestEmbed_OneByteOverCapacity(t *testing.T) {
	img := newCarrier(8, 8)
	original := append([]byte(nil), img.Pix...)

	err := Embed(img, make([]byte, 25))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	// Nothing may be partially written on failure.
	assert.Equal(t, original, img.Pix)
}

func TestExtract_Idempotent(t *testing.T) {
	img := newCarrier(12, 9)
	require.NoError(t, Embed(img, []byte("stable")))

	assert.Equal(t, Extract(img), Extract(img))
}

func TestBitHelpers(t *testing.T) {
	bits := bytesToBits([]byte{0xb2}) // 1011 0010
	assert.Equal(t, []byte{1, 0, 1, 1, 0, 0, 1, 0}, bits)

	assert.Equal(t, []byte{0xb2}, bitsToBytes(bits))

	// A trailing partial group is discarded.
	assert.Equal(t, []byte{0xb2}, bitsToBytes(append(bits, 1, 1, 1)))
	assert.Empty(t, bitsToBytes([]byte{1, 0, 1}))
}
