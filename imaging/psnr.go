package imaging

import (
	"image"
	"math"
)

// PSNR measures embedding quality between the original carrier and its
// stego counterpart over the raw RGBA byte planes. Identical images
// yield +Inf.
func PSNR(original, stego *image.RGBA) float64 {
	if len(original.Pix) != len(stego.Pix) {
		return 0.0
	}

	if len(original.Pix) == 0 {
		return 0.0
	}

	var mse float64
	for i := range original.Pix {
		diff := float64(original.Pix[i]) - float64(stego.Pix[i])
		mse += diff * diff
	}
	mse /= float64(len(original.Pix))

	// If MSE is 0, images are identical
	if mse == 0 {
		return math.Inf(1)
	}

	// PSNR = 20 * log10(MAX_CHANNEL_VALUE / sqrt(MSE))
	maxChannelValue := 255.0
	return 20 * math.Log10(maxChannelValue/math.Sqrt(mse))
}
