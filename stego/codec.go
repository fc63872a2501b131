package stego

import (
	"encoding/base64"
	"fmt"
	"sync"

	"image-steganography-backend/crypto"
	"image-steganography-backend/imaging"
)

// EncodeInput is one carrier slot in an encode batch.
type EncodeInput struct {
	Carrier []byte // encoded carrier image bytes, any registered format
	Text    string // optional text payload
	Secret  []byte // optional nested image payload, encoded image bytes
	Key     string
}

// HasPayload reports whether the slot carries anything to hide.
func (in *EncodeInput) HasPayload() bool {
	return in.Text != "" || len(in.Secret) > 0
}

// EncodeOutput is the per-carrier result of a successful encode.
type EncodeOutput struct {
	PNG           []byte
	Width         int
	Height        int
	Capacity      int // embeddable bytes for this carrier
	PSNR          float64
	HasSecret     bool
	SecretWidth   int
	SecretHeight  int
	SecretDropped bool // nested image failed to decode and was skipped
}

// DecodeOutput is the per-carrier result of a successful decode.
type DecodeOutput struct {
	Hidden       bool // false means no hidden data was found
	Text         string
	ImageDataURI string // base64 data URI of the recovered nested image
	ImageWidth   int
	ImageHeight  int
}

// EncodeCarrier runs the full encode pipeline for one carrier: build
// segments, encrypt each, frame them and embed the frame's bits.
// A carrier with no payload passes through with its pixels untouched.
func EncodeCarrier(in EncodeInput) (*EncodeOutput, error) {
	if in.HasPayload() && in.Key == "" {
		return nil, ErrMissingKey
	}

	img, _, err := imaging.DecodeRGBA(in.Carrier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	out := &EncodeOutput{
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
		Capacity: Capacity(img),
	}

	if in.HasPayload() {
		cipher, err := crypto.NewAESGCMCipher(in.Key)
		if err != nil {
			return nil, err
		}

		var segments []Segment
		if in.Text != "" {
			ciphertext, err := cipher.Encrypt([]byte(in.Text))
			if err != nil {
				return nil, fmt.Errorf("failed to encrypt text payload: %w", err)
			}
			segments = append(segments, Segment{Kind: KindText, Ciphertext: ciphertext})
		}
		if len(in.Secret) > 0 {
			// Probe before encrypting: an undecodable nested image is
			// dropped best-effort, the carrier still gets its text.
			width, height, _, err := imaging.Probe(in.Secret)
			if err != nil {
				out.SecretDropped = true
			} else {
				ciphertext, err := cipher.Encrypt(in.Secret)
				if err != nil {
					return nil, fmt.Errorf("failed to encrypt image payload: %w", err)
				}
				segments = append(segments, Segment{Kind: KindImage, Ciphertext: ciphertext})
				out.HasSecret = true
				out.SecretWidth = width
				out.SecretHeight = height
			}
		}

		if len(segments) > 0 {
			original := imaging.CloneRGBA(img)
			if err := Embed(img, BuildFrame(segments)); err != nil {
				return nil, err
			}
			out.PSNR = imaging.PSNR(original, img)
		}
	}

	out.PNG, err = imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DecodeCarrier runs the full decode pipeline for one carrier: extract
// the low bits, parse the frame, decrypt each segment with the given
// key and classify by the segment's kind byte. Nested-image dimensions
// are probed from the recovered bytes, never trusted from metadata.
func DecodeCarrier(carrier []byte, key string) (*DecodeOutput, error) {
	if key == "" {
		return nil, ErrMissingKey
	}

	img, err := imaging.DecodeCarrier(carrier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	segments, found, err := ParseFrame(Extract(img))
	if err != nil {
		return nil, err
	}
	if !found || len(segments) == 0 {
		return &DecodeOutput{}, nil
	}

	cipher, err := crypto.NewAESGCMCipher(key)
	if err != nil {
		return nil, err
	}

	out := &DecodeOutput{Hidden: true}
	for _, seg := range segments {
		plaintext, err := cipher.Decrypt(seg.Ciphertext)
		if err != nil {
			return nil, err
		}

		switch seg.Kind {
		case KindText:
			out.Text = string(plaintext)
		case KindImage:
			width, height, format, err := imaging.Probe(plaintext)
			if err != nil {
				return nil, fmt.Errorf("%w: recovered image payload: %v", ErrInvalidImage, err)
			}
			out.ImageDataURI = fmt.Sprintf("data:image/%s;base64,%s",
				format, base64.StdEncoding.EncodeToString(plaintext))
			out.ImageWidth = width
			out.ImageHeight = height
		}
	}

	return out, nil
}

// EncodeResult pairs one carrier's encode outcome with its error.
type EncodeResult struct {
	Output *EncodeOutput
	Err    error
}

// DecodeResult pairs one carrier's decode outcome with its error.
type DecodeResult struct {
	Output *DecodeOutput
	Err    error
}

// EncodeBatch processes every carrier slot concurrently and returns
// outcomes in input order. Slots share no mutable state, so a failure
// on one never affects another; the call blocks until all settle.
func EncodeBatch(inputs []EncodeInput) []EncodeResult {
	results := make([]EncodeResult, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := EncodeCarrier(inputs[i])
			results[i] = EncodeResult{Output: out, Err: err}
		}(i)
	}
	wg.Wait()

	return results
}

// DecodeBatch mirrors EncodeBatch for the decode pipeline.
func DecodeBatch(carriers [][]byte, keys []string) []DecodeResult {
	results := make([]DecodeResult, len(carriers))

	var wg sync.WaitGroup
	for i := range carriers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := DecodeCarrier(carriers[i], keys[i])
			results[i] = DecodeResult{Output: out, Err: err}
		}(i)
	}
	wg.Wait()

	return results
}
