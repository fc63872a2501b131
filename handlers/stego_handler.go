// Package handlers is made to handle requests
package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"image-steganography-backend/crypto"
	"image-steganography-backend/imaging"
	"image-steganography-backend/models"
	"image-steganography-backend/stego"

	"github.com/gin-gonic/gin"
)

// MaxCarriers bounds one batch; the codec itself has no ceiling.
const MaxCarriers = 4

const maxFormMemory = 64 << 20 // 64MB

type StegoHandler struct{}

func NewStegoHandler() *StegoHandler {
	return &StegoHandler{}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Image steganography API is running",
		"version": "1.0.0",
	})
}

// EncodeImages embeds encrypted payloads into up to MaxCarriers carrier
// images. Form fields per slot i: file "carrier_<i>", "key_<i>",
// "text_<i>" and file "secret_<i>" (optional nested image). Missing
// keys block the whole batch before any encoding begins; transform
// failures are reported per carrier.
func (h *StegoHandler) EncodeImages(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	var inputs []stego.EncodeInput
	for i := range MaxCarriers {
		carrier, ok, err := readFormFile(c, fmt.Sprintf("carrier_%d", i))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.EncodeResponse{
				Success: false,
				Message: fmt.Sprintf("Failed to read carrier %d: %v", i, err),
			})
			return
		}
		if !ok {
			continue
		}

		secret, _, err := readFormFile(c, fmt.Sprintf("secret_%d", i))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.EncodeResponse{
				Success: false,
				Message: fmt.Sprintf("Failed to read secret image %d: %v", i, err),
			})
			return
		}

		inputs = append(inputs, stego.EncodeInput{
			Carrier: carrier,
			Text:    c.PostForm(fmt.Sprintf("text_%d", i)),
			Secret:  secret,
			Key:     c.PostForm(fmt.Sprintf("key_%d", i)),
		})
	}

	if len(inputs) == 0 {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: "At least one carrier image is required",
		})
		return
	}

	// Key validation is all-or-nothing: nothing is encoded until every
	// carrier that has content also has a usable key.
	for i, in := range inputs {
		if !in.HasPayload() {
			continue
		}
		if err := crypto.ValidateKey(in.Key); err != nil {
			c.JSON(http.StatusBadRequest, models.EncodeResponse{
				Success: false,
				Message: fmt.Sprintf("Invalid key for carrier %d: %v", i, err),
			})
			return
		}
	}

	results := stego.EncodeBatch(inputs)

	response := models.EncodeResponse{Success: true, Results: make([]models.EncodeItemResult, len(results))}
	for i, res := range results {
		if res.Err != nil {
			response.Results[i] = models.EncodeItemResult{Error: errorMessage(res.Err)}
			continue
		}

		out := res.Output
		item := models.EncodeItemResult{
			Success:      true,
			Filename:     outputFilename(i, out.HasSecret),
			ImageBase64:  base64.StdEncoding.EncodeToString(out.PNG),
			Width:        out.Width,
			Height:       out.Height,
			Capacity:     out.Capacity,
			SecretWidth:  out.SecretWidth,
			SecretHeight: out.SecretHeight,
		}
		// An untouched carrier has infinite PSNR, which JSON cannot
		// represent; leave the field empty in that case.
		if !math.IsInf(out.PSNR, 1) {
			item.PSNR = out.PSNR
		}
		if out.SecretDropped {
			item.Message = "Secret image could not be decoded and was skipped"
		}
		response.Results[i] = item
	}

	c.JSON(http.StatusOK, response)
}

// DecodeImages recovers payloads from up to MaxCarriers carriers. Form
// fields per slot i: file "carrier_<i>" and "key_<i>". A wrong key on
// one carrier is reported inline for that carrier only.
func (h *StegoHandler) DecodeImages(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	var carriers [][]byte
	var keys []string
	for i := range MaxCarriers {
		carrier, ok, err := readFormFile(c, fmt.Sprintf("carrier_%d", i))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.DecodeResponse{
				Success: false,
				Message: fmt.Sprintf("Failed to read carrier %d: %v", i, err),
			})
			return
		}
		if !ok {
			continue
		}

		key := c.PostForm(fmt.Sprintf("key_%d", i))
		if err := crypto.ValidateKey(key); err != nil {
			c.JSON(http.StatusBadRequest, models.DecodeResponse{
				Success: false,
				Message: fmt.Sprintf("Invalid key for carrier %d: %v", i, err),
			})
			return
		}

		carriers = append(carriers, carrier)
		keys = append(keys, key)
	}

	if len(carriers) == 0 {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: "At least one carrier image is required",
		})
		return
	}

	results := stego.DecodeBatch(carriers, keys)

	response := models.DecodeResponse{Success: true, Results: make([]models.DecodeItemResult, len(results))}
	for i, res := range results {
		if res.Err != nil {
			response.Results[i] = models.DecodeItemResult{Error: errorMessage(res.Err)}
			continue
		}

		out := res.Output
		response.Results[i] = models.DecodeItemResult{
			Text:   out.Text,
			Image:  out.ImageDataURI,
			Width:  out.ImageWidth,
			Height: out.ImageHeight,
		}
	}

	c.JSON(http.StatusOK, response)
}

// readFormFile reads an optional multipart file field. ok is false when
// the field is absent.
func readFormFile(c *gin.Context, field string) (data []byte, ok bool, err error) {
	file, _, err := c.Request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func outputFilename(index int, hasSecret bool) string {
	if hasSecret {
		return fmt.Sprintf("encoded_hidden_%d.png", index)
	}
	return fmt.Sprintf("encoded_text_%d.png", index)
}

// errorMessage maps codec errors to the stable strings clients key on.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, crypto.ErrWrongKey):
		return "Wrong key"
	case errors.Is(err, stego.ErrMissingKey), errors.Is(err, crypto.ErrEmptyKey):
		return "Key is required"
	case errors.Is(err, stego.ErrCapacityExceeded):
		return err.Error()
	case errors.Is(err, stego.ErrInvalidImage):
		return "Image could not be decoded"
	case errors.Is(err, imaging.ErrLossyCarrier):
		return "Carrier format does not preserve hidden data"
	case errors.Is(err, stego.ErrMalformedFrame):
		return "Hidden data is corrupted"
	default:
		return err.Error()
	}
}
