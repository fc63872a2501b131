// Package models contain needed models
package models

// EncodeItemResult represents the outcome for one carrier slot in an encode batch
type EncodeItemResult struct {
	Success      bool    `json:"success"`
	Filename     string  `json:"filename,omitempty"`
	ImageBase64  string  `json:"image_base64,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	Capacity     int     `json:"capacity,omitempty"`
	PSNR         float64 `json:"psnr,omitempty"`
	SecretWidth  int     `json:"secret_width,omitempty"`
	SecretHeight int     `json:"secret_height,omitempty"`
	Message      string  `json:"message,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// EncodeResponse represents the response for a whole encode batch
type EncodeResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Results []EncodeItemResult `json:"results,omitempty"`
}

// DecodeItemResult represents the outcome for one carrier slot in a decode batch
type DecodeItemResult struct {
	Text   string `json:"text"`
	Image  string `json:"image,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DecodeResponse represents the response for a whole decode batch
type DecodeResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Results []DecodeItemResult `json:"results,omitempty"`
}
