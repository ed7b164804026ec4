// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EdTheDev254/audio-steganography/audio"
	"github.com/EdTheDev254/audio-steganography/models"
	"github.com/EdTheDev254/audio-steganography/stego"
)

type StegoHandler struct {
	decoder        *audio.Decoder
	codec          *stego.Codec
	maxUploadBytes int64
}

func NewStegoHandler(codec *stego.Codec, maxUploadMB int64) *StegoHandler {
	return &StegoHandler{
		decoder:        audio.NewDecoder(),
		codec:          codec,
		maxUploadBytes: maxUploadMB << 20,
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Steganography API is running",
		"version": "1.0.0",
	})
}

// AnalyzeCarrier reports carrier properties and hiding capacity without
// modifying anything.
func (h *StegoHandler) AnalyzeCarrier(c *gin.Context) {
	_, _, meta, tags, ok := h.readCarrier(c, "audio_file")
	if !ok {
		return
	}

	capacity, err := h.codec.Capacity(meta.TotalBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Carrier is too short to hide any data: %v", err),
		})
		return
	}

	report := audio.BuildReport(meta, tags, capacity, h.codec.StealthStep())
	c.JSON(http.StatusOK, report)
}

// EncodeMessage embeds a message into the uploaded carrier and streams
// the stego WAV back as an attachment.
func (h *StegoHandler) EncodeMessage(c *gin.Context) {
	name, frames, meta, _, ok := h.readCarrier(c, "audio_file")
	if !ok {
		return
	}

	payload, ok := h.readPayload(c)
	if !ok {
		return
	}

	capacity, err := h.codec.Capacity(meta.TotalBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Carrier is too short to hide any data: %v", err),
		})
		return
	}

	if len(payload) > capacity.AbsoluteBytes {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Message too large. Maximum capacity: %d bytes, required: %d bytes",
				capacity.AbsoluteBytes, len(payload)),
		})
		return
	}

	warning := ""
	if len(payload) > capacity.StealthBytes {
		warning = fmt.Sprintf("message of %d bytes exceeds stealth capacity of %d bytes; the interleave step falls below %d",
			len(payload), capacity.StealthBytes, h.codec.StealthStep())
		if c.PostForm("require_stealth") == "true" {
			c.JSON(http.StatusBadRequest, models.StegoResponse{
				Success: false,
				Message: warning,
			})
			return
		}
	}

	original := make([]byte, len(frames))
	copy(original, frames)

	step, err := h.codec.Embed(frames, payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed message: %v", err),
		})
		return
	}

	stegoWAV, err := h.decoder.EncodeWAV(frames, meta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to encode stego WAV: %v", err),
		})
		return
	}

	baseFilename := strings.TrimSuffix(name, filepath.Ext(name))
	outputFilename := fmt.Sprintf("%s_stego.wav", baseFilename)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(stegoWAV)))

	c.Header("X-Stego-Method", "Interleaved LSB")
	c.Header("X-Stego-Step", fmt.Sprintf("%d", step))
	c.Header("X-Stego-PSNR", fmt.Sprintf("%.2f", audio.CalculatePSNR(original, frames)))
	c.Header("X-Stego-Capacity", fmt.Sprintf("%d", capacity.AbsoluteBytes))
	c.Header("X-Stego-Stealth-Capacity", fmt.Sprintf("%d", capacity.StealthBytes))
	if warning != "" {
		c.Header("X-Stego-Warning", warning)
	}

	c.Data(http.StatusOK, "audio/wav", stegoWAV)
}

// DecodeMessage recovers the hidden message from an uploaded stego WAV.
func (h *StegoHandler) DecodeMessage(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return
	}

	stegoFile, stegoHeader, err := c.Request.FormFile("stego_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: "Stego audio file is required",
		})
		return
	}
	defer stegoFile.Close()

	if !isWAVFile(stegoHeader.Filename) {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: "Invalid stego file format. Only WAV files carry recoverable data",
		})
		return
	}

	data, err := io.ReadAll(stegoFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read stego file: %v", err),
		})
		return
	}

	frames, _, err := h.decoder.DecodeWAV(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode stego file: %v", err),
		})
		return
	}

	payload, err := h.codec.Extract(frames)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, stego.ErrBufferTooShort) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract message: %v", err),
		})
		return
	}

	if len(payload) == 0 {
		c.JSON(http.StatusOK, models.DecodeResponse{
			Success: true,
			Message: "Message length is zero, nothing to extract",
		})
		return
	}

	if c.Query("raw") == "true" {
		c.Header("Content-Description", "File Transfer")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Content-Disposition", "attachment; filename=payload.bin")
		c.Header("Content-Length", fmt.Sprintf("%d", len(payload)))
		c.Data(http.StatusOK, "application/octet-stream", payload)
		return
	}

	c.JSON(http.StatusOK, models.DecodeResponse{
		Success:      true,
		Message:      "Message extracted successfully",
		Text:         stego.DecodeText(payload),
		PayloadBytes: len(payload),
	})
}

// readCarrier parses the multipart form and decodes the named carrier
// upload into frame bytes and metadata.
func (h *StegoHandler) readCarrier(c *gin.Context, field string) (string, []byte, *models.AudioMetadata, *models.CarrierTags, bool) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return "", nil, nil, nil, false
	}

	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "Audio file is required",
		})
		return "", nil, nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read audio file: %v", err),
		})
		return "", nil, nil, nil, false
	}

	frames, meta, tags, err := h.decoder.DecodeCarrier(header.Filename, data)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, audio.ErrUnsupportedFormat) && !errors.Is(err, audio.ErrInvalidContainer) &&
			!errors.Is(err, audio.ErrUnsupportedBitDepth) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to decode carrier: %v", err),
		})
		return "", nil, nil, nil, false
	}

	return header.Filename, frames, meta, tags, true
}

// readPayload picks the message from the form field or the uploaded
// message file, in that order.
func (h *StegoHandler) readPayload(c *gin.Context) ([]byte, bool) {
	if msg := c.PostForm("message"); msg != "" {
		return []byte(msg), true
	}

	file, _, err := c.Request.FormFile("message_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "A message or message_file is required",
		})
		return nil, false
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.StegoResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to read message file: %v", err),
		})
		return nil, false
	}
	if len(payload) == 0 {
		c.JSON(http.StatusBadRequest, models.StegoResponse{
			Success: false,
			Message: "Message file is empty",
		})
		return nil, false
	}
	return payload, true
}

func isWAVFile(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".wav"
}
