// Package models contain needed models
package models

// AudioMetadata describes the decoded carrier audio.
type AudioMetadata struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
	Duration   float64
	TotalBytes int
}

// CarrierTags holds ID3 metadata read from an MP3 carrier.
type CarrierTags struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}

// AnalysisReport is the capacity report shown before encoding.
type AnalysisReport struct {
	Channels              int          `json:"channels"`
	ChannelLayout         string       `json:"channel_layout"`
	SampleRate            int          `json:"sample_rate"`
	BitDepth              int          `json:"bit_depth"`
	DurationSeconds       float64      `json:"duration_seconds"`
	RawAudioBytes         int          `json:"raw_audio_bytes"`
	AbsoluteCapacityBytes int          `json:"absolute_capacity_bytes"`
	StealthCapacityBytes  int          `json:"stealth_capacity_bytes"`
	StealthStepThreshold  int          `json:"stealth_step_threshold"`
	ReadableCapacity      string       `json:"readable_capacity"`
	Tags                  *CarrierTags `json:"tags,omitempty"`
}

// StegoResponse represents the outcome of an encode request when no
// file is streamed back.
type StegoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DecodeResponse represents the outcome of a decode request.
type DecodeResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Text         string `json:"text,omitempty"`
	PayloadBytes int    `json:"payload_bytes"`
}
