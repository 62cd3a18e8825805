package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int               `json:"index"`
	CodecName  string            `json:"codec_name"`
	CodecType  string            `json:"codec_type"`
	BitRate    string            `json:"bit_rate"`
	Channels   int               `json:"channels"`
	RFrameRate string            `json:"r_frame_rate"`
	Tags       map[string]string `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Language returns the stream's raw language tag, or empty when untagged.
func (s Stream) Language() string {
	return s.tag("language")
}

// Title returns the stream's title tag, or empty when untagged.
func (s Stream) Title() string {
	return s.tag("title")
}

func (s Stream) tag(key string) string {
	if len(s.Tags) == 0 {
		return ""
	}
	if value, ok := s.Tags[key]; ok {
		return strings.TrimSpace(value)
	}
	// Container muxers disagree on tag key casing.
	for k, v := range s.Tags {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// BitRateKbps returns the stream bitrate in kbps, or 0 when unknown.
func (s Stream) BitRateKbps() int {
	rate := parseFloat(s.BitRate)
	if math.IsNaN(rate) || rate <= 0 {
		return 0
	}
	return int(rate) / 1000
}

// FrameRate parses the r_frame_rate ratio (e.g. "24000/1001"), or 0 when unknown.
func (s Stream) FrameRate() float64 {
	value := strings.TrimSpace(s.RFrameRate)
	if value == "" {
		return 0
	}
	if num, den, ok := strings.Cut(value, "/"); ok {
		n := parseFloat(num)
		d := parseFloat(den)
		if math.IsNaN(n) || math.IsNaN(d) || d == 0 {
			return 0
		}
		return n / d
	}
	rate := parseFloat(value)
	if math.IsNaN(rate) {
		return 0
	}
	return rate
}

func run(ctx context.Context, binary string, args []string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe: %w", err)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

func selectArgs(selector, entries, path string) []string {
	args := []string{"-v", "error"}
	if selector != "" {
		args = append(args, "-select_streams", selector)
	}
	args = append(args, "-show_entries", entries, "-of", "json", "--", path)
	return args
}

// AudioStreams queries the audio streams with codec, bitrate, channel, and
// language/title tag details.
func AudioStreams(ctx context.Context, binary, path string) ([]Stream, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ffprobe: empty path")
	}
	result, err := run(ctx, binary, selectArgs("a", "stream=index,codec_name,bit_rate,channels:stream_tags=language,title", path))
	if err != nil {
		return nil, err
	}
	return result.Streams, nil
}

// SubtitleStreams queries the subtitle streams with codec and language tags.
func SubtitleStreams(ctx context.Context, binary, path string) ([]Stream, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ffprobe: empty path")
	}
	result, err := run(ctx, binary, selectArgs("s", "stream=index,codec_name:stream_tags=language", path))
	if err != nil {
		return nil, err
	}
	return result.Streams, nil
}

// ContainerDuration returns the container duration in seconds, or 0 when
// the container does not report one.
func ContainerDuration(ctx context.Context, binary, path string) (float64, error) {
	if strings.TrimSpace(path) == "" {
		return 0, errors.New("ffprobe: empty path")
	}
	result, err := run(ctx, binary, selectArgs("", "format=duration", path))
	if err != nil {
		return 0, err
	}
	return result.DurationSeconds(), nil
}

// VideoFrameRate returns the first video stream's frame rate, or 0 when unknown.
func VideoFrameRate(ctx context.Context, binary, path string) (float64, error) {
	if strings.TrimSpace(path) == "" {
		return 0, errors.New("ffprobe: empty path")
	}
	result, err := run(ctx, binary, selectArgs("v:0", "stream=r_frame_rate", path))
	if err != nil {
		return 0, err
	}
	if len(result.Streams) == 0 {
		return 0, nil
	}
	return result.Streams[0].FrameRate(), nil
}

// VideoBitRate returns the first video stream's bitrate in bits per second,
// or 0 when the container does not report it (common for mkv).
func VideoBitRate(ctx context.Context, binary, path string) (int64, error) {
	if strings.TrimSpace(path) == "" {
		return 0, errors.New("ffprobe: empty path")
	}
	result, err := run(ctx, binary, selectArgs("v:0", "stream=bit_rate", path))
	if err != nil {
		return 0, err
	}
	if len(result.Streams) == 0 {
		return 0, nil
	}
	rate := parseFloat(result.Streams[0].BitRate)
	if math.IsNaN(rate) || rate < 0 {
		return 0, nil
	}
	return int64(rate), nil
}

// Inspect executes ffprobe against the provided path and decodes the full
// container description (all streams plus format metadata).
func Inspect(ctx context.Context, binary, path string) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}
	return run(ctx, binary, []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path})
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			count++
		}
	}
	return count
}

// SubtitleStreamCount returns the number of subtitle streams discovered.
func (r Result) SubtitleStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "subtitle") {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	duration := parseFloat(r.Format.Duration)
	if math.IsNaN(duration) || duration < 0 {
		return 0
	}
	return duration
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
