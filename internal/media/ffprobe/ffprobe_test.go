package ffprobe

import (
	"encoding/json"
	"testing"
)

func TestStreamTagLookup(t *testing.T) {
	s := Stream{Tags: map[string]string{"LANGUAGE": " eng ", "title": "Director Commentary"}}
	if got := s.Language(); got != "eng" {
		t.Fatalf("Language() = %q", got)
	}
	if got := s.Title(); got != "Director Commentary" {
		t.Fatalf("Title() = %q", got)
	}
	if got := (Stream{}).Language(); got != "" {
		t.Fatalf("untagged Language() = %q", got)
	}
}

func TestStreamBitRateKbps(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"640000", 640},
		{"1536000", 1536},
		{"", 0},
		{"garbage", 0},
		{"-1", 0},
	}
	for _, tc := range cases {
		s := Stream{BitRate: tc.in}
		if got := s.BitRateKbps(); got != tc.want {
			t.Errorf("BitRateKbps(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestStreamFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"24000/1001", 24000.0 / 1001.0},
		{"24/1", 24},
		{"25", 25},
		{"", 0},
		{"24/0", 0},
		{"x/y", 0},
	}
	for _, tc := range cases {
		s := Stream{RFrameRate: tc.in}
		if got := s.FrameRate(); got != tc.want {
			t.Errorf("FrameRate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestResultHelpers(t *testing.T) {
	payload := `{
		"streams": [
			{"index": 0, "codec_type": "video", "codec_name": "h264"},
			{"index": 1, "codec_type": "audio", "codec_name": "dts", "channels": 6, "tags": {"language": "eng"}},
			{"index": 2, "codec_type": "audio", "codec_name": "ac3", "channels": 2},
			{"index": 3, "codec_type": "subtitle", "codec_name": "subrip", "tags": {"language": "por"}}
		],
		"format": {"duration": "123.45", "size": "1000"}
	}`
	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	if got := result.AudioStreamCount(); got != 2 {
		t.Errorf("AudioStreamCount = %d", got)
	}
	if got := result.SubtitleStreamCount(); got != 1 {
		t.Errorf("SubtitleStreamCount = %d", got)
	}
	if got := result.DurationSeconds(); got != 123.45 {
		t.Errorf("DurationSeconds = %v", got)
	}
	if got := result.SizeBytes(); got != 1000 {
		t.Errorf("SizeBytes = %d", got)
	}
}

func TestResultHelpersDegrade(t *testing.T) {
	result := Result{Format: Format{Duration: "not-a-number", Size: "-5"}}
	if got := result.DurationSeconds(); got != 0 {
		t.Errorf("DurationSeconds on garbage = %v", got)
	}
	if got := result.SizeBytes(); got != 0 {
		t.Errorf("SizeBytes on negative = %d", got)
	}
}
