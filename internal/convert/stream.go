package convert

import (
	"strings"

	"tracksmith/internal/language"
	"tracksmith/internal/media/ffprobe"
)

// commentaryMarkers are title substrings that mark an audio stream as a
// commentary track. Matching is case-insensitive.
var commentaryMarkers = []string{"commentary", "comentário", "comentario", "director"}

// AudioStream is one audio track with the fields the conversion planner
// cares about. Language is already normalized.
type AudioStream struct {
	Index       int
	Codec       string
	Language    string
	Title       string
	BitrateKbps int
	Channels    int
}

// SubtitleStream is one subtitle track. Language is already normalized.
type SubtitleStream struct {
	Index    int
	Codec    string
	Language string
}

// IsCommentary reports whether the stream title marks it as a commentary
// track. Commentary tracks are kept regardless of language but never
// selected as the primary stream.
func (s AudioStream) IsCommentary() bool {
	title := strings.ToLower(s.Title)
	for _, marker := range commentaryMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// IsAC3 reports whether the stream already carries AC3 or E-AC3 audio.
func (s AudioStream) IsAC3() bool {
	switch strings.ToLower(s.Codec) {
	case "ac3", "eac3":
		return true
	}
	return false
}

func newAudioStream(src ffprobe.Stream) AudioStream {
	return AudioStream{
		Index:       src.Index,
		Codec:       strings.ToLower(src.CodecName),
		Language:    language.Normalize(src.Language()),
		Title:       src.Title(),
		BitrateKbps: src.BitRateKbps(),
		Channels:    src.Channels,
	}
}

func newSubtitleStream(src ffprobe.Stream) SubtitleStream {
	return SubtitleStream{
		Index:    src.Index,
		Codec:    strings.ToLower(src.CodecName),
		Language: language.Normalize(src.Language()),
	}
}
