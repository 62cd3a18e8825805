package convert

import (
	"fmt"

	"tracksmith/internal/language"
)

// Mode describes what a plan does to the file.
type Mode string

const (
	// ModeSkip leaves the file untouched.
	ModeSkip Mode = "skip"
	// ModeCopy remuxes kept streams without re-encoding audio.
	ModeCopy Mode = "copy"
	// ModeEncode re-encodes the primary stream to E-AC3.
	ModeEncode Mode = "encode"
)

// Plan is the per-file conversion decision: which streams are kept, which
// one becomes the primary audio track, and how that track is encoded.
type Plan struct {
	Mode       Mode
	Reason     string
	Primary    AudioStream
	Commentary []AudioStream
	Subtitles  []SubtitleStream

	// Encode parameters; zero TargetChannels leaves the layout to ffmpeg.
	BitrateKbps    int
	TargetChannels int

	// Counts of streams removed by the language filter.
	DroppedAudio     int
	DroppedSubtitles int
}

// KeptAudio returns the audio streams the output will carry, primary first.
func (p Plan) KeptAudio() []AudioStream {
	kept := make([]AudioStream, 0, 1+len(p.Commentary))
	kept = append(kept, p.Primary)
	kept = append(kept, p.Commentary...)
	return kept
}

// Filtered reports whether the language filter removes any stream.
func (p Plan) Filtered() bool {
	return p.DroppedAudio > 0 || p.DroppedSubtitles > 0
}

// Describe summarizes the plan for logs.
func (p Plan) Describe() string {
	switch p.Mode {
	case ModeSkip:
		return "skip: " + p.Reason
	case ModeCopy:
		return fmt.Sprintf("copy stream %d (%s %dch)", p.Primary.Index, p.Primary.Codec, p.Primary.Channels)
	default:
		return fmt.Sprintf("encode stream %d (%s %dch) to eac3 %dkbps", p.Primary.Index, p.Primary.Codec, p.Primary.Channels, p.BitrateKbps)
	}
}

// selectPrimary picks the stream the output leads with. Streams already in
// AC3/E-AC3 win over anything needing conversion; within a group the
// highest channel count wins, then the highest bitrate.
func selectPrimary(candidates []AudioStream) AudioStream {
	best := candidates[0]
	for _, stream := range candidates[1:] {
		if stream.IsAC3() != best.IsAC3() {
			if stream.IsAC3() {
				best = stream
			}
			continue
		}
		if stream.Channels > best.Channels ||
			(stream.Channels == best.Channels && stream.BitrateKbps > best.BitrateKbps) {
			best = stream
		}
	}
	return best
}

// targetEncoding maps the primary stream's channel count to the E-AC3
// bitrate and output layout. Seven channels and up are downmixed to 5.1.
func targetEncoding(channels int) (bitrateKbps, targetChannels int) {
	switch {
	case channels >= 7:
		return 1536, 6
	case channels >= 6:
		return 768, 6
	case channels >= 3:
		return 640, 0
	default:
		return 448, 2
	}
}

// BuildPlan decides how to process one file.
//
// Language filtering only engages when at least one audio stream matches a
// known desired language; otherwise filtering could strip every track from
// a file whose audio is tagged in none of them. Commentary tracks survive
// the filter regardless of language but are never selected as primary.
// Primary selection prefers streams already in AC3/E-AC3, then the highest
// (channels, bitrate) pair.
func BuildPlan(info MediaInfo, allow language.AllowList) Plan {
	if len(info.Audio) == 0 {
		return Plan{Mode: ModeSkip, Reason: "no audio streams found"}
	}

	audio := info.Audio
	knownDesired := allow.Known()
	hasKnownDesired := false
	for _, stream := range audio {
		if knownDesired.Contains(stream.Language) {
			hasKnownDesired = true
			break
		}
	}

	if hasKnownDesired {
		kept := make([]AudioStream, 0, len(audio))
		for _, stream := range audio {
			if allow.Contains(stream.Language) || stream.IsCommentary() {
				kept = append(kept, stream)
			}
		}
		audio = kept
	}

	subtitles := make([]SubtitleStream, 0, len(info.Subtitles))
	for _, stream := range info.Subtitles {
		if allow.Contains(stream.Language) {
			subtitles = append(subtitles, stream)
		}
	}

	droppedAudio := len(info.Audio) - len(audio)
	droppedSubs := len(info.Subtitles) - len(subtitles)

	if len(audio) == 0 {
		return Plan{Mode: ModeSkip, Reason: "no audio streams after language filtering"}
	}

	var commentary []AudioStream
	var candidates []AudioStream
	allAC3 := true
	for _, stream := range audio {
		if !stream.IsAC3() {
			allAC3 = false
		}
		if stream.IsCommentary() {
			commentary = append(commentary, stream)
		} else {
			candidates = append(candidates, stream)
		}
	}
	if len(candidates) == 0 {
		return Plan{Mode: ModeSkip, Reason: "only commentary tracks found"}
	}
	primary := selectPrimary(candidates)

	plan := Plan{
		Primary:          primary,
		Commentary:       commentary,
		Subtitles:        subtitles,
		DroppedAudio:     droppedAudio,
		DroppedSubtitles: droppedSubs,
	}

	needsFiltering := droppedAudio > 0 || droppedSubs > 0
	switch {
	case !needsFiltering && primary.IsAC3() && allAC3:
		plan.Mode = ModeSkip
		plan.Reason = "already optimal"
	case primary.IsAC3():
		plan.Mode = ModeCopy
	default:
		plan.Mode = ModeEncode
		plan.BitrateKbps, plan.TargetChannels = targetEncoding(primary.Channels)
	}
	return plan
}
