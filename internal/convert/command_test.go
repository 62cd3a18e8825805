package convert

import (
	"strings"
	"testing"
)

func TestBuildCommandEncode(t *testing.T) {
	plan := Plan{
		Mode:           ModeEncode,
		Primary:        AudioStream{Index: 1, Codec: "truehd", Channels: 8},
		Commentary:     []AudioStream{{Index: 2, Codec: "ac3", Title: "commentary"}},
		Subtitles:      []SubtitleStream{{Index: 3, Codec: "subrip"}},
		BitrateKbps:    1536,
		TargetChannels: 6,
	}
	args := BuildCommand(plan, "/lib/in.mkv", "/tmp/in_converted.mkv", false, "")
	want := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", "/lib/in.mkv",
		"-map", "0:v:0",
		"-map", "0:1",
		"-map", "0:2",
		"-map", "0:3",
		"-c:v", "copy",
		"-c:a:0", "eac3", "-b:a:0", "1536k",
		"-ac:a:0", "6",
		"-c:a:1", "copy",
		"-threads", "0",
		"-c:s", "copy",
		"-map_metadata", "0",
		"-movflags", "use_metadata_tags",
		"/tmp/in_converted.mkv",
	}
	assertArgs(t, args, want)
}

func TestBuildCommandCopy(t *testing.T) {
	plan := Plan{
		Mode:    ModeCopy,
		Primary: AudioStream{Index: 1, Codec: "eac3", Channels: 6},
	}
	args := BuildCommand(plan, "in.mkv", "out.mkv", false, "")
	want := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", "in.mkv",
		"-map", "0:v:0",
		"-map", "0:1",
		"-c:v", "copy",
		"-c:a", "copy",
		"-c:s", "copy",
		"-map_metadata", "0",
		"-movflags", "use_metadata_tags",
		"out.mkv",
	}
	assertArgs(t, args, want)
}

func TestBuildCommandMidChannelOmitsLayout(t *testing.T) {
	plan := Plan{
		Mode:        ModeEncode,
		Primary:     AudioStream{Index: 1, Codec: "dts", Channels: 5},
		BitrateKbps: 640,
	}
	args := BuildCommand(plan, "in.mkv", "out.mkv", false, "")
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-ac:a:0") {
		t.Fatalf("5ch encode must leave channel layout to ffmpeg: %s", joined)
	}
	if !strings.Contains(joined, "-b:a:0 640k") {
		t.Fatalf("expected 640k bitrate: %s", joined)
	}
}

func TestBuildCommandHWAccel(t *testing.T) {
	plan := Plan{Mode: ModeCopy, Primary: AudioStream{Index: 1}}
	cases := map[string]string{
		"auto":  "cuda",
		"nvenc": "cuda",
		"qsv":   "qsv",
		"amf":   "d3d11va",
	}
	for accelType, want := range cases {
		args := BuildCommand(plan, "in.mkv", "out.mkv", true, accelType)
		joined := strings.Join(args, " ")
		if !strings.Contains(joined, "-hwaccel "+want) {
			t.Errorf("type %q: expected -hwaccel %s in %s", accelType, want, joined)
		}
		if !strings.HasPrefix(joined, "-y -hide_banner -loglevel error -hwaccel") {
			t.Errorf("type %q: -hwaccel must precede -i: %s", accelType, joined)
		}
	}

	args := BuildCommand(plan, "in.mkv", "out.mkv", false, "nvenc")
	if strings.Contains(strings.Join(args, " "), "-hwaccel") {
		t.Fatal("hwaccel flag emitted while acceleration disabled")
	}
}

func assertArgs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("argument count mismatch:\n got %v\nwant %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("argument %d = %q, want %q\nfull: %v", i, got[i], want[i], got)
		}
	}
}
