package convert

import (
	"fmt"
	"strconv"
)

// hwAccelFlag maps the configured accelerator family to the ffmpeg
// -hwaccel value. "auto" assumes NVIDIA; AMF routes through d3d11va.
func hwAccelFlag(accelType string) string {
	switch accelType {
	case "nvenc", "auto":
		return "cuda"
	case "qsv":
		return "qsv"
	case "amf":
		return "d3d11va"
	}
	return ""
}

// BuildCommand assembles the ffmpeg argument list for a copy or encode
// plan. Stream order in the output is primary audio, then commentary,
// then subtitles; video and subtitles are always stream-copied and
// container metadata (including HDR tags) is carried over.
func BuildCommand(plan Plan, input, output string, hwAccel bool, hwAccelType string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}

	if hwAccel {
		if flag := hwAccelFlag(hwAccelType); flag != "" {
			args = append(args, "-hwaccel", flag)
		}
	}

	args = append(args, "-i", input)
	args = append(args, "-map", "0:v:0")
	for _, stream := range plan.KeptAudio() {
		args = append(args, "-map", fmt.Sprintf("0:%d", stream.Index))
	}
	for _, stream := range plan.Subtitles {
		args = append(args, "-map", fmt.Sprintf("0:%d", stream.Index))
	}

	args = append(args, "-c:v", "copy")

	switch plan.Mode {
	case ModeEncode:
		args = append(args, "-c:a:0", "eac3", "-b:a:0", strconv.Itoa(plan.BitrateKbps)+"k")
		if plan.TargetChannels == 6 || plan.TargetChannels == 2 {
			args = append(args, "-ac:a:0", strconv.Itoa(plan.TargetChannels))
		}
		for i := range plan.Commentary {
			args = append(args, fmt.Sprintf("-c:a:%d", i+1), "copy")
		}
		args = append(args, "-threads", "0")
	default:
		args = append(args, "-c:a", "copy")
	}

	args = append(args, "-c:s", "copy")
	args = append(args, "-map_metadata", "0")
	args = append(args, "-movflags", "use_metadata_tags")
	args = append(args, output)
	return args
}
