// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no tracksmith-specific dependencies and could be
// extracted as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//
// Entry points mirror the probe invocations the converter needs: audio
// streams, subtitle streams, container duration, video frame rate, and
// video bitrate are each a dedicated selective query; Inspect fetches the
// full container description.
package ffprobe
