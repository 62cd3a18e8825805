// Package convert implements the AC3/E-AC3 conversion batch: probing
// stream layouts, filtering tracks by language, selecting a primary
// audio stream, and driving ffmpeg with size-based progress reporting.
// Originals are preserved as timestamped backups when a converted file
// is moved into place.
package convert
