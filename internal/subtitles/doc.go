// Package subtitles pulls embedded subtitle streams out of media
// containers with ffmpeg stream copies.
package subtitles
