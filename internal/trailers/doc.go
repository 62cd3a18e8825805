// Package trailers locates movie trailers through The Movie Database and
// downloads them with yt-dlp. Titles come from Kodi-style NFO files when
// present, falling back to cleaned-up file names.
package trailers
