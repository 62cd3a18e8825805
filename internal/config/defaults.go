package config

const (
	defaultLibraryDir   = "~/library"
	defaultLogDir       = "~/.local/share/tracksmith/logs"
	defaultTMDBLanguage = "en-US"
	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	defaultConvertWorkers     = 3
	defaultConvertHWAccelType = "auto"

	defaultTrailersCookiesBrowser = "firefox"
)

var (
	defaultConvertExtensions        = []string{".mp4", ".mkv"}
	defaultTrailerPatterns          = []string{"*.mp4", "*.mkv", "*.avi"}
	defaultTrailerSubtitleLanguages = []string{"pt.*"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Convert: Convert{
			Workers:     defaultConvertWorkers,
			HWAccelType: defaultConvertHWAccelType,
			Extensions:  append([]string(nil), defaultConvertExtensions...),
		},
		TMDB: TMDB{
			Language: defaultTMDBLanguage,
			BaseURL:  defaultTMDBBaseURL,
		},
		Trailers: Trailers{
			Patterns:          append([]string(nil), defaultTrailerPatterns...),
			CookiesBrowser:    defaultTrailersCookiesBrowser,
			SubtitleLanguages: append([]string(nil), defaultTrailerSubtitleLanguages...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
