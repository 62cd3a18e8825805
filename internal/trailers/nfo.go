package trailers

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

type nfoDocument struct {
	OriginalTitle string    `xml:"originaltitle"`
	Movie         *nfoMovie `xml:"movie"`
}

type nfoMovie struct {
	OriginalTitle string `xml:"originaltitle"`
}

// MovieTitle resolves the lookup title for a media file: the
// originaltitle from the sibling .nfo when one parses, else a cleaned-up
// title derived from the file name. NFO parse failures are non-fatal.
func MovieTitle(mediaPath string) string {
	nfoPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".nfo"
	if title := titleFromNFO(nfoPath); title != "" {
		return title
	}
	return deriveTitle(mediaPath)
}

// titleFromNFO reads originaltitle from a Kodi-style NFO. The element may
// sit at the document root or nested under <movie>.
func titleFromNFO(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc nfoDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.OriginalTitle); title != "" {
		return title
	}
	if doc.Movie != nil {
		return strings.TrimSpace(doc.Movie.OriginalTitle)
	}
	return ""
}

// deriveTitle turns a file name into a presentable movie title:
// separators collapse to spaces and words are title-cased.
func deriveTitle(sourcePath string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Unknown Movie"
	}
	return cases.Title(xlang.Und).String(title)
}
