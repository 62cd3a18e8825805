// Package tmdb is a minimal client for The Movie Database API covering
// movie search and trailer video lookup.
package tmdb
