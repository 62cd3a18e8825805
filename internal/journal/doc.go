// Package journal persists a record of every file the converter touched:
// outcome, encode parameters, sizes, backup location, and timing. The
// history command reads it; the convert command writes it. Journal errors
// are never fatal to a batch.
package journal
