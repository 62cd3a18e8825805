// Package language provides language tag normalization and the allow-list
// used to filter audio and subtitle streams.
//
// Stream tags coming out of ffprobe are inconsistent (2-letter, 3-letter,
// full words, empty, "und"); everything funnels through Normalize so the
// rest of the code compares one canonical form.
package language
