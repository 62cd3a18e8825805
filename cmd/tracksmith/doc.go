// Package main hosts the tracksmith CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the library maintenance
// operations: AC3/E-AC3 audio conversion, trailer downloads, subtitle
// extraction, environment verification, and journal inspection. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands or
// flags here.
package main
