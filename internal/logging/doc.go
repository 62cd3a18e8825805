// Package logging builds the slog loggers used across tracksmith.
//
// Two handler formats are supported: a pretty console handler for
// interactive use and a JSON handler for log files and scripting. Output
// can fan out to stdout/stderr and a log file simultaneously.
package logging
