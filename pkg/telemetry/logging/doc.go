// Package logging builds slog loggers from configuration and provides
// helpers for keeping credentials out of log output.
//
// Three formats are supported: json for log shippers, text for plain
// key=value output, and console for colorized terminal output.
package logging
