// Package telemetry groups the observability building blocks.
//
//   - logging: slog logger construction and credential masking
//   - metrics: Prometheus collectors for the request pipeline
//
// Both are optional: the client library works with a nil metrics collector
// and the default slog logger.
package telemetry
