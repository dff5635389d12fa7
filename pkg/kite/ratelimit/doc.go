// Package ratelimit paces outbound requests to the trading API.
//
// The remote service publishes a fixed requests-per-second ceiling for each
// of four operation categories. The limiter converts each ceiling into a
// minimum delay between consecutive requests and enforces that spacing with
// one independent gate per category, so slow market-data pacing never holds
// up order placement.
//
// The limiter only ever delays; it never rejects. Callers block in Wait
// until their slot arrives, honoring context cancellation.
package ratelimit
