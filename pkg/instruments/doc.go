// Package instruments maintains a local copy of the exchange instrument
// master. The dump is a large CSV the API republishes daily; keeping it in
// SQLite makes symbol and token lookups free and spares the rate limit
// budget for real traffic.
package instruments
