// Kitectl is a command line companion for the Kite Connect trading API.
//
// It drives the client library end to end: the login flow, quotes,
// portfolio views, the order book and a locally persisted instrument
// master.
//
// Usage:
//
//	# Print the login URL, then exchange the request token
//	kitectl login
//	kitectl login --request-token <token>
//
//	# Market data
//	kitectl quote NSE:INFY NSE:RELIANCE
//	kitectl quote --mode ltp NSE:INFY
//
//	# Portfolio
//	kitectl holdings
//	kitectl positions
//
//	# Order book
//	kitectl orders
//
//	# Local instrument master
//	kitectl instruments refresh
//	kitectl instruments lookup NSE INFY
//
//	# Rate limiter state
//	kitectl limits
//
// Configuration is read from a YAML file (--config, default config.yaml)
// with KITE_* environment variable overrides.
package main

func main() {
	Execute()
}
