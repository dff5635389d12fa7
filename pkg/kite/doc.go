// Package kite is a client for the Kite Connect REST trading API.
//
// Business methods (orders, portfolio, quotes, mutual funds, GTT) are thin
// wrappers over a shared request pipeline: every call resolves its endpoint
// in a compiled-in registry, consults the response cache, waits for its
// per-category rate limit slot, and runs through a retry orchestrator that
// classifies failures into a closed exception taxonomy.
//
// Basic usage:
//
//	client, err := kite.NewClient(apiKey, kite.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	// Visit client.LoginURL(), then exchange the request token.
//	session, err := client.GenerateSession(ctx, requestToken, apiSecret)
//	if err != nil {
//		log.Fatal(err)
//	}
//	holdings, err := client.Holdings(ctx)
//
// All failures surface as *APIError carrying the service's exception type
// plus derived flags: RequiresReauth for expired sessions, RateLimited for
// throttled requests, Retryable for transient faults the pipeline already
// re-attempted.
//
// Rate limiting is on by default and matches the service's published
// per-category ceilings. Disabling it is only sensible against a test
// server.
package kite
