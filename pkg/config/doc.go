// Package config defines the YAML configuration surface for the client and
// its command line tooling.
//
// A minimal file looks like:
//
//	credentials:
//	  api_key: your_api_key
//	  token_file: ~/.kite/access_token
//
//	retry:
//	  max_retries: 3
//	  base_delay: 200ms
//	  max_delay: 5s
//
//	cache:
//	  ttl: 60m
//	  max_entries: 1000
//
// Omitting the cache section disables response caching. Every field can be
// overridden by a KITE_SECTION_FIELD environment variable, e.g.
// KITE_API_KEY or KITE_RETRY_MAX_RETRIES.
package config
