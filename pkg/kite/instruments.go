package kite

import "context"

// InstrumentsCSV fetches the instrument master dump as raw CSV, optionally
// restricted to one exchange ("NSE", "BSE", "NFO", ...). The dump changes
// once a day and is the canonical cacheable payload: with caching enabled,
// repeat calls within the TTL never hit the wire.
//
// Parsing and persistence live in the instruments package.
func (c *Client) InstrumentsCSV(ctx context.Context, exchange string) ([]byte, error) {
	p := params{raw: true}
	if exchange != "" {
		p.segments = []string{exchange}
	}
	return c.dispatch(ctx, OpInstruments, p)
}

// MFInstrumentsCSV fetches the mutual fund instrument dump as raw CSV.
func (c *Client) MFInstrumentsCSV(ctx context.Context) ([]byte, error) {
	return c.dispatch(ctx, OpMFInstruments, params{raw: true})
}
