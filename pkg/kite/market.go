package kite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// DepthItem is one level of the order book.
type DepthItem struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Orders   int     `json:"orders"`
}

// Quote is a full market quote including depth.
type Quote struct {
	InstrumentToken uint32  `json:"instrument_token"`
	Timestamp       string  `json:"timestamp"`
	LastPrice       float64 `json:"last_price"`
	LastQuantity    int     `json:"last_quantity"`
	AveragePrice    float64 `json:"average_price"`
	Volume          int64   `json:"volume"`
	BuyQuantity     int64   `json:"buy_quantity"`
	SellQuantity    int64   `json:"sell_quantity"`
	OHLC            OHLC    `json:"ohlc"`
	NetChange       float64 `json:"net_change"`
	OI              float64 `json:"oi"`
	OIDayHigh       float64 `json:"oi_day_high"`
	OIDayLow        float64 `json:"oi_day_low"`
	LowerCircuit    float64 `json:"lower_circuit_limit"`
	UpperCircuit    float64 `json:"upper_circuit_limit"`
	Depth           struct {
		Buy  []DepthItem `json:"buy"`
		Sell []DepthItem `json:"sell"`
	} `json:"depth"`
}

// OHLC is the open, high, low and close of a session.
type OHLC struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// OHLCQuote is the abbreviated quote returned by the OHLC endpoint.
type OHLCQuote struct {
	InstrumentToken uint32  `json:"instrument_token"`
	LastPrice       float64 `json:"last_price"`
	OHLC            OHLC    `json:"ohlc"`
}

// LTPQuote is the minimal quote returned by the LTP endpoint.
type LTPQuote struct {
	InstrumentToken uint32  `json:"instrument_token"`
	LastPrice       float64 `json:"last_price"`
}

// instrumentsQuery builds the repeated i=EXCHANGE:SYMBOL query the quote
// endpoints expect.
func instrumentsQuery(instruments []string) url.Values {
	q := url.Values{}
	for _, ins := range instruments {
		q.Add("i", ins)
	}
	return q
}

// Quote fetches full quotes for up to 500 instruments, keyed by
// "EXCHANGE:SYMBOL".
func (c *Client) Quote(ctx context.Context, instruments ...string) (map[string]Quote, error) {
	payload, err := c.dispatch(ctx, OpQuote, params{query: instrumentsQuery(instruments)})
	if err != nil {
		return nil, err
	}
	quotes := make(map[string]Quote)
	if err := decodeData(payload, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// OHLCQuotes fetches abbreviated OHLC quotes for up to 1000 instruments.
func (c *Client) OHLCQuotes(ctx context.Context, instruments ...string) (map[string]OHLCQuote, error) {
	payload, err := c.dispatch(ctx, OpOHLC, params{query: instrumentsQuery(instruments)})
	if err != nil {
		return nil, err
	}
	quotes := make(map[string]OHLCQuote)
	if err := decodeData(payload, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// LTP fetches last traded prices for up to 1000 instruments.
func (c *Client) LTP(ctx context.Context, instruments ...string) (map[string]LTPQuote, error) {
	payload, err := c.dispatch(ctx, OpLTP, params{query: instrumentsQuery(instruments)})
	if err != nil {
		return nil, err
	}
	quotes := make(map[string]LTPQuote)
	if err := decodeData(payload, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// Candle is one historical bar. The wire format is a positional array:
// [timestamp, open, high, low, close, volume] with an optional trailing
// open interest.
type Candle struct {
	Timestamp string
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
	OI        int64
}

// UnmarshalJSON decodes the positional candle array.
func (cd *Candle) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 6 {
		return fmt.Errorf("candle has %d fields, want at least 6", len(raw))
	}

	ts, ok := raw[0].(string)
	if !ok {
		return fmt.Errorf("candle timestamp is %T, want string", raw[0])
	}
	cd.Timestamp = ts

	nums := make([]float64, 0, len(raw)-1)
	for i, v := range raw[1:] {
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("candle field %d is %T, want number", i+1, v)
		}
		nums = append(nums, f)
	}
	cd.Open, cd.High, cd.Low, cd.Close = nums[0], nums[1], nums[2], nums[3]
	cd.Volume = int64(nums[4])
	if len(nums) > 5 {
		cd.OI = int64(nums[5])
	}
	return nil
}

// HistoricalParams selects a candle series.
type HistoricalParams struct {
	// InstrumentToken identifies the instrument, from the instrument dump.
	InstrumentToken uint32
	// Interval is one of minute, 3minute, 5minute, 10minute, 15minute,
	// 30minute, 60minute or day.
	Interval string
	From     time.Time
	To       time.Time
	// Continuous stitches expired derivative contracts into one series.
	Continuous bool
	// OI includes open interest in each candle.
	OI bool
}

// HistoricalData fetches a candle series. Results are cacheable: a repeat
// request for the same token, interval and range is served from memory when
// caching is enabled.
func (c *Client) HistoricalData(ctx context.Context, p HistoricalParams) ([]Candle, error) {
	const layout = "2006-01-02 15:04:05"
	q := url.Values{}
	q.Set("from", p.From.Format(layout))
	q.Set("to", p.To.Format(layout))
	if p.Continuous {
		q.Set("continuous", "1")
	}
	if p.OI {
		q.Set("oi", "1")
	}

	payload, err := c.dispatch(ctx, OpHistoricalData, params{
		segments: []string{strconv.FormatUint(uint64(p.InstrumentToken), 10), p.Interval},
		query:    q,
	})
	if err != nil {
		return nil, err
	}

	var data struct {
		Candles []Candle `json:"candles"`
	}
	if err := decodeData(payload, &data); err != nil {
		return nil, err
	}
	return data.Candles, nil
}

// TriggerRange is the valid trigger price band for cover orders on one
// instrument.
type TriggerRange struct {
	InstrumentToken uint32  `json:"instrument_token"`
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
}

// TriggerRanges fetches trigger ranges keyed by "EXCHANGE:SYMBOL".
func (c *Client) TriggerRanges(ctx context.Context, transactionType string, instruments ...string) (map[string]TriggerRange, error) {
	payload, err := c.dispatch(ctx, OpTriggerRange, params{
		segments: []string{transactionType},
		query:    instrumentsQuery(instruments),
	})
	if err != nil {
		return nil, err
	}
	ranges := make(map[string]TriggerRange)
	if err := decodeData(payload, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}

// MarketMargins fetches the margin requirements for a segment, e.g.
// "equity" or "commodity".
func (c *Client) MarketMargins(ctx context.Context, segment string) (json.RawMessage, error) {
	return c.dispatch(ctx, OpMarketMargins, params{segments: []string{segment}})
}
