package kite

import (
	"context"
	"net/url"
	"strconv"
)

// Profile is the authenticated user's account profile.
type Profile struct {
	UserID        string   `json:"user_id"`
	UserName      string   `json:"user_name"`
	UserShortname string   `json:"user_shortname"`
	Email         string   `json:"email"`
	UserType      string   `json:"user_type"`
	Broker        string   `json:"broker"`
	Exchanges     []string `json:"exchanges"`
	Products      []string `json:"products"`
	OrderTypes    []string `json:"order_types"`
	AvatarURL     string   `json:"avatar_url"`
}

// SegmentMargins holds the funds picture for one segment (equity or
// commodity).
type SegmentMargins struct {
	Enabled   bool    `json:"enabled"`
	Net       float64 `json:"net"`
	Available struct {
		AdhocMargin    float64 `json:"adhoc_margin"`
		Cash           float64 `json:"cash"`
		OpeningBalance float64 `json:"opening_balance"`
		LiveBalance    float64 `json:"live_balance"`
		Collateral     float64 `json:"collateral"`
		IntradayPayin  float64 `json:"intraday_payin"`
	} `json:"available"`
	Utilised struct {
		Debits        float64 `json:"debits"`
		Exposure      float64 `json:"exposure"`
		M2MRealised   float64 `json:"m2m_realised"`
		M2MUnrealised float64 `json:"m2m_unrealised"`
		OptionPremium float64 `json:"option_premium"`
		Payout        float64 `json:"payout"`
		Span          float64 `json:"span"`
		HoldingSales  float64 `json:"holding_sales"`
		Turnover      float64 `json:"turnover"`
	} `json:"utilised"`
}

// Margins holds funds across both segments.
type Margins struct {
	Equity    SegmentMargins `json:"equity"`
	Commodity SegmentMargins `json:"commodity"`
}

// Holding is one long-term holding in the demat account.
type Holding struct {
	Tradingsymbol   string  `json:"tradingsymbol"`
	Exchange        string  `json:"exchange"`
	InstrumentToken uint32  `json:"instrument_token"`
	ISIN            string  `json:"isin"`
	Product         string  `json:"product"`
	Quantity        int     `json:"quantity"`
	T1Quantity      int     `json:"t1_quantity"`
	RealisedQty     int     `json:"realised_quantity"`
	AveragePrice    float64 `json:"average_price"`
	LastPrice       float64 `json:"last_price"`
	ClosePrice      float64 `json:"close_price"`
	PnL             float64 `json:"pnl"`
	DayChange       float64 `json:"day_change"`
	DayChangePct    float64 `json:"day_change_percentage"`
}

// Position is one open intraday or carry-forward position.
type Position struct {
	Tradingsymbol   string  `json:"tradingsymbol"`
	Exchange        string  `json:"exchange"`
	InstrumentToken uint32  `json:"instrument_token"`
	Product         string  `json:"product"`
	Quantity        int     `json:"quantity"`
	OvernightQty    int     `json:"overnight_quantity"`
	Multiplier      float64 `json:"multiplier"`
	AveragePrice    float64 `json:"average_price"`
	ClosePrice      float64 `json:"close_price"`
	LastPrice       float64 `json:"last_price"`
	Value           float64 `json:"value"`
	PnL             float64 `json:"pnl"`
	M2M             float64 `json:"m2m"`
	Unrealised      float64 `json:"unrealised"`
	Realised        float64 `json:"realised"`
	BuyQuantity     int     `json:"buy_quantity"`
	BuyPrice        float64 `json:"buy_price"`
	BuyValue        float64 `json:"buy_value"`
	SellQuantity    int     `json:"sell_quantity"`
	SellPrice       float64 `json:"sell_price"`
	SellValue       float64 `json:"sell_value"`
}

// Positions groups open positions into the net book and today's trades.
type Positions struct {
	Net []Position `json:"net"`
	Day []Position `json:"day"`
}

// ConvertPositionParams describes a product-type conversion of an open
// position.
type ConvertPositionParams struct {
	Exchange        string
	Tradingsymbol   string
	TransactionType string
	PositionType    string
	Quantity        int
	OldProduct      string
	NewProduct      string
}

// Profile fetches the user's account profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	payload, err := c.dispatch(ctx, OpProfile, params{})
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := decodeData(payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Margins fetches funds and margin utilisation across all segments.
func (c *Client) Margins(ctx context.Context) (*Margins, error) {
	payload, err := c.dispatch(ctx, OpMargins, params{})
	if err != nil {
		return nil, err
	}
	var m Margins
	if err := decodeData(payload, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarginsSegment fetches funds for a single segment, "equity" or
// "commodity".
func (c *Client) MarginsSegment(ctx context.Context, segment string) (*SegmentMargins, error) {
	payload, err := c.dispatch(ctx, OpMarginsSegment, params{segments: []string{segment}})
	if err != nil {
		return nil, err
	}
	var m SegmentMargins
	if err := decodeData(payload, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Holdings fetches the demat holdings.
func (c *Client) Holdings(ctx context.Context) ([]Holding, error) {
	payload, err := c.dispatch(ctx, OpHoldings, params{})
	if err != nil {
		return nil, err
	}
	var holdings []Holding
	if err := decodeData(payload, &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

// Positions fetches the open positions, both the net book and today's.
func (c *Client) Positions(ctx context.Context) (*Positions, error) {
	payload, err := c.dispatch(ctx, OpPositions, params{})
	if err != nil {
		return nil, err
	}
	var pos Positions
	if err := decodeData(payload, &pos); err != nil {
		return nil, err
	}
	return &pos, nil
}

// ConvertPosition converts an open position between product types, e.g.
// intraday to delivery.
func (c *Client) ConvertPosition(ctx context.Context, p ConvertPositionParams) error {
	form := url.Values{}
	form.Set("exchange", p.Exchange)
	form.Set("tradingsymbol", p.Tradingsymbol)
	form.Set("transaction_type", p.TransactionType)
	form.Set("position_type", p.PositionType)
	form.Set("quantity", strconv.Itoa(p.Quantity))
	form.Set("old_product", p.OldProduct)
	form.Set("new_product", p.NewProduct)

	_, err := c.dispatch(ctx, OpConvertPosition, params{form: form})
	return err
}
