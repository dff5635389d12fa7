package kite

import (
	"context"
	"net/url"
	"strconv"
)

// MFOrder is one mutual fund order.
type MFOrder struct {
	OrderID           string  `json:"order_id"`
	ExchangeOrderID   string  `json:"exchange_order_id"`
	Tradingsymbol     string  `json:"tradingsymbol"`
	Fund              string  `json:"fund"`
	Status            string  `json:"status"`
	StatusMessage     string  `json:"status_message"`
	Folio             string  `json:"folio"`
	TransactionType   string  `json:"transaction_type"`
	Variety           string  `json:"variety"`
	PurchaseType      string  `json:"purchase_type"`
	Amount            float64 `json:"amount"`
	Quantity          float64 `json:"quantity"`
	AveragePrice      float64 `json:"average_price"`
	PlacedBy          string  `json:"placed_by"`
	OrderTimestamp    string  `json:"order_timestamp"`
	ExchangeTimestamp string  `json:"exchange_timestamp"`
	SettlementID      string  `json:"settlement_id"`
	Tag               string  `json:"tag"`
}

// MFHolding is one mutual fund holding.
type MFHolding struct {
	Tradingsymbol string  `json:"tradingsymbol"`
	Fund          string  `json:"fund"`
	Folio         string  `json:"folio"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	LastPrice     float64 `json:"last_price"`
	LastPriceDate string  `json:"last_price_date"`
	PnL           float64 `json:"pnl"`
}

// MFSIP is one systematic investment plan.
type MFSIP struct {
	SIPID            string  `json:"sip_id"`
	Tradingsymbol    string  `json:"tradingsymbol"`
	Fund             string  `json:"fund"`
	Status           string  `json:"status"`
	Frequency        string  `json:"frequency"`
	InstalmentAmount float64 `json:"instalment_amount"`
	Instalments      int     `json:"instalments"`
	PendingInstalms  int     `json:"pending_instalments"`
	InstalmentDay    int     `json:"instalment_day"`
	LastInstalment   string  `json:"last_instalment"`
	NextInstalment   string  `json:"next_instalment"`
	Created          string  `json:"created"`
	Tag              string  `json:"tag"`
}

// MFOrderParams describes a new mutual fund order. Exactly one of Amount
// (purchase) or Quantity (redemption) applies.
type MFOrderParams struct {
	Tradingsymbol   string
	TransactionType string
	Amount          float64
	Quantity        float64
	Tag             string
}

type mfOrderIDResponse struct {
	OrderID string `json:"order_id"`
}

type sipIDResponse struct {
	SIPID string `json:"sip_id"`
}

// PlaceMFOrder places a mutual fund purchase or redemption.
func (c *Client) PlaceMFOrder(ctx context.Context, p MFOrderParams) (string, error) {
	form := url.Values{}
	form.Set("tradingsymbol", p.Tradingsymbol)
	form.Set("transaction_type", p.TransactionType)
	if p.Amount > 0 {
		form.Set("amount", strconv.FormatFloat(p.Amount, 'f', -1, 64))
	}
	if p.Quantity > 0 {
		form.Set("quantity", strconv.FormatFloat(p.Quantity, 'f', -1, 64))
	}
	if p.Tag != "" {
		form.Set("tag", p.Tag)
	}

	payload, err := c.dispatch(ctx, OpPlaceMFOrder, params{form: form})
	if err != nil {
		return "", err
	}
	var resp mfOrderIDResponse
	if err := decodeData(payload, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}

// CancelMFOrder cancels a pending mutual fund order.
func (c *Client) CancelMFOrder(ctx context.Context, orderID string) error {
	_, err := c.dispatch(ctx, OpCancelMFOrder, params{segments: []string{orderID}})
	return err
}

// MFOrders fetches all mutual fund orders.
func (c *Client) MFOrders(ctx context.Context) ([]MFOrder, error) {
	payload, err := c.dispatch(ctx, OpMFOrders, params{})
	if err != nil {
		return nil, err
	}
	var orders []MFOrder
	if err := decodeData(payload, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MFOrderInfo fetches a single mutual fund order.
func (c *Client) MFOrderInfo(ctx context.Context, orderID string) (*MFOrder, error) {
	payload, err := c.dispatch(ctx, OpMFOrderInfo, params{segments: []string{orderID}})
	if err != nil {
		return nil, err
	}
	var order MFOrder
	if err := decodeData(payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MFHoldings fetches all mutual fund holdings.
func (c *Client) MFHoldings(ctx context.Context) ([]MFHolding, error) {
	payload, err := c.dispatch(ctx, OpMFHoldings, params{})
	if err != nil {
		return nil, err
	}
	var holdings []MFHolding
	if err := decodeData(payload, &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

// SIPParams describes a new systematic investment plan.
type SIPParams struct {
	Tradingsymbol    string
	Frequency        string
	InstalmentAmount float64
	Instalments      int
	InstalmentDay    int
	InitialAmount    float64
	Tag              string
}

// PlaceSIP creates a systematic investment plan and returns its ID.
func (c *Client) PlaceSIP(ctx context.Context, p SIPParams) (string, error) {
	form := url.Values{}
	form.Set("tradingsymbol", p.Tradingsymbol)
	form.Set("frequency", p.Frequency)
	form.Set("amount", strconv.FormatFloat(p.InstalmentAmount, 'f', -1, 64))
	form.Set("instalments", strconv.Itoa(p.Instalments))
	if p.InstalmentDay > 0 {
		form.Set("instalment_day", strconv.Itoa(p.InstalmentDay))
	}
	if p.InitialAmount > 0 {
		form.Set("initial_amount", strconv.FormatFloat(p.InitialAmount, 'f', -1, 64))
	}
	if p.Tag != "" {
		form.Set("tag", p.Tag)
	}

	payload, err := c.dispatch(ctx, OpPlaceSIP, params{form: form})
	if err != nil {
		return "", err
	}
	var resp sipIDResponse
	if err := decodeData(payload, &resp); err != nil {
		return "", err
	}
	return resp.SIPID, nil
}

// ModifySIPParams describes changes to an active plan. Zero-valued fields
// are left unchanged.
type ModifySIPParams struct {
	Frequency        string
	InstalmentAmount float64
	Instalments      int
	InstalmentDay    int
	Status           string
}

// ModifySIP modifies an active systematic investment plan.
func (c *Client) ModifySIP(ctx context.Context, sipID string, p ModifySIPParams) error {
	form := url.Values{}
	if p.Frequency != "" {
		form.Set("frequency", p.Frequency)
	}
	if p.InstalmentAmount > 0 {
		form.Set("amount", strconv.FormatFloat(p.InstalmentAmount, 'f', -1, 64))
	}
	if p.Instalments > 0 {
		form.Set("instalments", strconv.Itoa(p.Instalments))
	}
	if p.InstalmentDay > 0 {
		form.Set("instalment_day", strconv.Itoa(p.InstalmentDay))
	}
	if p.Status != "" {
		form.Set("status", p.Status)
	}

	_, err := c.dispatch(ctx, OpModifySIP, params{segments: []string{sipID}, form: form})
	return err
}

// CancelSIP cancels a systematic investment plan.
func (c *Client) CancelSIP(ctx context.Context, sipID string) error {
	_, err := c.dispatch(ctx, OpCancelSIP, params{segments: []string{sipID}})
	return err
}

// SIPs fetches all systematic investment plans.
func (c *Client) SIPs(ctx context.Context) ([]MFSIP, error) {
	payload, err := c.dispatch(ctx, OpSIPs, params{})
	if err != nil {
		return nil, err
	}
	var sips []MFSIP
	if err := decodeData(payload, &sips); err != nil {
		return nil, err
	}
	return sips, nil
}

// SIPInfo fetches a single systematic investment plan.
func (c *Client) SIPInfo(ctx context.Context, sipID string) (*MFSIP, error) {
	payload, err := c.dispatch(ctx, OpSIPInfo, params{segments: []string{sipID}})
	if err != nil {
		return nil, err
	}
	var sip MFSIP
	if err := decodeData(payload, &sip); err != nil {
		return nil, err
	}
	return &sip, nil
}
