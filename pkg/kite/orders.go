package kite

import (
	"context"
	"net/url"
	"strconv"
)

// Order varieties accepted by the order endpoints.
const (
	VarietyRegular = "regular"
	VarietyAMO     = "amo"
	VarietyCO      = "co"
	VarietyIceberg = "iceberg"
	VarietyAuction = "auction"
)

// Order is one entry in the order book.
type Order struct {
	OrderID           string  `json:"order_id"`
	ExchangeOrderID   string  `json:"exchange_order_id"`
	ParentOrderID     string  `json:"parent_order_id"`
	Status            string  `json:"status"`
	StatusMessage     string  `json:"status_message"`
	OrderTimestamp    string  `json:"order_timestamp"`
	Variety           string  `json:"variety"`
	Exchange          string  `json:"exchange"`
	Tradingsymbol     string  `json:"tradingsymbol"`
	InstrumentToken   uint32  `json:"instrument_token"`
	OrderType         string  `json:"order_type"`
	TransactionType   string  `json:"transaction_type"`
	Validity          string  `json:"validity"`
	Product           string  `json:"product"`
	Quantity          int     `json:"quantity"`
	DisclosedQuantity int     `json:"disclosed_quantity"`
	Price             float64 `json:"price"`
	TriggerPrice      float64 `json:"trigger_price"`
	AveragePrice      float64 `json:"average_price"`
	FilledQuantity    int     `json:"filled_quantity"`
	PendingQuantity   int     `json:"pending_quantity"`
	CancelledQuantity int     `json:"cancelled_quantity"`
	Tag               string  `json:"tag"`
}

// Trade is one execution against an order.
type Trade struct {
	TradeID         string  `json:"trade_id"`
	OrderID         string  `json:"order_id"`
	ExchangeOrderID string  `json:"exchange_order_id"`
	Tradingsymbol   string  `json:"tradingsymbol"`
	Exchange        string  `json:"exchange"`
	InstrumentToken uint32  `json:"instrument_token"`
	TransactionType string  `json:"transaction_type"`
	Product         string  `json:"product"`
	AveragePrice    float64 `json:"average_price"`
	Quantity        int     `json:"quantity"`
	FillTimestamp   string  `json:"fill_timestamp"`
}

// OrderParams describes a new order. Zero-valued optional fields are
// omitted from the request.
type OrderParams struct {
	Exchange          string
	Tradingsymbol     string
	TransactionType   string
	OrderType         string
	Product           string
	Validity          string
	Quantity          int
	DisclosedQuantity int
	Price             float64
	TriggerPrice      float64
	IcebergLegs       int
	IcebergQuantity   int
	Tag               string
}

func (p OrderParams) values() url.Values {
	form := url.Values{}
	form.Set("exchange", p.Exchange)
	form.Set("tradingsymbol", p.Tradingsymbol)
	form.Set("transaction_type", p.TransactionType)
	form.Set("order_type", p.OrderType)
	form.Set("product", p.Product)
	form.Set("quantity", strconv.Itoa(p.Quantity))
	if p.Validity != "" {
		form.Set("validity", p.Validity)
	}
	if p.DisclosedQuantity > 0 {
		form.Set("disclosed_quantity", strconv.Itoa(p.DisclosedQuantity))
	}
	if p.Price > 0 {
		form.Set("price", strconv.FormatFloat(p.Price, 'f', -1, 64))
	}
	if p.TriggerPrice > 0 {
		form.Set("trigger_price", strconv.FormatFloat(p.TriggerPrice, 'f', -1, 64))
	}
	if p.IcebergLegs > 0 {
		form.Set("iceberg_legs", strconv.Itoa(p.IcebergLegs))
	}
	if p.IcebergQuantity > 0 {
		form.Set("iceberg_quantity", strconv.Itoa(p.IcebergQuantity))
	}
	if p.Tag != "" {
		form.Set("tag", p.Tag)
	}
	return form
}

// orderIDResponse is the payload shape shared by all order mutations.
type orderIDResponse struct {
	OrderID string `json:"order_id"`
}

// PlaceOrder places a new order and returns its ID. Placement is not
// retried automatically unless the retry policy opts writes in; a timed-out
// placement may still have reached the exchange.
func (c *Client) PlaceOrder(ctx context.Context, variety string, p OrderParams) (string, error) {
	payload, err := c.dispatch(ctx, OpPlaceOrder, params{
		segments: []string{variety},
		form:     p.values(),
	})
	if err != nil {
		return "", err
	}
	var resp orderIDResponse
	if err := decodeData(payload, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}

// ModifyOrderParams describes changes to a pending order. Zero-valued
// fields are left unchanged.
type ModifyOrderParams struct {
	OrderType         string
	Validity          string
	Quantity          int
	DisclosedQuantity int
	Price             float64
	TriggerPrice      float64
}

// ModifyOrder modifies a pending order.
func (c *Client) ModifyOrder(ctx context.Context, variety, orderID string, p ModifyOrderParams) (string, error) {
	form := url.Values{}
	if p.OrderType != "" {
		form.Set("order_type", p.OrderType)
	}
	if p.Validity != "" {
		form.Set("validity", p.Validity)
	}
	if p.Quantity > 0 {
		form.Set("quantity", strconv.Itoa(p.Quantity))
	}
	if p.DisclosedQuantity > 0 {
		form.Set("disclosed_quantity", strconv.Itoa(p.DisclosedQuantity))
	}
	if p.Price > 0 {
		form.Set("price", strconv.FormatFloat(p.Price, 'f', -1, 64))
	}
	if p.TriggerPrice > 0 {
		form.Set("trigger_price", strconv.FormatFloat(p.TriggerPrice, 'f', -1, 64))
	}

	payload, err := c.dispatch(ctx, OpModifyOrder, params{
		segments: []string{variety, orderID},
		form:     form,
	})
	if err != nil {
		return "", err
	}
	var resp orderIDResponse
	if err := decodeData(payload, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, variety, orderID string) (string, error) {
	payload, err := c.dispatch(ctx, OpCancelOrder, params{
		segments: []string{variety, orderID},
	})
	if err != nil {
		return "", err
	}
	var resp orderIDResponse
	if err := decodeData(payload, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}

// Orders fetches the order book for the day.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	payload, err := c.dispatch(ctx, OpOrders, params{})
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := decodeData(payload, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderHistory fetches the state transitions of a single order.
func (c *Client) OrderHistory(ctx context.Context, orderID string) ([]Order, error) {
	payload, err := c.dispatch(ctx, OpOrderHistory, params{segments: []string{orderID}})
	if err != nil {
		return nil, err
	}
	var history []Order
	if err := decodeData(payload, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Trades fetches all executions for the day.
func (c *Client) Trades(ctx context.Context) ([]Trade, error) {
	payload, err := c.dispatch(ctx, OpTrades, params{})
	if err != nil {
		return nil, err
	}
	var trades []Trade
	if err := decodeData(payload, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// OrderTrades fetches the executions of a single order.
func (c *Client) OrderTrades(ctx context.Context, orderID string) ([]Trade, error) {
	payload, err := c.dispatch(ctx, OpOrderTrades, params{segments: []string{orderID, "trades"}})
	if err != nil {
		return nil, err
	}
	var trades []Trade
	if err := decodeData(payload, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}
