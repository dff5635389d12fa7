package kite

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// GTT trigger types.
const (
	GTTTypeSingle = "single"
	GTTTypeOCO    = "two-leg"
)

// GTTCondition is the price condition a trigger watches.
type GTTCondition struct {
	Exchange      string    `json:"exchange"`
	Tradingsymbol string    `json:"tradingsymbol"`
	LastPrice     float64   `json:"last_price"`
	TriggerValues []float64 `json:"trigger_values"`
}

// GTTOrder is one order released when its trigger fires.
type GTTOrder struct {
	Exchange        string  `json:"exchange"`
	Tradingsymbol   string  `json:"tradingsymbol"`
	TransactionType string  `json:"transaction_type"`
	OrderType       string  `json:"order_type"`
	Product         string  `json:"product"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
}

// GTT is one good-till-triggered entry.
type GTT struct {
	ID        int          `json:"id"`
	Type      string       `json:"type"`
	Status    string       `json:"status"`
	Condition GTTCondition `json:"condition"`
	Orders    []GTTOrder   `json:"orders"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	ExpiresAt string       `json:"expires_at"`
}

// GTTParams describes a new trigger. A single trigger carries one trigger
// value and one order; a two-leg (OCO) trigger carries two of each.
type GTTParams struct {
	Type      string
	Condition GTTCondition
	Orders    []GTTOrder
}

// gttForm encodes the trigger as the endpoint expects: condition and orders
// are JSON documents inside an urlencoded form.
func gttForm(p GTTParams) (url.Values, error) {
	condition, err := json.Marshal(p.Condition)
	if err != nil {
		return nil, err
	}
	orders, err := json.Marshal(p.Orders)
	if err != nil {
		return nil, err
	}
	form := url.Values{}
	form.Set("type", p.Type)
	form.Set("condition", string(condition))
	form.Set("orders", string(orders))
	return form, nil
}

type gttIDResponse struct {
	TriggerID int `json:"trigger_id"`
}

// PlaceGTT creates a good-till-triggered order and returns its trigger ID.
func (c *Client) PlaceGTT(ctx context.Context, p GTTParams) (int, error) {
	form, err := gttForm(p)
	if err != nil {
		return 0, err
	}
	payload, err := c.dispatch(ctx, OpPlaceGTT, params{form: form})
	if err != nil {
		return 0, err
	}
	var resp gttIDResponse
	if err := decodeData(payload, &resp); err != nil {
		return 0, err
	}
	return resp.TriggerID, nil
}

// ModifyGTT replaces the condition and orders of an existing trigger.
func (c *Client) ModifyGTT(ctx context.Context, triggerID int, p GTTParams) (int, error) {
	form, err := gttForm(p)
	if err != nil {
		return 0, err
	}
	payload, err := c.dispatch(ctx, OpModifyGTT, params{
		segments: []string{strconv.Itoa(triggerID)},
		form:     form,
	})
	if err != nil {
		return 0, err
	}
	var resp gttIDResponse
	if err := decodeData(payload, &resp); err != nil {
		return 0, err
	}
	return resp.TriggerID, nil
}

// CancelGTT deletes a trigger.
func (c *Client) CancelGTT(ctx context.Context, triggerID int) error {
	_, err := c.dispatch(ctx, OpCancelGTT, params{segments: []string{strconv.Itoa(triggerID)}})
	return err
}

// GTTs fetches all triggers.
func (c *Client) GTTs(ctx context.Context) ([]GTT, error) {
	payload, err := c.dispatch(ctx, OpGTTs, params{})
	if err != nil {
		return nil, err
	}
	var triggers []GTT
	if err := decodeData(payload, &triggers); err != nil {
		return nil, err
	}
	return triggers, nil
}

// GTTInfo fetches a single trigger.
func (c *Client) GTTInfo(ctx context.Context, triggerID int) (*GTT, error) {
	payload, err := c.dispatch(ctx, OpGTTInfo, params{segments: []string{strconv.Itoa(triggerID)}})
	if err != nil {
		return nil, err
	}
	var trigger GTT
	if err := decodeData(payload, &trigger); err != nil {
		return nil, err
	}
	return &trigger, nil
}
