package kite

import (
	"net/http"
	"strings"

	"github.com/SPRAGE/kiteconnect-async-wasm-sub000/pkg/kite/ratelimit"
)

// RateLimitCategory groups operations that share one throughput ceiling.
// The remote service enforces independent ceilings per functional area, so
// saturating one category must never delay requests in another. The type and
// its ceilings live in the ratelimit package; these aliases keep callers of
// this package from importing it directly.
type RateLimitCategory = ratelimit.Category

const (
	// CategoryQuote covers real-time market data (quotes, OHLC, LTP): 1 req/s.
	CategoryQuote = ratelimit.Quote
	// CategoryHistorical covers historical candle data: 3 req/s.
	CategoryHistorical = ratelimit.Historical
	// CategoryOrders covers order placement and modification: 10 req/s.
	CategoryOrders = ratelimit.Orders
	// CategoryStandard covers all other operations: 10 req/s.
	CategoryStandard = ratelimit.Standard
)

// Categories returns all declared rate limit categories.
func Categories() []RateLimitCategory {
	return ratelimit.Categories()
}

// Operation identifies one logical remote operation. Every operation the
// client exposes resolves to exactly one Endpoint entry in the registry.
type Operation int

const (
	// Authentication
	OpLoginURL Operation = iota
	OpGenerateSession
	OpInvalidateSession
	OpRenewAccessToken
	OpInvalidateRefreshToken

	// User
	OpProfile
	OpMargins
	OpMarginsSegment

	// Portfolio
	OpHoldings
	OpPositions
	OpConvertPosition

	// Orders
	OpPlaceOrder
	OpModifyOrder
	OpCancelOrder
	OpOrders
	OpOrderHistory
	OpTrades
	OpOrderTrades

	// Market data
	OpQuote
	OpOHLC
	OpLTP
	OpHistoricalData
	OpInstruments
	OpMFInstruments
	OpTriggerRange
	OpMarketMargins

	// Mutual funds
	OpPlaceMFOrder
	OpCancelMFOrder
	OpMFOrders
	OpMFOrderInfo
	OpMFHoldings
	OpPlaceSIP
	OpModifySIP
	OpCancelSIP
	OpSIPs
	OpSIPInfo

	// GTT
	OpPlaceGTT
	OpModifyGTT
	OpCancelGTT
	OpGTTs
	OpGTTInfo

	operationCount
)

// Endpoint is the static description of one remote operation: HTTP method,
// path template, rate limit category, and whether the call must carry an
// authorization header.
type Endpoint struct {
	Method       string
	Path         string
	Category     RateLimitCategory
	RequiresAuth bool
}

// ReadOnly reports whether the operation is read-shaped. The retry
// orchestrator only auto-retries read-shaped operations; see RetryPolicy.
func (e Endpoint) ReadOnly() bool {
	return e.Method == http.MethodGet
}

// registry is the single source of truth mapping operations to endpoint
// metadata. Centralizing this prevents a newly added operation from silently
// missing its throttle category.
var registry = map[Operation]Endpoint{
	OpLoginURL:               {http.MethodGet, "/connect/login", CategoryStandard, false},
	OpGenerateSession:        {http.MethodPost, "/session/token", CategoryStandard, false},
	OpInvalidateSession:      {http.MethodDelete, "/session/token", CategoryStandard, true},
	OpRenewAccessToken:       {http.MethodPost, "/session/refresh_token", CategoryStandard, true},
	OpInvalidateRefreshToken: {http.MethodDelete, "/session/refresh_token", CategoryStandard, true},

	OpProfile:        {http.MethodGet, "/user/profile", CategoryStandard, true},
	OpMargins:        {http.MethodGet, "/user/margins", CategoryStandard, true},
	OpMarginsSegment: {http.MethodGet, "/user/margins", CategoryStandard, true},

	OpHoldings:        {http.MethodGet, "/portfolio/holdings", CategoryStandard, true},
	OpPositions:       {http.MethodGet, "/portfolio/positions", CategoryStandard, true},
	OpConvertPosition: {http.MethodPut, "/portfolio/positions", CategoryStandard, true},

	OpPlaceOrder:   {http.MethodPost, "/orders", CategoryOrders, true},
	OpModifyOrder:  {http.MethodPut, "/orders", CategoryOrders, true},
	OpCancelOrder:  {http.MethodDelete, "/orders", CategoryOrders, true},
	OpOrders:       {http.MethodGet, "/orders", CategoryStandard, true},
	OpOrderHistory: {http.MethodGet, "/orders", CategoryStandard, true},
	OpTrades:       {http.MethodGet, "/trades", CategoryStandard, true},
	OpOrderTrades:  {http.MethodGet, "/orders", CategoryStandard, true},

	OpQuote:          {http.MethodGet, "/quote", CategoryQuote, true},
	OpOHLC:           {http.MethodGet, "/quote/ohlc", CategoryQuote, true},
	OpLTP:            {http.MethodGet, "/quote/ltp", CategoryQuote, true},
	OpHistoricalData: {http.MethodGet, "/instruments/historical", CategoryHistorical, true},
	OpInstruments:    {http.MethodGet, "/instruments", CategoryStandard, true},
	OpMFInstruments:  {http.MethodGet, "/mf/instruments", CategoryStandard, true},
	OpTriggerRange:   {http.MethodGet, "/instruments/trigger_range", CategoryStandard, true},
	OpMarketMargins:  {http.MethodGet, "/margins", CategoryStandard, true},

	OpPlaceMFOrder:  {http.MethodPost, "/mf/orders", CategoryOrders, true},
	OpCancelMFOrder: {http.MethodDelete, "/mf/orders", CategoryOrders, true},
	OpMFOrders:      {http.MethodGet, "/mf/orders", CategoryStandard, true},
	OpMFOrderInfo:   {http.MethodGet, "/mf/orders", CategoryStandard, true},
	OpMFHoldings:    {http.MethodGet, "/mf/holdings", CategoryStandard, true},
	OpPlaceSIP:      {http.MethodPost, "/mf/sips", CategoryOrders, true},
	OpModifySIP:     {http.MethodPut, "/mf/sips", CategoryOrders, true},
	OpCancelSIP:     {http.MethodDelete, "/mf/sips", CategoryOrders, true},
	OpSIPs:          {http.MethodGet, "/mf/sips", CategoryStandard, true},
	OpSIPInfo:       {http.MethodGet, "/mf/sips", CategoryStandard, true},

	OpPlaceGTT:  {http.MethodPost, "/gtt/triggers", CategoryOrders, true},
	OpModifyGTT: {http.MethodPut, "/gtt/triggers", CategoryOrders, true},
	OpCancelGTT: {http.MethodDelete, "/gtt/triggers", CategoryOrders, true},
	OpGTTs:      {http.MethodGet, "/gtt/triggers", CategoryStandard, true},
	OpGTTInfo:   {http.MethodGet, "/gtt/triggers", CategoryStandard, true},
}

// Cacheable reports whether the operation's response is slow-changing
// enough to memoize. Real-time data (quotes, positions, order books) is
// never cached; instrument dumps and historical candles are.
func (op Operation) Cacheable() bool {
	switch op {
	case OpInstruments, OpMFInstruments, OpHistoricalData, OpTriggerRange:
		return true
	}
	return false
}

// Endpoint resolves the operation in the registry. The lookup is total:
// every declared Operation has an entry, so this never fails at runtime
// (enforced by a registry completeness test).
func (op Operation) Endpoint() Endpoint {
	return registry[op]
}

// Category is a convenience accessor for the operation's throttle category.
func (op Operation) Category() RateLimitCategory {
	return registry[op].Category
}

// Operations returns all declared operations in declaration order.
func Operations() []Operation {
	ops := make([]Operation, 0, int(operationCount))
	for op := Operation(0); op < operationCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// ByCategory returns every operation whose endpoint belongs to the given
// category. Introspection only; the dispatch path never iterates this.
func ByCategory(category RateLimitCategory) []Operation {
	var ops []Operation
	for op := Operation(0); op < operationCount; op++ {
		if registry[op].Category == category {
			ops = append(ops, op)
		}
	}
	return ops
}

// BuildPath joins the endpoint's path template with ordered dynamic
// segments. An empty segment list returns the template unchanged.
//
//	OpOrderHistory: BuildPath("order_123") -> "/orders/order_123"
func (e Endpoint) BuildPath(segments ...string) string {
	if len(segments) == 0 {
		return e.Path
	}
	return e.Path + "/" + strings.Join(segments, "/")
}

// String returns the operation's wire-ish name, used in logs and metrics.
func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return "unknown"
}

var operationNames = map[Operation]string{
	OpLoginURL:               "login_url",
	OpGenerateSession:        "generate_session",
	OpInvalidateSession:      "invalidate_session",
	OpRenewAccessToken:       "renew_access_token",
	OpInvalidateRefreshToken: "invalidate_refresh_token",
	OpProfile:                "profile",
	OpMargins:                "margins",
	OpMarginsSegment:         "margins_segment",
	OpHoldings:               "holdings",
	OpPositions:              "positions",
	OpConvertPosition:        "convert_position",
	OpPlaceOrder:             "place_order",
	OpModifyOrder:            "modify_order",
	OpCancelOrder:            "cancel_order",
	OpOrders:                 "orders",
	OpOrderHistory:           "order_history",
	OpTrades:                 "trades",
	OpOrderTrades:            "order_trades",
	OpQuote:                  "quote",
	OpOHLC:                   "ohlc",
	OpLTP:                    "ltp",
	OpHistoricalData:         "historical_data",
	OpInstruments:            "instruments",
	OpMFInstruments:          "mf_instruments",
	OpTriggerRange:           "trigger_range",
	OpMarketMargins:          "market_margins",
	OpPlaceMFOrder:           "place_mf_order",
	OpCancelMFOrder:          "cancel_mf_order",
	OpMFOrders:               "mf_orders",
	OpMFOrderInfo:            "mf_order_info",
	OpMFHoldings:             "mf_holdings",
	OpPlaceSIP:               "place_sip",
	OpModifySIP:              "modify_sip",
	OpCancelSIP:              "cancel_sip",
	OpSIPs:                   "sips",
	OpSIPInfo:                "sip_info",
	OpPlaceGTT:               "place_gtt",
	OpModifyGTT:              "modify_gtt",
	OpCancelGTT:              "cancel_gtt",
	OpGTTs:                   "gtts",
	OpGTTInfo:                "gtt_info",
}
