package kite

import (
	"net/http"
	"testing"
)

func TestRegistryComplete(t *testing.T) {
	ops := Operations()
	if len(ops) != int(operationCount) {
		t.Fatalf("Operations() returned %d entries, want %d", len(ops), operationCount)
	}

	for _, op := range ops {
		ep := op.Endpoint()
		if ep.Method == "" || ep.Path == "" {
			t.Errorf("%s: incomplete registry entry %+v", op, ep)
		}
		if op.String() == "unknown" {
			t.Errorf("operation %d has no name", op)
		}
	}
}

func TestCategoryAssignments(t *testing.T) {
	tests := []struct {
		op   Operation
		want RateLimitCategory
	}{
		{OpQuote, CategoryQuote},
		{OpOHLC, CategoryQuote},
		{OpLTP, CategoryQuote},
		{OpHistoricalData, CategoryHistorical},
		{OpPlaceOrder, CategoryOrders},
		{OpModifyOrder, CategoryOrders},
		{OpCancelOrder, CategoryOrders},
		{OpPlaceGTT, CategoryOrders},
		{OpHoldings, CategoryStandard},
		{OpOrders, CategoryStandard},
		{OpInstruments, CategoryStandard},
	}
	for _, tt := range tests {
		if got := tt.op.Category(); got != tt.want {
			t.Errorf("%s: category = %s, want %s", tt.op, got, tt.want)
		}
	}
}

func TestByCategoryPartitionsRegistry(t *testing.T) {
	total := 0
	for _, c := range Categories() {
		ops := ByCategory(c)
		total += len(ops)
		for _, op := range ops {
			if op.Category() != c {
				t.Errorf("ByCategory(%s) contains %s with category %s", c, op, op.Category())
			}
		}
	}
	if total != int(operationCount) {
		t.Errorf("categories cover %d operations, want %d", total, operationCount)
	}
}

func TestBuildPath(t *testing.T) {
	ep := OpPlaceOrder.Endpoint()
	if got := ep.BuildPath(); got != "/orders" {
		t.Errorf("BuildPath() = %q, want /orders", got)
	}
	if got := ep.BuildPath("regular"); got != "/orders/regular" {
		t.Errorf("BuildPath(regular) = %q", got)
	}

	ep = OpHistoricalData.Endpoint()
	if got := ep.BuildPath("408065", "day"); got != "/instruments/historical/408065/day" {
		t.Errorf("BuildPath = %q", got)
	}
}

func TestReadOnlyFollowsMethod(t *testing.T) {
	if !OpHoldings.Endpoint().ReadOnly() {
		t.Error("GET endpoint not read-only")
	}
	for _, op := range []Operation{OpPlaceOrder, OpModifyOrder, OpCancelOrder} {
		if op.Endpoint().ReadOnly() {
			t.Errorf("%s reported read-only", op)
		}
	}
}

func TestCacheableOperationsAreReads(t *testing.T) {
	for _, op := range Operations() {
		if op.Cacheable() && op.Endpoint().Method != http.MethodGet {
			t.Errorf("%s is cacheable but not a GET", op)
		}
	}
	if OpQuote.Cacheable() {
		t.Error("real-time quotes must never be cacheable")
	}
	if !OpInstruments.Cacheable() {
		t.Error("instrument dump should be cacheable")
	}
}

func TestMutationsUseOrdersCategory(t *testing.T) {
	// Anything that places, modifies or cancels goes through the orders
	// throttle.
	for _, op := range []Operation{
		OpPlaceOrder, OpModifyOrder, OpCancelOrder,
		OpPlaceMFOrder, OpCancelMFOrder,
		OpPlaceSIP, OpModifySIP, OpCancelSIP,
		OpPlaceGTT, OpModifyGTT, OpCancelGTT,
	} {
		if op.Category() != CategoryOrders {
			t.Errorf("%s: category = %s, want orders", op, op.Category())
		}
	}
}
