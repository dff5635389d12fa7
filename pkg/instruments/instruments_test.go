package instruments

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
)

const sampleCSV = `instrument_token,exchange_token,tradingsymbol,name,last_price,expiry,strike,tick_size,lot_size,instrument_type,segment,exchange
408065,1594,INFY,INFOSYS,1510.5,,0,0.05,1,EQ,NSE,NSE
738561,2885,RELIANCE,RELIANCE INDUSTRIES,2450,,0,0.05,1,EQ,NSE,NSE
12345602,48225,NIFTY24DEC21000CE,,102.35,2024-12-26,21000,0.05,50,CE,NFO-OPT,NFO
`

func TestParseCSV(t *testing.T) {
	instruments, err := ParseCSV([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(instruments) != 3 {
		t.Fatalf("parsed %d instruments, want 3", len(instruments))
	}

	infy := instruments[0]
	if infy.InstrumentToken != 408065 || infy.Tradingsymbol != "INFY" || infy.Exchange != "NSE" {
		t.Errorf("first instrument = %+v", infy)
	}
	if infy.LastPrice != 1510.5 || infy.TickSize != 0.05 || infy.LotSize != 1 {
		t.Errorf("numeric fields = %+v", infy)
	}

	opt := instruments[2]
	if opt.Strike != 21000 || opt.InstrumentType != "CE" || opt.Expiry != "2024-12-26" {
		t.Errorf("option fields = %+v", opt)
	}
}

func TestParseCSVRejectsGarbage(t *testing.T) {
	cases := map[string]string{
		"wrong header": "foo,bar\n1,2\n",
		"bad token": `instrument_token,exchange_token,tradingsymbol,name,last_price,expiry,strike,tick_size,lot_size,instrument_type,segment,exchange
abc,1594,INFY,INFOSYS,1510.5,,0,0.05,1,EQ,NSE,NSE
`,
		"short row": `instrument_token,exchange_token,tradingsymbol,name,last_price,expiry,strike,tick_size,lot_size,instrument_type,segment,exchange
408065,1594,INFY
`,
	}
	for name, data := range cases {
		if _, err := ParseCSV([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "instruments.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	parsed, err := ParseCSV([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if err := store.ReplaceAll(ctx, parsed); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}

	ins, err := store.Lookup(ctx, "NSE", "INFY")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ins == nil || ins.InstrumentToken != 408065 {
		t.Errorf("Lookup = %+v", ins)
	}

	ins, err = store.ByToken(ctx, 738561)
	if err != nil {
		t.Fatalf("ByToken: %v", err)
	}
	if ins == nil || ins.Tradingsymbol != "RELIANCE" {
		t.Errorf("ByToken = %+v", ins)
	}

	missing, err := store.Lookup(ctx, "NSE", "NOPE")
	if err != nil {
		t.Fatalf("Lookup missing: %v", err)
	}
	if missing != nil {
		t.Errorf("Lookup missing = %+v, want nil", missing)
	}

	last, err := store.LastRefreshed(ctx)
	if err != nil {
		t.Fatalf("LastRefreshed: %v", err)
	}
	if last.IsZero() {
		t.Error("LastRefreshed is zero after a refresh")
	}
}

func TestStoreReplaceIsWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, _ := ParseCSV([]byte(sampleCSV))
	if err := store.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	// Second refresh with only one row; the other rows must vanish.
	if err := store.ReplaceAll(ctx, first[:1]); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	n, _ := store.Count(ctx)
	if n != 1 {
		t.Errorf("Count = %d after replace, want 1", n)
	}
	gone, _ := store.ByToken(ctx, 738561)
	if gone != nil {
		t.Errorf("replaced instrument still present: %+v", gone)
	}
}

func TestStoreSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	parsed, _ := ParseCSV([]byte(sampleCSV))
	if err := store.ReplaceAll(ctx, parsed); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	hits, err := store.Search(ctx, "NIFTY", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Tradingsymbol != "NIFTY24DEC21000CE" {
		t.Errorf("Search = %+v", hits)
	}

	none, err := store.Search(ctx, "ZZZ", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Search = %+v, want empty", none)
	}
}

type fakeSource struct {
	calls     int
	exchanges []string
	err       error
}

func (f *fakeSource) InstrumentsCSV(_ context.Context, exchange string) ([]byte, error) {
	f.calls++
	f.exchanges = append(f.exchanges, exchange)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(sampleCSV), nil
}

func TestRefresherRefresh(t *testing.T) {
	store := newTestStore(t)
	src := &fakeSource{}
	r := NewRefresher(src, store, nil, nil)

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if src.calls != 1 || src.exchanges[0] != "" {
		t.Errorf("source calls = %d %v, want one full-dump call", src.calls, src.exchanges)
	}

	n, _ := store.Count(context.Background())
	if n != 3 {
		t.Errorf("Count = %d after refresh, want 3", n)
	}
}

func TestRefresherPerExchange(t *testing.T) {
	store := newTestStore(t)
	src := &fakeSource{}
	r := NewRefresher(src, store, []string{"NSE", "BSE"}, nil)

	if err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("source calls = %d, want 2", src.calls)
	}
}

func TestRefresherPropagatesDownloadError(t *testing.T) {
	store := newTestStore(t)
	src := &fakeSource{err: fmt.Errorf("boom")}
	r := NewRefresher(src, store, nil, nil)

	if err := r.Refresh(context.Background()); err == nil {
		t.Error("expected a download error")
	}
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	store := newTestStore(t)
	s := NewScheduler(NewRefresher(&fakeSource{}, store, nil, nil), "not a schedule", nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Error("expected an error for an invalid cron expression")
	}
}
