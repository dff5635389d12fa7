package kite

import (
	"encoding/json"
	"testing"
)

func TestCandleUnmarshal(t *testing.T) {
	raw := []byte(`["2024-01-02T09:15:00+0530",101.5,103.0,100.25,102.75,48210]`)
	var c Candle
	if err := json.Unmarshal(raw, &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Timestamp != "2024-01-02T09:15:00+0530" {
		t.Errorf("Timestamp = %s", c.Timestamp)
	}
	if c.Open != 101.5 || c.High != 103.0 || c.Low != 100.25 || c.Close != 102.75 {
		t.Errorf("OHLC = %v %v %v %v", c.Open, c.High, c.Low, c.Close)
	}
	if c.Volume != 48210 {
		t.Errorf("Volume = %d", c.Volume)
	}
	if c.OI != 0 {
		t.Errorf("OI = %d, want 0 when absent", c.OI)
	}
}

func TestCandleUnmarshalWithOI(t *testing.T) {
	raw := []byte(`["2024-01-02T09:15:00+0530",101.5,103.0,100.25,102.75,48210,17500]`)
	var c Candle
	if err := json.Unmarshal(raw, &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.OI != 17500 {
		t.Errorf("OI = %d, want 17500", c.OI)
	}
}

func TestCandleUnmarshalRejectsShortArray(t *testing.T) {
	var c Candle
	if err := json.Unmarshal([]byte(`["ts",1,2,3]`), &c); err == nil {
		t.Error("short candle array accepted")
	}
	if err := json.Unmarshal([]byte(`[1,2,3,4,5,6]`), &c); err == nil {
		t.Error("candle without string timestamp accepted")
	}
}

func TestInstrumentsQueryRepeatsKey(t *testing.T) {
	q := instrumentsQuery([]string{"NSE:INFY", "BSE:SENSEX"})
	if got := q.Encode(); got != "i=NSE%3AINFY&i=BSE%3ASENSEX" {
		t.Errorf("Encode() = %q", got)
	}
}
