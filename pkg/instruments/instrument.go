package instruments

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Instrument is one row of the instrument master dump.
type Instrument struct {
	InstrumentToken uint32
	ExchangeToken   uint32
	Tradingsymbol   string
	Name            string
	LastPrice       float64
	Expiry          string
	Strike          float64
	TickSize        float64
	LotSize         int
	InstrumentType  string
	Segment         string
	Exchange        string
}

// ParseCSV decodes the instrument dump the API serves. The dump has a fixed
// twelve-column header; rows with malformed numeric fields are rejected
// rather than silently skipped, since a broken dump should fail loudly.
func ParseCSV(data []byte) ([]Instrument, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 12

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading instrument dump header: %w", err)
	}
	if len(header) != 12 || header[0] != "instrument_token" {
		return nil, fmt.Errorf("unexpected instrument dump header %v", header)
	}

	var out []Instrument
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading instrument dump line %d: %w", line, err)
		}

		ins, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("instrument dump line %d: %w", line, err)
		}
		out = append(out, ins)
	}
	return out, nil
}

func parseRecord(record []string) (Instrument, error) {
	token, err := strconv.ParseUint(record[0], 10, 32)
	if err != nil {
		return Instrument{}, fmt.Errorf("instrument_token %q: %w", record[0], err)
	}
	exchToken, err := strconv.ParseUint(record[1], 10, 32)
	if err != nil {
		return Instrument{}, fmt.Errorf("exchange_token %q: %w", record[1], err)
	}
	lastPrice, err := parseFloat(record[4])
	if err != nil {
		return Instrument{}, fmt.Errorf("last_price %q: %w", record[4], err)
	}
	strike, err := parseFloat(record[6])
	if err != nil {
		return Instrument{}, fmt.Errorf("strike %q: %w", record[6], err)
	}
	tickSize, err := parseFloat(record[7])
	if err != nil {
		return Instrument{}, fmt.Errorf("tick_size %q: %w", record[7], err)
	}
	lotSize := 0
	if record[8] != "" {
		lotSize, err = strconv.Atoi(record[8])
		if err != nil {
			return Instrument{}, fmt.Errorf("lot_size %q: %w", record[8], err)
		}
	}

	return Instrument{
		InstrumentToken: uint32(token),
		ExchangeToken:   uint32(exchToken),
		Tradingsymbol:   record[2],
		Name:            record[3],
		LastPrice:       lastPrice,
		Expiry:          record[5],
		Strike:          strike,
		TickSize:        tickSize,
		LotSize:         lotSize,
		InstrumentType:  record[9],
		Segment:         record[10],
		Exchange:        record[11],
	}, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
