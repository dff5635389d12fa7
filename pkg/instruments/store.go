package instruments

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store persists the instrument master in a local SQLite database, so
// lookups by symbol or token never cost an API call. The full dump is
// replaced atomically on every refresh.
type Store struct {
	db        *sql.DB
	closeOnce sync.Once

	lookupStmt  *sql.Stmt
	byTokenStmt *sql.Stmt
	searchStmt  *sql.Stmt
}

// OpenStore opens (and if necessary creates) the database at path. WAL mode
// keeps readers unblocked during a refresh.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("instruments: database path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("instruments: opening database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("instruments: initializing schema: %w", err)
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("instruments: preparing statements: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS instruments (
		instrument_token INTEGER PRIMARY KEY,
		exchange_token   INTEGER NOT NULL,
		tradingsymbol    TEXT NOT NULL,
		name             TEXT NOT NULL,
		last_price       REAL NOT NULL,
		expiry           TEXT NOT NULL,
		strike           REAL NOT NULL,
		tick_size        REAL NOT NULL,
		lot_size         INTEGER NOT NULL,
		instrument_type  TEXT NOT NULL,
		segment          TEXT NOT NULL,
		exchange         TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_instruments_symbol
		ON instruments(exchange, tradingsymbol);

	CREATE TABLE IF NOT EXISTS refresh_log (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		refreshed_at TIMESTAMP NOT NULL,
		row_count    INTEGER NOT NULL
	);`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) prepareStatements() error {
	var err error
	s.lookupStmt, err = s.db.Prepare(
		`SELECT instrument_token, exchange_token, tradingsymbol, name, last_price,
		        expiry, strike, tick_size, lot_size, instrument_type, segment, exchange
		 FROM instruments WHERE exchange = ? AND tradingsymbol = ?`)
	if err != nil {
		return err
	}
	s.byTokenStmt, err = s.db.Prepare(
		`SELECT instrument_token, exchange_token, tradingsymbol, name, last_price,
		        expiry, strike, tick_size, lot_size, instrument_type, segment, exchange
		 FROM instruments WHERE instrument_token = ?`)
	if err != nil {
		return err
	}
	s.searchStmt, err = s.db.Prepare(
		`SELECT instrument_token, exchange_token, tradingsymbol, name, last_price,
		        expiry, strike, tick_size, lot_size, instrument_type, segment, exchange
		 FROM instruments WHERE tradingsymbol LIKE ? ORDER BY tradingsymbol LIMIT ?`)
	return err
}

// ReplaceAll swaps the entire instrument table for the given set inside one
// transaction and records the refresh. Readers see either the old dump or
// the new one, never a mix.
func (s *Store) ReplaceAll(ctx context.Context, instruments []Instrument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("instruments: beginning refresh: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM instruments`); err != nil {
		return fmt.Errorf("instruments: clearing table: %w", err)
	}

	insert, err := tx.PrepareContext(ctx,
		`INSERT INTO instruments (instrument_token, exchange_token, tradingsymbol, name,
		        last_price, expiry, strike, tick_size, lot_size, instrument_type, segment, exchange)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("instruments: preparing insert: %w", err)
	}
	defer insert.Close()

	for _, ins := range instruments {
		if _, err := insert.ExecContext(ctx,
			ins.InstrumentToken, ins.ExchangeToken, ins.Tradingsymbol, ins.Name,
			ins.LastPrice, ins.Expiry, ins.Strike, ins.TickSize, ins.LotSize,
			ins.InstrumentType, ins.Segment, ins.Exchange,
		); err != nil {
			return fmt.Errorf("instruments: inserting %s:%s: %w", ins.Exchange, ins.Tradingsymbol, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO refresh_log (refreshed_at, row_count) VALUES (?, ?)`,
		time.Now().UTC(), len(instruments),
	); err != nil {
		return fmt.Errorf("instruments: recording refresh: %w", err)
	}

	return tx.Commit()
}

// Lookup finds one instrument by exchange and trading symbol.
func (s *Store) Lookup(ctx context.Context, exchange, tradingsymbol string) (*Instrument, error) {
	return scanOne(s.lookupStmt.QueryRowContext(ctx, exchange, tradingsymbol))
}

// ByToken finds one instrument by its numeric token.
func (s *Store) ByToken(ctx context.Context, token uint32) (*Instrument, error) {
	return scanOne(s.byTokenStmt.QueryRowContext(ctx, token))
}

// Search returns up to limit instruments whose trading symbol starts with
// prefix, across all exchanges.
func (s *Store) Search(ctx context.Context, prefix string, limit int) ([]Instrument, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.searchStmt.QueryContext(ctx, prefix+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("instruments: search: %w", err)
	}
	defer rows.Close()

	var out []Instrument
	for rows.Next() {
		var ins Instrument
		if err := rows.Scan(
			&ins.InstrumentToken, &ins.ExchangeToken, &ins.Tradingsymbol, &ins.Name,
			&ins.LastPrice, &ins.Expiry, &ins.Strike, &ins.TickSize, &ins.LotSize,
			&ins.InstrumentType, &ins.Segment, &ins.Exchange,
		); err != nil {
			return nil, fmt.Errorf("instruments: scanning row: %w", err)
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

// Count returns the number of stored instruments.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM instruments`).Scan(&n)
	return n, err
}

// LastRefreshed returns when the dump was last replaced, zero time if never.
func (s *Store) LastRefreshed(ctx context.Context) (time.Time, error) {
	var ts sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(refreshed_at) FROM refresh_log`).Scan(&ts)
	if err != nil {
		return time.Time{}, err
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return ts.Time, nil
}

// Close releases the prepared statements and the database handle.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.lookupStmt, s.byTokenStmt, s.searchStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}

func scanOne(row *sql.Row) (*Instrument, error) {
	var ins Instrument
	err := row.Scan(
		&ins.InstrumentToken, &ins.ExchangeToken, &ins.Tradingsymbol, &ins.Name,
		&ins.LastPrice, &ins.Expiry, &ins.Strike, &ins.TickSize, &ins.LotSize,
		&ins.InstrumentType, &ins.Segment, &ins.Exchange,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("instruments: scanning row: %w", err)
	}
	return &ins, nil
}
