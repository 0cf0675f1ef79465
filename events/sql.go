package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/iov-one/piggybank"
	"github.com/iov-one/piggybank/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Record is a single archived event.
type Record struct {
	ID       string `db:"id"`
	Height   int64  `db:"height"`
	Position int    `db:"position"`
	// BlockTime is the unix time of the block the event was created in.
	BlockTime int64  `db:"block_time"`
	Kind      string `db:"kind"`
	// Payload is the JSON representation of the event.
	Payload string `db:"payload"`
}

// SQLSink archives published events in the events table.
type SQLSink struct {
	db *sqlx.DB
}

var _ piggybank.EventSink = (*SQLSink)(nil)

// OpenSQLSink connects to the database and migrates the schema. Supported
// drivers are "sqlite" and "pgx". For sqlite the data directory is created
// if needed.
func OpenSQLSink(driver, dsn string) (*SQLSink, error) {
	if driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "cannot create data directory: %s", err)
		}
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "cannot connect: %s", err)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	if driver == "sqlite" {
		// sqlite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
	}

	if err := Migrate(db.DB, driver); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLSink{db: db}, nil
}

// NewSQLSink returns a sink using an already migrated database.
func NewSQLSink(db *sqlx.DB) *SQLSink {
	return &SQLSink{db: db}
}

// Close releases the database connection.
func (s *SQLSink) Close() error {
	return s.db.Close()
}

// Publish stores all events in a single database transaction.
func (s *SQLSink) Publish(ctx piggybank.Context, events []piggybank.EmittedEvent) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "begin: %s", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO events (id, height, position, block_time, kind, payload)
	               VALUES ($1, $2, $3, $4, $5, $6)`
	for i, e := range events {
		payload, err := json.Marshal(e.Event)
		if err != nil {
			return errors.Wrapf(errors.ErrState, "cannot serialize %s event: %s", e.Event.EventKind(), err)
		}
		_, err = tx.ExecContext(ctx, query,
			uuid.New().String(), e.Height, i, e.Time.Unix(), e.Event.EventKind(), string(payload))
		if err != nil {
			return errors.Wrapf(errors.ErrDatabase, "insert %s event: %s", e.Event.EventKind(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}
	return nil
}

// Filter narrows down the List result. Zero values match everything.
type Filter struct {
	Kind       string
	FromHeight int64
	Limit      int
}

const defaultListLimit = 100

// List returns archived events in the order they were produced.
func (s *SQLSink) List(ctx piggybank.Context, f Filter) ([]Record, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	where := "height >= $1"
	args := []interface{}{f.FromHeight}
	if f.Kind != "" {
		args = append(args, f.Kind)
		where += " AND kind = $2"
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, height, position, block_time, kind, payload FROM events
	          WHERE %s
	          ORDER BY height ASC, position ASC
	          LIMIT $%d`, where, len(args))

	var records []Record
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "list: %s", err)
	}
	return records, nil
}
