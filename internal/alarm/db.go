package alarm

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// timestampLayouts are the accepted CSV timestamp formats, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Store is the SQLite-backed alarm history. The database is a query cache
// rebuilt from the CSV on import; the CSV stays the source of truth.
type Store struct {
	db *sql.DB
}

// Open opens or creates the alarm database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS alarms (
			ts INTEGER NOT NULL,
			tag TEXT NOT NULL,
			value REAL NOT NULL,
			state TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_alarms_tag_ts ON alarms(tag, ts);
	`

	_, err := db.Exec(schema)
	return err
}

// ImportCSV clears the store and rebuilds it from an alarm history CSV.
// The expected header is timestamp,tag,value,alarm_state in any column
// order. Malformed rows are skipped with a warning rather than aborting
// the import. Returns the number of records imported.
func (s *Store) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening alarm csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading csv header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"timestamp", "tag", "value", "alarm_state"} {
		if _, ok := cols[required]; !ok {
			return 0, fmt.Errorf("csv missing required column %q", required)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM alarms"); err != nil {
		return 0, fmt.Errorf("clearing alarms table: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO alarms (ts, tag, value, state) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	imported := 0
	lineNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping malformed csv line %d: %v\n", lineNum, err)
			continue
		}

		record, err := parseRow(row, cols)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping csv line %d: %v\n", lineNum, err)
			continue
		}

		if _, err := stmt.Exec(record.Timestamp.UnixNano(), record.Tag, record.Value, record.State); err != nil {
			return 0, fmt.Errorf("inserting record from line %d: %w", lineNum, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return imported, nil
}

func parseRow(row []string, cols map[string]int) (Record, error) {
	max := 0
	for _, i := range cols {
		if i > max {
			max = i
		}
	}
	if len(row) <= max {
		return Record{}, fmt.Errorf("expected at least %d fields, got %d", max+1, len(row))
	}

	ts, err := parseTimestamp(row[cols["timestamp"]])
	if err != nil {
		return Record{}, err
	}
	value, err := strconv.ParseFloat(row[cols["value"]], 64)
	if err != nil {
		return Record{}, fmt.Errorf("parsing value: %w", err)
	}

	return Record{
		Timestamp: ts,
		Tag:       row[cols["tag"]],
		Value:     value,
		State:     row[cols["alarm_state"]],
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Count returns the total number of records in the store.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM alarms").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting alarms: %w", err)
	}
	return count, nil
}

// Tags returns the distinct tags in the store, sorted.
func (s *Store) Tags() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT tag FROM alarms ORDER BY tag")
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Slice returns a tag's records inside a time window, both bounds
// inclusive, ordered by timestamp.
func (s *Store) Slice(tag string, start, end time.Time) ([]Record, error) {
	rows, err := s.db.Query(
		"SELECT ts, tag, value, state FROM alarms WHERE tag = ? AND ts >= ? AND ts <= ? ORDER BY ts",
		tag, start.UnixNano(), end.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying alarms: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var ts int64
		var r Record
		if err := rows.Scan(&ts, &r.Tag, &r.Value, &r.State); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Timestamp = time.Unix(0, ts).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}
