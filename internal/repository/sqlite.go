package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrInvalidReference is returned when a write points at a job or candidate that does not exist.
var ErrInvalidReference = errors.New("referenced record does not exist")

// sqlDB is the subset of *sql.DB and *sql.Tx used by the repositories.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ sqlDB = (*sql.DB)(nil)
	_ sqlDB = (*sql.Tx)(nil)
)

type rowScanner interface {
	Scan(dest ...any) error
}

// TimestampLayout is the fixed-width UTC layout stored in every timestamp column,
// so lexical order matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

var nowFunc = time.Now

func now() string {
	return nowFunc().UTC().Format(TimestampLayout)
}

// FormatTimestamp renders t in the stored timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func newID() string {
	return uuid.NewString()
}

func ensureID(id *string) {
	if strings.TrimSpace(*id) == "" {
		*id = newID()
	}
}

func stringOrNil(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func intOrNil(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

// encodeJSON serializes value for a TEXT column. A nil value is stored as NULL.
func encodeJSON(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// encodeList always stores a JSON array, never NULL.
func encodeList(values []string) string {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return string(raw)
}

// decodeList parses a JSON array column. Missing or malformed values yield an empty list.
func decodeList(ns sql.NullString) []string {
	out := []string{}
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return out
	}
	var items []any
	if err := json.Unmarshal([]byte(ns.String), &items); err != nil {
		return out
	}
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case nil:
		default:
			raw, _ := json.Marshal(v)
			out = append(out, string(raw))
		}
	}
	return out
}

// decodeObject parses a JSON object column, returning nil when absent or malformed.
func decodeObject(ns sql.NullString) map[string]any {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		return nil
	}
	return out
}

// decodeLoose returns the decoded JSON value of a column, or its raw text when
// the text is not JSON. Values written by encodeJSON, strings included, always
// decode to what was stored. NULL and empty columns decode to nil.
func decodeLoose(ns sql.NullString) any {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		return ns.String
	}
	return out
}

func constraintCode(err error) int {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	code := constraintCode(err)
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func isForeignKeyViolation(err error) bool {
	return constraintCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}
