package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get user: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("pq: relation users does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullStringHelpers(t *testing.T) {
	if got := nullStringValue(sql.NullString{}); got != "" {
		t.Fatalf("expected empty string for null, got %q", got)
	}
	if got := nullStringValue(sql.NullString{String: " https://cdn/a.png ", Valid: true}); got != "https://cdn/a.png" {
		t.Fatalf("unexpected value: %q", got)
	}
	if got := toNullString("   "); got.Valid {
		t.Fatalf("expected blank string to be stored as null")
	}
	if got := toNullString("x"); !got.Valid || got.String != "x" {
		t.Fatalf("unexpected null string: %+v", got)
	}
}

func TestUTC(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	in := time.Date(2026, 3, 14, 16, 30, 0, 0, loc)
	if got := utc(in); got.Location() != time.UTC || !got.Equal(in) {
		t.Fatalf("unexpected utc conversion: %s", got)
	}
	if got := utc(time.Time{}); !got.IsZero() {
		t.Fatalf("expected zero time to stay zero")
	}
}
