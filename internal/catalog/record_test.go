package catalog

import (
	"testing"
)

// decodeOne runs a single JSON object through the real decode path so test
// records carry json.Number values exactly like production ones.
func decodeOne(t *testing.T, body string) Record {
	t.Helper()

	records, err := DecodeRecords([]byte("[" + body + "]"))
	if err != nil {
		t.Fatalf("expected record to decode, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	return records[0]
}

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	t.Run("empty body yields no records", func(t *testing.T) {
		for _, body := range []string{"", "   ", "\n\t"} {
			records, err := DecodeRecords([]byte(body))
			if err != nil {
				t.Fatalf("expected no error for %q, got %v", body, err)
			}
			if records != nil {
				t.Fatalf("expected nil records for %q, got %d", body, len(records))
			}
		}
	})

	t.Run("numbers survive as json.Number", func(t *testing.T) {
		rec := decodeOne(t, `{"id": 12345678901234567890, "price": 0.1}`)
		if got := pickID(rec, "id"); got != "12345678901234567890" {
			t.Fatalf("expected the id verbatim, got %s", got)
		}
		if d, ok := pickDecimal(rec, "price"); !ok || d.String() != "0.1" {
			t.Fatalf("expected price 0.1, got %s (ok=%v)", d, ok)
		}
	})

	t.Run("malformed body fails", func(t *testing.T) {
		if _, err := DecodeRecords([]byte(`{"not":"a list"}`)); err == nil {
			t.Fatalf("expected decode error, got nil")
		}
	})
}

func TestPickHelpers(t *testing.T) {
	t.Parallel()

	rec := decodeOne(t, `{
		"s": "hello", "empty": "",
		"b_true": true, "b_str": "true", "b_off": "false",
		"n": 42, "n_str": "17",
		"id_num": 7, "id_str": "abc",
		"nested": [{"code": "PLN"}],
		"list": [1, 2], "map": {"k": "v"}
	}`)

	if got := pickString(rec, "missing", "empty", "s"); got != "hello" {
		t.Fatalf("expected first non-empty string, got %q", got)
	}
	if !pickBool(rec, "b_true") || !pickBool(rec, "b_str") {
		t.Fatalf("expected both bool forms to read true")
	}
	if pickBool(rec, "b_off") || pickBool(rec, "missing") {
		t.Fatalf("expected false for off/missing")
	}
	if got := pickInt(rec, "n"); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := pickInt(rec, "n_str"); got != 17 {
		t.Fatalf("expected 17 from string form, got %d", got)
	}
	if got := pickID(rec, "id_num"); got != "7" {
		t.Fatalf("expected numeric id as string, got %q", got)
	}
	if got := pickID(rec, "id_str"); got != "abc" {
		t.Fatalf("expected string id verbatim, got %q", got)
	}
	if got := nestedCode(rec, "nested", "code"); got != "PLN" {
		t.Fatalf("expected nested code PLN, got %q", got)
	}
	if got := nestedCode(rec, "missing", "code"); got != "" {
		t.Fatalf("expected empty code for missing field, got %q", got)
	}
	if got := len(pickList(rec, "list")); got != 2 {
		t.Fatalf("expected 2 list items, got %d", got)
	}
	if got := pickMap(rec, "map"); got["k"] != "v" {
		t.Fatalf("expected map value v, got %v", got["k"])
	}
}
