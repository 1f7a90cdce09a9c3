package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is one raw decoded catalog item as the upstream API ships it.
type Record = map[string]any

// DecodeRecords turns a raw response body into a list of records.
// Numbers are kept as json.Number so ids and prices survive untouched.
func DecodeRecords(b []byte) ([]Record, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var out []Record
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return out, nil
}

func pickString(m Record, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// pickBool accepts both bool and "true"/"false"; the upstream is not
// consistent about which form it sends.
func pickBool(m Record, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

func pickInt(m Record, key string) int {
	switch v := m[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case float64:
		return int(v)
	case string:
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			return n
		}
	}
	return 0
}

// pickID reads ids the upstream sends either as numbers or strings and
// normalizes them to a string key.
func pickID(m Record, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	}
	return ""
}

func pickDecimal(m Record, key string) (decimal.Decimal, bool) {
	switch v := m[key].(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

func pickMap(m Record, key string) Record {
	v, _ := m[key].(map[string]any)
	return v
}

func pickList(m Record, key string) []any {
	v, _ := m[key].([]any)
	return v
}

// nestedCode reads the "field[0].code" shape the upstream uses for
// base_currency, default_locale and tax_category references.
func nestedCode(m Record, key, sub string) string {
	list := pickList(m, key)
	if len(list) == 0 {
		return ""
	}
	first, ok := list[0].(map[string]any)
	if !ok {
		return ""
	}
	return pickString(first, sub)
}
