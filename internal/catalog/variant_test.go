package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewVariant(t *testing.T) {
	t.Parallel()

	t.Run("prices convert from minor units", func(t *testing.T) {
		v, err := NewVariant(decodeOne(t, `{
			"id": 1001,
			"code": "CONCERT-A",
			"on_hold": 2,
			"on_hand": 12,
			"tracked": true,
			"position": 1,
			"tax_category": [{"code": "vat-8", "name": "VAT 8%"}],
			"channel_pricings": {
				"WEB-PL": {"price": 9700, "original_price": 12000},
				"WEB-EN": {"price": 4999}
			}
		}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if v.ID() != "1001" || v.Code() != "CONCERT-A" {
			t.Fatalf("expected id/code mapped, got %s/%s", v.ID(), v.Code())
		}
		if v.OnHold() != 2 || v.OnHand() != 12 || !v.Tracked() || v.Position() != 1 {
			t.Fatalf("expected stock fields mapped")
		}
		if v.TaxCode() != "vat-8" || v.TaxName() != "VAT 8%" {
			t.Fatalf("expected tax fields mapped, got %s/%s", v.TaxCode(), v.TaxName())
		}

		// sorted-first channel is the initial selection
		if v.Channel() != "WEB-EN" {
			t.Fatalf("expected initial channel WEB-EN, got %s", v.Channel())
		}
		if !v.Price().Equal(decimal.RequireFromString("49.99")) {
			t.Fatalf("expected 49.99, got %s", v.Price())
		}

		if err := v.SelectChannel("WEB-PL"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !v.Price().Equal(decimal.NewFromInt(97)) {
			t.Fatalf("expected 97, got %s", v.Price())
		}
		if op := v.OriginalPrice(); op == nil || !op.Equal(decimal.NewFromInt(120)) {
			t.Fatalf("expected original price 120, got %v", op)
		}
	})

	t.Run("original price is nil unless a positive integer", func(t *testing.T) {
		v, err := NewVariant(decodeOne(t, `{
			"id": 1002,
			"channel_pricings": {
				"ZERO":    {"price": 100, "original_price": 0},
				"MISSING": {"price": 100},
				"STRING":  {"price": 100, "original_price": "5900"}
			}
		}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		for _, channel := range []string{"ZERO", "MISSING", "STRING"} {
			if err := v.SelectChannel(channel); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if op := v.OriginalPrice(); op != nil {
				t.Fatalf("expected nil original price on %s, got %s", channel, op)
			}
		}
	})

	t.Run("pricing without a usable price is skipped", func(t *testing.T) {
		v, err := NewVariant(decodeOne(t, `{
			"id": 1003,
			"channel_pricings": {
				"WEB-PL": {"price": 4200},
				"BROKEN": {"note": "no price here"}
			}
		}`))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if v.HasChannel("BROKEN") {
			t.Fatalf("expected channel without a price to be skipped")
		}
		if got := v.Channels(); len(got) != 1 || got[0] != "WEB-PL" {
			t.Fatalf("expected only WEB-PL, got %v", got)
		}
	})

	t.Run("missing id fails", func(t *testing.T) {
		if _, err := NewVariant(decodeOne(t, `{"code": "X"}`)); err == nil {
			t.Fatalf("expected error for missing id, got nil")
		}
	})
}

func TestVariant_SelectChannel(t *testing.T) {
	t.Parallel()

	v, err := NewVariant(decodeOne(t, `{
		"id": 1001,
		"channel_pricings": {"WEB-PL": {"price": 9700}}
	}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := v.SelectChannel("NON-EXISTING"); !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
	if v.Channel() != "WEB-PL" {
		t.Fatalf("expected selection unchanged after failure, got %s", v.Channel())
	}
}
