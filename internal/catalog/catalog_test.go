package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

// fixtureFetcher serves the testdata files regardless of channel, the way
// the real upstream returns the same catalog body for every known channel.
type fixtureFetcher struct {
	t     *testing.T
	calls int
}

func (f *fixtureFetcher) Fetch(_ context.Context, kind Kind, _ string) ([]byte, error) {
	f.calls++

	var name string
	switch kind {
	case KindChannel:
		name = "channels.json"
	case KindCurrency:
		name = "currencies.json"
	case KindEvent:
		name = "events.json"
	default:
		return nil, nil
	}

	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		f.t.Fatalf("read fixture %s: %v", name, err)
	}
	return b, nil
}

func loadFixture(t *testing.T) *Catalog {
	t.Helper()

	c := New(&fixtureFetcher{t: t}, nil)
	if err := c.LoadData(context.Background(), "WEB-PL", ""); err != nil {
		t.Fatalf("expected fixture to load, got %v", err)
	}
	return c
}

func TestCatalog_LoadData(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	if got := len(c.Events()); got != 3 {
		t.Fatalf("expected 3 visible events, got %d", got)
	}
	if got := len(c.Channels()); got != 2 {
		t.Fatalf("expected 2 channels, got %d", got)
	}
	if c.Channel().Code() != "WEB-PL" {
		t.Fatalf("expected active channel WEB-PL, got %s", c.Channel().Code())
	}
	if c.Language() != "pl_PL" {
		t.Fatalf("expected channel default language pl_PL, got %s", c.Language())
	}
	if c.ChannelCurrency() != "PLN" {
		t.Fatalf("expected base currency PLN, got %s", c.ChannelCurrency())
	}
	if got := len(c.Products()); got != 0 {
		t.Fatalf("expected no products in API v1, got %d", got)
	}
	if got := len(c.Promotions()); got != 0 {
		t.Fatalf("expected no promotions in API v1, got %d", got)
	}
}

func TestCatalog_LoadData_unknownChannel(t *testing.T) {
	t.Parallel()

	c := New(&fixtureFetcher{t: t}, nil)
	err := c.LoadData(context.Background(), "NON-EXISTING", "")
	if !errors.Is(err, ErrChannelNotFound) {
		t.Fatalf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestCatalog_SetChannel(t *testing.T) {
	t.Parallel()

	t.Run("switch applies channel default language", func(t *testing.T) {
		c := loadFixture(t)

		if err := c.SetChannel("WEB-EN"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.Channel().Code() != "WEB-EN" {
			t.Fatalf("expected active channel WEB-EN, got %s", c.Channel().Code())
		}
		if c.Language() != "en_US" {
			t.Fatalf("expected language en_US, got %s", c.Language())
		}
	})

	t.Run("unknown channel leaves selection untouched", func(t *testing.T) {
		c := loadFixture(t)

		err := c.SetChannel("NON-EXISTING")
		if !errors.Is(err, ErrChannelNotFound) {
			t.Fatalf("expected ErrChannelNotFound, got %v", err)
		}
		if c.Channel().Code() != "WEB-PL" {
			t.Fatalf("expected active channel unchanged, got %s", c.Channel().Code())
		}
		if c.Language() != "pl_PL" {
			t.Fatalf("expected language unchanged, got %s", c.Language())
		}
	})
}

func TestCatalog_SetLanguage(t *testing.T) {
	t.Parallel()

	t.Run("cascades to events", func(t *testing.T) {
		c := loadFixture(t)

		if err := c.SetLanguage("en_US"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		event := c.EventByID("101")
		if event.Name() != "Concert" {
			t.Fatalf("expected translated name Concert, got %s", event.Name())
		}
		if event.City() != "Warsaw" {
			t.Fatalf("expected translated city Warsaw, got %s", event.City())
		}
	})

	t.Run("rejects language the channel does not carry", func(t *testing.T) {
		c := loadFixture(t)

		err := c.SetLanguage("de_DE")
		if !errors.Is(err, ErrLanguageNotFound) {
			t.Fatalf("expected ErrLanguageNotFound, got %v", err)
		}
		if c.Language() != "pl_PL" {
			t.Fatalf("expected language unchanged, got %s", c.Language())
		}
	})
}

func TestCatalog_FindByDate(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	got := c.FindByDate("2025-05-10")
	if len(got) != 1 || got[0].ID() != "101" {
		t.Fatalf("expected exactly event 101 visible, got %d events", len(got))
	}

	// each call recomputes visibility from scratch
	got = c.FindByDate("2025-06-01")
	if len(got) != 1 || got[0].ID() != "102" {
		t.Fatalf("expected exactly event 102 visible, got %d events", len(got))
	}

	if got = c.FindByDate("1999-01-01"); len(got) != 0 {
		t.Fatalf("expected no events on unknown date, got %d", len(got))
	}
}

func TestCatalog_FindByCategoryName(t *testing.T) {
	t.Parallel()

	t.Run("OR keeps any match", func(t *testing.T) {
		c := loadFixture(t)

		got := c.FindByCategoryName([]string{"Muzyka", "Warszawa"}, MatchOR)
		if len(got) != 2 {
			t.Fatalf("expected 2 visible events, got %d", len(got))
		}
	})

	t.Run("AND needs every name", func(t *testing.T) {
		c := loadFixture(t)

		got := c.FindByCategoryName([]string{"Muzyka", "Warszawa"}, MatchAND)
		if len(got) != 1 || got[0].ID() != "101" {
			t.Fatalf("expected only event 101 visible, got %d events", len(got))
		}
	})

	t.Run("AND result is a subset of OR result", func(t *testing.T) {
		c := loadFixture(t)

		names := []string{"Muzyka", "Krakow"}
		andIDs := make(map[string]struct{})
		for _, e := range c.FindByCategoryName(names, MatchAND) {
			andIDs[e.ID()] = struct{}{}
		}
		orIDs := make(map[string]struct{})
		for _, e := range c.FindByCategoryName(names, MatchOR) {
			orIDs[e.ID()] = struct{}{}
		}
		for id := range andIDs {
			if _, ok := orIDs[id]; !ok {
				t.Fatalf("AND-visible event %s missing from OR result", id)
			}
		}
	})

	t.Run("no match hides everything", func(t *testing.T) {
		c := loadFixture(t)

		if got := c.FindByCategoryName([]string{"Opera"}, MatchOR); len(got) != 0 {
			t.Fatalf("expected no visible events, got %d", len(got))
		}
	})
}

func TestCatalog_Exclude(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	got := c.FindByCategoryName([]string{"Muzyka"}, MatchOR)
	if len(got) != 2 {
		t.Fatalf("expected 2 visible events before exclude, got %d", len(got))
	}

	// exclude composes with the preceding filter instead of resetting it
	got = c.Exclude([]string{"101"})
	if len(got) != 1 || got[0].ID() != "102" {
		t.Fatalf("expected only event 102 visible after exclude, got %d events", len(got))
	}
}

func TestCatalog_ResetFilters(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	c.FindByDate("2025-05-10")
	c.Exclude([]string{"101"})
	if got := len(c.Events()); got != 0 {
		t.Fatalf("expected everything hidden before reset, got %d", got)
	}

	if err := c.ResetFilters(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := len(c.Events()); got != 3 {
		t.Fatalf("expected full visible set restored, got %d", got)
	}
	if c.Channel().Code() != "WEB-PL" || c.Language() != "pl_PL" {
		t.Fatalf("expected channel and language reapplied, got %s/%s", c.Channel().Code(), c.Language())
	}
}

func TestCatalog_Cities(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	// hidden events still count
	c.FindByDate("2025-05-10")

	got := c.Cities()
	want := []string{"Warszawa", "Krakow"}
	if len(got) != len(want) {
		t.Fatalf("expected %d cities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected city %s at position %d, got %s", want[i], i, got[i])
		}
	}
}

func TestCatalog_EventDates(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	t.Run("all events ascending", func(t *testing.T) {
		got := c.EventDates(nil)
		want := []string{"2025-05-10", "2025-06-01", "2031-01-01"}
		if len(got) != len(want) {
			t.Fatalf("expected %d dates, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected date %s at position %d, got %s", want[i], i, got[i])
			}
		}
	})

	t.Run("narrowed by variants, unknown ids skipped", func(t *testing.T) {
		got := c.EventDates([]string{"1003", "9999", ""})
		if len(got) != 1 || got[0] != "2025-06-01" {
			t.Fatalf("expected only 2025-06-01, got %v", got)
		}
	})
}

func TestCatalog_FirstAndLastDate(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	first, last, ok := c.FirstAndLastDate()
	if !ok {
		t.Fatalf("expected dates, got none")
	}
	if first.Format("2006-01-02") != "2025-05-10" {
		t.Fatalf("expected first 2025-05-10, got %s", first.Format("2006-01-02"))
	}
	// 2031-01-01 lies past the 2000-day horizon from the first date, so the
	// capped bound stops at the previous date
	if last.Format("2006-01-02") != "2025-06-01" {
		t.Fatalf("expected last 2025-06-01, got %s", last.Format("2006-01-02"))
	}
	if !last.Before(first.AddDate(0, 0, 2001)) {
		t.Fatalf("expected last inside the horizon, got %s", last.Format("2006-01-02"))
	}
}

func TestCatalog_EventLookups(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	t.Run("by id", func(t *testing.T) {
		if e := c.EventByID("102"); e == nil || e.Name() != "Teatr" {
			t.Fatalf("expected event 102, got %v", e)
		}
		if e := c.EventByID("999"); e != nil {
			t.Fatalf("expected nil for unknown id, got %s", e.ID())
		}
	})

	t.Run("by master variant", func(t *testing.T) {
		if e := c.EventByVariant("1003"); e == nil || e.ID() != "102" {
			t.Fatalf("expected event 102 behind variant 1003, got %v", e)
		}
		// 1002 exists but is never the master variant
		if e := c.EventByVariant("1002"); e != nil {
			t.Fatalf("expected nil for non-master variant, got %s", e.ID())
		}
	})

	t.Run("master variant ids", func(t *testing.T) {
		got := c.MasterVariantIDs()
		want := []string{"1001", "1003", "1004"}
		if len(got) != len(want) {
			t.Fatalf("expected %d ids, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected id %s at position %d, got %s", want[i], i, got[i])
			}
		}
	})

	t.Run("ids from variants skips unknown", func(t *testing.T) {
		got := c.IDsFromVariants([]string{"1003", "9999", "1001"})
		if len(got) != 2 || got[0] != "102" || got[1] != "101" {
			t.Fatalf("expected [102 101], got %v", got)
		}
	})

	t.Run("min on hand", func(t *testing.T) {
		if got := c.MinOnHand([]string{"1001", "1003", "9999"}); got != 3 {
			t.Fatalf("expected min on hand 3, got %d", got)
		}
		if got := c.MinOnHand(nil); got != 10000 {
			t.Fatalf("expected the seed for an empty list, got %d", got)
		}
	})
}

func TestCatalog_ConvertPrice(t *testing.T) {
	t.Parallel()

	c := loadFixture(t)

	t.Run("divides by the base-target ratio", func(t *testing.T) {
		got, err := c.ConvertPrice(decimal.NewFromInt(100), "USD")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !got.Equal(decimal.NewFromInt(25)) {
			t.Fatalf("expected 25, got %s", got)
		}
	})

	t.Run("round trip restores the amount", func(t *testing.T) {
		amount := decimal.NewFromInt(970)
		converted, err := c.ConvertPrice(amount, "USD")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		ratio := decimal.NewFromInt(4)
		if !converted.Mul(ratio).Equal(amount) {
			t.Fatalf("expected round trip to restore %s, got %s", amount, converted.Mul(ratio))
		}
	})

	// TODO: matches the inverted upstream guard; this test flips together
	// with the guard in ConvertPrice once the direction is confirmed.
	t.Run("rejects a currency the channel lists as supported", func(t *testing.T) {
		_, err := c.ConvertPrice(decimal.NewFromInt(100), "PLN")
		if !errors.Is(err, ErrCurrencyNotFound) {
			t.Fatalf("expected ErrCurrencyNotFound, got %v", err)
		}
	})

	t.Run("missing rate", func(t *testing.T) {
		_, err := c.ConvertPrice(decimal.NewFromInt(100), "GBP")
		if !errors.Is(err, ErrExchangeRateNotFound) {
			t.Fatalf("expected ErrExchangeRateNotFound, got %v", err)
		}
	})
}
