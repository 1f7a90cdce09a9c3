package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MatchMode selects how FindByCategoryName combines multiple names.
type MatchMode string

const (
	MatchOR  MatchMode = "OR"
	MatchAND MatchMode = "AND"
)

// minOnHandSeed is the ceiling MinOnHand starts from.
const minOnHandSeed = 10000

// dateWindowDays caps how far past the first event date the "last" date of
// FirstAndLastDate may reach.
const dateWindowDays = 2000

const dateLayout = "2006-01-02"

// Fetcher hands back the raw response body for one entity kind on one
// channel, possibly from cache. Empty means the upstream had nothing and
// the cache was cold.
type Fetcher interface {
	Fetch(ctx context.Context, kind Kind, channel string) ([]byte, error)
}

// Catalog is the query façade over one loaded channel catalog. It owns the
// full entity collections, the active channel/language selection and the
// per-event visibility projection the filter calls mutate.
//
// A Catalog is not safe for concurrent use; filter calls overwrite
// visibility directly, so call order matters.
type Catalog struct {
	fetcher Fetcher
	log     *slog.Logger

	channels   *Collection[*Channel]
	currencies *Collection[*ExchangeRate]
	events     *Collection[*Event]
	products   *Collection[Record]
	promotions *Collection[Record]

	channel  *Channel
	language string
}

func New(fetcher Fetcher, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{
		fetcher:    fetcher,
		log:        log,
		channels:   NewCollection[*Channel](),
		currencies: NewCollection[*ExchangeRate](),
		events:     NewCollection[*Event](),
		products:   NewCollection[Record](),
		promotions: NewCollection[Record](),
	}
}

// LoadData fetches every entity kind for the channel, rebuilds all
// collections from scratch and applies the channel and language selection.
// An empty language means the channel's default.
func (c *Catalog) LoadData(ctx context.Context, channel, language string) error {
	for _, kind := range LoadKinds {
		records, err := c.fetchKind(ctx, kind, channel)
		if err != nil {
			return err
		}
		if err := c.loadKind(kind, records); err != nil {
			return fmt.Errorf("load %s: %w", kind, err)
		}
	}

	if err := c.SetChannel(channel); err != nil {
		return err
	}
	if err := c.SetLanguage(language); err != nil {
		return err
	}

	c.log.Debug("catalog loaded",
		"channel", channel,
		"language", c.language,
		"events", c.events.Len(),
		"channels", c.channels.Len(),
		"currencies", c.currencies.Len(),
	)
	return nil
}

func (c *Catalog) fetchKind(ctx context.Context, kind Kind, channel string) ([]Record, error) {
	action, err := kind.Action()
	if err != nil {
		return nil, err
	}
	if action == "" {
		return nil, nil
	}

	raw, err := c.fetcher.Fetch(ctx, kind, channel)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", action, err)
	}
	return DecodeRecords(raw)
}

func (c *Catalog) loadKind(kind Kind, records []Record) error {
	var err error
	switch kind {
	case KindChannel:
		c.channels, err = buildChannels(records)
	case KindCurrency:
		c.currencies, err = buildExchangeRates(records)
	case KindEvent:
		c.events, err = buildEvents(records)
	case KindProduct:
		c.products, err = buildRawRecords(records)
	case KindPromotion:
		c.promotions, err = buildRawRecords(records)
	default:
		return fmt.Errorf("kind %q: %w", string(kind), ErrKindNotSupported)
	}
	return err
}

// SetChannel re-validates and applies the active channel without
// re-fetching, then falls back to the channel's default language. Failed
// validation leaves the previous selection untouched.
func (c *Catalog) SetChannel(channel string) error {
	selected, ok := c.channels.Get(channel)
	if !ok {
		return fmt.Errorf("channel %s: %w", channel, ErrChannelNotFound)
	}
	c.channel = selected
	return c.SetLanguage("")
}

func (c *Catalog) Channel() *Channel { return c.channel }

// ChannelCurrency is the active channel's base currency code.
func (c *Catalog) ChannelCurrency() string {
	if c.channel == nil {
		return ""
	}
	return c.channel.BaseCurrency()
}

// SetLanguage validates the language against the active channel and
// cascades it to every loaded event. Empty selects the channel default.
func (c *Catalog) SetLanguage(language string) error {
	if c.channel == nil {
		return fmt.Errorf("set language: no channel selected: %w", ErrChannelNotFound)
	}
	if language == "" {
		language = c.channel.DefaultLanguage()
	}
	if !c.channel.HasLanguage(language) {
		return fmt.Errorf("language %s is not available for channel %s: %w",
			language, c.channel.Code(), ErrLanguageNotFound)
	}

	for _, event := range c.events.All() {
		if err := event.SelectLanguage(language); err != nil {
			return err
		}
	}
	c.language = language
	return nil
}

func (c *Catalog) Language() string { return c.language }

// Events returns the visible events in collection order.
func (c *Catalog) Events() []*Event {
	out := make([]*Event, 0, c.events.Len())
	for _, event := range c.events.All() {
		if event.Visible() {
			out = append(out, event)
		}
	}
	return out
}

func (c *Catalog) Channels() []*Channel { return c.channels.All() }

func (c *Catalog) Products() []Record { return c.products.All() }

func (c *Catalog) Promotions() []Record { return c.promotions.All() }

// MasterVariantIDs lists each event's master variant id, visibility
// ignored.
func (c *Catalog) MasterVariantIDs() []string {
	out := make([]string, 0, c.events.Len())
	for _, event := range c.events.All() {
		out = append(out, event.MasterVariantID())
	}
	return out
}

// Cities collects the unique city category names across all events,
// visibility ignored, in first-seen order.
func (c *Catalog) Cities() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, event := range c.events.All() {
		city := event.City()
		if city == "" {
			continue
		}
		if _, ok := seen[city]; ok {
			continue
		}
		seen[city] = struct{}{}
		out = append(out, city)
	}
	return out
}

// EventDates returns the unique event dates ascending. With variant ids
// given, only dates of the events resolved through those master variants
// count; unknown ids are skipped.
func (c *Catalog) EventDates(variantIDs []string) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(date string) {
		if date == "" {
			return
		}
		if _, ok := seen[date]; ok {
			return
		}
		seen[date] = struct{}{}
		out = append(out, date)
	}

	if len(variantIDs) > 0 {
		for _, id := range variantIDs {
			if event := c.EventByVariant(id); event != nil {
				add(event.Date())
			}
		}
	} else {
		for _, event := range c.events.All() {
			add(event.Date())
		}
	}

	sort.Strings(out)
	return out
}

// FirstAndLastDate walks the sorted unique dates and returns the first
// one plus the last one inside a 2000-day horizon from it. Dates past the
// horizon are ignored even when later events exist, so "last" is a capped
// bound, not the true maximum. ok is false when no date parses.
func (c *Catalog) FirstAndLastDate() (first, last time.Time, ok bool) {
	for _, raw := range c.EventDates(nil) {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.log.Debug("skipping unparsable event date", "date", raw)
			continue
		}
		if !ok {
			first = date
			last = date
			ok = true
			continue
		}
		if date.Before(first.AddDate(0, 0, dateWindowDays)) || date.Equal(first.AddDate(0, 0, dateWindowDays)) {
			last = date
		}
	}
	return first, last, ok
}

// FindByDate makes exactly the events on the given date visible and
// returns them. Visibility is recomputed for every event, so the call
// does not compose with earlier filters.
func (c *Catalog) FindByDate(date string) []*Event {
	for _, event := range c.events.All() {
		event.SetVisible(event.Date() == date)
	}
	return c.Events()
}

// FindByCategoryName recomputes visibility from the given category names.
// OR keeps events with at least one matching category; any other mode
// behaves as AND and needs as many matching category occurrences as there
// are names. A name matched by two categories counts twice; that oddity is
// kept on purpose.
func (c *Catalog) FindByCategoryName(names []string, mode MatchMode) []*Event {
	inNames := func(name string) bool {
		for _, n := range names {
			if n == name {
				return true
			}
		}
		return false
	}

	for _, event := range c.events.All() {
		count := 0
		event.SetVisible(false)
		for _, category := range event.Categories() {
			if !inNames(category.Name()) {
				continue
			}
			count++
			if mode == MatchOR || count >= len(names) {
				event.SetVisible(true)
			}
		}
	}
	return c.Events()
}

// Exclude hides the events with the given ids. Unlike the find calls it
// does not reset anybody else's visibility, so it composes with the
// filter called right before it.
func (c *Catalog) Exclude(ids []string) []*Event {
	excluded := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		excluded[id] = struct{}{}
	}
	for _, event := range c.events.All() {
		if _, ok := excluded[event.ID()]; ok {
			event.SetVisible(false)
		}
	}
	return c.Events()
}

// ResetFilters reloads the catalog for the active channel and language,
// discarding every visibility mutation. This is the only undo.
func (c *Catalog) ResetFilters(ctx context.Context) error {
	if c.channel == nil {
		return fmt.Errorf("reset filters: no channel selected: %w", ErrChannelNotFound)
	}
	return c.LoadData(ctx, c.channel.Code(), c.language)
}

func (c *Catalog) EventByID(id string) *Event {
	event, _ := c.events.Get(id)
	return event
}

// EventByVariant resolves an event through its live master variant id.
func (c *Catalog) EventByVariant(variantID string) *Event {
	for _, event := range c.events.All() {
		if event.MasterVariantID() == variantID {
			return event
		}
	}
	return nil
}

// MinOnHand is the minimum on-hand stock across the events behind the
// given master variant ids, seeded from a large ceiling. Unknown ids are
// skipped.
func (c *Catalog) MinOnHand(variantIDs []string) int {
	onHand := minOnHandSeed
	for _, id := range variantIDs {
		event := c.EventByVariant(id)
		if event == nil {
			continue
		}
		if h := event.OnHand(); h < onHand {
			onHand = h
		}
	}
	return onHand
}

// IDsFromVariants maps master variant ids to event ids, skipping unknown
// ones.
func (c *Catalog) IDsFromVariants(variantIDs []string) []string {
	out := make([]string, 0, len(variantIDs))
	for _, id := range variantIDs {
		if event := c.EventByVariant(id); event != nil {
			out = append(out, event.ID())
		}
	}
	return out
}

// ConvertPrice converts an amount from the active channel's base currency
// into targetCurrency using the loaded exchange-rate table.
//
// TODO: the supported-currency guard is inverted (it rejects currencies
// the channel lists as supported); kept to match the upstream contract,
// flip once the API owners confirm the intended direction.
func (c *Catalog) ConvertPrice(amount decimal.Decimal, targetCurrency string) (decimal.Decimal, error) {
	if c.channel == nil {
		return decimal.Zero, fmt.Errorf("convert price: no channel selected: %w", ErrChannelNotFound)
	}
	if c.channel.HasCurrency(targetCurrency) {
		return decimal.Zero, fmt.Errorf("currency %s is not available for channel %s: %w",
			targetCurrency, c.channel.Code(), ErrCurrencyNotFound)
	}

	rate, ok := c.currencies.Get(c.channel.BaseCurrency() + "-" + targetCurrency)
	if !ok {
		return decimal.Zero, fmt.Errorf("exchange rate for currency %s: %w",
			targetCurrency, ErrExchangeRateNotFound)
	}
	return amount.Div(rate.Ratio()), nil
}
