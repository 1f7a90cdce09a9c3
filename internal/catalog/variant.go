package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var minorUnits = decimal.NewFromInt(100)

// Variant is one purchasable unit of an event. Pricing and the original
// (pre-discount) price are scoped per sales channel; reads go through the
// currently selected channel.
type Variant struct {
	id       string
	code     string
	onHold   int
	onHand   int
	tracked  bool
	position int
	taxCode  string
	taxName  string

	price         map[string]decimal.Decimal
	originalPrice map[string]*decimal.Decimal
	channels      []string // sorted channel codes with pricing
	channelSet    map[string]struct{}
	channel       string
}

func NewVariant(rec Record) (*Variant, error) {
	v := &Variant{
		id:            pickID(rec, "id"),
		code:          pickString(rec, "code"),
		onHold:        pickInt(rec, "on_hold"),
		onHand:        pickInt(rec, "on_hand"),
		tracked:       pickBool(rec, "tracked"),
		position:      pickInt(rec, "position"),
		taxCode:       nestedCode(rec, "tax_category", "code"),
		taxName:       nestedCode(rec, "tax_category", "name"),
		price:         make(map[string]decimal.Decimal),
		originalPrice: make(map[string]*decimal.Decimal),
		channelSet:    make(map[string]struct{}),
	}
	if v.id == "" {
		return nil, fmt.Errorf("variant record without id")
	}

	for channel, raw := range pickMap(rec, "channel_pricings") {
		pricing, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		price, ok := pickDecimal(pricing, "price")
		if !ok {
			continue
		}
		// prices arrive in minor units
		v.price[channel] = price.Div(minorUnits)
		v.originalPrice[channel] = originalPriceOf(pricing)
		v.channelSet[channel] = struct{}{}
		v.channels = append(v.channels, channel)
	}
	sort.Strings(v.channels)

	if len(v.channels) > 0 {
		v.channel = v.channels[0]
	}

	return v, nil
}

// originalPriceOf returns nil unless the raw original price is a positive
// integer, mirroring upstream records that ship 0/null/garbage for
// variants that were never discounted.
func originalPriceOf(pricing Record) *decimal.Decimal {
	n, ok := pricing["original_price"].(json.Number)
	if !ok {
		return nil
	}
	i, err := n.Int64()
	if err != nil || i <= 0 {
		return nil
	}
	d := decimal.NewFromInt(i).Div(minorUnits)
	return &d
}

func (v *Variant) HasChannel(channel string) bool {
	_, ok := v.channelSet[channel]
	return ok
}

// SelectChannel makes channel the active one for Price/OriginalPrice
// reads. It fails unless the variant has pricing for that channel.
func (v *Variant) SelectChannel(channel string) error {
	if !v.HasChannel(channel) {
		return fmt.Errorf("variant %s: channel %s: %w", v.id, channel, ErrChannelNotFound)
	}
	v.channel = channel
	return nil
}

func (v *Variant) Channel() string    { return v.channel }
func (v *Variant) Channels() []string { return append([]string(nil), v.channels...) }

func (v *Variant) ID() string      { return v.id }
func (v *Variant) Code() string    { return v.code }
func (v *Variant) OnHold() int     { return v.onHold }
func (v *Variant) OnHand() int     { return v.onHand }
func (v *Variant) Tracked() bool   { return v.tracked }
func (v *Variant) Position() int   { return v.position }
func (v *Variant) TaxCode() string { return v.taxCode }
func (v *Variant) TaxName() string { return v.taxName }

// Price returns the price for the active channel, zero if the variant has
// no pricing at all.
func (v *Variant) Price() decimal.Decimal {
	return v.price[v.channel]
}

// OriginalPrice returns the pre-discount price for the active channel,
// nil when the variant was never discounted there.
func (v *Variant) OriginalPrice() *decimal.Decimal {
	return v.originalPrice[v.channel]
}
