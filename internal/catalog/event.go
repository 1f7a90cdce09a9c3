package catalog

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
)

// CityParentCode marks the taxonomy branch holding city categories.
const CityParentCode = "event_city"

const archetypeEvent = "event"

type attributeText struct {
	name  string
	value string
}

// Event is the catalog aggregate: it owns its variants and categories and
// projects every localized or channel-scoped field through one active
// language and one active channel.
type Event struct {
	id          string
	enabled     bool
	date        string
	name        map[string]string
	description map[string]string
	attributes  map[string]map[string]attributeText // code -> language -> text
	categories  []*Category
	variants    *Collection[*Variant]

	masterVariantID string
	channels        []string // sorted union of all variants' channels
	channelSet      map[string]struct{}

	language string
	channel  string
	visible  bool
}

// NewEvent builds an event and everything nested in it. Malformed
// categories are logged and dropped; a variant failure or an empty channel
// union is fatal for the whole record.
func NewEvent(rec Record) (*Event, error) {
	e := &Event{
		id:          pickID(rec, "id"),
		enabled:     pickBool(rec, "enabled"),
		name:        make(map[string]string),
		description: make(map[string]string),
		attributes:  make(map[string]map[string]attributeText),
		variants:    NewCollection[*Variant](),
		channelSet:  make(map[string]struct{}),
		visible:     true,
	}
	if e.id == "" {
		return nil, fmt.Errorf("event record without id")
	}

	if until := pickString(rec, "available_until"); len(until) >= 10 {
		e.date = until[:10]
	}

	for _, raw := range pickList(rec, "variants") {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		variant, err := NewVariant(m)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.id, err)
		}
		if e.variants.Len() == 0 {
			e.masterVariantID = variant.ID()
		}
		for _, channel := range variant.Channels() {
			if _, seen := e.channelSet[channel]; !seen {
				e.channelSet[channel] = struct{}{}
				e.channels = append(e.channels, channel)
			}
		}
		e.variants.Put(variant.ID(), variant)
	}
	sort.Strings(e.channels)

	if len(e.channels) == 0 {
		return nil, fmt.Errorf("event %s: no channel pricing on any variant: %w", e.id, ErrChannelNotFound)
	}
	if err := e.SelectChannel(e.channels[0]); err != nil {
		return nil, err
	}

	for _, raw := range pickList(rec, "attributes") {
		attr, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		code := pickString(attr, "code")
		if code == "" {
			continue
		}
		for _, t := range pickList(attr, "translations") {
			trans, ok := t.(map[string]any)
			if !ok {
				continue
			}
			language := pickString(trans, "locale")
			if language == "" {
				continue
			}
			if e.attributes[code] == nil {
				e.attributes[code] = make(map[string]attributeText)
			}
			e.attributes[code][language] = attributeText{
				name:  pickString(trans, "name"),
				value: pickString(trans, "value"),
			}
		}
	}

	for language, v := range pickMap(rec, "translations") {
		if t, ok := v.(map[string]any); ok {
			e.name[language] = pickString(t, "name")
			e.description[language] = pickString(t, "description")
		}
	}

	for _, raw := range pickList(rec, "categories") {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		category, err := NewCategory(m)
		if err != nil {
			// best-effort attach: an event still loads without the
			// categories it cannot translate
			slog.Default().Warn("event category skipped", "event_id", e.id, "err", err)
			continue
		}
		e.categories = append(e.categories, category)
	}

	return e, nil
}

func (e *Event) Channel() string { return e.channel }

func (e *Event) HasChannel(channel string) bool {
	_, ok := e.channelSet[channel]
	return ok
}

// SelectChannel switches the event and every variant that supports the
// channel; variants without pricing there keep their previous selection.
func (e *Event) SelectChannel(channel string) error {
	if !e.HasChannel(channel) {
		return fmt.Errorf("event %s: channel %s: %w", e.id, channel, ErrChannelNotFound)
	}
	for _, variant := range e.variants.All() {
		if variant.HasChannel(channel) {
			if err := variant.SelectChannel(channel); err != nil {
				return err
			}
		}
	}
	e.channel = channel
	return nil
}

func (e *Event) Language() string { return e.language }

func (e *Event) HasLanguage(language string) bool {
	_, okName := e.name[language]
	_, okDesc := e.description[language]
	return okName && okDesc
}

// SelectLanguage switches the active language and cascades to every owned
// category. Unlike construction, this path fails fast: one category
// without the language aborts the whole change.
func (e *Event) SelectLanguage(language string) error {
	if !e.HasLanguage(language) {
		return fmt.Errorf("event %s: language %s: %w", e.id, language, ErrLanguageNotFound)
	}
	for _, category := range e.categories {
		if !category.HasLanguage(language) || !category.HasLanguageParent(language) {
			return fmt.Errorf("event %s: category %s: language %s: %w", e.id, category.ID(), language, ErrLanguageNotFound)
		}
	}
	for _, category := range e.categories {
		if err := category.SelectLanguage(language); err != nil {
			return err
		}
	}
	e.language = language
	return nil
}

func (e *Event) ID() string        { return e.id }
func (e *Event) Archetype() string { return archetypeEvent }
func (e *Event) Enabled() bool     { return e.enabled }
func (e *Event) Date() string      { return e.date }

// Name returns the event name in the active language.
func (e *Event) Name() string { return e.name[e.language] }

// Description returns the event description in the active language.
func (e *Event) Description() string { return e.description[e.language] }

// ActiveVariants is the live view of variants restricted to the current
// channel, recomputed on every call.
func (e *Event) ActiveVariants() []*Variant {
	out := make([]*Variant, 0, e.variants.Len())
	for _, variant := range e.variants.All() {
		if variant.HasChannel(e.channel) {
			out = append(out, variant)
		}
	}
	return out
}

// MasterVariant is the representative variant for list views: the first
// element of the live channel-filtered view, not the construction-time
// first variant. The two diverge when a channel switch filters the
// original master out.
func (e *Event) MasterVariant() *Variant {
	variants := e.ActiveVariants()
	if len(variants) == 0 {
		return nil
	}
	return variants[0]
}

func (e *Event) MasterVariantID() string {
	if v := e.MasterVariant(); v != nil {
		return v.ID()
	}
	return ""
}

// Price is the headline price: the master variant's price on the active
// channel.
func (e *Event) Price() decimal.Decimal {
	if v := e.MasterVariant(); v != nil {
		return v.Price()
	}
	return decimal.Zero
}

func (e *Event) OnHand() int {
	if v := e.MasterVariant(); v != nil {
		return v.OnHand()
	}
	return 0
}

// AttributeValue returns the value of a custom attribute in the active
// language, "" when the attribute or translation is missing.
func (e *Event) AttributeValue(code string) string {
	return e.attributes[code][e.language].value
}

func (e *Event) AttributeName(code string) string {
	return e.attributes[code][e.language].name
}

func (e *Event) URL() string     { return e.AttributeValue("url") }
func (e *Event) Address() string { return e.AttributeValue("address") }

func (e *Event) Categories() []*Category {
	return append([]*Category(nil), e.categories...)
}

// CityCategory returns the first category under the city branch, nil if
// the event has none.
func (e *Event) CityCategory() *Category {
	for _, category := range e.categories {
		if category.ParentCode() == CityParentCode {
			return category
		}
	}
	return nil
}

// City is the city category name in the active language, "" if none.
func (e *Event) City() string {
	if c := e.CityCategory(); c != nil {
		return c.Name()
	}
	return ""
}

func (e *Event) CategoryByName(name string) *Category {
	for _, category := range e.categories {
		if category.Name() == name {
			return category
		}
	}
	return nil
}

func (e *Event) CategoryByID(id string) *Category {
	for _, category := range e.categories {
		if category.ID() == id {
			return category
		}
	}
	return nil
}

func (e *Event) CategoriesByParentName(parentName string) []*Category {
	var out []*Category
	for _, category := range e.categories {
		if category.ParentName() == parentName {
			out = append(out, category)
		}
	}
	return out
}

func (e *Event) SetVisible(visible bool) { e.visible = visible }
func (e *Event) Visible() bool           { return e.visible }
