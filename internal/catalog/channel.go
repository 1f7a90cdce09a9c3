package catalog

import (
	"fmt"
	"sort"
)

// Channel describes one sales channel: its base currency, default language
// and the currency/language sets it supports. Immutable after construction.
type Channel struct {
	code            string
	name            string
	description     string
	enabled         bool
	contactEmail    string
	baseCurrency    string
	defaultLanguage string
	currencies      map[string]struct{}
	languages       map[string]struct{}
}

func NewChannel(rec Record) (*Channel, error) {
	code := pickString(rec, "code")
	if code == "" {
		return nil, fmt.Errorf("channel record without code")
	}

	ch := &Channel{
		code:            code,
		name:            pickString(rec, "name"),
		description:     pickString(rec, "description"),
		enabled:         pickBool(rec, "enabled"),
		contactEmail:    pickString(rec, "contact_email"),
		baseCurrency:    nestedCode(rec, "base_currency", "code"),
		defaultLanguage: nestedCode(rec, "default_locale", "code"),
		currencies:      make(map[string]struct{}),
		languages:       make(map[string]struct{}),
	}

	for _, v := range pickList(rec, "currencies") {
		if m, ok := v.(map[string]any); ok {
			if c := pickString(m, "code"); c != "" {
				ch.currencies[c] = struct{}{}
			}
		}
	}
	for _, v := range pickList(rec, "locales") {
		if m, ok := v.(map[string]any); ok {
			if l := pickString(m, "code"); l != "" {
				ch.languages[l] = struct{}{}
			}
		}
	}

	return ch, nil
}

func (c *Channel) Code() string            { return c.code }
func (c *Channel) Name() string            { return c.name }
func (c *Channel) Description() string     { return c.description }
func (c *Channel) Enabled() bool           { return c.enabled }
func (c *Channel) ContactEmail() string    { return c.contactEmail }
func (c *Channel) BaseCurrency() string    { return c.baseCurrency }
func (c *Channel) DefaultLanguage() string { return c.defaultLanguage }

func (c *Channel) HasCurrency(currency string) bool {
	_, ok := c.currencies[currency]
	return ok
}

func (c *Channel) HasLanguage(language string) bool {
	_, ok := c.languages[language]
	return ok
}

func (c *Channel) Currencies() []string {
	out := make([]string, 0, len(c.currencies))
	for code := range c.currencies {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (c *Channel) Languages() []string {
	out := make([]string, 0, len(c.languages))
	for code := range c.languages {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
