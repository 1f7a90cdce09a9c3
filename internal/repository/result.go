package repository

import (
	"github.com/shopspring/decimal"

	"smarteventparser/internal/catalog"
)

type ChannelMeta struct {
	Code            string `json:"code"`
	Name            string `json:"name,omitempty"`
	BaseCurrency    string `json:"base_currency,omitempty"`
	DefaultLanguage string `json:"default_language,omitempty"`
}

type CategoryExport struct {
	ID         string `json:"id"`
	Code       string `json:"code,omitempty"`
	Name       string `json:"name,omitempty"`
	ParentName string `json:"parent_name,omitempty"`
}

type EventExport struct {
	ID              string           `json:"id"`
	Date            string           `json:"date,omitempty"`
	Name            string           `json:"name,omitempty"`
	Description     string           `json:"description,omitempty"`
	City            string           `json:"city,omitempty"`
	URL             string           `json:"url,omitempty"`
	Address         string           `json:"address,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	OnHand          int              `json:"on_hand"`
	MasterVariantID string           `json:"master_variant_id,omitempty"`
	Categories      []CategoryExport `json:"categories,omitempty"`
}

type EventsResult struct {
	FetchedAt string        `json:"fetched_at"`
	Channel   *ChannelMeta  `json:"channel,omitempty"`
	Language  string        `json:"language,omitempty"`
	Events    []EventExport `json:"events"`
	Count     int           `json:"count"`
}

func FromChannel(ch *catalog.Channel) *ChannelMeta {
	if ch == nil {
		return nil
	}
	return &ChannelMeta{
		Code:            ch.Code(),
		Name:            ch.Name(),
		BaseCurrency:    ch.BaseCurrency(),
		DefaultLanguage: ch.DefaultLanguage(),
	}
}

func FromEvent(e *catalog.Event) EventExport {
	out := EventExport{
		ID:              e.ID(),
		Date:            e.Date(),
		Name:            e.Name(),
		Description:     e.Description(),
		City:            e.City(),
		URL:             e.URL(),
		Address:         e.Address(),
		Price:           e.Price(),
		OnHand:          e.OnHand(),
		MasterVariantID: e.MasterVariantID(),
	}
	if v := e.MasterVariant(); v != nil {
		out.OriginalPrice = v.OriginalPrice()
	}
	for _, c := range e.Categories() {
		out.Categories = append(out.Categories, CategoryExport{
			ID:         c.ID(),
			Code:       c.Code(),
			Name:       c.Name(),
			ParentName: c.ParentName(),
		})
	}
	return out
}

func FromEvents(events []*catalog.Event) []EventExport {
	out := make([]EventExport, 0, len(events))
	for _, e := range events {
		out = append(out, FromEvent(e))
	}
	return out
}
