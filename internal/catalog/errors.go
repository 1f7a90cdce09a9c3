package catalog

import "errors"

var (
	ErrChannelNotFound      = errors.New("channel not found")
	ErrLanguageNotFound     = errors.New("language not found")
	ErrCurrencyNotFound     = errors.New("currency not found")
	ErrKindNotSupported     = errors.New("entity kind not supported")
	ErrExchangeRateNotFound = errors.New("exchange rate not found")
)
