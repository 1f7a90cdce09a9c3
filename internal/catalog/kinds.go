package catalog

import "fmt"

// Kind names one entity family the upstream catalog API serves.
type Kind string

const (
	KindChannel   Kind = "Channel"
	KindCurrency  Kind = "Currency"
	KindEvent     Kind = "Event"
	KindProduct   Kind = "Product"
	KindPromotion Kind = "Promotion"
)

// LoadKinds is the fixed set fetched on every load, in load order.
var LoadKinds = []Kind{KindChannel, KindCurrency, KindEvent, KindProduct, KindPromotion}

// actions maps each supported kind to its upstream API action. Kinds with
// an empty action exist in the catalog but have no endpoint in API v1 and
// load as empty collections.
var actions = map[Kind]string{
	KindChannel:   "channels",
	KindCurrency:  "currencies",
	KindEvent:     "events",
	KindProduct:   "",
	KindPromotion: "",
}

// Action resolves the upstream API action for the kind. Unknown kinds are
// rejected here; the registry is closed.
func (k Kind) Action() (string, error) {
	action, ok := actions[k]
	if !ok {
		return "", fmt.Errorf("kind %q: %w", string(k), ErrKindNotSupported)
	}
	return action, nil
}

// CacheKey is the fetch-cache key for one kind/channel pair.
func CacheKey(kind Kind, channel string) string {
	return fmt.Sprintf("%s-%s", kind, channel)
}
