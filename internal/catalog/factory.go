package catalog

// buildKeyed runs the constructor over every record and keys the results
// by the entity's natural key (code, composite code or id). A construction
// failure on any record fails the whole batch; only events absorb nested
// failures, and they do that themselves.
func buildKeyed[T any](records []Record, build func(Record) (T, error), key func(T) string) (*Collection[T], error) {
	col := NewCollection[T]()
	for _, rec := range records {
		v, err := build(rec)
		if err != nil {
			return nil, err
		}
		col.Put(key(v), v)
	}
	return col, nil
}

func buildChannels(records []Record) (*Collection[*Channel], error) {
	return buildKeyed(records, NewChannel, (*Channel).Code)
}

func buildExchangeRates(records []Record) (*Collection[*ExchangeRate], error) {
	return buildKeyed(records, NewExchangeRate, (*ExchangeRate).Code)
}

func buildEvents(records []Record) (*Collection[*Event], error) {
	return buildKeyed(records, NewEvent, (*Event).ID)
}

// buildRawRecords keys pass-through collections the same way the typed
// ones are keyed: code when present, else id, else positional.
func buildRawRecords(records []Record) (*Collection[Record], error) {
	return buildKeyed(records, func(rec Record) (Record, error) { return rec, nil }, rawKey)
}

func rawKey(rec Record) string {
	if code := pickString(rec, "code"); code != "" {
		return code
	}
	return pickID(rec, "id")
}
