// Package watchlist implements a persistent watchlist state container: a
// pure reducer over tracked items, derived aggregate totals, and a session
// that synchronizes every transition to a durable key-value store.
package watchlist

// Item is one tracked entry in a watchlist. ID is the caller-supplied
// identity key and is immutable once added. ItemTotal is always derived
// (price times quantity); values supplied by callers are overwritten on
// every transition.
type Item struct {
	ID        string  `json:"id" jsonschema:"required,description=Unique identity of the item within its watchlist"`
	Price     float64 `json:"price" jsonschema:"description=Unit price of the item"`
	Quantity  int     `json:"quantity" jsonschema:"description=Tracked quantity; defaults to 1 when omitted"`
	ItemTotal float64 `json:"itemTotal" jsonschema:"description=Derived price times quantity"`

	// Fields carries caller-defined extension values. Unknown keys survive
	// persistence round-trips without schema changes.
	Fields map[string]interface{} `json:"fields,omitempty" jsonschema:"description=Open caller-defined extension fields"`
}

// clone returns a copy of the item with its own Fields map.
func (i Item) clone() Item {
	c := i
	if i.Fields != nil {
		c.Fields = make(map[string]interface{}, len(i.Fields))
		for k, v := range i.Fields {
			c.Fields[k] = v
		}
	}
	return c
}

// State is the full watchlist snapshot. IsEmpty, TotalItems,
// TotalUniqueItems and every ItemTotal are recomputed on each transition
// and are never independently settable.
type State struct {
	ID               string                 `json:"id" jsonschema:"required,description=Watchlist identifier"`
	Items            []Item                 `json:"items" jsonschema:"required,description=Tracked items in insertion order"`
	IsEmpty          bool                   `json:"isEmpty" jsonschema:"description=Derived; true when no items are tracked"`
	TotalItems       int                    `json:"totalItems" jsonschema:"description=Derived sum of item quantities"`
	TotalUniqueItems int                    `json:"totalUniqueItems" jsonschema:"description=Derived count of tracked items"`
	Metadata         map[string]interface{} `json:"metadata" jsonschema:"description=Caller-defined watchlist annotations"`
}

// emptyState returns the canonical empty template every transition is
// rebuilt from.
func emptyState() State {
	return State{
		Items:            []Item{},
		IsEmpty:          true,
		TotalItems:       0,
		TotalUniqueItems: 0,
		Metadata:         map[string]interface{}{},
	}
}

// clone returns a deep copy of the state.
func (s State) clone() State {
	c := s
	c.Items = cloneItems(s.Items)
	c.Metadata = cloneMap(s.Metadata)
	return c
}

// GetItem returns the item with the given id, if present.
func (s State) GetItem(id string) (Item, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item.clone(), true
		}
	}
	return Item{}, false
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ItemPatch is a partial item update. Nil pointer fields are left untouched
// on the target item; Fields entries are merged key-by-key over the item's
// existing extension fields.
type ItemPatch struct {
	Price    *float64               `json:"price,omitempty"`
	Quantity *int                   `json:"quantity,omitempty"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
}

// isZero reports whether the patch carries no change at all.
func (p ItemPatch) isZero() bool {
	return p.Price == nil && p.Quantity == nil && len(p.Fields) == 0
}

// applyTo shallow-merges the patch over the item. The item's ID is identity
// and is never patched.
func (p ItemPatch) applyTo(item Item) Item {
	merged := item.clone()
	if p.Price != nil {
		merged.Price = *p.Price
	}
	if p.Quantity != nil {
		merged.Quantity = *p.Quantity
	}
	if len(p.Fields) > 0 {
		if merged.Fields == nil {
			merged.Fields = make(map[string]interface{}, len(p.Fields))
		}
		for k, v := range p.Fields {
			merged.Fields[k] = v
		}
	}
	return merged
}
