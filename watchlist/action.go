package watchlist

// ActionType tags a reducer action.
type ActionType string

const (
	ActionSetItems       ActionType = "SET_ITEMS"
	ActionAddItem        ActionType = "ADD_ITEM"
	ActionUpdateItem     ActionType = "UPDATE_ITEM"
	ActionRemoveItem     ActionType = "REMOVE_ITEM"
	ActionEmptyWatchlist ActionType = "EMPTY_WATCHLIST"
	ActionClearMetadata  ActionType = "CLEAR_METADATA"
	ActionSetMetadata    ActionType = "SET_METADATA"
	ActionUpdateMetadata ActionType = "UPDATE_METADATA"
)

// Action is one state transition intent. Only the payload fields relevant to
// the Type are consulted by the reducer.
type Action struct {
	Type ActionType

	// Items is the wholesale replacement list for SET_ITEMS.
	Items []Item

	// Item is the appended entry for ADD_ITEM.
	Item Item

	// ID targets an existing item for UPDATE_ITEM and REMOVE_ITEM.
	ID string

	// Patch is the partial update for UPDATE_ITEM.
	Patch ItemPatch

	// Metadata is the payload for SET_METADATA and UPDATE_METADATA.
	Metadata map[string]interface{}
}
