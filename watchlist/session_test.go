package watchlist

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/grovetools/watchlist/errors"
	"github.com/grovetools/watchlist/store"
	"github.com/grovetools/watchlist/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failStore simulates a broken adapter.
type failStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failStore) Load(key string) (string, bool, error) {
	if f.loadErr != nil {
		return "", false, f.loadErr
	}
	return "", false, nil
}

func (f *failStore) Save(key, value string) error {
	f.saves++
	return f.saveErr
}

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	testutil.ChdirTemp(t)
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	return NewSession(opts)
}

func TestSessionSeedsDefaults(t *testing.T) {
	s := newTestSession(t, Options{
		ID:           "mine",
		DefaultItems: []Item{{ID: "aapl", Price: 1000}},
		Metadata:     map[string]interface{}{"owner": "kim"},
	})

	state := s.State()
	assert.Equal(t, "mine", state.ID)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 1, state.Items[0].Quantity, "seed quantities default to 1")
	assert.Equal(t, 1000.0, state.Items[0].ItemTotal)
	assert.Equal(t, "kim", state.Metadata["owner"])
	assert.False(t, state.IsEmpty)
}

func TestSessionGeneratesID(t *testing.T) {
	s := newTestSession(t, Options{})
	assert.Len(t, s.ID(), DefaultIDLength)

	s = newTestSession(t, Options{IDLength: 6})
	assert.Len(t, s.ID(), 6)
}

func TestSessionKeyScheme(t *testing.T) {
	s := newTestSession(t, Options{ID: "abc"})
	assert.Equal(t, "watchlist-abc", s.Key())

	s = newTestSession(t, Options{})
	assert.Equal(t, "watchlist", s.Key(), "id-less sessions share the default key")
}

func TestSessionLoadsPersistedState(t *testing.T) {
	testutil.ChdirTemp(t)
	mem := store.NewMemory()

	first := NewSession(Options{ID: "shared", Store: mem})
	require.NoError(t, first.AddItem(Item{ID: "aapl", Price: 1000}))
	require.NoError(t, first.UpdateMetadata(map[string]interface{}{"note": "hello"}))

	second := NewSession(Options{ID: "shared", Store: mem})
	state := second.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "aapl", state.Items[0].ID)
	assert.Equal(t, "hello", state.Metadata["note"])
}

func TestSessionFallsBackOnCorruptBlob(t *testing.T) {
	testutil.ChdirTemp(t)
	mem := store.NewMemory()
	require.NoError(t, mem.Save("watchlist-broken", "{not json"))

	s := NewSession(Options{ID: "broken", Store: mem, DefaultItems: []Item{{ID: "x", Price: 10}}})

	state := s.State()
	assert.Equal(t, "broken", state.ID)
	require.Len(t, state.Items, 1)
	assert.Equal(t, "x", state.Items[0].ID, "corrupt blob degrades to the default state")
}

func TestSessionFallsBackOnSchemaInvalidBlob(t *testing.T) {
	testutil.ChdirTemp(t)
	mem := store.NewMemory()
	// Valid JSON, wrong shape: items must be an array.
	require.NoError(t, mem.Save("watchlist-bad", `{"id":"bad","items":"nope"}`))

	s := NewSession(Options{ID: "bad", Store: mem})

	assert.True(t, s.State().IsEmpty)
}

func TestSessionTreatsLoadErrorAsAbsent(t *testing.T) {
	s := newTestSession(t, Options{
		ID:           "x",
		Store:        &failStore{loadErr: fmt.Errorf("backend down")},
		DefaultItems: []Item{{ID: "a", Price: 5}},
	})

	require.Len(t, s.State().Items, 1)
}

func TestSessionPersistsEveryTransition(t *testing.T) {
	testutil.ChdirTemp(t)
	mem := store.NewMemory()
	s := NewSession(Options{ID: "p", Store: mem})

	require.NoError(t, s.AddItem(Item{ID: "aapl", Price: 1000}))

	blob, ok, err := mem.Load("watchlist-p")
	require.NoError(t, err)
	require.True(t, ok, "state written through synchronously")

	var persisted State
	require.NoError(t, json.Unmarshal([]byte(blob), &persisted))
	assert.Equal(t, s.State(), persisted)
}

func TestSessionSwallowsSaveFailures(t *testing.T) {
	fs := &failStore{saveErr: fmt.Errorf("disk full")}
	s := newTestSession(t, Options{ID: "x", Store: fs})

	require.NoError(t, s.AddItem(Item{ID: "aapl", Price: 1000}), "save failure never fails the operation")
	assert.True(t, s.InWatchlist("aapl"), "in-memory state stays authoritative")
	assert.Equal(t, 1, fs.saves)
}

func TestSessionAddItemRequiresID(t *testing.T) {
	var added bool
	s := newTestSession(t, Options{OnItemAdd: func(Item) { added = true }})

	err := s.AddItem(Item{Price: 1000})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeMissingID))
	assert.True(t, s.State().IsEmpty, "no state change on failure")
	assert.False(t, added, "no callback on failure")
}

func TestSessionAddItemAccumulatesDuplicates(t *testing.T) {
	var adds, updates int
	s := newTestSession(t, Options{
		OnItemAdd:    func(Item) { adds++ },
		OnItemUpdate: func(ItemPatch) { updates++ },
	})

	require.NoError(t, s.AddItem(Item{ID: "a", Price: 1000}))
	require.NoError(t, s.AddItem(Item{ID: "a", Price: 1000}))

	state := s.State()
	require.Len(t, state.Items, 1, "duplicate ids merge instead of appending")
	assert.Equal(t, 2, state.TotalItems)
	assert.Equal(t, 1, state.TotalUniqueItems)
	assert.Equal(t, 2000.0, state.Items[0].ItemTotal)
	assert.Equal(t, 1, adds, "first add fires OnItemAdd")
	assert.Equal(t, 1, updates, "second add fires OnItemUpdate")
}

func TestSessionAddItemCallbackGetsStoredItem(t *testing.T) {
	var got Item
	s := newTestSession(t, Options{OnItemAdd: func(item Item) { got = item }})

	require.NoError(t, s.AddItemWithQuantity(Item{ID: "a", Price: 500}, 3))

	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, 1500.0, got.ItemTotal, "OnItemAdd receives the stored item with derived totals")
}

func TestSessionUpdateItem(t *testing.T) {
	var got ItemPatch
	s := newTestSession(t, Options{OnItemUpdate: func(p ItemPatch) { got = p }})
	require.NoError(t, s.AddItem(Item{ID: "a", Price: 1000}))

	patch := ItemPatch{Price: floatPtr(1200)}
	require.NoError(t, s.UpdateItem("a", patch))

	item, _ := s.GetItem("a")
	assert.Equal(t, 1200.0, item.Price)
	// The callback receives the raw requested patch, not the merged item.
	assert.Equal(t, patch, got)
}

func TestSessionUpdateItemNoops(t *testing.T) {
	var updates int
	s := newTestSession(t, Options{OnItemUpdate: func(ItemPatch) { updates++ }})
	require.NoError(t, s.AddItem(Item{ID: "a", Price: 1000}))

	require.NoError(t, s.UpdateItem("", ItemPatch{Quantity: intPtr(5)}))
	require.NoError(t, s.UpdateItem("a", ItemPatch{}))

	item, _ := s.GetItem("a")
	assert.Equal(t, 1, item.Quantity)
	assert.Zero(t, updates)
}

func TestSessionUpdateItemQuantity(t *testing.T) {
	s := newTestSession(t, Options{})
	require.NoError(t, s.AddItem(Item{ID: "a", Price: 1000}))

	require.NoError(t, s.UpdateItemQuantity("a", 2))

	item, _ := s.GetItem("a")
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2000.0, item.ItemTotal)
}

func TestSessionUpdateItemQuantityZeroRemoves(t *testing.T) {
	var removed []string
	s := newTestSession(t, Options{OnItemRemove: func(id string) { removed = append(removed, id) }})
	require.NoError(t, s.AddItem(Item{ID: "a", Price: 1000}))

	require.NoError(t, s.UpdateItemQuantity("a", 0))

	assert.False(t, s.InWatchlist("a"), "zero quantity removes rather than keeping a zero-quantity item")
	assert.Equal(t, []string{"a"}, removed, "removal callback fires exactly once")
}

func TestSessionUpdateItemQuantityMissingItem(t *testing.T) {
	s := newTestSession(t, Options{})

	err := s.UpdateItemQuantity("nope", 3)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeItemNotFound))
}

func TestSessionRemoveItem(t *testing.T) {
	var removed []string
	s := newTestSession(t, Options{OnItemRemove: func(id string) { removed = append(removed, id) }})
	require.NoError(t, s.AddItem(Item{ID: "a", Price: 1000}))

	require.NoError(t, s.RemoveItem(""))
	assert.Empty(t, removed, "empty id is a no-op")

	require.NoError(t, s.RemoveItem("a"))
	assert.False(t, s.InWatchlist("a"))
	assert.Equal(t, []string{"a"}, removed)
}

func TestSessionSetItemsCallbackGetsInput(t *testing.T) {
	var got []Item
	s := newTestSession(t, Options{OnSetItems: func(items []Item) { got = items }})

	input := []Item{{ID: "x", Price: 1000}, {ID: "y", Price: 2000}}
	require.NoError(t, s.SetItems(input))

	// Callback sees the pre-normalization input: quantities still zero.
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Quantity)

	// Stored items are normalized.
	state := s.State()
	assert.Equal(t, 1, state.Items[0].Quantity)
}

func TestSessionSetItemsReplacesWholesale(t *testing.T) {
	s := newTestSession(t, Options{})
	require.NoError(t, s.SetItems([]Item{{ID: "x", Price: 1000}, {ID: "y", Price: 2000}}))
	require.NoError(t, s.SetItems([]Item{{ID: "z", Price: 3000}}))

	state := s.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, "z", state.Items[0].ID)
}

func TestSessionEmptyWatchlistDiscardsID(t *testing.T) {
	// Regression pin: emptying reverts to the canonical template, so even an
	// explicitly supplied id does not survive.
	s := newTestSession(t, Options{ID: "keep-me", DefaultItems: []Item{{ID: "a", Price: 1}}})

	require.NoError(t, s.EmptyWatchlist())

	state := s.State()
	assert.Empty(t, state.Items)
	assert.Equal(t, 0, state.TotalItems)
	assert.Equal(t, 0, state.TotalUniqueItems)
	assert.True(t, state.IsEmpty)
	assert.Equal(t, "", state.ID)
	assert.Equal(t, "watchlist-keep-me", s.Key(), "the store key stays pinned to the construction id")
}

func TestSessionMetadataOperations(t *testing.T) {
	s := newTestSession(t, Options{Metadata: map[string]interface{}{"owner": "kim"}})

	require.NoError(t, s.UpdateMetadata(map[string]interface{}{"theme": "dark"}))
	assert.Equal(t, "kim", s.State().Metadata["owner"])
	assert.Equal(t, "dark", s.State().Metadata["theme"])

	require.NoError(t, s.SetMetadata(map[string]interface{}{"only": true}))
	assert.Equal(t, map[string]interface{}{"only": true}, s.State().Metadata)

	// Nil payloads are no-ops, not clears.
	require.NoError(t, s.SetMetadata(nil))
	require.NoError(t, s.UpdateMetadata(nil))
	assert.Equal(t, map[string]interface{}{"only": true}, s.State().Metadata)

	require.NoError(t, s.ClearMetadata())
	assert.Empty(t, s.State().Metadata)
}

func TestSessionSubscribe(t *testing.T) {
	s := newTestSession(t, Options{})

	var states []State
	cancel := s.Subscribe(func(st State) { states = append(states, st) })

	require.NoError(t, s.AddItem(Item{ID: "a", Price: 1000}))
	require.NoError(t, s.UpdateItemQuantity("a", 2))
	require.Len(t, states, 2)
	assert.Equal(t, 1, states[0].Items[0].Quantity)
	assert.Equal(t, 2, states[1].Items[0].Quantity)

	cancel()
	require.NoError(t, s.RemoveItem("a"))
	assert.Len(t, states, 2, "cancelled subscribers stop receiving snapshots")
}

func TestSessionSubscriberNotNotifiedOnFailedOperation(t *testing.T) {
	s := newTestSession(t, Options{})

	var notified int
	s.Subscribe(func(State) { notified++ })

	_ = s.AddItem(Item{Price: 5})
	_ = s.UpdateItemQuantity("missing", 2)

	assert.Zero(t, notified)
}

func TestSessionReads(t *testing.T) {
	s := newTestSession(t, Options{DefaultItems: []Item{{ID: "a", Price: 7}}})

	item, ok := s.GetItem("a")
	require.True(t, ok)
	assert.Equal(t, 7.0, item.Price)

	_, ok = s.GetItem("b")
	assert.False(t, ok)

	assert.True(t, s.InWatchlist("a"))
	assert.False(t, s.InWatchlist("b"))
}

func TestSessionStateSnapshotsAreIsolated(t *testing.T) {
	s := newTestSession(t, Options{DefaultItems: []Item{{ID: "a", Price: 7, Fields: map[string]interface{}{"k": "v"}}}})

	snapshot := s.State()
	snapshot.Items[0].Price = 999
	snapshot.Items[0].Fields["k"] = "mutated"
	snapshot.Metadata["injected"] = true

	state := s.State()
	assert.Equal(t, 7.0, state.Items[0].Price)
	assert.Equal(t, "v", state.Items[0].Fields["k"])
	assert.NotContains(t, state.Metadata, "injected")
}
