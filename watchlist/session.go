package watchlist

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/grovetools/watchlist/errors"
	"github.com/grovetools/watchlist/logging"
	"github.com/grovetools/watchlist/schema"
	"github.com/grovetools/watchlist/store"
	"github.com/sirupsen/logrus"
)

const (
	// storeKeyPrefix prefixes the store key of sessions created with an
	// explicit id. Two sessions constructed with the same explicit id read
	// each other's persisted state.
	storeKeyPrefix = "watchlist-"

	// defaultStoreKey is the single shared key used by all sessions created
	// without an explicit id.
	defaultStoreKey = "watchlist"
)

// StoreKey derives the store key for a watchlist id: a per-id key for an
// explicit id, the single shared key otherwise.
func StoreKey(id string) string {
	if id == "" {
		return defaultStoreKey
	}
	return storeKeyPrefix + id
}

// Options configures a new Session. All fields are optional.
type Options struct {
	// ID pins the session to an explicit watchlist id and a per-id store
	// key. When empty, an id is generated and the shared default key is used.
	ID string

	// IDLength is the length of a generated id. Zero means DefaultIDLength.
	IDLength int

	// DefaultItems seed the state when nothing usable is persisted yet.
	// Quantities left unset default to 1.
	DefaultItems []Item

	// Metadata seeds the watchlist metadata alongside DefaultItems.
	Metadata map[string]interface{}

	// Store is the durable adapter. A nil store means the session runs
	// in-memory only.
	Store store.Store

	// OnSetItems fires after SetItems with the caller's input items,
	// before quantity normalization.
	OnSetItems func([]Item)

	// OnItemAdd fires after a new item lands, with the stored item
	// (totals included).
	OnItemAdd func(Item)

	// OnItemUpdate fires after an item update, with the raw requested
	// patch rather than the merged result.
	OnItemUpdate func(ItemPatch)

	// OnItemRemove fires when an item leaves the watchlist.
	OnItemRemove func(id string)
}

// Session owns exactly one watchlist state and bridges it to persistence.
// Every operation dispatches an action through the reducer, replaces the
// in-memory state, writes the new state through to the store, then fires
// the matching callback and notifies subscribers. The in-memory state is
// authoritative for the process lifetime: persistence is best-effort and
// write failures are logged, never propagated.
type Session struct {
	mu    sync.Mutex
	state State
	store store.Store
	key   string
	log   *logrus.Entry

	onSetItems   func([]Item)
	onItemAdd    func(Item)
	onItemUpdate func(ItemPatch)
	onItemRemove func(id string)

	subMu     sync.Mutex
	subs      map[int]func(State)
	nextSubID int
}

// NewSession constructs a session, loading prior persisted state for its
// key or seeding a fresh default state from the options.
func NewSession(opts Options) *Session {
	s := &Session{
		store:        opts.Store,
		key:          StoreKey(opts.ID),
		log:          logging.NewLogger("watchlist-session"),
		onSetItems:   opts.OnSetItems,
		onItemAdd:    opts.OnItemAdd,
		onItemUpdate: opts.OnItemUpdate,
		onItemRemove: opts.OnItemRemove,
		subs:         make(map[int]func(State)),
	}

	if loaded, ok := s.loadPersisted(); ok {
		s.state = loaded
		return s
	}

	id := opts.ID
	if id == "" {
		id = NewIDWithLength(opts.IDLength)
	}
	s.state = defaultState(id, opts.DefaultItems, opts.Metadata)
	return s
}

// defaultState builds a fresh state seeded from the supplied items and
// metadata, with quantities defaulted and aggregates derived.
func defaultState(id string, items []Item, metadata map[string]interface{}) State {
	st, err := Reduce(emptyState(), Action{Type: ActionSetItems, Items: items})
	if err != nil {
		// SET_ITEMS is always a recognized action; keep the template on the
		// impossible path rather than panic.
		st = emptyState()
	}
	st.ID = id
	if metadata != nil {
		st.Metadata = cloneMap(metadata)
	}
	return st
}

// loadPersisted reads, parses, and validates the blob at the session key.
// Any failure along the way degrades to "absent".
func (s *Session) loadPersisted() (State, bool) {
	if s.store == nil {
		return State{}, false
	}

	blob, ok, err := s.store.Load(s.key)
	if err != nil {
		s.log.WithError(errors.StoreAccess("load", s.key, err)).
			Warn("Failed to load persisted state, starting fresh")
		return State{}, false
	}
	if !ok {
		return State{}, false
	}

	if err := schema.ValidateBytes([]byte(blob)); err != nil {
		s.log.WithError(err).WithField("key", s.key).
			Warn("Persisted state failed schema validation, starting fresh")
		return State{}, false
	}

	var loaded State
	if err := json.Unmarshal([]byte(blob), &loaded); err != nil {
		s.log.WithError(err).WithField("key", s.key).
			Warn("Failed to parse persisted state, starting fresh")
		return State{}, false
	}

	return loaded, true
}

// ID returns the watchlist id of the current state.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ID
}

// Key returns the store key this session persists under.
func (s *Session) Key() string {
	return s.key
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Items returns a snapshot of the current items.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.state.Items)
}

// GetItem returns the item with the given id, if present. Pure read; no
// dispatch, no callbacks.
func (s *Session) GetItem(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetItem(id)
}

// InWatchlist reports whether an item with the given id is tracked.
func (s *Session) InWatchlist(id string) bool {
	_, ok := s.GetItem(id)
	return ok
}

// SetItems replaces the tracked items wholesale.
func (s *Session) SetItems(items []Item) error {
	snapshot, err := s.apply(Action{Type: ActionSetItems, Items: items})
	if err != nil {
		return err
	}
	if s.onSetItems != nil {
		// The callback receives the caller's input, not the normalized
		// stored result.
		s.onSetItems(items)
	}
	s.notify(snapshot)
	return nil
}

// AddItem adds an item with quantity 1, or accumulates quantity onto an
// already tracked item with the same id.
func (s *Session) AddItem(item Item) error {
	return s.AddItemWithQuantity(item, 1)
}

// AddItemWithQuantity adds an item with the requested quantity. An item
// without an id fails with MISSING_ID. When the id is already tracked the
// incoming item is merged over the existing one with the quantities summed;
// this cumulative policy is what keeps ids unique even though the reducer
// itself would happily append a duplicate.
func (s *Session) AddItemWithQuantity(item Item, quantity int) error {
	if item.ID == "" {
		return errors.MissingID()
	}

	s.mu.Lock()
	existing, tracked := s.state.GetItem(item.ID)
	s.mu.Unlock()

	if !tracked {
		added := item.clone()
		added.Quantity = quantity
		snapshot, err := s.apply(Action{Type: ActionAddItem, Item: added})
		if err != nil {
			return err
		}
		if s.onItemAdd != nil {
			if stored, ok := snapshot.GetItem(item.ID); ok {
				s.onItemAdd(stored)
			}
		}
		s.notify(snapshot)
		return nil
	}

	total := existing.Quantity + quantity
	patch := ItemPatch{
		Price:    &item.Price,
		Quantity: &total,
		Fields:   item.Fields,
	}
	snapshot, err := s.apply(Action{Type: ActionUpdateItem, ID: item.ID, Patch: patch})
	if err != nil {
		return err
	}
	if s.onItemUpdate != nil {
		s.onItemUpdate(patch)
	}
	s.notify(snapshot)
	return nil
}

// UpdateItem shallow-merges the patch over the tracked item. An empty id or
// an empty patch is a no-op.
func (s *Session) UpdateItem(id string, patch ItemPatch) error {
	if id == "" || patch.isZero() {
		return nil
	}

	snapshot, err := s.apply(Action{Type: ActionUpdateItem, ID: id, Patch: patch})
	if err != nil {
		return err
	}
	if s.onItemUpdate != nil {
		s.onItemUpdate(patch)
	}
	s.notify(snapshot)
	return nil
}

// UpdateItemQuantity sets the tracked quantity of an item. A quantity of
// zero or less removes the item outright rather than keeping a zero-quantity
// entry. Updating an untracked item fails with ITEM_NOT_FOUND.
func (s *Session) UpdateItemQuantity(id string, quantity int) error {
	if quantity <= 0 {
		if s.onItemRemove != nil {
			s.onItemRemove(id)
		}
		snapshot, err := s.apply(Action{Type: ActionRemoveItem, ID: id})
		if err != nil {
			return err
		}
		s.notify(snapshot)
		return nil
	}

	s.mu.Lock()
	_, tracked := s.state.GetItem(id)
	s.mu.Unlock()
	if !tracked {
		return errors.ItemNotFound(id)
	}

	patch := ItemPatch{Quantity: &quantity}
	snapshot, err := s.apply(Action{Type: ActionUpdateItem, ID: id, Patch: patch})
	if err != nil {
		return err
	}
	if s.onItemUpdate != nil {
		s.onItemUpdate(patch)
	}
	s.notify(snapshot)
	return nil
}

// RemoveItem drops the item with the given id. An empty id is a no-op.
func (s *Session) RemoveItem(id string) error {
	if id == "" {
		return nil
	}

	snapshot, err := s.apply(Action{Type: ActionRemoveItem, ID: id})
	if err != nil {
		return err
	}
	if s.onItemRemove != nil {
		s.onItemRemove(id)
	}
	s.notify(snapshot)
	return nil
}

// EmptyWatchlist resets to the canonical empty state, discarding items,
// metadata, and the current id. No callback fires.
func (s *Session) EmptyWatchlist() error {
	snapshot, err := s.apply(Action{Type: ActionEmptyWatchlist})
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

// ClearMetadata resets the metadata to an empty mapping.
func (s *Session) ClearMetadata() error {
	snapshot, err := s.apply(Action{Type: ActionClearMetadata})
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

// SetMetadata replaces the metadata wholesale. A nil payload is a no-op.
func (s *Session) SetMetadata(metadata map[string]interface{}) error {
	if metadata == nil {
		return nil
	}

	snapshot, err := s.apply(Action{Type: ActionSetMetadata, Metadata: metadata})
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

// UpdateMetadata shallow-merges the payload over the metadata. A nil
// payload is a no-op.
func (s *Session) UpdateMetadata(metadata map[string]interface{}) error {
	if metadata == nil {
		return nil
	}

	snapshot, err := s.apply(Action{Type: ActionUpdateMetadata, Metadata: metadata})
	if err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

// Subscribe registers an observer invoked with a state snapshot after each
// successful transition, in registration order. The returned function
// cancels the subscription.
func (s *Session) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// apply runs one transition: reduce, replace the in-memory state, and
// persist the result. The returned snapshot is what callbacks and
// subscribers observe. A reducer failure leaves the state untouched.
func (s *Session) apply(action Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, action)
	if err != nil {
		return State{}, err
	}

	s.state = next
	s.persist(next)
	return next.clone(), nil
}

// persist writes the state through to the store. Failures are logged and
// swallowed: durability degrades before in-memory usability does.
func (s *Session) persist(state State) {
	if s.store == nil {
		return
	}

	blob, err := json.Marshal(state)
	if err != nil {
		s.log.WithError(err).WithField("key", s.key).
			Warn("Failed to serialize watchlist state")
		return
	}

	if err := s.store.Save(s.key, string(blob)); err != nil {
		s.log.WithError(errors.StoreAccess("save", s.key, err)).
			Warn("Failed to persist watchlist state")
	}
}

// notify invokes subscribers outside the state lock so observers may call
// back into the session.
func (s *Session) notify(snapshot State) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(State), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot.clone())
	}
}
