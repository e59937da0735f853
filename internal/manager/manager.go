package manager

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"

	vitrerr "github.com/amady/vitrine/internal/errors"
	"github.com/amady/vitrine/internal/model"
	"github.com/amady/vitrine/internal/store"
)

// State is the manager's view/edit mode.
type State string

const (
	StateBrowsing State = "browsing"
	StateEditing  State = "editing"
)

// StatusFunc receives one human-readable message per operation outcome.
// Diagnostic detail goes to the log, not to the status channel.
type StatusFunc func(message string)

// Manager orchestrates the card collections: it owns the in-memory cache
// (a full-replace snapshot per collection), the view selector, the single
// edit session, and the loading flag.
//
// The cache is exclusively owned here; callers get copies. After any
// successful mutation the affected collection is re-fetched in full and its
// cache slice replaced, which trades extra round trips for never having to
// merge optimistically on the client side. A fetch failure leaves the prior
// slice untouched.
//
// A mutex guards internal state because HTTP handlers share one Manager,
// but the design remains single-logical-controller: the presentation layer
// is expected to disable mutation controls while Loading() is true, which
// serializes user-triggered mutations. In-flight operations cannot be
// aborted; there are no retries.
type Manager struct {
	docs     store.DocumentStore
	blobs    store.BlobStore
	statusFn StatusFunc

	mu      sync.Mutex
	cache   map[model.Collection][]*model.Card
	view    model.Collection
	session *EditSession
	loading bool
}

// New creates a Manager browsing the team collection with an empty cache.
func New(docs store.DocumentStore, blobs store.BlobStore, statusFn StatusFunc) *Manager {
	cache := make(map[model.Collection][]*model.Card, len(model.Collections()))
	for _, c := range model.Collections() {
		cache[c] = []*model.Card{}
	}
	if statusFn == nil {
		statusFn = func(string) {}
	}
	return &Manager{
		docs:     docs,
		blobs:    blobs,
		statusFn: statusFn,
		cache:    cache,
		view:     model.CollectionTeam,
	}
}

// LoadAll fetches all five collections concurrently and joins before the
// loading flag clears. Partial success is accepted: collections that fetch
// successfully populate the cache even when siblings fail, and each failure
// produces exactly one status message.
func (m *Manager) LoadAll(ctx context.Context) {
	m.setLoading(true)
	defer m.setLoading(false)

	var wg sync.WaitGroup
	for _, collection := range model.Collections() {
		wg.Add(1)
		go func(c model.Collection) {
			defer wg.Done()
			m.fetchCollection(ctx, c)
		}(collection)
	}
	wg.Wait()
}

// fetchCollection re-fetches one collection and replaces its cache slice.
// On failure the prior slice is left untouched.
func (m *Manager) fetchCollection(ctx context.Context, collection model.Collection) bool {
	cards, err := m.docs.FetchAll(ctx, collection)
	if err != nil {
		log.Printf("Error fetching %s data: %v", collection, err)
		m.statusFn(fmt.Sprintf("Error fetching %s data.", collection))
		return false
	}

	m.mu.Lock()
	m.cache[collection] = cards
	m.mu.Unlock()
	return true
}

// Refresh re-fetches one collection and replaces its cache slice, leaving
// the prior slice untouched on failure. Used when the underlying store is
// known to have changed out-of-band.
func (m *Manager) Refresh(ctx context.Context, collection model.Collection) bool {
	if !model.ValidCollection(collection.String()) {
		return false
	}
	return m.fetchCollection(ctx, collection)
}

// SetStatusFunc replaces the status message sink. Useful when the sink is
// constructed after the manager, e.g. a live-update hub.
func (m *Manager) SetStatusFunc(fn StatusFunc) {
	if fn == nil {
		fn = func(string) {}
	}
	m.statusFn = fn
}

// View returns the currently displayed collection.
func (m *Manager) View() model.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// State reports whether an edit session is active.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		return StateEditing
	}
	return StateBrowsing
}

// Loading reports whether a store or blob operation is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Cards returns a copy of the cached slice for a collection. The cache is a
// display filter: this never triggers a fetch.
func (m *Manager) Cards(collection model.Collection) []*model.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	cached := m.cache[collection]
	out := make([]*model.Card, len(cached))
	copy(out, cached)
	return out
}

// SelectView switches the displayed collection. Switching while an edit
// session is active silently abandons the session; that mirrors the admin
// UI's current behavior and is documented rather than endorsed.
func (m *Manager) SelectView(collection model.Collection) error {
	if !model.ValidCollection(collection.String()) {
		return vitrerr.CollectionNotFound(collection.String())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = collection
	m.session = nil
	return nil
}

// StartEdit opens an edit session for a card in the current view, seeded
// with the card's current fields.
func (m *Manager) StartEdit(cardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, card := range m.cache[m.view] {
		if card.ID == cardID {
			m.session = newEditSession(m.view, card)
			return nil
		}
	}
	return vitrerr.CardNotFound(cardID)
}

// UpdateField stages a field edit on the active session.
func (m *Manager) UpdateField(name, value string) error {
	if err := model.ValidateFieldName(name); err != nil {
		return vitrerr.InvalidField(name, err.Error())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return vitrerr.InvalidField("edit", "no card is being edited")
	}
	m.session.PendingFields[name] = value
	return nil
}

// ChooseImage stages a replacement image on the active session.
func (m *Manager) ChooseImage(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return vitrerr.InvalidField("edit", "no card is being edited")
	}
	m.session.PendingImage = &PendingImage{Name: name, Data: data}
	return nil
}

// CancelEdit discards the active session unconditionally. No store or blob
// calls are issued.
func (m *Manager) CancelEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
}

// Session returns the active edit session, or nil while browsing.
func (m *Manager) Session() *EditSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// SubmitEdit uploads the pending image (if any), merges the pending fields
// into the store, then re-fetches the collection. The upload completes
// before the document write is issued, so a document never references a
// blob that isn't durable yet.
//
// The session ends on every outcome: failures are reported via the status
// channel but still return the manager to Browsing, matching the admin UI's
// established behavior.
func (m *Manager) SubmitEdit(ctx context.Context) error {
	m.mu.Lock()
	session := m.session
	m.mu.Unlock()
	if session == nil {
		return vitrerr.InvalidField("edit", "no card is being edited")
	}

	m.setLoading(true)
	defer m.setLoading(false)
	defer m.CancelEdit()

	var imageURL *string
	if session.PendingImage != nil {
		url, err := m.blobs.Upload(ctx, session.Collection, session.PendingImage.Name,
			bytes.NewReader(session.PendingImage.Data), session.CardID)
		if err != nil {
			log.Printf("Error updating %s: %v", session.Collection, err)
			m.statusFn(fmt.Sprintf("Error updating %s.", session.Collection))
			return err
		}
		imageURL = &url
	}

	if err := m.docs.Update(ctx, session.Collection, session.CardID, session.PendingFields, imageURL); err != nil {
		log.Printf("Error updating %s: %v", session.Collection, err)
		m.statusFn(fmt.Sprintf("Error updating %s.", session.Collection))
		return err
	}

	m.statusFn(fmt.Sprintf("%s updated successfully.", session.Collection))
	m.fetchCollection(ctx, session.Collection)
	return nil
}

// CreateCard uploads the optional image, creates the document, then
// re-fetches the collection. Available only while browsing.
func (m *Manager) CreateCard(ctx context.Context, collection model.Collection, fields map[string]string, image *PendingImage) (*model.Card, error) {
	if !model.ValidCollection(collection.String()) {
		return nil, vitrerr.CollectionNotFound(collection.String())
	}
	if m.State() == StateEditing {
		return nil, vitrerr.InvalidField("create", "finish or cancel the current edit first")
	}

	m.setLoading(true)
	defer m.setLoading(false)

	card := &model.Card{Fields: fields}
	if image != nil {
		url, err := m.blobs.Upload(ctx, collection, image.Name, bytes.NewReader(image.Data), "")
		if err != nil {
			log.Printf("Error creating %s: %v", collection, err)
			m.statusFn(fmt.Sprintf("Error creating %s.", collection))
			return nil, err
		}
		card.ImageURL = url
	}

	if err := m.docs.Create(ctx, collection, card); err != nil {
		log.Printf("Error creating %s: %v", collection, err)
		m.statusFn(fmt.Sprintf("Error creating %s.", collection))
		return nil, err
	}

	m.statusFn(fmt.Sprintf("%s created successfully.", collection))
	m.fetchCollection(ctx, collection)
	return card, nil
}

// DeleteCard removes a card and re-fetches the collection. Available only
// while browsing.
func (m *Manager) DeleteCard(ctx context.Context, collection model.Collection, cardID string) error {
	if !model.ValidCollection(collection.String()) {
		return vitrerr.CollectionNotFound(collection.String())
	}
	if m.State() == StateEditing {
		return vitrerr.InvalidField("delete", "finish or cancel the current edit first")
	}

	m.setLoading(true)
	defer m.setLoading(false)

	if err := m.docs.Delete(ctx, collection, cardID); err != nil {
		log.Printf("Error deleting %s: %v", collection, err)
		m.statusFn(fmt.Sprintf("Error deleting %s.", collection))
		return err
	}

	m.statusFn(fmt.Sprintf("%s deleted successfully.", collection))
	m.fetchCollection(ctx, collection)
	return nil
}

// setLoading flips the loading flag. It is cleared on success and failure
// paths alike so the UI never sticks in a loading state.
func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
