package manager

import "github.com/amady/vitrine/internal/model"

// EditSession is the transient draft state for one card being edited. It is
// a detached copy: pending fields never alias the manager's cache, and the
// session survives only until submit or cancel. Nothing is persisted until
// submit, so a crash mid-edit loses the draft.
type EditSession struct {
	Collection    model.Collection
	CardID        string
	PendingFields map[string]string
	PendingImage  *PendingImage
}

// PendingImage is a replacement image chosen but not yet uploaded.
type PendingImage struct {
	Name string
	Data []byte
}

// newEditSession seeds a session from a card's current state.
func newEditSession(collection model.Collection, card *model.Card) *EditSession {
	fields := make(map[string]string, len(card.Fields))
	for k, v := range card.Fields {
		fields[k] = v
	}
	return &EditSession{
		Collection:    collection,
		CardID:        card.ID,
		PendingFields: fields,
	}
}
