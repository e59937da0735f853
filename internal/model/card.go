package model

import (
	"encoding/json"
)

// Card represents one content record belonging to a collection.
// Beyond the identifier and optional image URL, a card is a free-form
// mapping from field name to string value; each collection defines its own
// field set, so no shared schema is imposed here.
// Schema changes require a version bump—see internal/version/version.go.
type Card struct {
	Version  int    `json:"_v"`
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl,omitempty"`

	// Fields holds the card's free-form attributes. They are serialized at
	// the top level of the JSON document, not nested.
	Fields map[string]string `json:"-"`
}

// MarshalJSON implements custom JSON marshaling to merge free-form fields
// into the top level of the JSON object.
func (c Card) MarshalJSON() ([]byte, error) {
	// Use an alias to avoid infinite recursion
	type CardAlias Card
	base, err := json.Marshal(CardAlias(c))
	if err != nil {
		return nil, err
	}

	if len(c.Fields) == 0 {
		return base, nil
	}

	// Merge free-form fields into the base object
	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}

	for k, v := range c.Fields {
		if reservedFields[k] {
			continue
		}
		merged[k] = v
	}

	return json.Marshal(merged)
}

// UnmarshalJSON implements custom JSON unmarshaling to extract free-form
// fields from the top level of the JSON object.
func (c *Card) UnmarshalJSON(data []byte) error {
	// Use an alias to avoid infinite recursion
	type CardAlias Card
	var alias CardAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*c = Card(alias)

	// Extract free-form fields (any keys not in the reserved set)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Fields = make(map[string]string)
	for k, v := range raw {
		if reservedFields[k] {
			continue
		}
		var val string
		if err := json.Unmarshal(v, &val); err != nil {
			// Non-string values can show up in hand-edited documents;
			// skip them rather than failing the whole card.
			continue
		}
		c.Fields[k] = val
	}

	if len(c.Fields) == 0 {
		c.Fields = nil
	}

	return nil
}

// reservedFields are document keys managed by the store, never by callers.
var reservedFields = map[string]bool{
	"_v": true, "id": true, "imageUrl": true,
}

// Clone returns a detached copy of the card. Edit sessions hold clones so
// pending edits never alias the cache.
func (c *Card) Clone() *Card {
	out := &Card{
		Version:  c.Version,
		ID:       c.ID,
		ImageURL: c.ImageURL,
	}
	if c.Fields != nil {
		out.Fields = make(map[string]string, len(c.Fields))
		for k, v := range c.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

// ValidateFieldName checks if a field name is allowed.
// Returns an error if the name collides with a reserved document key.
func ValidateFieldName(name string) error {
	if reservedFields[name] {
		return &ReservedFieldError{FieldName: name}
	}
	return nil
}

// ValidateFields checks all field names against the reserved set.
func ValidateFields(fields map[string]string) error {
	for name := range fields {
		if err := ValidateFieldName(name); err != nil {
			return err
		}
	}
	return nil
}

// ReservedFieldError indicates a field uses a store-managed key.
type ReservedFieldError struct {
	FieldName string
}

func (e *ReservedFieldError) Error() string {
	return "field \"" + e.FieldName + "\" is managed by the store and cannot be set directly"
}
