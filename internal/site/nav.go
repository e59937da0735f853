// Package site models the public site's navigation chrome: the menu items,
// the collapse-on-activate contract, and route derivation. It deliberately
// knows nothing about how the host renders or scrolls; activating an item
// just reports the target and asks the chrome to close the menu.
package site

import "strings"

// Item is one navigation entry. Target is either a route path ("/admin")
// or a section anchor ("#services").
type Item struct {
	Label  string
	Target string
}

// IsAnchor reports whether the item points at an in-page section.
func (i Item) IsAnchor() bool {
	return strings.HasPrefix(i.Target, "#")
}

// SectionTarget builds an anchor target for a section id.
func SectionTarget(id string) string {
	return "#" + id
}

// IsAdminPath derives whether the current path shows the admin view. It is
// a pure function of the path; no state is kept in sync by side effects.
func IsAdminPath(current, adminPath string) bool {
	if adminPath == "" {
		adminPath = "/admin"
	}
	return strings.TrimSuffix(current, "/") == strings.TrimSuffix(adminPath, "/")
}

// Menu holds the navigation items and the collapse callback. The host
// chrome registers OnCollapse; each item activation invokes it explicitly,
// so no item ever has to reach into its environment to close the menu.
type Menu struct {
	items      []Item
	onCollapse func()
}

// NewMenu creates a menu over the given items.
func NewMenu(items []Item) *Menu {
	return &Menu{items: items}
}

// Items returns the menu entries in order.
func (m *Menu) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// SetOnCollapse registers the chrome's collapse callback.
func (m *Menu) SetOnCollapse(fn func()) {
	m.onCollapse = fn
}

// Activate resolves the item at index and requests a menu collapse.
// It returns the activated target, or "" for an out-of-range index.
func (m *Menu) Activate(index int) string {
	if index < 0 || index >= len(m.items) {
		return ""
	}
	if m.onCollapse != nil {
		m.onCollapse()
	}
	return m.items[index].Target
}
