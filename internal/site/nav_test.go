package site

import "testing"

func TestIsAdminPath(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		adminPath string
		want      bool
	}{
		{"admin route", "/admin", "/admin", true},
		{"admin with trailing slash", "/admin/", "/admin", true},
		{"home route", "/", "/admin", false},
		{"unrelated route", "/about", "/admin", false},
		{"default admin path", "/admin", "", true},
		{"custom admin path", "/manage", "/manage", true},
		{"custom path default current", "/admin", "/manage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdminPath(tt.current, tt.adminPath); got != tt.want {
				t.Errorf("IsAdminPath(%q, %q) = %v, want %v", tt.current, tt.adminPath, got, tt.want)
			}
		})
	}
}

func TestItem_IsAnchor(t *testing.T) {
	if !(Item{Label: "Services", Target: "#services"}).IsAnchor() {
		t.Error("anchor target not detected")
	}
	if (Item{Label: "Admin", Target: "/admin"}).IsAnchor() {
		t.Error("route target misdetected as anchor")
	}
}

func TestSectionTarget(t *testing.T) {
	if got := SectionTarget("services"); got != "#services" {
		t.Errorf("SectionTarget: got %q", got)
	}
}

func TestMenu_ActivateCollapsesAndReturnsTarget(t *testing.T) {
	menu := NewMenu([]Item{
		{Label: "Home", Target: "#home"},
		{Label: "Admin", Target: "/admin"},
	})

	collapsed := 0
	menu.SetOnCollapse(func() { collapsed++ })

	if got := menu.Activate(1); got != "/admin" {
		t.Errorf("Activate(1): got %q, want /admin", got)
	}
	if collapsed != 1 {
		t.Errorf("collapse calls: got %d, want 1", collapsed)
	}

	// Every activation collapses, anchors included
	if got := menu.Activate(0); got != "#home" {
		t.Errorf("Activate(0): got %q, want #home", got)
	}
	if collapsed != 2 {
		t.Errorf("collapse calls: got %d, want 2", collapsed)
	}
}

func TestMenu_ActivateOutOfRange(t *testing.T) {
	menu := NewMenu([]Item{{Label: "Home", Target: "#home"}})

	collapsed := false
	menu.SetOnCollapse(func() { collapsed = true })

	if got := menu.Activate(5); got != "" {
		t.Errorf("Activate(5): got %q, want empty", got)
	}
	if got := menu.Activate(-1); got != "" {
		t.Errorf("Activate(-1): got %q, want empty", got)
	}
	if collapsed {
		t.Error("out-of-range activation must not collapse the menu")
	}
}

func TestMenu_ActivateWithoutCollapseCallback(t *testing.T) {
	menu := NewMenu([]Item{{Label: "Home", Target: "#home"}})

	// No callback registered; must not panic
	if got := menu.Activate(0); got != "#home" {
		t.Errorf("Activate(0): got %q, want #home", got)
	}
}

func TestMenu_ItemsReturnsCopy(t *testing.T) {
	menu := NewMenu([]Item{{Label: "Home", Target: "#home"}})

	items := menu.Items()
	items[0].Target = "#changed"

	if menu.Items()[0].Target != "#home" {
		t.Error("mutating the returned slice must not affect the menu")
	}
}
