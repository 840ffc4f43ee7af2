// Package ui describes what the portal shows independently of how it is
// drawn. Tables are projected into Views here; internal/ui/tui draws them in
// the terminal.
package ui

// MenuID uniquely identifies a page in the navigation hierarchy.
type MenuID string

// Standard menu IDs
const (
	MenuDashboard  MenuID = "dashboard"
	MenuActivities MenuID = "study_activities"
	MenuWords      MenuID = "words"
	MenuGroups     MenuID = "groups"
	MenuSessions   MenuID = "study_sessions"
	MenuSettings   MenuID = "settings"
)

// MenuItem represents a single item in the navigation menu.
type MenuItem struct {
	ID          MenuID     `json:"id"`
	Label       string     `json:"label"`
	Path        string     `json:"path"`
	Icon        string     `json:"icon"`
	Key         string     `json:"key"` // keyboard shortcut
	Description string     `json:"description"`
}

// MainMenu returns the navigation menu.
func MainMenu() []MenuItem {
	return []MenuItem{
		{ID: MenuDashboard, Icon: "home", Label: "Dashboard", Path: "/dashboard", Key: "1", Description: "Last session, progress and quick stats"},
		{ID: MenuActivities, Icon: "play", Label: "Study Activities", Path: "/study_activities", Key: "2", Description: "Launch a learning activity"},
		{ID: MenuWords, Icon: "book", Label: "Words", Path: "/words", Key: "3", Description: "Browse and search vocabulary"},
		{ID: MenuGroups, Icon: "layers", Label: "Word Groups", Path: "/groups", Key: "4", Description: "Words organised by theme"},
		{ID: MenuSessions, Icon: "clock", Label: "Study Sessions", Path: "/study_sessions", Key: "5", Description: "Past study sessions"},
		{ID: MenuSettings, Icon: "settings", Label: "Settings", Path: "/settings", Key: "6", Description: "Reset study history"},
	}
}

// MenuForPath returns the menu item owning a route path, matching on the
// first path segment ("/words/3" belongs to Words).
func MenuForPath(path string) *MenuItem {
	seg := firstSegment(path)
	for _, item := range MainMenu() {
		if firstSegment(item.Path) == seg {
			return &item
		}
	}
	return nil
}

func firstSegment(path string) string {
	for len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	for i := 0; i < len(path); i++ {
		if path[i] == '/' || path[i] == '?' {
			return path[:i]
		}
	}
	return path
}
