package service

import (
	"github.com/pageza/sofregit/backend/internal/model"
)

// NavItem is a link of the navigation bar.
type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// NavAction is a control of the navigation bar that is not a link.
type NavAction struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Nav is the navigation bar for one authentication state and location.
type Nav struct {
	Authenticated bool            `json:"authenticated"`
	User          *model.AuthUser `json:"user,omitempty"`
	Items         []NavItem       `json:"items"`
	Actions       []NavAction     `json:"actions"`
}

// BuildNav returns the navigation bar. The profile link only appears for a
// signed-in user; the item whose href equals path is active.
func BuildNav(state model.AuthState, path string) Nav {
	items := []NavItem{
		{Label: "Home", Href: "/"},
		{Label: "Recipes", Href: "/recipes"},
	}
	if state.SignedIn {
		items = append(items, NavItem{Label: "Profile", Href: "/profile"})
	}
	for i := range items {
		items[i].Active = items[i].Href == path
	}

	var actions []NavAction
	if state.SignedIn {
		actions = []NavAction{{Name: "logout", Label: "Log out"}}
	} else {
		actions = []NavAction{
			{Name: "login", Label: "Log in"},
			{Name: "register", Label: "Register"},
		}
	}

	return Nav{
		Authenticated: state.SignedIn,
		User:          state.User,
		Items:         items,
		Actions:       actions,
	}
}
