package view

import "memory-album/internal/session"

// Screen is the single top-level surface being shown.
type Screen int

const (
	ScreenLoading Screen = iota
	ScreenAuth
	ScreenGreeting
	ScreenMain
)

// Tab is the sub-selector inside ScreenMain.
type Tab int

const (
	TabPhotos Tab = iota
	TabMessages
)

// Router decides which screen is visible. It is pure and synchronous:
// it owns no asynchronous work and reacts only to session snapshots
// and explicit user actions.
//
// The greeting is the landing screen on every fresh login; there is no
// persisted "already seen" flag, so each session start re-shows it.
type Router struct {
	screen Screen
	tab    Tab
}

func NewRouter() *Router {
	return &Router{screen: ScreenLoading, tab: TabPhotos}
}

func (r *Router) Screen() Screen { return r.screen }
func (r *Router) Tab() Tab       { return r.tab }

// Apply moves the router according to a session snapshot.
func (r *Router) Apply(s session.Session) {
	switch s.State {
	case session.Loading:
		r.screen = ScreenLoading
	case session.Absent:
		r.screen = ScreenAuth
	case session.Present:
		if r.screen == ScreenLoading || r.screen == ScreenAuth {
			// Fresh login: land on the greeting, tab back to default.
			r.screen = ScreenGreeting
			r.tab = TabPhotos
		}
	}
}

// Acknowledge is the only edge from the greeting to the main screen.
// It is a no-op anywhere else.
func (r *Router) Acknowledge() {
	if r.screen == ScreenGreeting {
		r.screen = ScreenMain
	}
}

// SelectTab switches the main sub-selector; ignored off ScreenMain.
func (r *Router) SelectTab(t Tab) {
	if r.screen == ScreenMain {
		r.tab = t
	}
}
