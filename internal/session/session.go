package session

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/ziadkadry99/oopconcepts/internal/demo"
	"github.com/ziadkadry99/oopconcepts/internal/router"
)

// Writer sends one JSON message to the client.
type Writer interface {
	WriteJSON(v any) error
}

// Session is one browser tab: its navigation history, the concept switch
// overlay and the demo instance of the current unit.
//
// Lock order is s.mu, then the instance, then writeMu. Timer callbacks run
// with the instance locked and never take s.mu.
type Session struct {
	ID string

	hub *Hub
	out Writer

	writeMu sync.Mutex

	mu       sync.Mutex
	history  *router.History
	nav      router.NavigationState
	instance *demo.Instance
	overlay  *demo.Overlay
	closed   bool

	listeners atomic.Int32
}

func newSession(id string, hub *Hub, out Writer) *Session {
	s := &Session{
		ID:      id,
		hub:     hub,
		out:     out,
		history: router.NewHistory(hub.renderer.Router()),
	}
	s.overlay = demo.NewOverlay(func() func() {
		s.listeners.Add(1)
		return func() { s.listeners.Add(-1) }
	})
	return s
}

// Handle applies one raw client message and sends the response.
func (s *Session) Handle(raw []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.sendError("invalid message format")
		return
	}

	switch msg.Type {
	case MsgNavigate:
		s.Navigate(msg.Path)
	case MsgBack:
		s.Back()
	case MsgForward:
		s.Forward()
	case MsgAction:
		if msg.Action == nil {
			s.sendError("action is required")
			return
		}
		s.Dispatch(*msg.Action)
	case MsgOverlay:
		s.Overlay(msg.Event)
	default:
		s.sendError("unknown message type: " + msg.Type)
	}
}

// Navigate pushes path onto the history, remounts the demo and sends the new
// view.
func (s *Session) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.overlay.Navigate()
	s.enterLocked(s.history.Push(path))
}

// Back moves one entry back. At the oldest entry it only resends the state.
func (s *Session) Back() { s.move((*router.History).Back) }

// Forward moves one entry forward. At the newest entry it only resends the
// state.
func (s *Session) Forward() { s.move((*router.History).Forward) }

func (s *Session) move(step func(*router.History) (router.NavigationState, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	nav, ok := step(s.history)
	if !ok {
		s.sendStateLocked(false)
		return
	}
	s.overlay.Navigate()
	s.enterLocked(nav)
}

// Dispatch applies a demo action to the mounted instance. Without a mounted
// demo the action is a no-op.
func (s *Session) Dispatch(a demo.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.instance != nil {
		s.instance.Dispatch(a)
	}
	s.sendStateLocked(false)
}

// Overlay feeds an overlay event and sends the resulting state.
func (s *Session) Overlay(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	switch event {
	case OverlayTrigger:
		s.overlay.Trigger()
	case OverlayOutside:
		s.overlay.PointerDown(false)
	case OverlayInside:
		s.overlay.PointerDown(true)
	case OverlayClose:
		s.overlay.Close()
	default:
		s.sendError("unknown overlay event: " + event)
		return
	}
	s.sendStateLocked(false)
}

// Nav returns the current navigation state.
func (s *Session) Nav() router.NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav
}

// Instance returns the mounted demo instance, or nil.
func (s *Session) Instance() *demo.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instance
}

// OverlayOpen reports whether the concept switch overlay is open.
func (s *Session) OverlayOpen() bool { return s.overlay.IsOpen() }

// Listeners returns the number of outside-click listeners held.
func (s *Session) Listeners() int { return int(s.listeners.Load()) }

// Close unmounts the demo and closes the overlay. It is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.overlay.Close()
	s.unmountLocked()
}

// enterLocked makes nav current: the old instance is unmounted before the
// new one is mounted. Callers hold s.mu.
func (s *Session) enterLocked(nav router.NavigationState) {
	s.unmountLocked()
	s.nav = nav

	if nav.Kind == router.KindUnit {
		u, err := s.hub.holder.GetUnit(nav.ConceptID, nav.UnitID)
		if err == nil && u.HasDemo() {
			spec := u.Demo
			s.instance = demo.Mount(spec, s.hub.scheduler, func(st demo.State) {
				s.sendDemo(nav, spec, st)
			})
		}
	}
	s.sendStateLocked(true)
}

func (s *Session) unmountLocked() {
	if s.instance != nil {
		s.instance.Unmount()
		s.instance = nil
	}
}

// sendStateLocked sends the full state. Callers hold s.mu.
func (s *Session) sendStateLocked(withView bool) {
	msg := ServerMessage{
		Type:      MsgState,
		SessionID: s.ID,
		Overlay:   s.overlay.IsOpen(),
	}
	nav := s.nav
	msg.Nav = &nav

	if withView {
		view, err := s.hub.renderer.RenderView(nav)
		if err != nil {
			s.hub.logf("session %s: rendering %s: %v", s.ID, nav.Path, err)
			s.sendError("rendering failed")
			return
		}
		msg.Title, msg.View = view.Title, view.HTML
	}

	if s.instance != nil {
		st := s.instance.State()
		html, err := s.hub.renderer.RenderDemo(s.instance.Spec(), st)
		if err != nil {
			s.hub.logf("session %s: rendering demo: %v", s.ID, err)
		} else {
			msg.Demo, msg.DemoHTML = &st, &html
		}
	}
	s.write(msg)
}

// sendDemo runs on timer callbacks with the instance locked. It must not take
// s.mu.
func (s *Session) sendDemo(nav router.NavigationState, spec *demo.Spec, st demo.State) {
	html, err := s.hub.renderer.RenderDemo(spec, st)
	if err != nil {
		s.hub.logf("session %s: rendering demo: %v", s.ID, err)
		return
	}
	s.write(ServerMessage{
		Type:      MsgState,
		SessionID: s.ID,
		Nav:       &nav,
		Demo:      &st,
		DemoHTML:  &html,
		Overlay:   s.overlay.IsOpen(),
	})
}

func (s *Session) sendError(message string) {
	s.write(ServerMessage{Type: MsgError, SessionID: s.ID, Error: message})
}

func (s *Session) write(msg ServerMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.out.WriteJSON(msg); err != nil {
		s.hub.logf("session %s: write: %v", s.ID, err)
	}
}
