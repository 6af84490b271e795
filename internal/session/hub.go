// Package session runs the live side of the site: one websocket session per
// browser tab, each with its own history, overlay and mounted demo.
package session

import (
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/oopconcepts/internal/demo"
	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/site"
)

// maxMessageSize bounds a single client message.
const maxMessageSize = 64 * 1024

// Options configures a Hub.
type Options struct {
	// Scheduler drives demo timers. Defaults to the system scheduler.
	Scheduler demo.Scheduler
	// AllowAllOrigins disables the same-origin check on upgrade.
	AllowAllOrigins bool
	// Logger receives session diagnostics. Defaults to the standard logger.
	Logger *log.Logger
}

// Hub tracks live sessions.
type Hub struct {
	holder    *registry.Holder
	renderer  *site.Renderer
	scheduler demo.Scheduler
	upgrader  websocket.Upgrader
	logger    *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	conns    map[string]*websocket.Conn
}

// NewHub returns a hub rendering through rd.
func NewHub(h *registry.Holder, rd *site.Renderer, opts Options) *Hub {
	hub := &Hub{
		holder:    h,
		renderer:  rd,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		sessions:  make(map[string]*Session),
		conns:     make(map[string]*websocket.Conn),
	}
	if hub.scheduler == nil {
		hub.scheduler = demo.SystemScheduler()
	}
	if hub.logger == nil {
		hub.logger = log.Default()
	}
	if opts.AllowAllOrigins {
		hub.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return hub
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get("/ws/demo", h.ServeHTTP)
}

// ServeHTTP upgrades the connection and runs a session until the client goes
// away. The path query parameter is the page the client is showing.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logf("session: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	s := h.Open(conn)
	h.mu.Lock()
	h.conns[s.ID] = conn
	h.mu.Unlock()
	defer h.Release(s)

	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}
	s.Navigate(path)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logf("session: websocket read: %v", err)
			}
			return
		}
		s.Handle(raw)
	}
}

// Open registers a new session writing to out.
func (h *Hub) Open(out Writer) *Session {
	s := newSession(uuid.NewString(), h, out)
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s
}

// Release closes s and forgets it.
func (h *Hub) Release(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	delete(h.conns, s.ID)
	h.mu.Unlock()
	s.Close()
}

// Get returns the session with the given id.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// BroadcastReload tells every client to reload its page, used after the
// content changed on disk.
func (h *Hub) BroadcastReload() int {
	for _, s := range h.snapshot() {
		s.write(ServerMessage{Type: MsgReload, SessionID: s.ID})
	}
	return h.Count()
}

// Close unmounts every session and closes their connections.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, s := range h.snapshot() {
		h.Release(s)
	}
	for _, c := range conns {
		c.Close()
	}
}

func (h *Hub) snapshot() []*Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

func (h *Hub) logf(format string, args ...any) {
	h.logger.Printf(format, args...)
}
