package session

import (
	"github.com/ziadkadry99/oopconcepts/internal/demo"
	"github.com/ziadkadry99/oopconcepts/internal/router"
)

// Client message types.
const (
	MsgNavigate = "navigate"
	MsgBack     = "back"
	MsgForward  = "forward"
	MsgAction   = "action"
	MsgOverlay  = "overlay"
)

// Server message types.
const (
	MsgState  = "state"
	MsgError  = "error"
	MsgReload = "reload"
)

// Overlay events.
const (
	OverlayTrigger = "trigger"
	OverlayOutside = "outside"
	OverlayInside  = "inside"
	OverlayClose   = "close"
)

// ClientMessage is the incoming websocket message format.
type ClientMessage struct {
	Type   string       `json:"type"`
	Path   string       `json:"path,omitempty"`
	Action *demo.Action `json:"action,omitempty"`
	Event  string       `json:"event,omitempty"`
}

// ServerMessage is the outgoing websocket message format. View and Title are
// set when the location changed; DemoHTML is set whenever a demo is mounted.
type ServerMessage struct {
	Type      string                  `json:"type"`
	SessionID string                  `json:"session_id,omitempty"`
	Nav       *router.NavigationState `json:"nav,omitempty"`
	Title     string                  `json:"title,omitempty"`
	View      string                  `json:"view,omitempty"`
	Demo      *demo.State             `json:"demo,omitempty"`
	DemoHTML  *string                 `json:"demo_html,omitempty"`
	Overlay   bool                    `json:"overlay"`
	Error     string                  `json:"error,omitempty"`
}
