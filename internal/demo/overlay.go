package demo

import "sync"

// Overlay is a dismissible popup such as the concept-switch dropdown. It
// opens on its trigger and closes on a second trigger, on a pointer event
// outside its bounds, on navigation, or on Close. While open it holds an
// outside-click listener obtained from acquire; the listener is released on
// every close path.
type Overlay struct {
	mu      sync.Mutex
	open    bool
	acquire func() (release func())
	release func()
}

// NewOverlay returns a closed overlay. acquire may be nil.
func NewOverlay(acquire func() (release func())) *Overlay {
	return &Overlay{acquire: acquire}
}

// Trigger toggles the overlay and reports whether it is now open.
func (o *Overlay) Trigger() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.open {
		o.closeLocked()
	} else {
		o.openLocked()
	}
	return o.open
}

// Open opens the overlay if it is closed.
func (o *Overlay) Open() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.open {
		o.openLocked()
	}
}

// PointerDown handles a pointer event; inside reports whether it landed
// within the overlay or its trigger.
func (o *Overlay) PointerDown(inside bool) {
	if inside {
		return
	}
	o.Close()
}

// Navigate closes the overlay because the location changed.
func (o *Overlay) Navigate() { o.Close() }

// Close closes the overlay. It is safe to call at any time, including on
// teardown.
func (o *Overlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closeLocked()
}

// IsOpen reports whether the overlay is open.
func (o *Overlay) IsOpen() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.open
}

// Listening reports whether an outside-click listener is held.
func (o *Overlay) Listening() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.release != nil
}

func (o *Overlay) openLocked() {
	o.open = true
	if o.acquire != nil {
		o.release = o.acquire()
	}
}

func (o *Overlay) closeLocked() {
	o.open = false
	if o.release != nil {
		o.release()
		o.release = nil
	}
}
