package engine

// Confirmation is a destructive change waiting for an explicit yes. Only
// the most recently requested confirmation is pending; requesting another
// one replaces it.
type Confirmation struct {
	Title   string
	Message string

	engine    *Engine
	onConfirm func() error
}

// Confirm applies the change. The document it applies to is the one
// current at confirmation time.
func (c *Confirmation) Confirm() error {
	return c.engine.resolve(c, true)
}

// Dismiss discards the change without side effects.
func (c *Confirmation) Dismiss() {
	_ = c.engine.resolve(c, false)
}

// PendingConfirmation returns the confirmation awaiting an answer, if any.
func (e *Engine) PendingConfirmation() *Confirmation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Confirm accepts the pending confirmation.
func (e *Engine) Confirm() error {
	e.mu.Lock()
	c := e.pending
	e.mu.Unlock()
	if c == nil {
		return ErrNoConfirmation
	}
	return e.resolve(c, true)
}

// Dismiss clears the pending confirmation, if any.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	e.pending = nil
	e.mu.Unlock()
}

func (e *Engine) request(title, message string, onConfirm func() error) (*Confirmation, error) {
	c := &Confirmation{Title: title, Message: message, engine: e, onConfirm: onConfirm}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	e.pending = c
	return c, nil
}

func (e *Engine) resolve(c *Confirmation, accept bool) error {
	e.mu.Lock()
	if e.pending != c {
		e.mu.Unlock()
		return ErrNoConfirmation
	}
	e.pending = nil
	e.mu.Unlock()

	if !accept {
		return nil
	}
	return c.onConfirm()
}
