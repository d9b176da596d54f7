package storeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/normalize"
)

// Memory is an in-process Store. Documents are kept in wire shape, the way
// the server stores them. Failures can be injected per operation.
type Memory struct {
	mu       sync.Mutex
	docs     map[string][]byte
	fetchErr error
	writeErr error
	writes   int
	gate     chan struct{}
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Seed stores doc for username without counting a write.
func (m *Memory) Seed(username string, doc domain.Document) error {
	data, err := encodeWire(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[username] = data
	return nil
}

// FailFetches makes every fetch and export return err until reset with nil.
func (m *Memory) FailFetches(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

// FailWrites makes every persist and import return err until reset with nil.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Hold blocks writes until Release is called.
func (m *Memory) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate == nil {
		m.gate = make(chan struct{})
	}
}

// Release unblocks writes held by Hold.
func (m *Memory) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gate != nil {
		close(m.gate)
		m.gate = nil
	}
}

// Writes returns the number of write attempts seen, failed ones included.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Stored returns the document currently stored for username.
func (m *Memory) Stored(username string) (domain.Document, bool) {
	m.mu.Lock()
	data, ok := m.docs[username]
	m.mu.Unlock()
	if !ok {
		return domain.Document{}, false
	}
	doc, err := normalize.DecodeDocument(data)
	if err != nil {
		return domain.Document{}, false
	}
	return doc, true
}

func (m *Memory) FetchDocument(ctx context.Context, username string) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	m.mu.Lock()
	err := m.fetchErr
	data, ok := m.docs[username]
	m.mu.Unlock()

	if err != nil {
		return domain.Document{}, err
	}
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	return normalize.DecodeDocument(data)
}

func (m *Memory) ExportDocument(ctx context.Context, username string) (domain.Document, error) {
	return m.FetchDocument(ctx, username)
}

func (m *Memory) PersistDocument(ctx context.Context, username string, doc domain.Document) error {
	return m.write(ctx, username, doc)
}

func (m *Memory) ImportDocument(ctx context.Context, username string, doc domain.Document) error {
	return m.write(ctx, username, doc)
}

func (m *Memory) write(ctx context.Context, username string, doc domain.Document) error {
	m.mu.Lock()
	m.writes++
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrNetwork, ctx.Err())
		}
	}

	data, err := encodeWire(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.docs[username] = data
	return nil
}

func encodeWire(doc domain.Document) ([]byte, error) {
	w, err := normalize.ToWire(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return json.Marshal(w)
}
