package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/normalize"
)

const maxResponseBytes = 4 << 20

// HTTP is a Store backed by the bio REST API.
type HTTP struct {
	base  string
	token string
	hc    *http.Client
}

// HTTPOption customizes an HTTP store.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(h *HTTP) { h.hc = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) HTTPOption {
	return func(h *HTTP) { h.token = token }
}

// NewHTTP creates a client for the API at baseURL.
func NewHTTP(baseURL string, opts ...HTTPOption) *HTTP {
	transport := &http.Transport{
		DialContext: (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
	}
	h := &HTTP{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Session is what the API returns on register and login.
type Session struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	} `json:"user"`
}

// Login exchanges credentials for a session token. The token is also kept
// for later requests made through h.
func (h *HTTP) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	data, err := h.do(ctx, http.MethodPost, "/users/login", body)
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	h.token = s.Token
	return s, nil
}

func (h *HTTP) FetchDocument(ctx context.Context, username string) (domain.Document, error) {
	return h.getDocument(ctx, userPath(username, "appData"))
}

func (h *HTTP) PersistDocument(ctx context.Context, username string, doc domain.Document) error {
	_, err := h.do(ctx, http.MethodPut, userPath(username, "appData"), doc)
	return err
}

func (h *HTTP) ExportDocument(ctx context.Context, username string) (domain.Document, error) {
	return h.getDocument(ctx, userPath(username, "export"))
}

func (h *HTTP) ImportDocument(ctx context.Context, username string, doc domain.Document) error {
	_, err := h.do(ctx, http.MethodPost, userPath(username, "import"), doc)
	return err
}

func (h *HTTP) getDocument(ctx context.Context, path string) (domain.Document, error) {
	data, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return domain.Document{}, err
	}
	doc, err := normalize.DecodeDocument(data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}

func (h *HTTP) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, statusError(resp.StatusCode, data)
}

func statusError(code int, body []byte) error {
	var apiErr struct {
		Message string `json:"message"`
	}
	msg := http.StatusText(code)
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrInvalidDocument, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrNetwork, code, msg)
	}
}

func userPath(username, leaf string) string {
	return "/users/" + url.PathEscape(username) + "/" + leaf
}
