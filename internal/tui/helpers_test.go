package tui

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/simplecrm/internal/graphql"
	"github.com/jask/simplecrm/internal/i18n"
	"github.com/jask/simplecrm/internal/query"
)

const adaContacts = `{"contacts":[
	{"id":"1","firstName":"Ada","lastName":"Lovelace","email":"ada@x.com","organizations":[]},
	{"id":"2","firstName":"Grace","lastName":"Hopper","email":"g@navy.mil","organizations":[{"id":"9","name":"Navy"},{"id":"10","name":"Harvard"}]}
]}`

// stubServer answers GraphQL operations by name.
type stubServer struct {
	mu       sync.Mutex
	handlers map[string]func(graphql.Request) (json.RawMessage, error)
	reqs     []graphql.Request
}

func newStubServer() *stubServer {
	return &stubServer{handlers: map[string]func(graphql.Request) (json.RawMessage, error){}}
}

func (s *stubServer) on(op string, fn func(graphql.Request) (json.RawMessage, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[op] = fn
}

func (s *stubServer) respond(op, body string) {
	s.on(op, func(graphql.Request) (json.RawMessage, error) { return json.RawMessage(body), nil })
}

func (s *stubServer) fail(op string, err error) {
	s.on(op, func(graphql.Request) (json.RawMessage, error) { return nil, err })
}

func (s *stubServer) Do(ctx context.Context, req graphql.Request) (json.RawMessage, error) {
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	fn := s.handlers[req.OperationName]
	s.mu.Unlock()
	if fn == nil {
		return nil, errors.New("no handler for " + req.OperationName)
	}
	return fn(req)
}

func (s *stubServer) requests(op string) []graphql.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []graphql.Request
	for _, r := range s.reqs {
		if r.OperationName == op {
			out = append(out, r)
		}
	}
	return out
}

func testLocalizer(t *testing.T, locale string) *i18n.Localizer {
	t.Helper()
	b, err := i18n.Load()
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return b.Localizer(locale)
}

func testExecutor(doer graphql.Doer) *query.Executor {
	return query.New(doer, query.Options{Policy: query.NetworkOnly})
}

// runCmd executes cmd with a deadline so a stuck channel fails the test
// instead of hanging it.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	out := make(chan tea.Msg, 1)
	go func() { out <- cmd() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for command")
	}
	return nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}
