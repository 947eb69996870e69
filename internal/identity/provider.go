// Package identity resolves the current principal: the signed-in account when
// there is one, otherwise an anonymous id scoped to one browser tab.
//
// Anonymous ids live in the tab's session namespace only. A new tab gets a new
// id, so private content created anonymously is not visible from other tabs.
package identity

import (
	"context"
	"errors"
	"sync"

	"alcyxob/hoops-trainer/internal/idgen"
	"alcyxob/hoops-trainer/internal/logger"
	"alcyxob/hoops-trainer/internal/repository"
)

// DefaultSessionKey is the slot holding the anonymous id inside a tab namespace.
const DefaultSessionKey = "ht_user_id"

// ErrMissingTab is returned for anonymous callers that carry no tab id.
var ErrMissingTab = errors.New("tab id is required for anonymous sessions")

// Principal is the identity content is attributed to.
type Principal struct {
	ID        string `json:"id"`
	Anonymous bool   `json:"anonymous"`
}

// Provider resolves the current principal for a request context.
type Provider struct {
	sessions SessionLookup
	tabs     repository.SlotStore
	key      string

	mu sync.Mutex
}

// NewProvider creates a provider. tabs is the shared session store; each tab
// gets its own namespace inside it.
func NewProvider(sessions SessionLookup, tabs repository.SlotStore, key string) *Provider {
	if sessions == nil {
		sessions = StubLookup{}
	}
	if key == "" {
		key = DefaultSessionKey
	}
	return &Provider{sessions: sessions, tabs: tabs, key: key}
}

// TabNamespace is the key prefix for one tab's slots.
func TabNamespace(tabID string) string {
	return "tab:" + tabID + ":"
}

// CurrentPrincipal returns the signed-in account id, or the tab's anonymous id,
// minting and persisting one on first use.
func (p *Provider) CurrentPrincipal(ctx context.Context) (Principal, error) {
	session, err := p.sessions.Lookup(ctx)
	if err != nil {
		return Principal{}, err
	}
	if session != nil {
		if id := session.PrincipalID(); id != "" {
			return Principal{ID: id}, nil
		}
	}

	tabID := TabFromContext(ctx)
	if tabID == "" {
		return Principal{}, ErrMissingTab
	}
	slot := repository.Prefixed(p.tabs, TabNamespace(tabID))

	p.mu.Lock()
	defer p.mu.Unlock()

	id, ok, err := slot.Get(ctx, p.key)
	if err != nil {
		// The stored id may still be there; leave it for the next request.
		logger.Error().Err(err).Str("tab", tabID).Msg("Failed to read anonymous id, using a temporary one")
		return Principal{ID: idgen.Anonymous(), Anonymous: true}, nil
	}
	if ok && id != "" {
		return Principal{ID: id, Anonymous: true}, nil
	}

	id = idgen.Anonymous()
	if err := slot.Set(ctx, p.key, id); err != nil {
		// The id still works for this request; the next one mints again.
		logger.Error().Err(err).Str("tab", tabID).Msg("Failed to persist anonymous id")
	}
	return Principal{ID: id, Anonymous: true}, nil
}
