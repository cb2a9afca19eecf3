package auth

import (
	"context"
	"sync"

	"github.com/calevents/calevents/internal/event_bus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// StaticProvider holds a single identity and bearer token, set from
// configuration or at runtime. Identity changes are announced on the event
// bus so that subscribers (the collection sync in particular) can react.
type StaticProvider struct {
	mu       sync.RWMutex
	identity *Identity
	token    string
	bus      *event_bus.EventBus
}

var _ Provider = (*StaticProvider)(nil)

func NewStaticProvider(bus *event_bus.EventBus, identity *Identity, token string) *StaticProvider {
	return &StaticProvider{
		identity: identity,
		token:    token,
		bus:      bus,
	}
}

func (p *StaticProvider) CurrentIdentity(ctx context.Context) (Identity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.identity == nil {
		return Identity{}, ErrUnauthenticated
	}
	return *p.identity, nil
}

func (p *StaticProvider) IsAuthenticated(ctx context.Context) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.identity != nil
}

// TokenSource returns a source for the configured bearer token. The source
// reads the token on every call so that a runtime identity switch is picked
// up by in-flight clients.
func (p *StaticProvider) TokenSource() oauth2.TokenSource {
	return tokenSourceFunc(func() (*oauth2.Token, error) {
		p.mu.RLock()
		defer p.mu.RUnlock()
		if p.identity == nil {
			return nil, ErrUnauthenticated
		}
		return &oauth2.Token{AccessToken: p.token}, nil
	})
}

// SetIdentity replaces the current identity (nil signs out) and publishes
// the change on the bus.
func (p *StaticProvider) SetIdentity(ctx context.Context, identity *Identity, token string) {
	p.mu.Lock()
	p.identity = identity
	p.token = token
	p.mu.Unlock()

	payload := event_bus.IdentityChanged{}
	if identity != nil {
		payload.Subject = identity.Subject
		payload.DisplayName = identity.DisplayName
	}
	if err := p.bus.Publish(event_bus.NewEvent(ctx, event_bus.TopicIdentityChanged, payload)); err != nil {
		log.Errorf("failed to publish identity change: %v", err)
	}
}

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) {
	return f()
}
