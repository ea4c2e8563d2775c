// Package flowstate is the server-side half of the authorization flow's
// continuity: a pending authorization request parked under a random
// state token while the user round-trips through the upstream provider.
package flowstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-ticktick-mcp/internal/kv"
	"github.com/jrsteele09/go-ticktick-mcp/oauthmodel"
)

const (
	keyPrefix = "oauth_state:"
	stateTTL  = 600 * time.Second
)

// ErrStateNotFound is returned by Consume when the state token was
// never created, has expired, or was already consumed. Callers cannot
// distinguish the three cases, which is intentional.
var ErrStateNotFound = errors.New("invalid or expired state")

// Store holds pending authorization requests keyed by state token.
type Store struct {
	kv kv.Store
}

// New creates a Store on top of the given key/value backend.
func New(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// Create parks the request under a fresh state token with a 600 second
// TTL and returns the token.
func (s *Store) Create(ctx context.Context, req *oauthmodel.AuthRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("[flowstate Create] marshal request: %w", err)
	}

	state := uuid.NewString()
	if err := s.kv.Set(ctx, keyPrefix+state, string(payload), stateTTL); err != nil {
		return "", fmt.Errorf("[flowstate Create] store state: %w", err)
	}
	return state, nil
}

// Consume returns the request parked under state and removes it, so a
// given token can be redeemed at most once. The read-and-delete is a
// single store operation; duplicate concurrent callbacks race on the
// store's atomicity, not on ours.
func (s *Store) Consume(ctx context.Context, state string) (*oauthmodel.AuthRequest, error) {
	payload, err := s.kv.GetDel(ctx, keyPrefix+state)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("[flowstate Consume] read state: %w", err)
	}

	var req oauthmodel.AuthRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return nil, fmt.Errorf("[flowstate Consume] unmarshal request: %w", err)
	}
	return &req, nil
}
