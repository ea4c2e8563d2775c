package provider

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
	grantKeyPrefix = "grant:"
	grantTTL       = 2 * time.Minute
)

// ErrGrantNotFound is returned when an authorization code is unknown,
// expired, or already redeemed.
var ErrGrantNotFound = errors.New("authorization code not found")

// Props is the per-user property bundle attached to a completed
// authorization and carried through to the MCP layer.
type Props struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

// Grant binds a minted authorization code to the original request, the
// resolved user, and the granted properties until the code is redeemed.
type Grant struct {
	Request   *oauthmodel.AuthRequest `json:"request"`
	UserID    string                  `json:"userId"`
	Scope     []string                `json:"scope"`
	Metadata  map[string]string       `json:"metadata,omitempty"`
	Props     Props                   `json:"props"`
	CreatedAt time.Time               `json:"createdAt"`
}

// grantStore keeps pending authorization codes, single-use like the
// flow state store.
type grantStore struct {
	kv kv.Store
}

func (gs *grantStore) create(ctx context.Context, grant *Grant) (string, error) {
	payload, err := json.Marshal(grant)
	if err != nil {
		return "", fmt.Errorf("[grantStore create] marshal grant: %w", err)
	}

	code := uuid.NewString()
	if err := gs.kv.Set(ctx, grantKeyPrefix+code, string(payload), grantTTL); err != nil {
		return "", fmt.Errorf("[grantStore create] store grant: %w", err)
	}
	return code, nil
}

func (gs *grantStore) redeem(ctx context.Context, code string) (*Grant, error) {
	payload, err := gs.kv.GetDel(ctx, grantKeyPrefix+code)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, fmt.Errorf("[grantStore redeem] read grant: %w", err)
	}

	var grant Grant
	if err := json.Unmarshal([]byte(payload), &grant); err != nil {
		return nil, fmt.Errorf("[grantStore redeem] unmarshal grant: %w", err)
	}
	return &grant, nil
}
