package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-ticktick-mcp/internal/kv"
)

const propsKeyPrefix = "token_props:"

// ErrInvalidToken covers every way an access token can fail
// verification: bad signature, wrong algorithm, expiry, or a revoked
// props record.
var ErrInvalidToken = errors.New("invalid access token")

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenResponse is the /token endpoint's success body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// TokenClaims is what the broker learns from a verified access token.
type TokenClaims struct {
	Subject  string
	ClientID string
	Scope    []string
	TokenID  string
}

// TokenService mints and verifies the broker's own access tokens.
// Tokens are HS256 JWTs; the broker is both issuer and sole verifier,
// so a shared secret suffices. The upstream property bundle never goes
// into the token itself — it stays server-side under the token's jti.
type TokenService struct {
	secret []byte
	issuer string
	expiry time.Duration
	kv     kv.Store
}

// NewTokenService creates a token service signing with secret.
func NewTokenService(secret, issuer string, expiry time.Duration, backend kv.Store) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
		kv:     backend,
	}
}

// Mint issues an access token for a redeemed grant and parks the
// grant's props under the token id for the lifetime of the token.
func (ts *TokenService) Mint(ctx context.Context, grant *Grant) (*TokenResponse, error) {
	now := NowTimeFunc()
	tokenID := uuid.NewString()

	claims := jwtlib.MapClaims{
		"iss":       ts.issuer,
		"sub":       grant.UserID,
		"client_id": grant.Request.ClientID,
		"scope":     strings.Join(grant.Scope, " "),
		"iat":       now.Unix(),
		"exp":       now.Add(ts.expiry).Unix(),
		"jti":       tokenID,
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return nil, fmt.Errorf("[TokenService Mint] sign token: %w", err)
	}

	props, err := json.Marshal(grant.Props)
	if err != nil {
		return nil, fmt.Errorf("[TokenService Mint] marshal props: %w", err)
	}
	if err := ts.kv.Set(ctx, propsKeyPrefix+tokenID, string(props), ts.expiry); err != nil {
		return nil, fmt.Errorf("[TokenService Mint] store props: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ts.expiry.Seconds()),
		Scope:       strings.Join(grant.Scope, " "),
	}, nil
}

// Verify validates a presented access token and loads the props bundle
// stored when it was minted.
func (ts *TokenService) Verify(ctx context.Context, rawToken string) (*TokenClaims, *Props, error) {
	parsed, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (any, error) {
		return ts.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(ts.issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	)
	if err != nil || !parsed.Valid {
		return nil, nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, nil, ErrInvalidToken
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, nil, ErrInvalidToken
	}

	payload, err := ts.kv.Get(ctx, propsKeyPrefix+tokenID)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	var props Props
	if err := json.Unmarshal([]byte(payload), &props); err != nil {
		return nil, nil, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	clientID, _ := claims["client_id"].(string)
	scope, _ := claims["scope"].(string)

	return &TokenClaims{
		Subject:  subject,
		ClientID: clientID,
		Scope:    strings.Fields(scope),
		TokenID:  tokenID,
	}, &props, nil
}
