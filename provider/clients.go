package provider

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-ticktick-mcp/internal/kv"
	"golang.org/x/crypto/bcrypt"
)

const (
	clientKeyPrefix = "oauth_client:"
	clientTTL       = 30 * 24 * time.Hour
)

// ErrClientNotFound is returned when a client id is unknown or its
// registration has expired.
var ErrClientNotFound = errors.New("client not found")

// Client is a registered OAuth client of the broker. Secrets are stored
// only as bcrypt hashes; the plaintext leaves the broker exactly once,
// in the registration response.
type Client struct {
	ID                      string    `json:"client_id"`
	SecretHash              string    `json:"client_secret_hash,omitempty"`
	RedirectURIs            []string  `json:"redirect_uris"`
	Name                    string    `json:"client_name,omitempty"`
	TokenEndpointAuthMethod string    `json:"token_endpoint_auth_method"`
	CreatedAt               time.Time `json:"created_at"`
}

// Public reports whether the client authenticates with PKCE instead of
// a secret.
func (c *Client) Public() bool {
	return c.TokenEndpointAuthMethod == "none"
}

// RedirectAllowed checks uri against the registered redirect URIs by
// exact match.
func (c *Client) RedirectAllowed(uri string) bool {
	for _, registered := range c.RedirectURIs {
		if registered == uri {
			return true
		}
	}
	return false
}

// CheckSecret compares a presented secret against the stored hash.
func (c *Client) CheckSecret(secret string) bool {
	if c.SecretHash == "" || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.SecretHash), []byte(secret)) == nil
}

// RegistrationRequest is the dynamic client registration payload
// (RFC 7591 subset).
type RegistrationRequest struct {
	RedirectURIs            []string `json:"redirect_uris"`
	ClientName              string   `json:"client_name,omitempty"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method,omitempty"`
}

// RegistrationResponse is returned to a newly registered client. It is
// the only place the plaintext secret appears.
type RegistrationResponse struct {
	ClientID                string   `json:"client_id"`
	ClientSecret            string   `json:"client_secret,omitempty"`
	RedirectURIs            []string `json:"redirect_uris"`
	ClientName              string   `json:"client_name,omitempty"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method"`
}

// ClientRegistry stores registered clients in the key/value store with
// a 30-day TTL, refreshed whenever the client is looked up.
type ClientRegistry struct {
	kv kv.Store
}

// NewClientRegistry creates a registry on the given backend.
func NewClientRegistry(backend kv.Store) *ClientRegistry {
	return &ClientRegistry{kv: backend}
}

// Register stores a new client and returns its credentials.
func (cr *ClientRegistry) Register(ctx context.Context, req RegistrationRequest) (*RegistrationResponse, error) {
	if len(req.RedirectURIs) == 0 {
		return nil, errors.New("[ClientRegistry Register] redirect_uris is required")
	}

	authMethod := req.TokenEndpointAuthMethod
	if authMethod == "" {
		authMethod = "client_secret_post"
	}

	client := Client{
		ID:                      uuid.NewString(),
		RedirectURIs:            req.RedirectURIs,
		Name:                    req.ClientName,
		TokenEndpointAuthMethod: authMethod,
		CreatedAt:               time.Now().UTC(),
	}

	var plaintextSecret string
	if authMethod != "none" {
		secret, err := generateClientSecret()
		if err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("[ClientRegistry Register] hash secret: %w", err)
		}
		client.SecretHash = string(hash)
		plaintextSecret = secret
	}

	if err := cr.put(ctx, &client); err != nil {
		return nil, err
	}

	return &RegistrationResponse{
		ClientID:                client.ID,
		ClientSecret:            plaintextSecret,
		RedirectURIs:            client.RedirectURIs,
		ClientName:              client.Name,
		TokenEndpointAuthMethod: client.TokenEndpointAuthMethod,
	}, nil
}

// Get looks up a client by id and refreshes its TTL.
func (cr *ClientRegistry) Get(ctx context.Context, clientID string) (*Client, error) {
	payload, err := cr.kv.Get(ctx, clientKeyPrefix+clientID)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("[ClientRegistry Get] read client: %w", err)
	}

	var client Client
	if err := json.Unmarshal([]byte(payload), &client); err != nil {
		return nil, fmt.Errorf("[ClientRegistry Get] unmarshal client: %w", err)
	}

	// Active clients should not age out mid-use.
	if err := cr.put(ctx, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (cr *ClientRegistry) put(ctx context.Context, client *Client) error {
	payload, err := json.Marshal(client)
	if err != nil {
		return fmt.Errorf("[ClientRegistry put] marshal client: %w", err)
	}
	if err := cr.kv.Set(ctx, clientKeyPrefix+client.ID, string(payload), clientTTL); err != nil {
		return fmt.Errorf("[ClientRegistry put] store client: %w", err)
	}
	return nil
}

func generateClientSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("[generateClientSecret] read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
