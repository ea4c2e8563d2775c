package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Valkey is a Store backed by a Valkey (or Redis-compatible) server.
type Valkey struct {
	client valkey.Client
}

var _ Store = (*Valkey)(nil)

// NewValkey connects to a Valkey server using the given client options.
func NewValkey(option valkey.ClientOption) (*Valkey, error) {
	client, err := valkey.NewClient(option)
	if err != nil {
		return nil, fmt.Errorf("[kv NewValkey] failed to create client: %w", err)
	}
	return &Valkey{client: client}, nil
}

func (v *Valkey) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	cmd := v.client.B().Set().Key(key).Value(value).Ex(ttl).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("storing %q in valkey: %w", key, err)
	}
	return nil
}

func (v *Valkey) Get(ctx context.Context, key string) (string, error) {
	cmd := v.client.B().Get().Key(key).Build()
	value, err := v.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading %q from valkey: %w", key, err)
	}
	return value, nil
}

// GetDel uses the GETDEL primitive, so a value can be consumed at most
// once even under concurrent duplicate requests.
func (v *Valkey) GetDel(ctx context.Context, key string) (string, error) {
	cmd := v.client.B().Getdel().Key(key).Build()
	value, err := v.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("consuming %q from valkey: %w", key, err)
	}
	return value, nil
}

func (v *Valkey) Delete(ctx context.Context, key string) error {
	cmd := v.client.B().Del().Key(key).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("deleting %q from valkey: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (v *Valkey) Close() {
	v.client.Close()
}
