package config

// StoreConfig covers the key/value backend used for flow state,
// authorization codes, and client registrations. An empty address
// selects the in-process store, which is fine for a single instance.
type StoreConfig interface {
	GetValkeyAddress() string
	GetValkeyPassword() string
}

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetValkeyAddress() string {
	return GetEnv("VALKEY_ADDRESS", "")
}

func (Store) GetValkeyPassword() string {
	return GetEnv("VALKEY_PASSWORD", "")
}
