// Package config reads the broker's configuration from the
// environment. Each concern gets its own small interface so components
// only depend on the settings they use.
package config

type Config interface {
	EnvConfig
	UpstreamConfig
	SecurityConfig
	StoreConfig
	RoutesConfig
	DownstreamConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Upstream
	Security
	Store
	Routes
	Downstream
}

func New() Config {
	return mainConfig{}
}
