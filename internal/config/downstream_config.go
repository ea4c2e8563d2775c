package config

// DownstreamConfig covers the TickTick API the MCP tools call on
// behalf of authorized users.
type DownstreamConfig interface {
	GetTickTickToken() string
	GetTickTickBaseURL() string
}

type Downstream struct{}

var _ DownstreamConfig = Downstream{}

func (Downstream) GetTickTickToken() string {
	return GetEnv("TICKTICK_ACCESS_TOKEN", "")
}

func (Downstream) GetTickTickBaseURL() string {
	return GetEnv("TICKTICK_BASE_URL", "https://api.ticktick.com")
}
