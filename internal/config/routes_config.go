package config

type RoutesConfig interface {
	GetAuthorizePath() string
	GetCallbackPath() string
	GetTokenPath() string
	GetRegisterPath() string
	GetMCPPath() string
}

type Routes struct{}

var _ RoutesConfig = Routes{}

func (Routes) GetAuthorizePath() string {
	return GetEnv("AUTHORIZE_PATH", "/authorize")
}

func (Routes) GetCallbackPath() string {
	return GetEnv("CALLBACK_PATH", "/callback")
}

func (Routes) GetTokenPath() string {
	return GetEnv("TOKEN_PATH", "/token")
}

func (Routes) GetRegisterPath() string {
	return GetEnv("REGISTER_PATH", "/register")
}

func (Routes) GetMCPPath() string {
	return GetEnv("MCP_PATH", "/mcp")
}
