package server

func (s *Server) initRoutes() {
	authorizePath := s.config.GetAuthorizePath()
	callbackPath := s.config.GetCallbackPath()

	// Authorization flow
	s.RegisterRouteHandler("GET "+authorizePath, ChainMiddleware(s.AuthorizeGetHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+authorizePath, ChainMiddleware(s.AuthorizePostHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+callbackPath, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleware()...))

	// OAuth API endpoints
	s.RegisterRouteHandler("POST "+s.config.GetTokenPath(), ChainMiddleware(s.TokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+s.config.GetRegisterPath(), ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET /.well-known/oauth-authorization-server", ChainMiddleware(s.MetadataHandler(), s.APIMiddleware()...))

	// MCP transport, bearer-protected
	s.RegisterRouteHandler(s.config.GetMCPPath(), ChainMiddleware(s.MCPHandler(), append(s.APIMiddleware(), s.RequireAuth())...))
}
