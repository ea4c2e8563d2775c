// Package server is the HTTP surface of the broker: the authorization
// flow endpoints, the token and registration endpoints, metadata
// discovery, and the bearer-protected MCP transport.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-ticktick-mcp/internal/config"
	"github.com/jrsteele09/go-ticktick-mcp/provider"
	"github.com/jrsteele09/go-ticktick-mcp/server/flowstate"
	"github.com/jrsteele09/go-ticktick-mcp/upstream"
)

type Server struct {
	env          string
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	flow         *flowstate.Store
	upstream     *upstream.Provider
	provider     *provider.Provider
	allowList    upstream.AllowList
	cookieSecret string
	mcp          http.Handler
}

func New(cfg config.Config, flow *flowstate.Store, up *upstream.Provider, prov *provider.Provider, mcpHandler http.Handler) (*Server, error) {
	if cfg.GetCookieSecret() == "" {
		return nil, fmt.Errorf("[Server New] COOKIE_ENCRYPTION_KEY is not set")
	}

	s := &Server{
		mux:          http.NewServeMux(),
		config:       cfg,
		flow:         flow,
		upstream:     up,
		provider:     prov,
		allowList:    upstream.NewAllowList(cfg.GetAllowedLogins()),
		cookieSecret: cfg.GetCookieSecret(),
		mcp:          mcpHandler,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
