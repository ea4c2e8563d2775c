package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/valkey-io/valkey-go"

	"github.com/jrsteele09/go-ticktick-mcp/internal/config"
	"github.com/jrsteele09/go-ticktick-mcp/internal/kv"
	"github.com/jrsteele09/go-ticktick-mcp/mcptools"
	"github.com/jrsteele09/go-ticktick-mcp/provider"
	"github.com/jrsteele09/go-ticktick-mcp/server"
	"github.com/jrsteele09/go-ticktick-mcp/server/flowstate"
	"github.com/jrsteele09/go-ticktick-mcp/ticktick"
	"github.com/jrsteele09/go-ticktick-mcp/upstream"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	backend, err := newBackend(c)
	if err != nil {
		return err
	}

	up, err := newUpstream(c)
	if err != nil {
		return err
	}

	prov := provider.New(backend, c.GetTokenSigningSecret(), c.GetBaseURL(), c.GetAccessTokenExpiry())

	tickClient := ticktick.New(c.GetTickTickToken(), ticktick.WithBaseURL(c.GetTickTickBaseURL()))
	mcpHandler := mcptools.NewHTTPHandler(mcptools.NewServer(tickClient))

	srv, err := server.New(c, flowstate.New(backend), up, prov, mcpHandler)
	if err != nil {
		return fmt.Errorf("[run] create server: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// newBackend selects the Valkey store when an address is configured
// and falls back to the in-process store otherwise.
func newBackend(c config.Config) (kv.Store, error) {
	address := c.GetValkeyAddress()
	if address == "" {
		log.Printf("No Valkey address configured, using in-memory store\n")
		return kv.NewMemory(), nil
	}

	store, err := kv.NewValkey(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    c.GetValkeyPassword(),
	})
	if err != nil {
		return nil, fmt.Errorf("[newBackend] connect to valkey: %w", err)
	}
	return store, nil
}

// newUpstream builds the identity provider: OIDC discovery when an
// issuer is configured, GitHub OAuth otherwise.
func newUpstream(c config.Config) (*upstream.Provider, error) {
	redirectURL := c.GetBaseURL() + c.GetCallbackPath()

	if issuer := c.GetOIDCIssuer(); issuer != "" {
		up, err := upstream.NewOIDC(context.Background(), issuer,
			c.GetGitHubClientID(), c.GetGitHubClientSecret(), redirectURL,
			[]string{"openid", "profile", "email"})
		if err != nil {
			return nil, fmt.Errorf("[newUpstream] OIDC discovery: %w", err)
		}
		return up, nil
	}

	if c.GetGitHubClientID() == "" || c.GetGitHubClientSecret() == "" {
		return nil, errors.New("[newUpstream] GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET must be set")
	}
	return upstream.NewGitHub(c.GetGitHubClientID(), c.GetGitHubClientSecret(), redirectURL), nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
