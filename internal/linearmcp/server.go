package linearmcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ernesto-jimenez/httplogger"
	"github.com/linearmcp/linear-mcp-server/pkg/linear"
	mcplog "github.com/linearmcp/linear-mcp-server/pkg/log"
	"github.com/linearmcp/linear-mcp-server/pkg/translations"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// TokenProvider is a function that returns the current Linear API key.
// It is called on each request, so it should be cheap.
type TokenProvider = linear.TokenProvider

type authMethod string

const (
	authAPIKey authMethod = "api_key"
	authOAuth  authMethod = "oauth"
)

// AuthConfig holds the credentials for talking to Linear. Exactly one
// of APIKey and OAuthToken must be set.
type AuthConfig struct {
	// Personal API key, sent as a bare Authorization header
	APIKey string

	// OAuth access token, sent as a Bearer Authorization header
	OAuthToken string
}

// BuildAuthConfig builds an AuthConfig from viper and validates that
// exactly one authentication method is configured.
func BuildAuthConfig() (AuthConfig, error) {
	config := AuthConfig{
		APIKey:     viper.GetString("api_key"),
		OAuthToken: viper.GetString("oauth_token"),
	}

	if _, err := (MCPServerConfig{Auth: config}).getAuthMethod(); err != nil {
		return AuthConfig{}, err
	}
	return config, nil
}

type MCPServerConfig struct {
	// Version of the server
	Version string

	// API host to target, e.g. https://api.linear.app. Empty means the
	// public Linear API.
	Host string

	// Credentials for the Linear API
	Auth AuthConfig

	// Optional dynamic credential source. When set it takes precedence
	// over Auth.APIKey for each request.
	TokenProvider TokenProvider

	// EnabledToolsets is a list of toolsets to enable
	EnabledToolsets []string

	// Whether to enable dynamic toolsets
	DynamicToolsets bool

	// Whether to require per-request api_key parameters on every tool
	MultiUser bool

	// Whether the server should expose write tools
	ReadOnly bool

	// Translator provides translated text for the server tooling
	Translator translations.TranslationHelperFunc

	// HTTPClient overrides the transport, used by tests and logging
	HTTPClient *httpClientConfig
}

type httpClientConfig struct {
	logger *logrus.Logger
}

func (c MCPServerConfig) getAuthMethod() (authMethod, error) {
	hasKey := c.Auth.APIKey != ""
	hasOAuth := c.Auth.OAuthToken != ""

	switch {
	case hasKey && hasOAuth:
		return "", errors.New("only one of api_key and oauth_token may be set")
	case hasKey:
		return authAPIKey, nil
	case hasOAuth:
		return authOAuth, nil
	case c.TokenProvider != nil:
		return authAPIKey, nil
	case c.MultiUser:
		// Every request brings its own key
		return authAPIKey, nil
	default:
		return "", errors.New("no authentication configured: set api_key or oauth_token")
	}
}

func (c MCPServerConfig) newLinearClient() (*linear.Client, error) {
	method, err := c.getAuthMethod()
	if err != nil {
		return nil, err
	}

	opts := []linear.ClientOption{
		linear.WithUserAgent(fmt.Sprintf("linear-mcp-server/%s", c.Version)),
	}
	if c.Host != "" {
		opts = append(opts, linear.WithBaseURL(c.Host))
	}
	if c.HTTPClient != nil && c.HTTPClient.logger != nil {
		opts = append(opts, linear.WithHTTPClient(loggedHTTPClient(c.HTTPClient.logger)))
	}

	token := c.Auth.APIKey
	if method == authOAuth {
		token = c.Auth.OAuthToken
		opts = append(opts, linear.WithBearerToken())
	}
	if c.TokenProvider != nil {
		opts = append(opts, linear.WithTokenProvider(c.TokenProvider))
	}

	return linear.NewClient(token, opts...), nil
}

// NewMCPServer creates an MCP server wired with the Linear toolsets.
func NewMCPServer(cfg MCPServerConfig) (*server.MCPServer, error) {
	client, err := cfg.newLinearClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Linear client: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"linear-mcp-server",
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	getClient := func(ctx context.Context) (*linear.Client, error) {
		if key, ok := linear.APIKeyFromContext(ctx); ok {
			perRequest := cfg
			perRequest.Auth = AuthConfig{APIKey: key}
			perRequest.TokenProvider = nil
			return perRequest.newLinearClient()
		}
		return client, nil
	}

	enabledToolsets := cfg.EnabledToolsets
	if cfg.DynamicToolsets {
		// Remove "all" from the list; dynamic toolsets exist to turn
		// things on one at a time.
		enabledToolsets = make([]string, 0, len(cfg.EnabledToolsets))
		for _, ts := range cfg.EnabledToolsets {
			if ts != "all" {
				enabledToolsets = append(enabledToolsets, ts)
			}
		}
	}

	t := cfg.Translator
	if t == nil {
		t = translations.NullTranslationHelper
	}

	initFn := linear.InitToolsets
	if cfg.MultiUser {
		initFn = linear.InitMultiUserToolsets
	}
	tsg, err := initFn(enabledToolsets, cfg.ReadOnly, getClient, t)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize toolsets: %w", err)
	}
	tsg.RegisterTools(mcpServer)

	if cfg.DynamicToolsets {
		dynamic := linear.InitDynamicToolset(mcpServer, tsg, t)
		dynamic.RegisterTools(mcpServer)
	}

	return mcpServer, nil
}

// StdioServerConfig contains everything needed to run the server over
// stdio.
type StdioServerConfig struct {
	// Version of the server
	Version string

	// API host to target, empty for the public Linear API
	Host string

	// Credentials for the Linear API
	Auth AuthConfig

	// Optional dynamic credential source
	TokenProvider TokenProvider

	// EnabledToolsets is a list of toolsets to enable
	EnabledToolsets []string

	// Whether to enable dynamic toolsets
	DynamicToolsets bool

	// Whether to require per-request api_key parameters on every tool
	MultiUser bool

	// Whether the server should expose write tools
	ReadOnly bool

	// Whether to dump the translation keys to a JSON file on exit
	ExportTranslations bool

	// Whether to log every Linear API request and response
	EnableCommandLogging bool

	// Path of the log file, empty for stderr
	LogFilePath string
}

// RunStdioServer runs the server over stdio until the process receives
// an interrupt or terminate signal. Not concurrent safe.
func RunStdioServer(cfg StdioServerConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := initLogger(cfg.LogFilePath)
	if err != nil {
		return err
	}

	t, dumpTranslations := translations.TranslationHelper()

	serverConfig := MCPServerConfig{
		Version:         cfg.Version,
		Host:            cfg.Host,
		Auth:            cfg.Auth,
		TokenProvider:   cfg.TokenProvider,
		EnabledToolsets: cfg.EnabledToolsets,
		DynamicToolsets: cfg.DynamicToolsets,
		MultiUser:       cfg.MultiUser,
		ReadOnly:        cfg.ReadOnly,
		Translator:      t,
	}
	if cfg.EnableCommandLogging {
		serverConfig.HTTPClient = &httpClientConfig{logger: logger}
	}

	mcpServer, err := NewMCPServer(serverConfig)
	if err != nil {
		return err
	}

	stdioServer := server.NewStdioServer(mcpServer)
	stdLogger := log.New(logger.Writer(), "stdioserver", 0)
	stdioServer.SetErrorLogger(stdLogger)

	if cfg.ExportTranslations {
		// Dump the whole translation map on startup so users can see
		// every key they can override.
		dumpTranslations()
	}

	errC := make(chan error, 1)
	go func() {
		in, out := io.Reader(os.Stdin), io.Writer(os.Stdout)
		errC <- stdioServer.Listen(ctx, in, out)
	}()

	_, _ = fmt.Fprintf(os.Stderr, "Linear MCP Server running on stdio\n")

	select {
	case <-ctx.Done():
		logger.Infof("shutting down server...")
		return nil
	case err := <-errC:
		if err != nil {
			return fmt.Errorf("error running server: %w", err)
		}
		return nil
	}
}

func initLogger(outPath string) (*logrus.Logger, error) {
	if outPath == "" {
		return logrus.New(), nil
	}

	file, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(file)
	return logger, nil
}

func loggedHTTPClient(logger *logrus.Logger) *http.Client {
	return &http.Client{
		Transport: httplogger.NewLoggedTransport(http.DefaultTransport, mcplog.NewHTTPLogger(logger)),
	}
}
