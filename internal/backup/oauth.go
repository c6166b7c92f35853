package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"moneyflow/internal/logging"
)

// OAuthConfig holds the Google OAuth client credentials and where the
// obtained token is cached between runs.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	TokenFile    string
}

const (
	callbackAddr    = ":8089"
	callbackPath    = "/callback"
	authWaitTimeout = 5 * time.Minute
)

func oauthConfig(cfg OAuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://localhost" + callbackAddr + callbackPath,
		Scopes:       []string{drive.DriveAppdataScope},
	}
}

// Authenticate performs the interactive OAuth flow: it prints the consent
// URL, waits for the browser redirect on a local listener and exchanges the
// authorization code for a token, which is cached in cfg.TokenFile.
func Authenticate(ctx context.Context, cfg OAuthConfig, logger logging.Logger) (*oauth2.Token, error) {
	oc := oauthConfig(cfg)

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			fmt.Fprint(w, "Authentication failed. Please return to the terminal and try again.")
			return
		}
		codeChan <- code
		fmt.Fprint(w, "Authentication successful. You can close this window.")
	})

	server := &http.Server{Addr: callbackAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- fmt.Errorf("starting callback listener: %w", err)
		}
	}()

	authURL := oc.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	logger.Info("visit this URL to authorize Drive access",
		logging.Field{Key: "url", Value: authURL})

	var code string
	select {
	case code = <-codeChan:
	case err := <-errChan:
		_ = server.Shutdown(ctx)
		return nil, err
	case <-time.After(authWaitTimeout):
		_ = server.Shutdown(ctx)
		return nil, fmt.Errorf("authentication timed out after %s", authWaitTimeout)
	case <-ctx.Done():
		_ = server.Shutdown(context.Background())
		return nil, ctx.Err()
	}
	_ = server.Shutdown(ctx)

	token, err := oc.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	if cfg.TokenFile != "" {
		if err := saveToken(cfg.TokenFile, token); err != nil {
			logger.Warn("failed to cache token",
				logging.Field{Key: "file", Value: cfg.TokenFile},
				logging.Field{Key: "error", Value: err.Error()})
		}
	}
	return token, nil
}

// TokenSource returns a refreshing token source backed by the cached token.
// It fails when no token has been cached yet; run Authenticate first.
func TokenSource(ctx context.Context, cfg OAuthConfig) (oauth2.TokenSource, error) {
	token, err := loadToken(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("no cached token, run the login command first: %w", err)
	}
	return oauthConfig(cfg).TokenSource(ctx, token), nil
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)
	return token, err
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600) // #nosec G304
	if err != nil {
		return fmt.Errorf("creating token file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(token)
}
