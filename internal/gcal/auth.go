// Package gcal adapts the Google Calendar API to the engine's calendar
// port: free/busy queries become availability windows inside the
// configured working hours.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jdelgad/nudge/internal/domain"
)

const (
	// credentialsFile is the downloaded Google API client secrets file
	// (client_id, client_secret, redirect_uris), expected under the
	// nudge config directory.
	credentialsFile = "credentials.json"

	// tokenFile caches the user's OAuth token (access + refresh).
	tokenFile = "token.json"

	// localAuthPort is where the loopback server listens to capture the
	// OAuth redirect during first-time authorization.
	localAuthPort = "6789"

	configDirName = "nudge"
)

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", configDirName), nil
}

// getClient returns an authenticated HTTP client. It loads a cached
// token when one exists, otherwise it runs the loopback authorization
// flow and caches the result.
func getClient(ctx context.Context, scopes []string) (*http.Client, error) {
	dir, err := configDir()
	if err != nil {
		return nil, domain.Dependencyf("resolving config directory: %v", err)
	}

	secrets, err := os.ReadFile(filepath.Join(dir, credentialsFile))
	if err != nil {
		return nil, domain.Dependencyf("calendar credentials missing: %v", err)
	}
	cfg, err := google.ConfigFromJSON(secrets, scopes...)
	if err != nil {
		return nil, domain.Dependencyf("parsing calendar credentials: %v", err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", localAuthPort)

	tokenPath := filepath.Join(dir, tokenFile)
	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		slog.Info("no cached calendar token, starting authorization flow", "path", tokenPath)
		tok, err = tokenFromWeb(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			slog.Warn("could not cache calendar token", "error", err)
		}
	}

	return cfg.Client(ctx, tok), nil
}

// tokenFromWeb runs the authorization-code flow via a loopback server.
// The user opens the printed URL and grants access; the redirect carries
// the code back here.
func tokenFromWeb(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	codeCh := make(chan string)
	errCh := make(chan error)

	listener, err := net.Listen("tcp", ":"+localAuthPort)
	if err != nil {
		return nil, domain.Dependencyf("starting auth listener on port %s: %v", localAuthPort, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "authorization code not found", http.StatusBadRequest)
				errCh <- domain.Dependencyf("authorization code missing from redirect")
				return
			}
			fmt.Fprint(w, "Authentication successful! You can close this window.")
			codeCh <- code
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- domain.Dependencyf("auth callback server: %v", err)
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open this URL in your browser to authorize calendar access:\n%s\n", authURL)

	select {
	case code := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := cfg.Exchange(exchangeCtx, code)
		if err != nil {
			return nil, domain.Dependencyf("exchanging authorization code: %v", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-time.After(5 * time.Minute):
		return nil, domain.Dependencyf("authorization timed out")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decoding token file %s: %w", path, err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
