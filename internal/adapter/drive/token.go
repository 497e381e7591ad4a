package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// LoadToken loads a stored OAuth2 token from file.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}

	return token, nil
}

// SaveToken writes an OAuth2 token to file, creating the directory if
// needed.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

const callbackAddr = ":8090"

// Authorize runs the interactive OAuth2 flow: it prints an auth URL,
// waits for the browser callback on localhost, exchanges the code, and
// stores the token at cfg.TokenPath.
func Authorize(ctx context.Context, cfg Config) error {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return err
	}

	oauthConfig.RedirectURL = "http://localhost" + callbackAddr + "/callback"

	authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser:\n%v\n\n", authURL)

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no code in callback")
			return
		}
		fmt.Fprint(w, "Authentication successful! You can close this window.")
		codeChan <- code
	})

	server := &http.Server{Addr: callbackAddr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var code string
	select {
	case code = <-codeChan:
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}

	_ = server.Shutdown(ctx)

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange auth code: %w", err)
	}

	return SaveToken(cfg.TokenPath, token)
}
