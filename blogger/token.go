/* token.go
 * Contains the one time OAuth setup flow used to obtain a Blogger refresh
 * token. The caller opens the printed authorization URL, pastes the code back,
 * and the code is exchanged for a refresh token to store alongside the other
 * credentials
 * Authors: Zachary Bower
 */

package blogger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	oauthAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	oauthScope    = "https://www.googleapis.com/auth/blogger"
	oauthRedirect = "urn:ietf:wg:oauth:2.0:oob"
)

// TokenSetup runs the interactive refresh token exchange
type TokenSetup struct {
	ClientID     string
	ClientSecret string
	TokenURL     string

	In  io.Reader
	Out io.Writer
}

// AuthURL returns the authorization URL the user must open
func (t *TokenSetup) AuthURL() string {
	params := url.Values{}
	params.Set("client_id", t.ClientID)
	params.Set("redirect_uri", oauthRedirect)
	params.Set("response_type", "code")
	params.Set("scope", oauthScope)
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")
	return oauthAuthURL + "?" + params.Encode()
}

// Run prints the authorization URL, reads the pasted code and prints the
// resulting refresh token.
// Preconditions: ClientID and ClientSecret must be set, In and Out wired to
// the terminal
// Postconditions: returns the refresh token, or an error if the exchange failed
func (t *TokenSetup) Run(ctx context.Context) (string, error) {
	if t.ClientID == "" || t.ClientSecret == "" {
		return "", fmt.Errorf("BLOGGER_CLIENT_ID and BLOGGER_CLIENT_SECRET must be set")
	}

	fmt.Fprintln(t.Out, "Open this URL in your browser and authorize the app:")
	fmt.Fprintln(t.Out, t.AuthURL())
	fmt.Fprint(t.Out, "\nPaste the authorization code here: ")

	scanner := bufio.NewScanner(t.In)
	if !scanner.Scan() {
		return "", fmt.Errorf("no authorization code entered")
	}
	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return "", fmt.Errorf("no authorization code entered")
	}

	refreshToken, err := t.exchange(ctx, code)
	if err != nil {
		return "", err
	}

	fmt.Fprintln(t.Out, "\nAdd this to your environment as BLOGGER_REFRESH_TOKEN:")
	fmt.Fprintln(t.Out, refreshToken)
	return refreshToken, nil
}

// exchange trades the authorization code for a refresh token
func (t *TokenSetup) exchange(ctx context.Context, code string) (string, error) {
	tokenURL := t.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}

	body, err := json.Marshal(map[string]string{
		"code":          code,
		"client_id":     t.ClientID,
		"client_secret": t.ClientSecret,
		"redirect_uri":  oauthRedirect,
		"grant_type":    "authorization_code",
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange returned status %d: %s", resp.StatusCode, string(data))
	}

	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.RefreshToken == "" {
		return "", fmt.Errorf("token response contained no refresh token")
	}
	return payload.RefreshToken, nil
}
