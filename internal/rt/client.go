package rt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rtboard/backend/internal/types"
)

// loginOKMarker signals a successful login. The upstream answers HTTP 200
// even for bad credentials and reports the real outcome in the body, so
// the body substring is the check, not the status code.
const loginOKMarker = "200 Ok"

// Searcher is the upstream search surface the fetcher depends on.
type Searcher interface {
	Search(ctx context.Context, query, fields string) (types.Table, error)
}

// Client talks to a Request Tracker instance. Authentication is a session
// cookie obtained at login; the search endpoint additionally wants the
// credentials repeated in the query string (upstream convention).
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	logger   zerolog.Logger
}

// NewClient creates a client for the RT instance at baseURL. The base URL
// is expected to end with a slash, matching the upstream's path scheme.
func NewClient(baseURL, username string, logger zerolog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		baseURL:  baseURL,
		username: username,
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("component", "rt").Logger(),
	}, nil
}

// BaseURL returns the configured upstream root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Username returns the acting RT user. It keys the fetch cache so entries
// never leak across identities.
func (c *Client) Username() string {
	return c.username
}

// Login posts the credentials as a form to the upstream root. The session
// cookie lands in the client's jar; the password is retained because the
// search endpoint wants it again per request.
func (c *Client) Login(ctx context.Context, password string) error {
	form := url.Values{
		"user": {c.username},
		"pass": {password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read login response: %w", err)
	}
	if !strings.Contains(string(body), loginOKMarker) {
		return fmt.Errorf("invalid credentials for user %s", c.username)
	}

	c.password = password
	c.logger.Info().Str("user", c.username).Msg("logged in to upstream")
	return nil
}

// Logout ends the upstream session and forgets the password.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"logout", nil)
	if err != nil {
		return fmt.Errorf("failed to build logout request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	resp.Body.Close()

	c.password = ""
	c.logger.Info().Str("user", c.username).Msg("logged out of upstream")
	return nil
}

// Search runs a ticket query and parses the plain-text response into a
// table. Zero matching tickets is not an error: the upstream returns a
// body with no record blocks and the parser yields an empty table.
func (c *Client) Search(ctx context.Context, query, fields string) (types.Table, error) {
	u := fmt.Sprintf("%ssearch/ticket?user=%s&pass=%s&fields=%s&query=%s",
		c.baseURL,
		url.QueryEscape(c.username),
		url.QueryEscape(c.password),
		url.QueryEscape(fields),
		url.QueryEscape(query),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	table := ParseRecords(string(body))
	c.logger.Debug().
		Str("query", query).
		Int("records", len(table)).
		Msg("search completed")
	return table, nil
}
