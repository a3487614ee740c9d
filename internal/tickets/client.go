// Package tickets implements the ticketing-system account search adapter
// over the REST user-search endpoint.
package tickets

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/syncdesk/accountmap/internal/transport"
	"github.com/syncdesk/accountmap/pkg/resolve"
)

// userSearchPath is the REST path for free-text account search.
const userSearchPath = "/rest/api/2/user/search"

// account is the wire structure of one account in a search response.
type account struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

// Client implements the resolve.AccountSearcher interface against a
// ticketing-system REST API.
type Client struct {
	endpoint  string
	transport *transport.Client
}

// NewClient creates a search client for the given endpoint, e.g.
// "https://issues.example.org". A trailing slash on the endpoint is tolerated.
// Credentials are carried by the authenticator.
func NewClient(endpoint string, auth transport.Authenticator) *Client {
	return &Client{
		endpoint:  strings.TrimSuffix(endpoint, "/"),
		transport: transport.New(auth),
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.transport.WithHTTPClient(httpClient)
	return c
}

// Search returns up to maxResults accounts matching the given text.
func (c *Client) Search(ctx context.Context, text string, maxResults int) ([]resolve.Candidate, error) {
	query := url.Values{}
	query.Set("username", text)
	query.Set("maxResults", strconv.Itoa(maxResults))
	searchURL := c.endpoint + userSearchPath + "?" + query.Encode()

	resp, err := c.transport.Get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var accounts []account
	if err := transport.DecodeResponse(resp, &accounts); err != nil {
		return nil, err
	}

	candidates := make([]resolve.Candidate, 0, len(accounts))
	for _, a := range accounts {
		candidates = append(candidates, resolve.Candidate{
			AccountID:   a.Name,
			DisplayName: a.DisplayName,
			Email:       a.EmailAddress,
		})
	}
	return candidates, nil
}
