// Package github lists the public repositories of GitHub users and
// organizations through the unauthenticated REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/CameronBrooks11/projects-registry/internal/transport"
	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
	"github.com/CameronBrooks11/projects-registry/pkg/logging"
)

// ServiceName labels errors raised by this client.
const ServiceName = "github"

// AccountType selects the listing endpoint.
type AccountType string

// Account types.
const (
	User AccountType = "user"
	Org  AccountType = "org"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == User || t == Org
}

// Repository is the subset of the GitHub repository object the registry
// reads.
type Repository struct {
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	HTMLURL     string  `json:"html_url"`
	Description *string `json:"description"`
	Homepage    *string `json:"homepage"`
	Fork        bool    `json:"fork"`
	Archived    bool    `json:"archived"`
	Private     bool    `json:"private"`
}

// Page is one listing page.
type Page struct {
	Number  int
	Repos   []Repository
	HasNext bool
}

// Client fetches listing pages.
type Client struct {
	transport *transport.Client
	baseURL   string
	pageSize  int
	delay     time.Duration
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithPageSize sets per_page, clamped to 1..100.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = max(1, min(n, constants.MaxPageSize))
	}
}

// WithPageDelay sets the courtesy pause between pages.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a client for the public GitHub API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  constants.GitHubAPIURL,
		pageSize: constants.DefaultPageSize,
		delay:    constants.PageDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.New()
	}
	c.logger = logging.OrDefault(c.logger)
	return c
}

// ListURL returns the URL of one listing page, most recently updated first.
func (c *Client) ListURL(kind AccountType, account string, page int) string {
	segment := "users"
	if kind == Org {
		segment = "orgs"
	}
	q := url.Values{}
	q.Set("type", "public")
	q.Set("sort", "updated")
	q.Set("per_page", strconv.Itoa(c.pageSize))
	q.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s/%s/%s/repos?%s", c.baseURL, segment, url.PathEscape(account), q.Encode())
}

// FetchPage fetches a single listing page. A non-200 answer is returned as
// an *errors.APIError; transport failures are wrapped the same way without
// a status code.
func (c *Client) FetchPage(ctx context.Context, kind AccountType, account string, page int) (Page, error) {
	if !kind.Valid() {
		return Page{}, errors.NewValidationError("type", string(kind), "must be user or org")
	}
	endpoint := c.ListURL(kind, account, page)

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		if ctx.Err() != nil {
			return Page{Number: page}, ctx.Err()
		}
		return Page{Number: page}, errors.WrapAPI(ServiceName, 0, err)
	}

	var repos []Repository
	if err := transport.DecodeResponse(resp, ServiceName, &repos); err != nil {
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return Page{Number: page}, errors.NewNotFoundError("account", string(kind)+":"+account, err)
		}
		return Page{Number: page}, err
	}
	return Page{Number: page, Repos: repos, HasNext: transport.HasNext(resp.Header)}, nil
}

// Pages returns a single-use pager over the listing of account.
func (c *Client) Pages(kind AccountType, account string) *Pager {
	return &Pager{client: c, kind: kind, account: account}
}
