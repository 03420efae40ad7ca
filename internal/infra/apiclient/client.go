package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"aidex/internal/domain"
	"aidex/internal/infra/telemetry"
)

// TokenSource supplies the bearer token of the signed-in user. It returns an
// empty token when nobody is signed in.
type TokenSource interface {
	Token() (string, error)
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	PageSize   int
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     *zap.Logger
}

// Client talks to the upstream catalog REST API.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	pageSize int
	tokens   TokenSource
	logger   *zap.Logger
}

func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = domain.DefaultAPIBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https: %q", raw)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = time.Duration(domain.DefaultAPITimeoutSeconds) * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  base,
		http:     httpClient,
		pageSize: opts.PageSize,
		tokens:   opts.Tokens,
		logger:   logger.Named("apiclient"),
	}, nil
}

// FetchToolList fetches one tab's list in the requested order.
func (c *Client) FetchToolList(ctx context.Context, tab string, sortType domain.SortType) ([]domain.Tool, error) {
	query, err := NewListQuery(tab, sortType, c.pageSize)
	if err != nil {
		return nil, err
	}
	return c.FetchList(ctx, query)
}

// FetchList fetches a tool list for an already translated query.
func (c *Client) FetchList(ctx context.Context, query ListQuery) ([]domain.Tool, error) {
	const op = "fetch tool list"
	resp, err := c.do(ctx, op, http.MethodGet, "/api/tools", query.Values(), false)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)
	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}
	return decodeToolList(op, resp.Body)
}

// FetchTool fetches a single tool by ID.
func (c *Client) FetchTool(ctx context.Context, id string) (domain.Tool, error) {
	const op = "fetch tool"
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Tool{}, domain.E(domain.CodeInvalidArgument, op, "tool id is required", domain.ErrInvalidArgument)
	}
	resp, err := c.do(ctx, op, http.MethodGet, "/api/tools/"+url.PathEscape(id), nil, false)
	if err != nil {
		return domain.Tool{}, err
	}
	defer closeBody(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return domain.Tool{}, domain.E(domain.CodeNotFound, op, "tool "+id+" not found", domain.ErrToolNotFound)
	}
	if err := checkStatus(op, resp); err != nil {
		return domain.Tool{}, err
	}
	return decodeTool(op, resp.Body)
}

// IsAuthenticated reports whether a token is available.
func (c *Client) IsAuthenticated() bool {
	token, err := c.token()
	return err == nil && token != ""
}

// ListBookmarks returns the signed-in user's bookmarks.
func (c *Client) ListBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	const op = "list bookmarks"
	resp, err := c.do(ctx, op, http.MethodGet, "/api/bookmarks", nil, true)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)
	if err := checkStatus(op, resp); err != nil {
		return nil, err
	}
	return decodeBookmarks(op, resp.Body)
}

// AddBookmark bookmarks a tool for the signed-in user.
func (c *Client) AddBookmark(ctx context.Context, toolID string) error {
	return c.bookmarkCall(ctx, "add bookmark", http.MethodPost, toolID)
}

// RemoveBookmark removes a tool from the signed-in user's bookmarks.
func (c *Client) RemoveBookmark(ctx context.Context, toolID string) error {
	return c.bookmarkCall(ctx, "remove bookmark", http.MethodDelete, toolID)
}

func (c *Client) bookmarkCall(ctx context.Context, op, method, toolID string) error {
	toolID = strings.TrimSpace(toolID)
	if toolID == "" {
		return domain.E(domain.CodeInvalidArgument, op, "tool id is required", domain.ErrInvalidArgument)
	}
	resp, err := c.do(ctx, op, method, "/api/bookmarks/"+url.PathEscape(toolID), nil, true)
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)
	return checkStatus(op, resp)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, auth bool) (*http.Response, error) {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		return nil, domain.E(domain.CodeInternal, op, "", err)
	}
	req.Header.Set("Accept", "application/json")
	requestID := telemetry.InjectRequest(ctx, req.Header)

	if auth {
		token, err := c.token()
		if err != nil {
			return nil, domain.E(domain.CodeInternal, op, "read session token", err)
		}
		if token == "" {
			return nil, domain.E(domain.CodeUnauthenticated, op, "", domain.ErrUnauthenticated)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	fields := []zap.Field{
		telemetry.RequestIDField(requestID),
		zap.String("method", method),
		zap.String("path", endpoint.Path),
		telemetry.DurationField(time.Since(start)),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, domain.E(domain.CodeCanceled, op, "", ctxErr)
		}
		c.logger.Warn("upstream request failed", append(fields, zap.Error(err))...)
		return nil, domain.NetworkError(op, 0, err)
	}
	c.logger.Debug("upstream request", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}

func (c *Client) token() (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Token()
}

func checkStatus(op string, resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.E(domain.CodeUnauthenticated, op, fmt.Sprintf("upstream returned status %d", resp.StatusCode), domain.ErrUnauthenticated)
	default:
		return domain.NetworkError(op, resp.StatusCode, nil)
	}
}

func closeBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
