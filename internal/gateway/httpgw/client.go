// Package httpgw implements gateway.Backend against the feedboard HTTP API.
package httpgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/feedboard/internal/api"
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/core/logging"
	"github.com/colonyops/feedboard/internal/gateway"
	"github.com/rs/zerolog"
)

var _ gateway.Backend = (*Client)(nil)

// Client is an HTTP client for the feedboard API. The bearer token is read
// from the session on every request.
type Client struct {
	baseURL    string
	session    *identity.Session
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a client for baseURL. A zero timeout disables the client
// timeout; callers may still bound requests with a context deadline.
func New(baseURL string, timeout time.Duration, session *identity.Session) *Client {
	if session == nil {
		session = identity.NewSession("")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: timeout},
		log:        logging.WithContextFields(logging.Component("httpgw")),
	}
}

// Create adds a comment to a feedback item.
func (c *Client) Create(ctx context.Context, feedbackID, content string) (comment.Comment, error) {
	var resp api.CommentResponse
	path := "/feedback/" + url.PathEscape(feedbackID) + "/comments"
	if err := c.do(ctx, "create comment", http.MethodPost, path, api.CommentRequest{Content: content}, &resp); err != nil {
		return comment.Comment{}, err
	}
	return resp.Comment.Comment, nil
}

// Update replaces a comment's content.
func (c *Client) Update(ctx context.Context, commentID, content string) (comment.Comment, error) {
	var resp api.CommentResponse
	path := "/comments/" + url.PathEscape(commentID)
	if err := c.do(ctx, "update comment", http.MethodPut, path, api.CommentRequest{Content: content}, &resp); err != nil {
		return comment.Comment{}, err
	}
	return resp.Comment.Comment, nil
}

// Delete removes a comment.
func (c *Client) Delete(ctx context.Context, commentID string) error {
	return c.do(ctx, "delete comment", http.MethodDelete, "/comments/"+url.PathEscape(commentID), nil, nil)
}

// Load fetches a feedback item with its comments.
func (c *Client) Load(ctx context.Context, feedbackID string) (gateway.Thread, error) {
	var resp api.FeedbackResponse
	if err := c.do(ctx, "load feedback", http.MethodGet, "/feedback/"+url.PathEscape(feedbackID), nil, &resp); err != nil {
		return gateway.Thread{}, err
	}
	return gateway.Thread{
		Feedback: resp.Feedback,
		Comments: resp.Plain(),
		Names:    resp.Names(),
	}, nil
}

// ListFeedback fetches one page of feedback.
func (c *Client) ListFeedback(ctx context.Context, f feedback.Filter) (feedback.Page, error) {
	f = f.Normalize()

	params := url.Values{}
	params.Set("page", strconv.Itoa(f.Page))
	if f.PerPage != feedback.DefaultPerPage {
		params.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.Category != "" {
		params.Set("category", string(f.Category))
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}

	var page feedback.Page
	if err := c.do(ctx, "list feedback", http.MethodGet, "/feedback?"+params.Encode(), nil, &page); err != nil {
		return feedback.Page{}, err
	}
	return page, nil
}

// CreateFeedback submits a new feedback item.
func (c *Client) CreateFeedback(ctx context.Context, d feedback.Draft) (feedback.Feedback, error) {
	body := api.FeedbackRequest{Title: d.Title, Description: d.Description, Category: d.Category}

	var resp api.CreatedFeedbackResponse
	if err := c.do(ctx, "create feedback", http.MethodPost, "/feedback", body, &resp); err != nil {
		return feedback.Feedback{}, err
	}
	return resp.Feedback, nil
}

// CurrentUser returns the account the session token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (identity.User, error) {
	var resp api.UserResponse
	if err := c.do(ctx, "current user", http.MethodGet, "/user", nil, &resp); err != nil {
		return identity.User{}, err
	}
	return resp.User, nil
}

// Login signs in and stores the issued token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (identity.Credentials, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, "/login", api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return identity.Credentials{}, err
	}
	return c.remember(resp)
}

// Register creates an account and stores the issued token in the session.
func (c *Client) Register(ctx context.Context, r identity.Registration) (identity.Credentials, error) {
	var resp api.AuthResponse
	if err := c.do(ctx, "register", http.MethodPost, "/register", r, &resp); err != nil {
		return identity.Credentials{}, err
	}
	return c.remember(resp)
}

// Logout revokes the token on the server and clears the session. A token the
// server already rejects still clears the session.
func (c *Client) Logout(ctx context.Context) error {
	if c.session.Token() != "" {
		err := c.do(ctx, "logout", http.MethodPost, "/logout", nil, nil)
		if err != nil && !gateway.IsUnauthenticated(err) {
			return err
		}
	}
	return c.session.Clear()
}

func (c *Client) remember(resp api.AuthResponse) (identity.Credentials, error) {
	creds := resp.Credentials()
	if err := c.session.Set(creds); err != nil {
		return identity.Credentials{}, err
	}
	return creds, nil
}

// do sends a JSON request and decodes the JSON response into result. Every
// failure is returned as a *comment.GatewayError.
func (c *Client) do(ctx context.Context, op, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshaling request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Ctx(ctx).Err(err).Str("op", op).Msg("request failed")
		return &comment.GatewayError{Op: op, Kind: comment.ErrNetwork}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn().Ctx(ctx).Err(err).Str("op", op).Msg("reading response failed")
		return &comment.GatewayError{Op: op, Status: resp.StatusCode, Kind: comment.ErrNetwork}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		gerr := statusError(op, resp.StatusCode, respBody)
		c.log.Warn().Ctx(ctx).Str("op", op).Int("status", resp.StatusCode).Str("message", gerr.Message).Msg("request rejected")
		return gerr
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		c.log.Warn().Ctx(ctx).Err(err).Str("op", op).Msg("decoding response failed")
		return &comment.GatewayError{Op: op, Status: resp.StatusCode, Kind: comment.ErrServer}
	}
	return nil
}

// statusError maps an error response to a gateway error. 404 becomes
// ErrNotFound and 422 ErrValidation; every other status, authorization
// failures included, is a server error carrying the server's message.
func statusError(op string, status int, body []byte) *comment.GatewayError {
	gerr := &comment.GatewayError{Op: op, Status: status, Kind: gateway.KindForStatus(status)}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		gerr.Message = errResp.First()
	}
	return gerr
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.do(ctx, "ping", http.MethodGet, "/health", nil, nil); errors.Is(err, comment.ErrNetwork) {
		return err
	}
	return nil
}
