// Package client talks to the FinTrack HTTP API on behalf of the CLI.
package client

import (
	"FinTrack/internal/api/auth"
	"FinTrack/pkg/handlerUtil"
	websocketPkg "FinTrack/pkg/websocket"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL  string
	token    string
	agents   *fiber.Client
	listener *websocketPkg.Listener
	timeout  time.Duration
	log      *logrus.Logger
}

// New expects baseURL to point at the API root, e.g. http://localhost:3000/api/v1.
func New(baseURL string, token string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		agents: &fiber.Client{
			UserAgent:   "fintrack-cli",
			JSONEncoder: jsoniter.Marshal,
			JSONDecoder: jsoniter.Unmarshal,
		},
		listener: websocketPkg.NewListener(log),
		timeout:  defaultTimeout,
		log:      log,
	}
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Register(ctx context.Context, req auth.CreateUserRequest) (auth.UserResponse, error) {
	var res auth.UserResponse
	err := c.do(ctx, fiber.MethodPost, "/users", nil, req, &res, false)
	return res, err
}

// Login stores the returned access token on the client.
func (c *Client) Login(ctx context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	var res auth.LoginUserResponse
	if err := c.do(ctx, fiber.MethodPost, "/auth/login", nil, req, &res, false); err != nil {
		return auth.LoginUserResponse{}, err
	}
	c.token = res.AccessToken
	return res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, fiber.MethodPost, "/auth/logout", nil, nil, nil, true); err != nil {
		return err
	}
	c.token = ""
	return nil
}

func (c *Client) Me(ctx context.Context) (auth.UserResponse, error) {
	var res auth.UserResponse
	err := c.do(ctx, fiber.MethodGet, "/auth/me", nil, nil, &res, true)
	return res, err
}

// Watch streams mutation events for a workplace until ctx is done or the
// connection drops.
func (c *Client) Watch(ctx context.Context, workplaceID string, fn func(websocketPkg.Event)) error {
	if c.token == "" {
		return ErrNotLoggedIn
	}

	u, err := url.Parse(c.baseURL + "/transactions/ws")
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.RawQuery = url.Values{"workplace_id": {workplaceID}}.Encode()

	header := http.Header{}
	header.Set(fiber.HeaderAuthorization, "Bearer "+c.token)

	return c.listener.Listen(ctx, u.String(), header, fn)
}

// do sends one request. body, when set, is encoded as JSON; out, when set, receives
// the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	_, raw, err := c.send(ctx, method, path, query, body, authed)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := jsoniter.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}, authed bool) (*responseMeta, []byte, error) {
	if authed && c.token == "" {
		return nil, nil, ErrNotLoggedIn
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var agent *fiber.Agent
	switch method {
	case fiber.MethodPost:
		agent = c.agents.Post(target)
	case fiber.MethodDelete:
		agent = c.agents.Delete(target)
	default:
		agent = c.agents.Get(target)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	agent.Timeout(timeout)

	if authed {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	if body != nil {
		agent.JSON(body)
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	agent.SetResponse(resp)

	status, raw, errs := agent.Bytes()
	if len(errs) > 0 {
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  errs[0].Error(),
		}).Debug("Request failed")
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}

	// The response is released on return, so copy what callers keep.
	raw = append([]byte(nil), raw...)
	header := &responseMeta{
		status:      status,
		disposition: string(resp.Header.Peek(fiber.HeaderContentDisposition)),
		contentType: string(resp.Header.ContentType()),
	}

	if status < 200 || status >= 300 {
		return header, nil, decodeAPIError(status, raw)
	}

	return header, raw, nil
}

type responseMeta struct {
	status      int
	disposition string
	contentType string
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	var body handlerUtil.ErrorResponse
	if err := jsoniter.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
	}

	return apiErr
}
