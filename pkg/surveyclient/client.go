// Package surveyclient talks to the EatWise API on behalf of the survey flow.
// Client satisfies the catalog and submitter dependencies of survey.Controller.
package surveyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"eatwise/internal/models/request_models"
	"eatwise/internal/models/response_models"
	"eatwise/internal/survey"
	"eatwise/pkg/logger"
)

// ErrUnauthorized is returned for HTTP 401. It matches survey.ErrUnauthenticated
// so the flow controller treats it as an expired session.
var ErrUnauthorized = fmt.Errorf("surveyclient: unauthorized: %w", survey.ErrUnauthenticated)

// APIError is any other non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.TraceID != "" {
		return fmt.Sprintf("api error %d: %s (trace %s)", e.StatusCode, msg, e.TraceID)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Questions(ctx context.Context) ([]survey.Question, error) {
	var out []survey.Question
	if err := c.do(ctx, http.MethodGet, "/question/question-list", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Behaviors(ctx context.Context) ([]survey.Behavior, error) {
	var out []survey.Behavior
	if err := c.do(ctx, http.MethodGet, "/behavior/behavior-list", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitBehaviors(ctx context.Context, token string, items []survey.BehaviorItem) error {
	body := request_models.SubmitBehaviorsRequest{BehaviorList: items}
	return c.do(ctx, http.MethodPost, "/behavior/submit-behavior", token, body, nil)
}

func (c *Client) SubmitAnswers(ctx context.Context, token string, items []survey.AnswerItem) error {
	body := request_models.SubmitAnswersRequest{AnswerList: items}
	return c.do(ctx, http.MethodPost, "/question/submit-answers", token, body, nil)
}

// Login returns the bearer token for the account.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out response_models.AccountLoginResponse
	body := request_models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/accounts/login", "", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login response carried no token")
	}
	return out.Token, nil
}

func (c *Client) CheckSubmission(ctx context.Context, token string) (bool, error) {
	var out response_models.SubmissionStatus
	if err := c.do(ctx, http.MethodGet, "/question/check-submission", token, nil, &out); err != nil {
		return false, err
	}
	return out.Submitted, nil
}

func (c *Client) UserBehaviors(ctx context.Context, token string) ([]response_models.UserBehaviorResponse, error) {
	var out []response_models.UserBehaviorResponse
	if err := c.do(ctx, http.MethodGet, "/behavior/check-behavior-submission", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.log.Debug("api call", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message, apiErr.TraceID = env.Message, env.TraceID
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s: %w", path, decodeErr)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}
