// Package apiclient is a thin client for the Lumina backend services, used
// for test-data setup, teardown and health checks. Every call normalizes its
// outcome into an ApiResponse; callers decide whether a failure is fatal.
// The client itself never retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lumina-learn/lumina-e2e/model"
)

// ApiResponse is the uniform envelope returned by every client call.
// Success implies a 2xx Status and an empty Error; any failure carries a
// non-empty Error. There are no partial-success states.
type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status"`
}

// CreatedUser is the payload of a createUser mutation. Token is an empty
// placeholder: the backend separates signup from login, so authentication is
// always a second call.
type CreatedUser struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// AuthSession is the payload of a successful login.
type AuthSession struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// FeedbackInput is a feedback submission on a question.
type FeedbackInput struct {
	QuestionID string `json:"questionId"`
	Vote       string `json:"vote"` // "up" or "down"
	Comment    string `json:"comment,omitempty"`
}

// FeedbackReceipt acknowledges a stored feedback vote.
type FeedbackReceipt struct {
	ID    string `json:"id"`
	Votes int    `json:"votes"`
}

// HealthStatus is one service's answer to a health probe.
type HealthStatus struct {
	Service string `json:"service"`
	Healthy bool   `json:"healthy"`
}

// Client issues HTTP/GraphQL calls against the service gateway.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.SugaredLogger
}

// New returns a Client for the given gateway base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     zap.S(),
	}
}

const (
	createUserMutation = `mutation CreateUser($input: CreateUserInput!) {
  createUser(input: $input) { id }
}`

	loginMutation = `mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) { token user { id } }
}`

	deleteUserMutation = `mutation DeleteUser($id: ID!) {
  deleteUser(id: $id)
}`

	userProgressQuery = `query UserProgress($userId: ID!) {
  userProgress(userId: $userId) {
    userId courseId questionsAnswered correctAnswers completionRate
  }
}`

	submitFeedbackMutation = `mutation SubmitFeedback($input: FeedbackInput!) {
  submitFeedback(input: $input) { id votes }
}`
)

// CreateUser registers the user with the users service and fills in its ID.
// The returned token is always empty; call AuthenticateUser afterwards.
func (c *Client) CreateUser(ctx context.Context, u *model.TestUser) ApiResponse[CreatedUser] {
	type payload struct {
		CreateUser struct {
			ID string `json:"id"`
		} `json:"createUser"`
	}
	res := execute[payload](ctx, c, "users", createUserMutation, map[string]any{
		"input": map[string]any{
			"email":     u.Email,
			"password":  u.Password,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
		},
	}, "")
	out := repack[payload, CreatedUser](res)
	if res.Success {
		out.Data = CreatedUser{ID: res.Data.CreateUser.ID}
		u.ID = out.Data.ID
	}
	return out
}

// AuthenticateUser logs the user in against the auth service and fills in
// its bearer token.
func (c *Client) AuthenticateUser(ctx context.Context, u *model.TestUser) ApiResponse[AuthSession] {
	type payload struct {
		Login struct {
			Token string `json:"token"`
			User  struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"login"`
	}
	res := execute[payload](ctx, c, "auth", loginMutation, map[string]any{
		"email":    u.Email,
		"password": u.Password,
	}, "")
	out := repack[payload, AuthSession](res)
	if res.Success {
		out.Data = AuthSession{UserID: res.Data.Login.User.ID, Token: res.Data.Login.Token}
		u.Token = out.Data.Token
		if u.ID == "" {
			u.ID = out.Data.UserID
		}
	}
	return out
}

// DeleteUser removes a backend user. Requires the user's own bearer token.
func (c *Client) DeleteUser(ctx context.Context, id, token string) ApiResponse[bool] {
	type payload struct {
		DeleteUser bool `json:"deleteUser"`
	}
	res := execute[payload](ctx, c, "users", deleteUserMutation, map[string]any{"id": id}, token)
	out := repack[payload, bool](res)
	if res.Success {
		out.Data = res.Data.DeleteUser
	}
	return out
}

// GetUserProgress fetches the learning service's progress record.
func (c *Client) GetUserProgress(ctx context.Context, userID, token string) ApiResponse[model.LearningProgress] {
	type payload struct {
		UserProgress model.LearningProgress `json:"userProgress"`
	}
	res := execute[payload](ctx, c, "learning", userProgressQuery, map[string]any{"userId": userID}, token)
	out := repack[payload, model.LearningProgress](res)
	if res.Success {
		out.Data = res.Data.UserProgress
	}
	return out
}

// SubmitFeedback records a vote on a question.
func (c *Client) SubmitFeedback(ctx context.Context, token string, in FeedbackInput) ApiResponse[FeedbackReceipt] {
	type payload struct {
		SubmitFeedback FeedbackReceipt `json:"submitFeedback"`
	}
	res := execute[payload](ctx, c, "feedback", submitFeedbackMutation, map[string]any{
		"input": in,
	}, token)
	out := repack[payload, FeedbackReceipt](res)
	if res.Success {
		out.Data = res.Data.SubmitFeedback
	}
	return out
}

// HealthCheck probes one service's health endpoint.
func (c *Client) HealthCheck(ctx context.Context, service string) ApiResponse[HealthStatus] {
	url := fmt.Sprintf("%s/%s/health", c.baseURL, service)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failure[HealthStatus](0, err.Error())
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return failure[HealthStatus](0, err.Error())
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure[HealthStatus](resp.StatusCode, fmt.Sprintf("%s health returned status %d", service, resp.StatusCode))
	}
	return success(resp.StatusCode, HealthStatus{Service: service, Healthy: true})
}

// CleanupUser deletes the user best-effort. It is a deliberate no-op when
// the user never completed the create+authenticate round trip, and it never
// escalates a failure: masking the primary test outcome is worse than a
// leaked test user.
func (c *Client) CleanupUser(ctx context.Context, u *model.TestUser) {
	if u == nil || u.ID == "" || u.Token == "" {
		c.log.Debugw("skipping cleanup for user without id/token", "email", emailOf(u))
		return
	}
	res := c.DeleteUser(ctx, u.ID, u.Token)
	if !res.Success {
		c.log.Warnw("user cleanup failed", "id", u.ID, "status", res.Status, "error", res.Error)
	}
}

func emailOf(u *model.TestUser) string {
	if u == nil {
		return ""
	}
	return u.Email
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// execute runs one GraphQL operation and folds every outcome, including
// transport errors and GraphQL-level errors, into the envelope.
func execute[T any](ctx context.Context, c *Client, service, query string, vars map[string]any, token string) ApiResponse[T] {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return failure[T](0, err.Error())
	}
	url := fmt.Sprintf("%s/%s/graphql", c.baseURL, service)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failure[T](0, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return failure[T](0, err.Error())
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure[T](resp.StatusCode, err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure[T](resp.StatusCode, fmt.Sprintf("%s returned status %d", service, resp.StatusCode))
	}

	var env graphQLEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return failure[T](resp.StatusCode, fmt.Sprintf("invalid response from %s: %v", service, err))
	}
	if len(env.Errors) > 0 {
		return failure[T](resp.StatusCode, env.Errors[0].Message)
	}

	var data T
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return failure[T](resp.StatusCode, fmt.Sprintf("cannot decode %s data: %v", service, err))
		}
	}
	return success(resp.StatusCode, data)
}

func success[T any](status int, data T) ApiResponse[T] {
	return ApiResponse[T]{Success: true, Data: data, Status: status}
}

func failure[T any](status int, msg string) ApiResponse[T] {
	if msg == "" {
		msg = "request failed"
	}
	return ApiResponse[T]{Success: false, Error: msg, Status: status}
}

// repack carries Success/Error/Status across payload types; callers fill in
// Data on success.
func repack[A, B any](in ApiResponse[A]) ApiResponse[B] {
	return ApiResponse[B]{Success: in.Success, Error: in.Error, Status: in.Status}
}
