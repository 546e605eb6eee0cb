// Package apiclient is the bearer-token HTTP client for the ticketing
// transaction API. Every call reads the credential from the session store
// at call time and maps failures onto the shared error taxonomy.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mgrizqy/ticketing-cli/model"
	"github.com/mgrizqy/ticketing-cli/session"
)

type Client struct {
	BaseURL string
	Session session.Store
	HTTP    *http.Client
}

func New(baseURL string, sess session.Store) *Client {
	return &Client{
		BaseURL: baseURL,
		Session: sess,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Login exchanges credentials for a bearer token and stores it in the
// session. The only call that does not require an existing session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return &ValidationError{Msg: "email and password are required"}
	}

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return &AuthError{Msg: "invalid email or password"}
	}
	if resp.StatusCode != http.StatusOK {
		return &TransportError{Op: "login", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out struct {
		Result struct {
			Token string `json:"token"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return &TransportError{Op: "login", Err: err}
	}

	c.Session.Login(out.Result.Token)
	return nil
}

// GetTransaction fetches a transaction by id. Missing session fails before
// any network traffic.
func (c *Client) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if id == "" {
		return nil, &ValidationError{Msg: "transaction id is required"}
	}
	token := c.Session.Token()
	if token == "" {
		return nil, &AuthError{Msg: "authentication session not found"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/transaction/"+id, nil)
	if err != nil {
		return nil, &TransportError{Op: "fetch transaction", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch transaction", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, &AuthError{Msg: "session rejected, please log in again"}
	case http.StatusNotFound:
		return nil, &NotFoundError{ID: id}
	default:
		return nil, &TransportError{Op: "fetch transaction", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out struct {
		Data model.Transaction `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &TransportError{Op: "fetch transaction", Err: err}
	}
	return &out.Data, nil
}

// UploadProof submits the payment proof reference for a transaction. On
// success the remote status becomes WAITING_CONFIRMATION.
func (c *Client) UploadProof(ctx context.Context, id, proofRef string) error {
	if proofRef == "" {
		return &ValidationError{Msg: "no file selected"}
	}
	body := map[string]string{"paymentProofFile": proofRef}
	return c.patch(ctx, "submit proof", id, "/transaction/upload/"+id, body)
}

// Approve marks a transaction PAID through the simulator endpoint.
func (c *Client) Approve(ctx context.Context, id string) error {
	return c.patch(ctx, "approve transaction", id, "/transactions/approve/"+id, nil)
}

// Reject marks a transaction REJECTED through the simulator endpoint.
func (c *Client) Reject(ctx context.Context, id string) error {
	return c.patch(ctx, "reject transaction", id, "/transactions/reject/"+id, nil)
}

func (c *Client) patch(ctx context.Context, op, id, path string, body any) error {
	token := c.Session.Token()
	if token == "" {
		return &AuthError{Msg: "authentication session not found"}
	}

	payload := []byte("{}")
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return &TransportError{Op: op, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return &AuthError{Msg: "session rejected, please log in again"}
	case http.StatusNotFound:
		return &NotFoundError{ID: id}
	default:
		return &TransportError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
}
