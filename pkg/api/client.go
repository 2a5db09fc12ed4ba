package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrInvalidJSON = errors.New("the server returned invalid JSON")

// RequestError is a non-success HTTP response. Message is taken from the
// API error body when one was parsed, Payload keeps the raw body for
// callers that want more than the message.
type RequestError struct {
	Status  int
	Payload json.RawMessage
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// TransportError means no usable response came back at all: connection
// refused, DNS failure, timeout, cancelled context.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client wraps an HTTP client with the JSON conventions of the shop API:
// JSON in, JSON out, and a {data: ...} envelope that gets unwrapped when
// present.
type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

// FetchJSON issues a request and returns the decoded body, unwrapped from
// the data envelope. A non-success status returns a *RequestError; a
// response whose content type is not JSON decodes to nil.
func (c *Client) FetchJSON(ctx context.Context, method, url string, body any) (json.RawMessage, error) {
	var raw []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		raw = encoded
	}

	payload, status, err := c.roundTrip(ctx, method, url, raw)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, newRequestError(status, payload)
	}
	return unwrapData(payload), nil
}

// roundTrip performs one attempt. Failures to reach the server at all come
// back as *TransportError so callers can tell them apart from responses.
func (c *Client) roundTrip(ctx context.Context, method, url string, body []byte) (json.RawMessage, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, &TransportError{URL: url, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	var payload json.RawMessage
	if isJSONResponse(resp) {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, 0, &TransportError{URL: url, Err: err}
		}
		data = bytes.TrimSpace(data)
		if len(data) > 0 {
			if !json.Valid(data) {
				return nil, resp.StatusCode, ErrInvalidJSON
			}
			payload = json.RawMessage(data)
		}
	}
	return payload, resp.StatusCode, nil
}

func isJSONResponse(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "application/json")
}

// newRequestError derives the user-facing message from the API error body:
// errors[0].message first, then message, then a generic status line.
func newRequestError(status int, payload json.RawMessage) *RequestError {
	message := fmt.Sprintf("Request failed with status %d", status)

	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if len(payload) > 0 && json.Unmarshal(payload, &body) == nil {
		switch {
		case len(body.Errors) > 0 && body.Errors[0].Message != "":
			message = body.Errors[0].Message
		case body.Message != "":
			message = body.Message
		}
	}

	return &RequestError{Status: status, Payload: payload, Message: message}
}

// unwrapData extracts the inner data field when the payload is an object
// carrying a non-null one; everything else passes through as-is.
func unwrapData(payload json.RawMessage) json.RawMessage {
	if len(payload) == 0 {
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return payload
	}
	data, ok := envelope["data"]
	if !ok || string(bytes.TrimSpace(data)) == "null" {
		return payload
	}
	return data
}
