package api

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/MrAlob/project-exam-1/pkg/domain/model"
)

var (
	ErrNoEndpoints        = errors.New("no authentication endpoints are configured")
	ErrAllEndpointsFailed = errors.New("the request could not be completed")
	ErrMissingName        = errors.New("a display name is required")
	ErrInvalidEmail       = errors.New("email must be in a valid format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrNoAccessToken      = errors.New("the server did not return a valid access token")
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PostJSONWithFallback posts the payload to each candidate endpoint in
// order. A 404 with candidates remaining is taken to mean the API is not
// deployed at that base and the next one is tried; the same goes for
// transport-level failures. Any other error is raised immediately. The
// payload is serialized once and reused across attempts.
//
// The 404 heuristic cannot tell "wrong base URL" from "this endpoint
// legitimately 404s for this payload"; the last candidate's answer wins.
func (c *Client) PostJSONWithFallback(ctx context.Context, endpoints []string, payload any) (json.RawMessage, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode request body")
	}

	var lastErr error
	for i, endpoint := range endpoints {
		remaining := i < len(endpoints)-1

		responsePayload, status, err := c.roundTrip(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			var transport *TransportError
			if errors.As(err, &transport) && remaining {
				log.WithError(err).WithField("endpoint", endpoint).Warn("Endpoint unreachable, trying the next candidate")
				lastErr = err
				continue
			}
			return nil, err
		}

		if status < 200 || status > 299 {
			requestErr := newRequestError(status, responsePayload)
			if status == http.StatusNotFound && remaining {
				log.WithField("endpoint", endpoint).Warn("Endpoint not found, trying the next candidate")
				lastErr = requestErr
				continue
			}
			return nil, requestErr
		}

		return unwrapData(responsePayload), nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrAllEndpointsFailed
}

// AuthResult is a successful login: the bearer token and the profile to
// persist alongside it.
type AuthResult struct {
	Token   string
	Profile model.Profile
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse tolerates both auth API versions; avatar is a string in the
// legacy API and an object in the current one.
type authResponse struct {
	AccessToken string `json:"accessToken"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Avatar      Media  `json:"avatar"`
}

// Login signs the user in against the first responsive endpoint and
// assembles the profile to store. The submitted email stands in when the
// server omits one.
func (c *Client) Login(ctx context.Context, endpoints []string, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	payload, err := c.PostJSONWithFallback(ctx, endpoints, credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var result authResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, errors.Wrap(err, "decode login response")
	}
	if result.AccessToken == "" {
		return nil, ErrNoAccessToken
	}

	profile := model.Profile{
		Name:   result.Name,
		Email:  result.Email,
		Avatar: result.Avatar.URL,
	}
	if profile.Email == "" {
		profile.Email = email
	}

	return &AuthResult{Token: result.AccessToken, Profile: profile}, nil
}

// Register creates the account. Callers follow up with Login; the register
// endpoint does not hand out a token.
func (c *Client) Register(ctx context.Context, endpoints []string, name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingName
	}
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	_, err := c.PostJSONWithFallback(ctx, endpoints, credentials{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: password,
	})
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
