package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSONWithFallback(t *testing.T) {
	client := newTestClient()
	ctx := context.Background()

	t.Run("Fail on empty endpoint list", func(t *testing.T) {
		_, err := client.PostJSONWithFallback(ctx, nil, map[string]string{})
		assert.ErrorIs(t, err, ErrNoEndpoints)
	})

	t.Run("Advances past a 404 to the next candidate", func(t *testing.T) {
		missing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer missing.Close()

		var bodies []string
		working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(raw))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"ok":true}}`))
		}))
		defer working.Close()

		payload, err := client.PostJSONWithFallback(ctx,
			[]string{missing.URL, working.URL}, map[string]string{"email": "a@b.co"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(payload))
		require.Len(t, bodies, 1)
		assert.JSONEq(t, `{"email":"a@b.co"}`, bodies[0])
	})

	t.Run("A 404 on the last candidate is raised", func(t *testing.T) {
		missing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Route not found"}`))
		}))
		defer missing.Close()

		_, err := client.PostJSONWithFallback(ctx, []string{missing.URL}, map[string]string{})
		var requestErr *RequestError
		require.ErrorAs(t, err, &requestErr)
		assert.Equal(t, http.StatusNotFound, requestErr.Status)
		assert.Equal(t, "Route not found", requestErr.Message)
	})

	t.Run("Other statuses are raised immediately", func(t *testing.T) {
		var secondCalled bool
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"errors":[{"message":"Invalid email or password"}]}`))
		}))
		defer failing.Close()
		second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			secondCalled = true
		}))
		defer second.Close()

		_, err := client.PostJSONWithFallback(ctx, []string{failing.URL, second.URL}, map[string]string{})
		var requestErr *RequestError
		require.ErrorAs(t, err, &requestErr)
		assert.Equal(t, http.StatusUnauthorized, requestErr.Status)
		assert.False(t, secondCalled, "a non-404 failure must not fall through")
	})

	t.Run("Advances past a network failure", func(t *testing.T) {
		dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		deadURL := dead.URL
		dead.Close()

		working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok":true}`))
		}))
		defer working.Close()

		payload, err := client.PostJSONWithFallback(ctx, []string{deadURL, working.URL}, map[string]string{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(payload))
	})

	t.Run("Exhausted candidates raise the last recorded error", func(t *testing.T) {
		first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer first.Close()
		second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		secondURL := second.URL
		second.Close()

		_, err := client.PostJSONWithFallback(ctx, []string{first.URL, secondURL}, map[string]string{})
		var transportErr *TransportError
		assert.ErrorAs(t, err, &transportErr, "the later failure wins")
	})
}

func TestLogin(t *testing.T) {
	client := newTestClient()
	ctx := context.Background()

	t.Run("Success with the current API shape", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"accessToken":"jwt-123","name":"Ada","email":"ada@example.com","avatar":{"url":"https://cdn/a.png","alt":"Ada"}}}`))
		}))
		defer server.Close()

		result, err := client.Login(ctx, []string{server.URL}, "Ada@Example.com ", "password123")
		require.NoError(t, err)
		assert.Equal(t, "jwt-123", result.Token)
		assert.Equal(t, "Ada", result.Profile.Name)
		assert.Equal(t, "ada@example.com", result.Profile.Email)
		assert.Equal(t, "https://cdn/a.png", result.Profile.Avatar)
	})

	t.Run("Success with the legacy avatar string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"accessToken":"jwt-123","name":"Ada","avatar":"https://cdn/a.png"}`))
		}))
		defer server.Close()

		result, err := client.Login(ctx, []string{server.URL}, "ada@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/a.png", result.Profile.Avatar)
		assert.Equal(t, "ada@example.com", result.Profile.Email, "submitted email fills the gap")
	})

	t.Run("Fail without an access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"Ada"}`))
		}))
		defer server.Close()

		_, err := client.Login(ctx, []string{server.URL}, "ada@example.com", "password123")
		assert.ErrorIs(t, err, ErrNoAccessToken)
	})

	t.Run("Fail on bad credentials before any request", func(t *testing.T) {
		_, err := client.Login(ctx, []string{"http://unused"}, "not-an-email", "password123")
		assert.ErrorIs(t, err, ErrInvalidEmail)

		_, err = client.Login(ctx, []string{"http://unused"}, "ada@example.com", "short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestRegister(t *testing.T) {
	client := newTestClient()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var body string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			body = string(raw)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"name":"Ada","email":"ada@example.com"}`))
		}))
		defer server.Close()

		err := client.Register(ctx, []string{server.URL}, " Ada ", "Ada@example.com", "password123")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Ada","email":"ada@example.com","password":"password123"}`, body)
	})

	t.Run("Fail on missing name", func(t *testing.T) {
		err := client.Register(ctx, []string{"http://unused"}, "  ", "ada@example.com", "password123")
		assert.ErrorIs(t, err, ErrMissingName)
	})
}
