package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmicwatch/cosmicwatch-go/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var req model.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if req.Email == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Email already registered"}`))
			return
		}
		json.NewEncoder(w).Encode(model.AuthResponse{Token: "tok", User: model.UserResponse{ID: "u1", Name: req.Name, Role: "enthusiast"}})
	})
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	})
	mux.HandleFunc("GET /api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Invalid token"}`))
			return
		}
		json.NewEncoder(w).Encode(model.UserResponse{ID: "u1", Name: "Vera", Role: "researcher"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL+"/", srv.Client())
	ctx := context.Background()

	resp, err := c.Signup(ctx, model.SignupRequest{Name: "Vera", Email: "vera@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "Vera", resp.User.Name)

	_, err = c.Signup(ctx, model.SignupRequest{Name: "V", Email: "taken@example.com", Password: "pw"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Email already registered", err.Error())
	assert.False(t, IsUnauthorized(err))

	_, err = c.Login(ctx, model.LoginRequest{Email: "vera@example.com", Password: "bad"})
	assert.True(t, IsUnauthorized(err))
	assert.EqualError(t, err, "Invalid credentials")

	profile, err := c.Profile(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "researcher", profile.Role)

	_, err = c.Profile(ctx, "stale")
	assert.True(t, IsUnauthorized(err))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Profile(context.Background(), "tok")
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
}
