package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacayhq/vacay/internal/client/models"
	"github.com/vacayhq/vacay/internal/common"
)

func TestLogin_InstallsTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(models.TokenPair{AccessToken: "at", RefreshToken: "rt"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	pair, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "at", pair.AccessToken)

	access, refresh := c.tokens()
	assert.Equal(t, "at", access)
	assert.Equal(t, "rt", refresh)
}

func TestDo_RefreshesOnceOn401(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/albums":
			if r.Header.Get("Authorization") != "Bearer fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}
			json.NewEncoder(w).Encode([]models.Album{{ID: "a1"}})
		case "/api/v1/auth/refresh":
			calls.Add(1)
			json.NewEncoder(w).Encode(models.TokenPair{AccessToken: "fresh", RefreshToken: "rt2"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetTokens(models.TokenPair{AccessToken: "stale", RefreshToken: "rt1"})

	var persisted models.TokenPair
	c.OnTokensUpdated(func(pair models.TokenPair) { persisted = pair })

	albums, err := c.ListAlbums(context.Background())
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "fresh", persisted.AccessToken)
}

func TestDo_NoRefreshTokenStaysUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)

	_, err := c.ListAlbums(context.Background())
	assert.True(t, errors.Is(err, common.ErrorUnauthorized), "got %v", err)
}

func TestDo_MapsStatusToSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusForbidden, common.ErrorForbidden},
		{http.StatusNotFound, common.ErrorNotFound},
		{http.StatusConflict, common.ErrorAlreadyExists},
		{http.StatusUnsupportedMediaType, common.ErrorUnsupportedMediaType},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		}))

		c := NewHTTPClient(srv.URL)
		c.SetTokens(models.TokenPair{AccessToken: "at"})
		_, err := c.GetAlbum(context.Background(), "a1")
		assert.True(t, errors.Is(err, tt.want), "status %d: got %v", tt.status, err)
		assert.Contains(t, err.Error(), "nope")
		srv.Close()
	}
}

func TestFetchBlob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("pngbytes"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	data, ct, err := c.FetchBlob(context.Background(), srv.URL+"/blob")
	require.NoError(t, err)
	assert.Equal(t, "pngbytes", string(data))
	assert.Equal(t, "image/png", ct)
}
