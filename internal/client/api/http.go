package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vacayhq/vacay/internal/client/models"
	"github.com/vacayhq/vacay/internal/common"
	"github.com/vacayhq/vacay/internal/netx"
)

const requestTimeout = 30 * time.Second

// HTTPClient implements Client over the JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	// onTokens, when set, is called after every successful token rotation
	// so the caller can persist the new pair.
	onTokens func(pair models.TokenPair)
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// SetTokens installs a previously stored token pair.
func (c *HTTPClient) SetTokens(pair models.TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
}

// ClearTokens drops the session, returning the client to anonymous state.
func (c *HTTPClient) ClearTokens() {
	c.SetTokens(models.TokenPair{})
}

// OnTokensUpdated registers a persistence callback for rotated tokens.
func (c *HTTPClient) OnTokensUpdated(fn func(pair models.TokenPair)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTokens = fn
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Unwrap maps HTTP statuses onto the shared sentinels so callers can use
// errors.Is regardless of transport.
func (e *apiError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	case http.StatusUnsupportedMediaType:
		return common.ErrorUnsupportedMediaType
	}
	return nil
}

// do performs an authenticated JSON request. On a 401 it refreshes the
// token pair once and retries; a second 401 is returned to the caller.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	err := c.doOnce(ctx, method, path, body, out, true)
	var ae *apiError
	if errors.As(err, &ae) && ae.Status == http.StatusUnauthorized {
		if refreshErr := c.refresh(ctx); refreshErr != nil {
			return err
		}
		return c.doOnce(ctx, method, path, body, out, true)
	}
	return err
}

func (c *HTTPClient) doOnce(ctx context.Context, method, path string, body any, out any, withAuth bool) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		access, _ := c.tokens()
		if access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return &apiError{Status: resp.StatusCode, Message: er.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// refresh rotates the token pair using the stored refresh token.
func (c *HTTPClient) refresh(ctx context.Context) error {
	_, refresh := c.tokens()
	if refresh == "" {
		return common.ErrorUnauthorized
	}

	var pair models.TokenPair
	err := c.doOnce(ctx, http.MethodPost, "/api/v1/auth/refresh",
		map[string]string{"refresh_token": refresh}, &pair, false)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	fn := c.onTokens
	c.mu.Unlock()

	if fn != nil {
		fn(pair)
	}
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doOnce(ctx, http.MethodGet, "/ping", nil, nil, false)
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	err := c.doOnce(ctx, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"email": email, "password": password}, &u, false)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates and installs the returned token pair on the client.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := c.doOnce(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, &pair, false)
	if err != nil {
		return nil, err
	}
	c.SetTokens(pair)
	return &pair, nil
}

func (c *HTTPClient) CreateAlbum(ctx context.Context, title, description string, isPublic bool) (*models.Album, error) {
	var a models.Album
	err := c.do(ctx, http.MethodPost, "/api/v1/albums",
		map[string]any{"title": title, "description": description, "is_public": isPublic}, &a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) ListAlbums(ctx context.Context) ([]models.Album, error) {
	var all []models.Album
	if err := c.do(ctx, http.MethodGet, "/api/v1/albums", nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (c *HTTPClient) GetAlbum(ctx context.Context, albumID string) (*models.Album, error) {
	var a models.Album
	if err := c.do(ctx, http.MethodGet, "/api/v1/albums/"+albumID, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) UpdateAlbum(ctx context.Context, albumID, title, description string, isPublic bool) (*models.Album, error) {
	var a models.Album
	err := c.do(ctx, http.MethodPut, "/api/v1/albums/"+albumID,
		map[string]any{"title": title, "description": description, "is_public": isPublic}, &a)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) DeleteAlbum(ctx context.Context, albumID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/albums/"+albumID, nil, nil)
}

func (c *HTTPClient) AddMember(ctx context.Context, albumID, email, role string) (*models.AlbumMember, error) {
	var m models.AlbumMember
	err := c.do(ctx, http.MethodPost, "/api/v1/albums/"+albumID+"/members",
		map[string]string{"email": email, "role": role}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) ListMembers(ctx context.Context, albumID string) ([]models.AlbumMember, error) {
	var all []models.AlbumMember
	if err := c.do(ctx, http.MethodGet, "/api/v1/albums/"+albumID+"/members", nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (c *HTTPClient) RemoveMember(ctx context.Context, albumID, memberID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/albums/"+albumID+"/members/"+memberID, nil, nil)
}

func (c *HTTPClient) GetShared(ctx context.Context, shareID string) (*models.SharedAlbum, error) {
	var sa models.SharedAlbum
	if err := c.doOnce(ctx, http.MethodGet, "/api/v1/share/"+shareID, nil, &sa, false); err != nil {
		return nil, err
	}
	return &sa, nil
}

func (c *HTTPClient) AuthorizeUpload(ctx context.Context, albumID, filename, contentType string, size int64) (*models.UploadGrant, error) {
	var g models.UploadGrant
	err := c.do(ctx, http.MethodPost, "/api/v1/albums/"+albumID+"/media/authorize",
		map[string]any{"filename": filename, "content_type": contentType, "size_bytes": size}, &g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// UploadBlob PUTs the file bytes directly to the presigned URL; the backend
// never sees them.
func (c *HTTPClient) UploadBlob(ctx context.Context, uploadURL, contentType string, data []byte) error {
	return netx.UploadToPresignedURL(ctx, c.http, uploadURL, contentType, data)
}

func (c *HTTPClient) RegisterMedia(ctx context.Context, albumID string, p RegisterMediaParams) (*models.Media, error) {
	var m models.Media
	if err := c.do(ctx, http.MethodPost, "/api/v1/albums/"+albumID+"/media", p, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) ListMedia(ctx context.Context, albumID string) ([]models.Media, error) {
	var all []models.Media
	if err := c.do(ctx, http.MethodGet, "/api/v1/albums/"+albumID+"/media", nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (c *HTTPClient) DeleteMedia(ctx context.Context, mediaID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/media/"+mediaID, nil, nil)
}

// FetchBlob downloads stored bytes from a blob URL and reports the
// Content-Type the store served them with.
func (c *HTTPClient) FetchBlob(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &apiError{Status: resp.StatusCode, Message: "blob fetch failed"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}
