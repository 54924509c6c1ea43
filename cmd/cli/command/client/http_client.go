package client

// http_client.go = thin REST client for the comboshare API used by the CLI commands.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"comboshare/internal/microservices/http-api/dto"
)

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken attaches a bearer token to every following request
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func comboPath(id int64, suffix string) string {
	return "/api/combos/" + strconv.FormatInt(id, 10) + suffix
}

// Auth

func (c *HTTPClient) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Combos

func (c *HTTPClient) SearchCombos(ctx context.Context, query url.Values) (*dto.ComboSearchResponse, error) {
	path := "/api/combos"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out dto.ComboSearchResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetCombo(ctx context.Context, id int64) (*dto.ComboDetailResponse, error) {
	var out dto.ComboDetailResponse
	if err := c.do(ctx, http.MethodGet, comboPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateCombo(ctx context.Context, req *dto.CreateComboDTO) (*dto.ComboDetailResponse, error) {
	var out dto.ComboDetailResponse
	if err := c.do(ctx, http.MethodPost, "/api/combos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) MyCombos(ctx context.Context, page, pageSize int) (*dto.PaginatedComboResponse, error) {
	path := fmt.Sprintf("/api/combos/mine?page=%d&pageSize=%d", page, pageSize)
	var out dto.PaginatedComboResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Picks(ctx context.Context) ([]dto.CharacterPicks, error) {
	var out struct {
		Characters []dto.CharacterPicks `json:"characters"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/combos/picks", nil, &out); err != nil {
		return nil, err
	}
	return out.Characters, nil
}

// Ratings and favorites

func (c *HTTPClient) SetRating(ctx context.Context, comboID int64, value int) (*dto.RatingSummaryResponse, error) {
	var out dto.RatingSummaryResponse
	if err := c.do(ctx, http.MethodPut, comboPath(comboID, "/rating"), dto.SetRatingDTO{Value: value}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ClearRating(ctx context.Context, comboID int64) (*dto.RatingSummaryResponse, error) {
	var out dto.RatingSummaryResponse
	if err := c.do(ctx, http.MethodDelete, comboPath(comboID, "/rating"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ToggleFavorite(ctx context.Context, comboID int64) (*dto.FavoriteResponse, error) {
	var out dto.FavoriteResponse
	if err := c.do(ctx, http.MethodPost, comboPath(comboID, "/favorite"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Comments

func (c *HTTPClient) AddComment(ctx context.Context, comboID int64, body string) (*dto.CommentResponse, error) {
	var out dto.CommentResponse
	if err := c.do(ctx, http.MethodPost, comboPath(comboID, "/comments"), dto.CreateCommentDTO{Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListComments(ctx context.Context, comboID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	path := comboPath(comboID, fmt.Sprintf("/comments?page=%d&pageSize=%d", page, pageSize))
	var out dto.PaginatedCommentResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, commentID int64) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+strconv.FormatInt(commentID, 10), nil, nil)
}

// Moderation

// Moderate calls /api/admin/{target}/{action}. target is "combos" or "comments",
// action is "publish", "delete" or "restore". publish is only sent for "publish".
func (c *HTTPClient) Moderate(ctx context.Context, target, action string, id int64, publish bool) (*ModerationResult, error) {
	req := dto.ModerationRequest{ID: &id}
	if action == "publish" {
		req.Publish = &publish
	}
	var out ModerationResult
	if err := c.do(ctx, http.MethodPost, "/api/admin/"+target+"/"+action, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModerationResult mirrors the admin endpoints' response
type ModerationResult struct {
	ID          int64 `json:"id"`
	IsPublished bool  `json:"isPublished"`
	Deleted     bool  `json:"deleted"`
}

// Catalog

func (c *HTTPClient) Characters(ctx context.Context) ([]dto.CharacterResponse, error) {
	var out struct {
		Data []dto.CharacterResponse `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/characters", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) Moves(ctx context.Context, characterID int64) ([]dto.MoveResponse, error) {
	var out struct {
		Data []dto.MoveResponse `json:"data"`
	}
	path := "/api/characters/" + strconv.FormatInt(characterID, 10) + "/moves"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) Lookups(ctx context.Context) (*dto.LookupsResponse, error) {
	var out dto.LookupsResponse
	if err := c.do(ctx, http.MethodGet, "/api/lookups", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
