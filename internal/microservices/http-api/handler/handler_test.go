package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"comboshare/internal/microservices/http-api/dto"
	"comboshare/internal/microservices/http-api/handler"
	"comboshare/internal/microservices/http-api/middleware"
	"comboshare/internal/microservices/http-api/models"
	"comboshare/internal/microservices/http-api/service"
	"comboshare/internal/search"
	"comboshare/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- SETUP ---

func mockAuthMiddleware(userID string, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set("userID", userID)
		c.Set("isAdmin", admin)
		c.Next()
	}
}

func mockOptionalAuth(userID string, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
			c.Set("isAdmin", admin)
		}
		c.Next()
	}
}

func guardsFor(userID string, admin bool) handler.Guards {
	return handler.Guards{
		Optional: mockOptionalAuth(userID, admin),
		Auth:     mockAuthMiddleware(userID, admin),
		Admin:    middleware.RequireAdmin(),
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *gin.RouterGroup) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterBindings())
	r := gin.New()
	return r, r.Group("/api")
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// --- COMBOS ---

func TestComboSearch_PassesParsedFiltersAndViewer(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockComboService)
	handler.NewComboHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))

	svc.On("Search", mock.Anything, mock.MatchedBy(func(p search.Params) bool {
		return p.Q == "236強P" &&
			p.CharacterID != nil && *p.CharacterID == 1 &&
			p.Sort == search.SortRecommend &&
			p.Take == search.MaxTake
	}), search.Viewer{UserID: "u-1"}).Return(&dto.ComboSearchResponse{
		Items: []dto.ComboSummary{},
		Total: 0, Page: 1, Pages: 1, Take: search.MaxTake,
		Sort: search.SortRecommend, Dir: search.DirDesc,
	}, nil)

	q := url.Values{"q": {"236強P"}, "characterId": {"1"}, "sort": {"recommend"}, "take": {"9999"}}
	w := doRequest(r, http.MethodGet, "/api/combos?"+q.Encode(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"page":1,"pages":1,"take":200,"sort":"recommend","dir":"desc"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestComboGet(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockComboService)
	handler.NewComboHandler(svc).RegisterRoutes(api, guardsFor("", false))

	svc.On("Get", mock.Anything, int64(3), search.Viewer{}).Return(&dto.ComboDetailResponse{
		ComboSummary: dto.ComboSummary{ID: 3, Starter: "2弱P", Tags: []string{}},
	}, nil)
	svc.On("Get", mock.Anything, int64(4), search.Viewer{}).Return(nil, service.ErrComboNotFound)

	w := doRequest(r, http.MethodGet, "/api/combos/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2弱P", decode(t, w)["starter"])

	w = doRequest(r, http.MethodGet, "/api/combos/4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "combo not found", decode(t, w)["error"])

	w = doRequest(r, http.MethodGet, "/api/combos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComboCreate(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockComboService)
	handler.NewComboHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))

	body := map[string]any{
		"characterId": 1,
		"playStyle":   "MODERN",
		"comboText":   "2 弱K > 2 弱P > 236 強P",
		"tags":        []string{"画面端"},
	}
	svc.On("Create", mock.Anything, "u-1", mock.MatchedBy(func(d dto.CreateComboDTO) bool {
		return d.CharacterID == 1 && d.PlayStyle == "MODERN" && len(d.Tags) == 1
	})).Return(&dto.ComboDetailResponse{ComboSummary: dto.ComboSummary{ID: 77}}, nil)

	w := doRequest(r, http.MethodPost, "/api/combos", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(77), decode(t, w)["id"])
	svc.AssertExpectations(t)
}

func TestComboCreate_Validation(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockComboService)
	handler.NewComboHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))

	tests := []struct {
		name string
		body any
	}{
		{"bad play style", map[string]any{"characterId": 1, "playStyle": "PRO", "comboText": "5 弱P"}},
		{"blank combo text", map[string]any{"characterId": 1, "playStyle": "MODERN", "comboText": "   "}},
		{"missing character", map[string]any{"playStyle": "MODERN", "comboText": "5 弱P"}},
		{"negative drive cost", map[string]any{"characterId": 1, "playStyle": "MODERN", "comboText": "5 弱P", "driveCost": -1}},
		{"malformed json", `{"characterId":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/combos", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestComboCreate_UnknownCharacterIsBadRequest(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockComboService)
	handler.NewComboHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))

	svc.On("Create", mock.Anything, "u-1", mock.Anything).Return(nil, service.ErrCharacterNotFound)

	w := doRequest(r, http.MethodPost, "/api/combos", map[string]any{"characterId": 999, "playStyle": "CLASSIC", "comboText": "5 弱P"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "character not found", decode(t, w)["error"])
}

func TestComboCreate_RequiresSession(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockComboService)
	handler.NewComboHandler(svc).RegisterRoutes(api, guardsFor("", false))

	w := doRequest(r, http.MethodPost, "/api/combos", map[string]any{"characterId": 1, "playStyle": "CLASSIC", "comboText": "5 弱P"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestComboMineAndPicks(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockComboService)
	handler.NewComboHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))

	svc.On("ListMine", mock.Anything, "u-1", 2, 10).Return(dto.NewPaginatedComboResponse([]dto.ComboSummary{}, 11, 2, 10), nil)
	svc.On("Picks", mock.Anything).Return([]dto.CharacterPicks{{CharacterID: 1, CharacterName: "リュウ", Combos: []dto.ComboSummary{}}}, nil)

	w := doRequest(r, http.MethodGet, "/api/combos/mine?page=2&pageSize=10", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["totalPages"])

	w = doRequest(r, http.MethodGet, "/api/combos/picks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "リュウ")
}

// --- AUTH ---

func TestAuthLogin_SetsCookie(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockAuthService)
	handler.NewAuthHandler(svc, false).RegisterRoutes(api, guardsFor("", false))

	expires := time.Now().Add(time.Hour)
	svc.On("Login", mock.Anything, "ryu@example.com", "hadouken").Return(&service.LoginResult{
		Token:     "signed-token",
		ExpiresAt: expires,
		User:      &models.User{ID: "u-1", Email: "ryu@example.com", Name: "Ryu"},
	}, nil)

	w := doRequest(r, http.MethodPost, "/api/auth/login", map[string]string{"email": "ryu@example.com", "password": "hadouken"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "signed-token", body["token"])

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, middleware.SessionCookie+"=signed-token")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Lax")
}

func TestAuthLogin_InvalidCredentials(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockAuthService)
	handler.NewAuthHandler(svc, false).RegisterRoutes(api, guardsFor("", false))

	svc.On("Login", mock.Anything, "ryu@example.com", "nope").Return(nil, service.ErrInvalidCredentials)

	w := doRequest(r, http.MethodPost, "/api/auth/login", map[string]string{"email": "ryu@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestAuthRegister(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockAuthService)
	handler.NewAuthHandler(svc, false).RegisterRoutes(api, guardsFor("", false))

	req := dto.RegisterRequest{Email: "ken@example.com", Password: "shoryuken", Name: "Ken"}
	svc.On("Register", mock.Anything, req).Return(&models.User{ID: "u-2", Email: "ken@example.com", Name: "Ken"}, nil).Once()
	svc.On("Register", mock.Anything, req).Return(nil, service.ErrEmailTaken).Once()
	svc.On("IsAdmin", "ken@example.com").Return(false)

	w := doRequest(r, http.MethodPost, "/api/auth/register", req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u-2", decode(t, w)["id"])

	w = doRequest(r, http.MethodPost, "/api/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodPost, "/api/auth/register", map[string]string{"email": "ken@example.com", "password": "123", "name": "Ken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMeAndLogout(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockAuthService)
	handler.NewAuthHandler(svc, false).RegisterRoutes(api, guardsFor("u-1", true))

	svc.On("Me", mock.Anything, "u-1").Return(&models.User{ID: "u-1", Email: "admin@example.com"}, true, nil)
	svc.On("Logout", mock.Anything, "").Return(nil)

	w := doRequest(r, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["isAdmin"])

	w = doRequest(r, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

// --- RATINGS AND FAVORITES ---

func TestRatingSet(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockRatingService)
	handler.NewRatingHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))
	viewer := search.Viewer{UserID: "u-1"}
	four := 4

	svc.On("Set", mock.Anything, int64(5), viewer, 4).Return(&dto.RatingSummaryResponse{MyValue: &four, Average: 4, Count: 1}, nil)
	svc.On("Set", mock.Anything, int64(6), viewer, 4).Return(nil, service.ErrComboNotFound)
	svc.On("Clear", mock.Anything, int64(5), viewer).Return(&dto.RatingSummaryResponse{}, nil)

	w := doRequest(r, http.MethodPut, "/api/combos/5/rating", map[string]int{"value": 4})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"myValue":4,"average":4,"count":1}`, w.Body.String())

	w = doRequest(r, http.MethodPut, "/api/combos/5/rating", map[string]int{"value": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPut, "/api/combos/6/rating", map[string]int{"value": 4})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodDelete, "/api/combos/5/rating", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"myValue":null,"average":0,"count":0}`, w.Body.String())
}

func TestFavoriteToggle(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockFavoriteService)
	handler.NewFavoriteHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))

	svc.On("Toggle", mock.Anything, int64(5), search.Viewer{UserID: "u-1"}).Return(&dto.FavoriteResponse{Favorited: true, Count: 3}, nil)

	w := doRequest(r, http.MethodPost, "/api/combos/5/favorite", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"favorited":true,"count":3}`, w.Body.String())
}

// --- COMMENTS ---

func TestComments(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockCommentService)
	handler.NewCommentHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))
	viewer := search.Viewer{UserID: "u-1"}

	svc.On("Create", mock.Anything, int64(5), viewer, "いいね").Return(&dto.CommentResponse{ID: 1, Body: "いいね"}, nil)
	svc.On("Create", mock.Anything, int64(5), viewer, strings.Repeat("x", 1001)).Return(nil, service.ErrCommentTooLong)
	svc.On("List", mock.Anything, int64(5), viewer, 1, search.DefaultTake).Return(dto.NewPaginatedCommentResponse(nil, 0, 1, search.DefaultTake), nil)
	svc.On("DeleteOwn", mock.Anything, int64(1), "u-1").Return(nil)
	svc.On("DeleteOwn", mock.Anything, int64(2), "u-1").Return(service.ErrNotCommentOwner)

	w := doRequest(r, http.MethodPost, "/api/combos/5/comments", map[string]string{"body": "いいね"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/api/combos/5/comments", map[string]string{"body": strings.Repeat("x", 1001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/combos/5/comments", map[string]string{"body": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/combos/5/comments", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"page":1,"pageSize":50,"total":0,"totalPages":1}`, w.Body.String())

	w = doRequest(r, http.MethodDelete, "/api/comments/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, "/api/comments/2", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// --- ADMIN ---

func TestAdmin_RequiresAdmin(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockModerationService)
	handler.NewAdminHandler(svc).RegisterRoutes(api, guardsFor("u-1", false))

	w := doRequest(r, http.MethodPost, "/api/admin/combos/delete", map[string]int{"id": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "DeleteCombo", mock.Anything, mock.Anything)
}

func TestAdmin_AcceptsAlternateBodies(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockModerationService)
	handler.NewAdminHandler(svc).RegisterRoutes(api, guardsFor("admin", true))

	svc.On("PublishCombo", mock.Anything, int64(3), false).Return(&service.ModerationResult{ID: 3}, nil)
	svc.On("PublishCombo", mock.Anything, int64(4), true).Return(nil, service.ErrDeletedCombo)
	svc.On("RestoreCombo", mock.Anything, int64(4)).Return(&service.ModerationResult{ID: 4}, nil)
	svc.On("PublishComment", mock.Anything, int64(8), true).Return(&service.ModerationResult{ID: 8, IsPublished: true}, nil)
	svc.On("DeleteComment", mock.Anything, int64(9)).Return(&service.ModerationResult{ID: 9, Deleted: true}, nil)

	w := doRequest(r, http.MethodPost, "/api/admin/combos/publish", map[string]any{"comboId": 3, "isPublished": false})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/admin/combos/publish", map[string]any{"id": 4, "status": "publish"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodPost, "/api/admin/combos/restore", map[string]any{"comboId": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/admin/comments/publish", map[string]any{"commentId": 8, "publish": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":8,"isPublished":true,"deleted":false}`, w.Body.String())

	w = doRequest(r, http.MethodPost, "/api/admin/comments/delete", map[string]any{"id": 9})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/admin/combos/publish", map[string]any{"id": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/api/admin/combos/delete", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

// --- CATALOG ---

func TestCatalog(t *testing.T) {
	r, api := setupRouter(t)
	svc := new(MockCatalogService)
	handler.NewCatalogHandler(svc).RegisterRoutes(api)

	svc.On("Characters", mock.Anything).Return([]dto.CharacterResponse{{ID: 1, Slug: "ryu", Name: "リュウ"}}, nil)
	svc.On("Moves", mock.Anything, int64(1)).Return([]dto.MoveResponse{{ID: 10, CharacterID: 1, Name: "波動拳"}}, nil)
	svc.On("Moves", mock.Anything, int64(99)).Return([]dto.MoveResponse(nil), service.ErrCharacterNotFound)

	w := doRequest(r, http.MethodGet, "/api/characters", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"id":1,"slug":"ryu","name":"リュウ"}]}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/characters/1/moves", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/characters/99/moves", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.On("Lookups", mock.Anything).Return(&dto.LookupsResponse{
		Conditions: []dto.LookupResponse{{ID: 2, Type: "画面端"}},
		Attributes: []dto.LookupResponse{},
	}, nil)
	w = doRequest(r, http.MethodGet, "/api/lookups", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"conditions":[{"id":2,"type":"画面端"}],"attributes":[]}`, w.Body.String())
}
