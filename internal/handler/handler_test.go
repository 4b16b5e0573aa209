package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blues/crowdhub/internal/auth"
	"github.com/blues/crowdhub/internal/database/databasetest"
	"github.com/blues/crowdhub/internal/model"
	"github.com/blues/crowdhub/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	db := databasetest.New(t)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(auth.Session(tokens))

	authHandler := NewAuthHandler(db, tokens)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	campaigns := NewCampaignHandler(db)
	r.GET("/campaigns", campaigns.Index)
	r.POST("/campaigns", campaigns.Store)
	r.GET("/campaigns/create", campaigns.Create)
	r.GET("/campaigns/:id", campaigns.Show)
	r.POST("/campaigns/:id", campaigns.Update)
	r.PUT("/campaigns/:id", campaigns.Update)
	r.GET("/campaigns/:id/edit", campaigns.Edit)

	api := NewCampaignAPIHandler(db)
	r.GET("/api/v1/campaigns", api.GetCampaigns)
	r.POST("/api/v1/campaigns", api.CreateCampaign)
	r.GET("/api/v1/campaigns/:id", api.GetCampaign)
	r.PUT("/api/v1/campaigns/:id", api.UpdateCampaign)
	r.GET("/api/v1/categories", NewCategoryHandler(db).GetCategories)
	r.POST("/api/v1/auth/login", authHandler.APILogin)

	return &testServer{engine: r, db: db, tokens: tokens}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.do(req)
}

func (s *testServer) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return s.do(req)
}

func (s *testServer) sendJSON(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return s.do(req)
}

func (s *testServer) sessionCookie(t *testing.T, userId int64) *http.Cookie {
	t.Helper()
	token, err := s.tokens.Issue(userId)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func (s *testServer) category(t *testing.T, name string) int64 {
	t.Helper()
	c := model.CategoryModel{Name: name}
	require.NoError(t, s.db.Create(&c).Error)
	return c.Id
}

func (s *testServer) user(t *testing.T, email string) int64 {
	t.Helper()
	u := model.UserModel{Name: "Ada", Email: email, PasswordHash: "x"}
	require.NoError(t, s.db.Create(&u).Error)
	return u.Id
}

func (s *testServer) campaign(t *testing.T, categoryId int64, name string, start time.Time) int64 {
	t.Helper()
	c := model.CampaignModel{
		Name:        name,
		Description: name + " description",
		Funded:      decimal.Zero,
		Goal:        decimal.NewFromInt(1000),
		StartDate:   &start,
		State:       model.CampaignStateUnfunded,
		CategoryId:  categoryId,
	}
	require.NoError(t, s.db.Create(&c).Error)
	return c.Id
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, data interface{}) Response {
	t.Helper()
	var raw struct {
		Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Response
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
