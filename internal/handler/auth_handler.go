package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/blues/crowdhub/internal/auth"
	"github.com/blues/crowdhub/internal/logger"
	"github.com/blues/crowdhub/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// LoginForm 登录表单
type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginResponse 接口登录结果
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// AuthHandler 登录与登出
type AuthHandler struct {
	userLogic *logic.UserLogic
	tokens    *auth.TokenManager
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		userLogic: logic.NewUserLogic(db),
		tokens:    tokens,
	}
}

// LoginPage 登录页
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "auth/login.tmpl", gin.H{
		"Title":  "Log in",
		"Form":   LoginForm{},
		"Errors": (*logic.ValidationError)(nil),
	})
}

// Login 表单登录，成功后写入会话 cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			renderServerError(c, err)
			return
		}
		h.renderLogin(c, http.StatusUnprocessableEntity, form, translateValidation(verrs))
		return
	}

	user, err := h.userLogic.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, logic.ErrInvalidCredentials) {
			verr := logic.NewValidationError()
			verr.Add("email", "These credentials do not match our records.")
			h.renderLogin(c, http.StatusUnprocessableEntity, form, verr)
			return
		}
		renderServerError(c, err)
		return
	}

	token, err := h.tokens.Issue(user.Id)
	if err != nil {
		renderServerError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, token, int(h.tokens.TTL().Seconds()), "/", "", false, true)
	logger.Info("User %d logged in", user.Id)
	c.Redirect(http.StatusFound, "/campaigns")
}

// Logout 清除会话 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/campaigns")
}

// APILogin 接口登录，返回 Bearer 令牌
func (h *AuthHandler) APILogin(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ValidationErrorResponse(c, translateValidation(verrs))
			return
		}
		ErrorResponse(c, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	user, err := h.userLogic.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, logic.ErrInvalidCredentials) {
			ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.Error("Failed to authenticate: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.tokens.Issue(user.Id)
	if err != nil {
		logger.Error("Failed to issue token for user %d: %v", user.Id, err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	SuccessResponse(c, http.StatusOK, "", LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokens.TTL()),
		User:      UserResponse{ID: user.Id, Name: user.Name},
	})
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, form LoginForm, verr *logic.ValidationError) {
	form.Password = ""
	render(c, status, "auth/login.tmpl", gin.H{
		"Title":  "Log in",
		"Form":   form,
		"Errors": verr,
	})
}
