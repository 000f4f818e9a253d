package handler

import (
	"net/http"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/config"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/middleware"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"

	"github.com/gin-gonic/gin"
)

// setSessionCookies 下发会话 Cookie；属性统一来自注入的 Cookie 配置
func setSessionCookies(c *gin.Context, pair *service.TokenPair) {
	cfg := config.Get()

	accessMaxAge := cfg.JWT.AccessExpirationMinutes * 60
	if accessMaxAge <= 0 {
		accessMaxAge = 3600
	}
	refreshMaxAge := cfg.JWT.RefreshExpirationHours * 3600
	if refreshMaxAge <= 0 {
		refreshMaxAge = 7 * 24 * 3600
	}

	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, accessMaxAge, "/", cfg.Cookie.Domain, cfg.Cookie.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken, refreshMaxAge, "/", cfg.Cookie.Domain, cfg.Cookie.Secure, true)
}

func clearSessionCookies(c *gin.Context) {
	cfg := config.Get()
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", cfg.Cookie.Domain, cfg.Cookie.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", cfg.Cookie.Domain, cfg.Cookie.Secure, true)
}

// Register 注册新账号
func Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "注册需要填写所有字段"})
		return
	}

	user, err := service.RegisterUser(req.Name, req.Email, req.Password)
	if err != nil {
		WriteServiceError(c, err, "注册失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"user":    user,
	})
}

// Login 登录并下发会话 Cookie
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "邮箱和密码均为必填项"})
		return
	}

	user, pair, err := service.LoginUser(req.Email, req.Password)
	if err != nil {
		WriteServiceError(c, err, "登录失败")
		return
	}

	setSessionCookies(c, pair)

	// 同时在响应体里返回 access token，方便非浏览器客户端使用 Bearer 认证
	c.JSON(http.StatusOK, gin.H{
		"message":      "登录成功",
		"user":         user,
		"access_token": pair.AccessToken,
	})
}

// Logout 清除落库的刷新令牌并指示客户端丢弃两个 Cookie
func Logout(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := service.LogoutUser(uid); err != nil {
		WriteServiceError(c, err, "登出失败")
		return
	}

	clearSessionCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "登出成功"})
}

// RefreshToken 用刷新令牌轮换出新的一对会话凭据
func RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&req)
		refreshToken = req.RefreshToken
	}

	_, pair, svcErr := service.RefreshTokenPair(refreshToken)
	if svcErr != nil {
		WriteServiceError(c, svcErr, "刷新会话失败")
		return
	}

	setSessionCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"message":      "刷新成功",
		"access_token": pair.AccessToken,
	})
}
