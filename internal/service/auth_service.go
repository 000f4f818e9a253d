package service

import (
	"errors"
	"log"
	"time"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/common"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/config"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenPair 一次登录下发的短效+长效凭据
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginUser 校验邮箱密码并签发会话凭据
func LoginUser(email string, password string) (*model.User, *TokenPair, error) {
	if email == "" || password == "" {
		return nil, nil, common.NewValidationError("邮箱和密码均为必填项")
	}

	email = utils.NormalizeEmail(email)

	var user model.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, common.NewNotFoundError("该邮箱未注册")
		}
		return nil, nil, common.NewInternalError("登录失败，请稍后重试")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, common.NewUnauthorizedError("密码不正确")
	}

	pair, err := IssueTokenPair(&user)
	if err != nil {
		return nil, nil, err
	}

	return &user, pair, nil
}

// IssueTokenPair 签发访问/刷新令牌并把刷新令牌落库
// 刷新令牌落库失败视为登录失败（否则后续无法吊销）
func IssueTokenPair(user *model.User) (*TokenPair, error) {
	cfg := config.Get()

	accessTTL := time.Duration(cfg.JWT.AccessExpirationMinutes) * time.Minute
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	refreshTTL := time.Duration(cfg.JWT.RefreshExpirationHours) * time.Hour
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role, accessTTL)
	if err != nil {
		return nil, common.NewInternalError("登录失败，请稍后重试")
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, refreshTTL)
	if err != nil {
		return nil, common.NewInternalError("登录失败，请稍后重试")
	}

	if err := db.DB.Model(&model.User{}).Where("id = ?", user.ID).
		UpdateColumn("refresh_token", refreshToken).Error; err != nil {
		log.Printf("Persist refresh token error: %v\n", err)
		return nil, common.NewInternalError("生成会话凭据时出错")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshTokenPair 校验刷新令牌与库中存量一致后轮换出新的一对凭据
func RefreshTokenPair(refreshToken string) (*model.User, *TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, common.NewUnauthorizedError("缺少刷新令牌")
	}

	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, common.NewUnauthorizedError("刷新令牌无效或已过期")
	}

	var user model.User
	if err := db.DB.First(&user, claims.ID).Error; err != nil {
		return nil, nil, common.NewUnauthorizedError("刷新令牌无效或已过期")
	}

	// 与库中存量不一致说明已登出或已被轮换
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, nil, common.NewUnauthorizedError("刷新令牌已失效，请重新登录")
	}

	pair, err := IssueTokenPair(&user)
	if err != nil {
		return nil, nil, err
	}

	return &user, pair, nil
}

// LogoutUser 清除落库的刷新令牌，使其立即失效
func LogoutUser(uid uint) error {
	if err := db.DB.Model(&model.User{}).Where("id = ?", uid).
		UpdateColumn("refresh_token", "").Error; err != nil {
		log.Printf("Clear refresh token error: %v\n", err)
		return common.NewInternalError("登出失败，请稍后重试")
	}
	return nil
}
