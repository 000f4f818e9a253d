package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	// existCache 缓存用户存在性，减少每个请求的数据库查询
	// Key: userID (uint), Value: cachedExistence
	existCache sync.Map
)

const existCacheTTL = 1 * time.Minute

type cachedExistence struct {
	Exists    bool
	ExpiresAt time.Time
}

// ClearUserExistCache 清除指定用户的存在性缓存
func ClearUserExistCache(userID uint) {
	existCache.Delete(userID)

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := service.RedisKey("auth", "user_exists", strconv.FormatUint(uint64(userID), 10))
		_ = redisClient.Del(ctx, key).Err()
	}
}

// AccessTokenCookie / RefreshTokenCookie 会话 Cookie 名称
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// extractAccessToken 先查 Cookie，再回退 Authorization: Bearer <token>
func extractAccessToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractAccessToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要认证才能访问"})
			c.Abort()
			return
		}

		// 解析 Token
		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期"})
			c.Abort()
			return
		}

		c.Set("id", claims.ID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// UserCheck 校验 Token 对应的用户依然存在
func UserCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("id")
		if !exists {
			// 如果没有上下文中的 id，说明 JWT 中间件未执行或顺序不对
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
			c.Abort()
			return
		}

		uid, ok := userID.(uint)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的用户ID类型"})
			c.Abort()
			return
		}

		var (
			userExists  bool
			resultFound bool
		)

		// 优先从 Redis 读取
		if redisClient := service.GetRedisClient(); redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			key := service.RedisKey("auth", "user_exists", strconv.FormatUint(uint64(uid), 10))
			cachedStr, err := redisClient.Get(ctx, key).Result()
			if err == nil {
				userExists = cachedStr == "1"
				resultFound = true
				existCache.Store(uid, cachedExistence{
					Exists:    userExists,
					ExpiresAt: time.Now().Add(existCacheTTL),
				})
			}
		}

		// Redis 未命中或不可用时，回退本地内存缓存
		if !resultFound {
			if val, ok := existCache.Load(uid); ok {
				cached, typeOk := val.(cachedExistence)
				if typeOk {
					if time.Now().Before(cached.ExpiresAt) {
						userExists = cached.Exists
						resultFound = true
					} else {
						existCache.Delete(uid)
					}
				}
			}
		}

		// 缓存未命中或过期时查询数据库
		if !resultFound {
			var count int64
			if err := db.DB.Model(&model.User{}).Where("id = ?", uid).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "查询用户信息失败"})
				c.Abort()
				return
			}
			userExists = count > 0

			// 写入缓存
			existCache.Store(uid, cachedExistence{
				Exists:    userExists,
				ExpiresAt: time.Now().Add(existCacheTTL),
			})

			if redisClient := service.GetRedisClient(); redisClient != nil {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()

				key := service.RedisKey("auth", "user_exists", strconv.FormatUint(uint64(uid), 10))
				val := "0"
				if userExists {
					val = "1"
				}
				_ = redisClient.Set(ctx, key, val, existCacheTTL).Err()
			}
		}

		if !userExists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "用户不存在"})
			c.Abort()
			return
		}

		c.Next()
	}
}
