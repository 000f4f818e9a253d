package middleware

import (
	"testing"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/config"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/service"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMiddlewareTest(t *testing.T) *gorm.DB {
	t.Helper()
	config.InitConfig("")

	gdb := testutils.SetupDB(t)
	service.InitializeSettings()
	service.ClearCache()
	t.Cleanup(service.ClearCache)

	return gdb
}

func createUserRow(t *testing.T, name string, email string) *model.User {
	t.Helper()
	user := model.User{
		Name:         name,
		Email:        email,
		Password:     "irrelevant",
		Role:         model.RoleUser,
		TotalStorage: 1024,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user row: %v", err)
	}
	ClearUserExistCache(user.ID)
	t.Cleanup(func() { ClearUserExistCache(user.ID) })
	return &user
}
