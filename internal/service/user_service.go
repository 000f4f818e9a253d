package service

import (
	"errors"
	"log"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/common"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StorageInfo 配额快照
type StorageInfo struct {
	TotalStorage int64 `json:"total_storage"`
	UsedStorage  int64 `json:"used_storage"`
}

// RegisterUser 注册新用户，返回不含凭据字段的用户记录
func RegisterUser(name string, email string, password string) (*model.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.NewValidationError("注册需要填写所有字段")
	}

	if !GetBool(consts.ConfigAllowRegister) {
		return nil, common.NewForbiddenError("当前未开放注册")
	}

	email = utils.NormalizeEmail(email)
	if ok, msg := utils.ValidateEmail(email); !ok {
		return nil, common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(password); !ok {
		return nil, common.NewValidationError(msg)
	}

	var count int64
	if err := db.DB.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Printf("Check existing user error: %v\n", err)
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}
	if count > 0 {
		return nil, common.NewConflictError("该邮箱已被注册")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}

	quota := GetInt64(consts.ConfigDefaultStorageQuota)
	if quota <= 0 {
		quota = 1073741824 // 1GB
	}

	user := model.User{
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		Role:         model.RoleUser,
		TotalStorage: quota,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Create user error: %v\n", err)
		return nil, common.NewInternalError("注册失败，请稍后重试")
	}

	return &user, nil
}

// GetUserByID 按 ID 查找用户
func GetUserByID(uid uint) (*model.User, error) {
	var user model.User
	if err := db.DB.First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("用户不存在")
		}
		return nil, common.NewInternalError("查询用户信息失败")
	}
	return &user, nil
}

// UpdateAccountDetails 部分更新用户资料，凭据字段始终排除在外
func UpdateAccountDetails(uid uint, name string, email string) (*model.User, error) {
	if name == "" && email == "" {
		return nil, common.NewValidationError("至少需要提供一个要更新的字段")
	}

	user, err := GetUserByID(uid)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if email != "" {
		email = utils.NormalizeEmail(email)
		if ok, msg := utils.ValidateEmail(email); !ok {
			return nil, common.NewValidationError(msg)
		}

		var count int64
		if err := db.DB.Model(&model.User{}).Where("email = ? AND id <> ?", email, uid).Count(&count).Error; err != nil {
			return nil, common.NewInternalError("更新失败，请稍后重试")
		}
		if count > 0 {
			return nil, common.NewConflictError("该邮箱已被其他账号使用")
		}
		updates["email"] = email
	}

	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		log.Printf("Update account details error: %v\n", err)
		return nil, common.NewInternalError("更新失败，请稍后重试")
	}

	return user, nil
}

// UpdatePasswordByOldPassword 校验旧密码后替换密码哈希（仅更新密码列）
func UpdatePasswordByOldPassword(uid uint, oldPassword string, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return common.NewValidationError("旧密码和新密码均为必填项")
	}

	user, err := GetUserByID(uid)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return common.NewUnauthorizedError("旧密码不正确")
	}

	if ok, msg := utils.ValidatePassword(newPassword); !ok {
		return common.NewValidationError(msg)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.NewInternalError("密码修改失败，请稍后重试")
	}

	if err := db.DB.Model(user).UpdateColumn("password", string(hashed)).Error; err != nil {
		log.Printf("Update password error: %v\n", err)
		return common.NewInternalError("密码修改失败，请稍后重试")
	}

	return nil
}

// GetUserStorage 获取配额快照
func GetUserStorage(uid uint) (*StorageInfo, error) {
	user, err := GetUserByID(uid)
	if err != nil {
		return nil, err
	}
	return &StorageInfo{
		TotalStorage: user.TotalStorage,
		UsedStorage:  user.UsedStorage,
	}, nil
}

// SearchUserByEmail 按邮箱精确查找用户（用于选择分享对象）
func SearchUserByEmail(email string) (*model.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, common.NewValidationError("请提供要查找的邮箱")
	}

	var user model.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("未找到该邮箱对应的用户")
		}
		return nil, common.NewInternalError("查询用户失败")
	}
	return &user, nil
}
