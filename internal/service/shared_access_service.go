package service

import (
	"errors"
	"log"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/common"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"

	"gorm.io/gorm"
)

// GranteeInfo 某资源分享列表中的一个被授权用户
type GranteeInfo struct {
	UserID     uint             `json:"user_id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	AccessType model.AccessType `json:"access_type"`
}

// SharerInfo 分享者身份
type SharerInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SharedResourceView 分享给当前用户的一个资源及其权限
type SharedResourceView struct {
	SharedAccessID uint               `json:"shared_access_id"`
	ResourceType   model.ResourceType `json:"resource_type"`
	AccessType     model.AccessType   `json:"access_type"`
	SharedBy       SharerInfo         `json:"shared_by"`
	File           *model.File        `json:"file,omitempty"`
	Folder         *model.Folder      `json:"folder,omitempty"`
}

// resolveResource 解析带类型标签的资源引用，返回所有者 ID
// 资源不存在（或已被标记删除）时返回 NotFound
func resolveResource(ref model.ResourceRef) (uint, error) {
	switch ref.Type {
	case model.ResourceTypeFile:
		var file model.File
		if err := db.DB.Where("is_deleted = ?", false).First(&file, ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, common.NewNotFoundError("文件不存在")
			}
			return 0, common.NewInternalError("查询资源失败")
		}
		return file.UserID, nil
	case model.ResourceTypeFolder:
		var folder model.Folder
		if err := db.DB.Where("is_deleted = ?", false).First(&folder, ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, common.NewNotFoundError("文件夹不存在")
			}
			return 0, common.NewInternalError("查询资源失败")
		}
		return folder.UserID, nil
	default:
		return 0, common.NewValidationError("资源类型不合法")
	}
}

// ShareResource 把资源分享给另一个用户
// 同一资源至多一条分享记录，被授权用户在列表中至多出现一次
func ShareResource(callerID uint, resourceID uint, resourceTypeRaw string, granteeID uint, accessRaw string) (*model.SharedAccess, error) {
	if resourceID == 0 || resourceTypeRaw == "" || granteeID == 0 || accessRaw == "" {
		return nil, common.NewValidationError("所有字段均为必填项")
	}

	resourceType, ok := model.ParseResourceType(resourceTypeRaw)
	if !ok {
		return nil, common.NewValidationError("资源类型不合法")
	}
	accessType, ok := model.ParseAccessType(accessRaw)
	if !ok {
		return nil, common.NewValidationError("权限类型不合法")
	}

	ownerID, err := resolveResource(model.ResourceRef{Type: resourceType, ID: resourceID})
	if err != nil {
		return nil, err
	}
	if ownerID != callerID {
		return nil, common.NewForbiddenError("无权分享该资源")
	}

	if _, err := GetUserByID(granteeID); err != nil {
		return nil, err
	}

	var shared model.SharedAccess
	findErr := db.DB.Where("resource_id = ? AND resource_type = ?", resourceID, resourceType).
		First(&shared).Error

	if findErr != nil && !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return nil, common.NewInternalError("分享失败")
	}

	if findErr == nil {
		var count int64
		if err := db.DB.Model(&model.SharedGrant{}).
			Where("shared_access_id = ? AND user_id = ?", shared.ID, granteeID).
			Count(&count).Error; err != nil {
			return nil, common.NewInternalError("分享失败")
		}
		if count > 0 {
			return nil, common.NewConflictError("该用户已拥有此资源的访问权限")
		}

		grant := model.SharedGrant{
			SharedAccessID: shared.ID,
			UserID:         granteeID,
			AccessType:     accessType,
		}
		if err := db.DB.Create(&grant).Error; err != nil {
			log.Printf("Append grant error: %v\n", err)
			return nil, common.NewInternalError("分享失败")
		}
	} else {
		shared = model.SharedAccess{
			ResourceID:   resourceID,
			ResourceType: resourceType,
			SharedBy:     callerID,
			Grants: []model.SharedGrant{
				{UserID: granteeID, AccessType: accessType},
			},
		}
		if err := db.DB.Create(&shared).Error; err != nil {
			log.Printf("Create shared access error: %v\n", err)
			return nil, common.NewInternalError("分享失败")
		}
	}

	if err := db.DB.Preload("Grants").First(&shared, shared.ID).Error; err != nil {
		return nil, common.NewInternalError("分享失败")
	}
	return &shared, nil
}

// UpdateAccess 修改某个被授权用户的权限，仅限原分享者
// 用户不在分享列表中时返回 NotFound 而不是静默成功
func UpdateAccess(sharedID uint, granteeID uint, newAccessRaw string, callerID uint) (*model.SharedAccess, error) {
	if granteeID == 0 || newAccessRaw == "" {
		return nil, common.NewValidationError("所有字段均为必填项")
	}

	accessType, ok := model.ParseAccessType(newAccessRaw)
	if !ok {
		return nil, common.NewValidationError("权限类型不合法")
	}

	var shared model.SharedAccess
	if err := db.DB.First(&shared, sharedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("分享记录不存在")
		}
		return nil, common.NewInternalError("更新权限失败")
	}

	if shared.SharedBy != callerID {
		return nil, common.NewForbiddenError("无权修改该分享")
	}

	res := db.DB.Model(&model.SharedGrant{}).
		Where("shared_access_id = ? AND user_id = ?", shared.ID, granteeID).
		Update("access_type", accessType)
	if res.Error != nil {
		log.Printf("Update grant error: %v\n", res.Error)
		return nil, common.NewInternalError("更新权限失败")
	}
	if res.RowsAffected == 0 {
		return nil, common.NewNotFoundError("该用户不在分享列表中")
	}

	if err := db.DB.Preload("Grants").First(&shared, shared.ID).Error; err != nil {
		return nil, common.NewInternalError("更新权限失败")
	}
	return &shared, nil
}

// RemoveAccess 撤销某个被授权用户的权限；列表清空时整条分享记录一并删除
func RemoveAccess(sharedID uint, granteeID uint, callerID uint) error {
	if granteeID == 0 {
		return common.NewValidationError("请指定要移除的用户")
	}

	var shared model.SharedAccess
	if err := db.DB.First(&shared, sharedID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("分享记录不存在")
		}
		return common.NewInternalError("移除权限失败")
	}

	if shared.SharedBy != callerID {
		return common.NewForbiddenError("无权修改该分享")
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("shared_access_id = ? AND user_id = ?", shared.ID, granteeID).
			Delete(&model.SharedGrant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return common.NewNotFoundError("该用户不在分享列表中")
		}

		var remaining int64
		if err := tx.Model(&model.SharedGrant{}).
			Where("shared_access_id = ?", shared.ID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			// 不留空壳记录
			return tx.Delete(&shared).Error
		}
		return nil
	})

	if err != nil {
		if _, ok := common.AsServiceError(err); ok {
			return err
		}
		log.Printf("Remove grant error: %v\n", err)
		return common.NewInternalError("移除权限失败")
	}
	return nil
}

// ListGrantees 列出某资源的全部被授权用户（附用户名和邮箱）
// 资源没有分享记录时返回空列表而不是错误
func ListGrantees(resourceID uint, resourceTypeRaw string) ([]GranteeInfo, error) {
	grantees := make([]GranteeInfo, 0)

	query := db.DB.Where("resource_id = ?", resourceID)
	if resourceTypeRaw != "" {
		resourceType, ok := model.ParseResourceType(resourceTypeRaw)
		if !ok {
			return nil, common.NewValidationError("资源类型不合法")
		}
		query = query.Where("resource_type = ?", resourceType)
	}

	var shared model.SharedAccess
	if err := query.First(&shared).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return grantees, nil
		}
		return nil, common.NewInternalError("获取分享列表失败")
	}

	var grants []model.SharedGrant
	if err := db.DB.Preload("User").
		Where("shared_access_id = ?", shared.ID).Find(&grants).Error; err != nil {
		return nil, common.NewInternalError("获取分享列表失败")
	}

	for _, grant := range grants {
		grantees = append(grantees, GranteeInfo{
			UserID:     grant.UserID,
			Name:       grant.User.Name,
			Email:      grant.User.Email,
			AccessType: grant.AccessType,
		})
	}
	return grantees, nil
}

// ListSharedWithUser 列出分享给当前用户的全部资源
// 底层资源已被删除的条目会被静默过滤掉
func ListSharedWithUser(callerID uint) ([]SharedResourceView, error) {
	views := make([]SharedResourceView, 0)

	var grants []model.SharedGrant
	if err := db.DB.Where("user_id = ?", callerID).Find(&grants).Error; err != nil {
		log.Printf("List shared grants error: %v\n", err)
		return nil, common.NewInternalError("获取分享资源失败")
	}

	for _, grant := range grants {
		var shared model.SharedAccess
		if err := db.DB.Preload("Sharer").First(&shared, grant.SharedAccessID).Error; err != nil {
			continue
		}

		view := SharedResourceView{
			SharedAccessID: shared.ID,
			ResourceType:   shared.ResourceType,
			AccessType:     grant.AccessType,
			SharedBy: SharerInfo{
				ID:    shared.Sharer.ID,
				Name:  shared.Sharer.Name,
				Email: shared.Sharer.Email,
			},
		}

		switch shared.ResourceType {
		case model.ResourceTypeFile:
			var file model.File
			if err := db.DB.Where("is_deleted = ?", false).First(&file, shared.ResourceID).Error; err != nil {
				continue
			}
			view.File = &file
		case model.ResourceTypeFolder:
			var folder model.Folder
			if err := db.DB.Where("is_deleted = ?", false).First(&folder, shared.ResourceID).Error; err != nil {
				continue
			}
			view.Folder = &folder
		default:
			continue
		}

		views = append(views, view)
	}

	return views, nil
}
