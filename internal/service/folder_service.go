package service

import (
	"errors"
	"log"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/common"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"

	"gorm.io/gorm"
)

// siblingFolderExists 检查同一用户同一父目录下是否已有同名文件夹
func siblingFolderExists(uid uint, name string, parentID *uint, excludeID uint) (bool, error) {
	query := db.DB.Model(&model.Folder{}).
		Where("user_id = ? AND name = ? AND is_deleted = ?", uid, name, false)
	if parentID == nil {
		query = query.Where("parent_folder_id IS NULL")
	} else {
		query = query.Where("parent_folder_id = ?", *parentID)
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateFolder 创建文件夹，parentID 为 nil 表示根目录
func CreateFolder(uid uint, name string, parentID *uint) (*model.Folder, error) {
	if name == "" {
		return nil, common.NewValidationError("请提供文件夹名称")
	}

	if parentID != nil {
		var parent model.Folder
		if err := db.DB.Where("is_deleted = ?", false).First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.NewNotFoundError("父文件夹不存在")
			}
			return nil, common.NewInternalError("创建文件夹失败")
		}
	}

	exists, err := siblingFolderExists(uid, name, parentID, 0)
	if err != nil {
		log.Printf("Check sibling folder error: %v\n", err)
		return nil, common.NewInternalError("创建文件夹失败")
	}
	if exists {
		return nil, common.NewConflictError("同级目录下已存在同名文件夹")
	}

	folder := model.Folder{
		Name:           name,
		UserID:         uid,
		ParentFolderID: parentID,
	}
	if err := db.DB.Create(&folder).Error; err != nil {
		log.Printf("Create folder error: %v\n", err)
		return nil, common.NewInternalError("创建文件夹失败")
	}

	return &folder, nil
}

// RenameFolder 重命名文件夹，仅限所有者
func RenameFolder(folderID uint, uid uint, newName string) (*model.Folder, error) {
	if newName == "" {
		return nil, common.NewValidationError("请提供新的文件夹名称")
	}

	var folder model.Folder
	if err := db.DB.First(&folder, folderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("文件夹不存在")
		}
		return nil, common.NewInternalError("重命名失败")
	}

	if folder.UserID != uid {
		return nil, common.NewForbiddenError("无权重命名该文件夹")
	}

	exists, err := siblingFolderExists(uid, newName, folder.ParentFolderID, folder.ID)
	if err != nil {
		return nil, common.NewInternalError("重命名失败")
	}
	if exists {
		return nil, common.NewConflictError("同级目录下已存在同名文件夹")
	}

	if err := db.DB.Model(&folder).Update("name", newName).Error; err != nil {
		log.Printf("Rename folder error: %v\n", err)
		return nil, common.NewInternalError("重命名失败")
	}

	return &folder, nil
}

// SoftDeleteFolder 标记删除文件夹（不级联子文件夹和文件）
func SoftDeleteFolder(folderID uint, uid uint) error {
	var folder model.Folder
	if err := db.DB.First(&folder, folderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("文件夹不存在")
		}
		return common.NewInternalError("删除失败")
	}

	if folder.UserID != uid {
		return common.NewForbiddenError("无权删除该文件夹")
	}

	if err := db.DB.Model(&folder).Update("is_deleted", true).Error; err != nil {
		log.Printf("Soft delete folder error: %v\n", err)
		return common.NewInternalError("删除失败")
	}

	return nil
}

// ListFolders 列出用户所有未删除的文件夹（平铺，层级由客户端按 parent_folder_id 还原）
func ListFolders(uid uint) ([]model.Folder, error) {
	folders := make([]model.Folder, 0)
	if err := db.DB.Where("user_id = ? AND is_deleted = ?", uid, false).
		Order("id ASC").Find(&folders).Error; err != nil {
		log.Printf("List folders error: %v\n", err)
		return nil, common.NewInternalError("获取文件夹列表失败")
	}
	return folders, nil
}
