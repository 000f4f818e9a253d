package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/common"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/storage"

	"gorm.io/gorm"
)

var objectStore storage.ObjectStore

// SetObjectStore 注入对象存储实现（启动时和测试中调用）
func SetObjectStore(store storage.ObjectStore) {
	objectStore = store
}

var errQuotaExceeded = errors.New("quota exceeded")

// inferExtension 从原始文件名或 Content-Type 推断扩展名
func inferExtension(filename string, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// UploadFile 处理文件上传核心业务
// 包括：大小校验、远端对象写入、配额检查与记录落库
// 配额检查通过单条条件 UPDATE 完成，并发上传不会突破配额上限
func UploadFile(ctx context.Context, uid uint, file *multipart.FileHeader, folderID *uint) (*model.File, error) {
	if file == nil {
		return nil, common.NewForbiddenError("请上传文件")
	}

	maxSizeMB := GetInt(consts.ConfigMaxUploadSize)
	if maxSizeMB > 0 && file.Size > int64(maxSizeMB)*1024*1024 {
		return nil, common.NewValidationError(fmt.Sprintf("文件大小不能超过 %dMB", maxSizeMB))
	}

	if _, err := GetUserByID(uid); err != nil {
		return nil, err
	}

	if folderID != nil {
		var folder model.Folder
		if err := db.DB.Where("is_deleted = ?", false).First(&folder, *folderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.NewNotFoundError("目标文件夹不存在")
			}
			return nil, common.NewInternalError("文件上传失败")
		}
		if folder.UserID != uid {
			return nil, common.NewForbiddenError("无权上传到该文件夹")
		}
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ext := inferExtension(file.Filename, contentType)
	filename := strings.TrimSpace(file.Filename)
	if filename == "" {
		// 原始文件名缺失时按时间戳生成
		filename = fmt.Sprintf("upload-%d%s", time.Now().Unix(), ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, common.NewInternalError("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	key := storage.NewObjectKey(ext)

	fileURL, err := objectStore.Put(ctx, key, src, file.Size, contentType)
	if err != nil {
		log.Printf("Object store put error: %v\n", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, common.NewTimeoutError("上传远端存储超时")
		}
		return nil, common.NewInternalError("文件上传失败")
	}

	fileRecord := model.File{
		Filename:    filename,
		FileURL:     fileURL,
		StorageKey:  key,
		ContentType: contentType,
		Size:        file.Size,
		UserID:      uid,
		FolderID:    folderID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// 条件自增：只有结果不超过配额时才会更新到行
		res := tx.Model(&model.User{}).
			Where("id = ? AND used_storage + ? <= total_storage", uid, file.Size).
			UpdateColumn("used_storage", gorm.Expr("used_storage + ?", file.Size))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errQuotaExceeded
		}

		return tx.Create(&fileRecord).Error
	})

	if err != nil {
		// 落库失败时回收已写入的远端对象
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if delErr := objectStore.Delete(cleanupCtx, key); delErr != nil {
			log.Printf("Cleanup object error: %v, key: %s\n", delErr, key)
		}

		if errors.Is(err, errQuotaExceeded) {
			return nil, common.NewQuotaExceededError("存储空间不足，上传失败")
		}
		log.Printf("Upload file DB error: %v\n", err)
		return nil, common.NewInternalError("文件上传失败")
	}

	return &fileRecord, nil
}

// ListFiles 列出用户的全部文件；没有文件时返回空列表而不是错误
func ListFiles(uid uint) ([]model.File, error) {
	files := make([]model.File, 0)
	if err := db.DB.Where("user_id = ? AND is_deleted = ?", uid, false).
		Order("id ASC").Find(&files).Error; err != nil {
		log.Printf("List files error: %v\n", err)
		return nil, common.NewInternalError("获取文件列表失败")
	}
	return files, nil
}

// DeleteFile 物理删除文件：先确认远端对象删除成功，再在一个事务内
// 删除记录、清理分享条目并回收配额（下限钳制为 0）
func DeleteFile(ctx context.Context, fileID uint, uid uint) error {
	var file model.File
	if err := db.DB.First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("文件不存在")
		}
		return common.NewInternalError("删除失败")
	}

	if file.UserID != uid {
		return common.NewForbiddenError("无权删除该文件")
	}

	if _, err := GetUserByID(file.UserID); err != nil {
		return err
	}

	// 远端删除未确认时不得动配额和记录，避免产生孤儿配额
	if err := objectStore.Delete(ctx, file.StorageKey); err != nil {
		log.Printf("Object store delete error: %v, key: %s\n", err, file.StorageKey)
		if errors.Is(err, context.DeadlineExceeded) {
			return common.NewTimeoutError("删除远端存储超时")
		}
		return common.NewDeleteFailedError("远端文件删除失败")
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&file).Error; err != nil {
			return err
		}

		// 连带清理该文件的分享记录
		var shared model.SharedAccess
		findErr := tx.Where("resource_id = ? AND resource_type = ?", file.ID, model.ResourceTypeFile).
			First(&shared).Error
		if findErr == nil {
			if err := tx.Where("shared_access_id = ?", shared.ID).Delete(&model.SharedGrant{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&shared).Error; err != nil {
				return err
			}
		} else if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 回收配额，下限钳制为 0
		return tx.Model(&model.User{}).Where("id = ?", file.UserID).
			UpdateColumn("used_storage",
				gorm.Expr("CASE WHEN used_storage >= ? THEN used_storage - ? ELSE 0 END", file.Size, file.Size)).Error
	})

	if err != nil {
		log.Printf("Delete file DB error: %v\n", err)
		return common.NewInternalError("删除失败")
	}

	return nil
}

// MoveFile 移动文件到指定文件夹，destFolderID 为 nil 表示移动到根目录
func MoveFile(fileID uint, uid uint, destFolderID *uint) (*model.File, error) {
	var file model.File
	if err := db.DB.First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("文件不存在")
		}
		return nil, common.NewInternalError("移动失败")
	}

	if file.UserID != uid {
		return nil, common.NewForbiddenError("无权移动该文件")
	}

	if destFolderID != nil {
		var folder model.Folder
		if err := db.DB.Where("is_deleted = ?", false).First(&folder, *destFolderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.NewNotFoundError("目标文件夹不存在")
			}
			return nil, common.NewInternalError("移动失败")
		}
		if folder.UserID != uid {
			return nil, common.NewForbiddenError("无权移动到该文件夹")
		}
	}

	if err := db.DB.Model(&file).Update("folder_id", destFolderID).Error; err != nil {
		log.Printf("Move file error: %v\n", err)
		return nil, common.NewInternalError("移动失败")
	}

	return &file, nil
}
