package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/config"

	"github.com/google/uuid"
)

// ObjectStore 文件本体的存放后端（本地磁盘或 S3 兼容对象存储）
// Put 成功后返回对外可访问的 URL；Delete 必须确认对象被删除
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// NewObjectKey 生成按日期分桶的唯一对象键，如 2026/08/31/<uuid>.pdf
func NewObjectKey(ext string) string {
	now := time.Now()
	return path.Join(now.Format("2006"), now.Format("01"), now.Format("02"), uuid.New().String()+ext)
}

// NewFromConfig 根据配置选择对象存储实现
func NewFromConfig(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	switch cfg.Type {
	case "s3":
		store, err := NewS3Store(ctx, cfg.S3, timeout)
		if err != nil {
			return nil, fmt.Errorf("初始化 S3 存储失败: %w", err)
		}
		log.Printf("✅ 对象存储(s3)已就绪: bucket=%s", cfg.S3.Bucket)
		return store, nil
	case "local":
		fallthrough
	default:
		store, err := NewLocalStore(cfg.Path, cfg.URLPrefix)
		if err != nil {
			return nil, fmt.Errorf("初始化本地存储失败: %w", err)
		}
		log.Printf("✅ 对象存储(local)已就绪: path=%s", cfg.Path)
		return store, nil
	}
}
