package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore 本地磁盘实现，对象键直接映射为 root 下的相对路径
type LocalStore struct {
	root      string
	urlPrefix string
}

func NewLocalStore(root string, urlPrefix string) (*LocalStore, error) {
	if root == "" {
		root = "uploads/files"
	}
	if urlPrefix == "" {
		urlPrefix = "/files/"
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root, urlPrefix: urlPrefix}, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer func() { _ = out.Close() }()

	if _, err = io.Copy(out, r); err != nil {
		// 写入失败时不留下半截文件
		_ = os.Remove(dst)
		return "", err
	}

	return s.PublicURL(key), nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	// 对象已不存在视为删除成功
	return nil
}

func (s *LocalStore) PublicURL(key string) string {
	prefix := s.urlPrefix
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + key
}
