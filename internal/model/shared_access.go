package model

import (
	"strings"
	"time"
)

type ResourceType string

const (
	ResourceTypeFile   ResourceType = "File"
	ResourceTypeFolder ResourceType = "Folder"
)

type AccessType string

const (
	AccessTypeView  AccessType = "view"
	AccessTypeEdit  AccessType = "edit"
	AccessTypeOwner AccessType = "owner"
)

// ParseResourceType 归一化资源类型输入（大小写不敏感）
func ParseResourceType(s string) (ResourceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return ResourceTypeFile, true
	case "folder":
		return ResourceTypeFolder, true
	default:
		return "", false
	}
}

// ParseAccessType 归一化权限类型输入
func ParseAccessType(s string) (AccessType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "view":
		return AccessTypeView, true
	case "edit":
		return AccessTypeEdit, true
	case "owner":
		return AccessTypeOwner, true
	default:
		return "", false
	}
}

// ResourceRef 带类型标签的资源引用
type ResourceRef struct {
	Type ResourceType
	ID   uint
}

// SharedAccess 一个资源对应至多一条记录，授权明细放在 Grants 子表中
type SharedAccess struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	ResourceID   uint          `json:"resource_id" gorm:"not null;uniqueIndex:idx_resource"`
	ResourceType ResourceType  `json:"resource_type" gorm:"not null;size:16;uniqueIndex:idx_resource"`
	SharedBy     uint          `json:"shared_by" gorm:"not null;index"`
	Sharer       User          `gorm:"foreignKey:SharedBy;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	Grants       []SharedGrant `json:"shared_with" gorm:"foreignKey:SharedAccessID;constraint:OnDelete:CASCADE;"`
}

func (s *SharedAccess) Resource() ResourceRef {
	return ResourceRef{Type: s.ResourceType, ID: s.ResourceID}
}

// SharedGrant 单个被授权用户的权限，同一资源下每个用户至多一条
type SharedGrant struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	SharedAccessID uint       `json:"-" gorm:"not null;uniqueIndex:idx_grant_user"`
	UserID         uint       `json:"user_id" gorm:"not null;index;uniqueIndex:idx_grant_user"`
	User           User       `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	AccessType     AccessType `json:"access_type" gorm:"not null;size:16;default:view"`
}
