package model

import "time"

type File struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Filename  string    `json:"filename" gorm:"not null"`
	FileURL   string    `json:"file_url" gorm:"not null"`
	// StorageKey 对象存储中的键，删除远端对象时需要
	StorageKey  string `json:"-" gorm:"not null;unique"`
	ContentType string `json:"content_type" gorm:"not null"`
	Size        int64  `json:"size" gorm:"not null"`
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	User        User   `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	// FolderID 为 nil 表示根目录
	FolderID  *uint `json:"folder_id" gorm:"index"`
	IsDeleted bool  `json:"is_deleted" gorm:"default:false"`
}
