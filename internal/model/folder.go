package model

import "time"

type Folder struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" gorm:"not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	// ParentFolderID 为 nil 表示根目录
	ParentFolderID *uint `json:"parent_folder_id" gorm:"index"`
	IsDeleted      bool  `json:"is_deleted" gorm:"default:false"`
}
