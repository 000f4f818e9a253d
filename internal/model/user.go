package model

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"unique;index;size:255;not null"`
	Password     string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"default:user"`
	TotalStorage int64     `json:"total_storage" gorm:"not null"` // 存储配额上限 (Bytes)
	UsedStorage  int64     `json:"used_storage" gorm:"default:0"` // 已用存储空间 (Bytes)
	RefreshToken string    `json:"-"`
	Folders      []Folder  `json:"-"`
	Files        []File    `json:"-"`
}
