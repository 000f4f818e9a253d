package model

type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;size:64"`
	Value string `json:"value"`
	Desc  string `json:"desc"`
}
