package service

import (
	"strconv"
	"sync"

	"github.com/Deepanshu902/Google-Drive-Clone/internal/consts"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/db"
	"github.com/Deepanshu902/Google-Drive-Clone/internal/model"
)

// 运行期可调的开关存放在 Setting 表中，读取路径带进程内缓存。
var settingsCache sync.Map

// settingMissing 缓存中的"查过但不存在"标记，避免反复打库。
const settingMissing = "||__NOT_FOUND__||"

var DefaultSettings = []model.Setting{
	{Key: consts.ConfigAllowRegister, Value: "true", Desc: "是否开放注册 (true/false)"},
	{Key: consts.ConfigMaxUploadSize, Value: "100", Desc: "单个文件最大大小 (MB)"},
	{Key: consts.ConfigMaxRequestBodyKB, Value: "16", Desc: "非文件上传接口最大请求体限制 (KB)"},
	{Key: consts.ConfigDefaultStorageQuota, Value: "1073741824", Desc: "默认用户存储配额 (Bytes, 默认为1GB)"},
	{Key: consts.ConfigRateLimitEnabled, Value: "true", Desc: "是否开启接口限流"},
	{Key: consts.ConfigRateLimitAuthRPS, Value: "0.5", Desc: "认证接口每秒请求限制 (RPS)"},
	{Key: consts.ConfigRateLimitAuthBurst, Value: "5", Desc: "认证接口突发请求限制"},
	{Key: consts.ConfigRateLimitUploadRPS, Value: "1.0", Desc: "上传接口每秒请求限制 (RPS)"},
	{Key: consts.ConfigRateLimitUploadBurst, Value: "5", Desc: "上传接口突发请求限制"},
}

// ClearCache 清空设置缓存，修改 Setting 表后调用以便立即生效。
func ClearCache() {
	settingsCache.Range(func(key, value interface{}) bool {
		settingsCache.Delete(key)
		return true
	})
}

// InitializeSettings 把缺失的默认配置项写入数据库。
func InitializeSettings() {
	for _, def := range DefaultSettings {
		var count int64
		db.DB.Model(&model.Setting{}).Where("key = ?", def.Key).Count(&count)
		if count == 0 {
			db.DB.Create(&def)
		}
	}
}

func defaultFor(key string) (model.Setting, bool) {
	for _, def := range DefaultSettings {
		if def.Key == key {
			return def, true
		}
	}
	return model.Setting{}, false
}

func GetString(key string) string {
	if val, ok := settingsCache.Load(key); ok {
		if strVal, ok := val.(string); ok {
			if strVal == settingMissing {
				return ""
			}
			return strVal
		}
		settingsCache.Delete(key)
	}

	var setting model.Setting
	if err := db.DB.Where("key = ?", key).First(&setting).Error; err == nil {
		settingsCache.Store(key, setting.Value)
		return setting.Value
	}

	// 数据库没有该项：有默认值则补种，否则记一个缺失标记
	if def, ok := defaultFor(key); ok {
		// 并发补种可能撞键，冲突可以忽略
		db.DB.Create(&def)
		settingsCache.Store(key, def.Value)
		return def.Value
	}
	settingsCache.Store(key, settingMissing)
	return ""
}

func GetInt(key string) int {
	val, err := strconv.Atoi(GetString(key))
	if err != nil {
		return 0
	}
	return val
}

func GetInt64(key string) int64 {
	val, err := strconv.ParseInt(GetString(key), 10, 64)
	if err != nil {
		return 0
	}
	return val
}

func GetFloat64(key string) float64 {
	val, err := strconv.ParseFloat(GetString(key), 64)
	if err != nil {
		return 0
	}
	return val
}

func GetBool(key string) bool {
	val, err := strconv.ParseBool(GetString(key))
	if err != nil {
		return false
	}
	return val
}
