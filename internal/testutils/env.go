package testutils

import "os"

// SetTestEnv 批量设置环境变量并返回恢复函数。
// TestMain 中拿不到 *testing.T，无法使用 t.Setenv，所以需要手动恢复。
func SetTestEnv(vars map[string]string) (restore func()) {
	type prevState struct {
		value string
		had   bool
	}
	prev := make(map[string]prevState, len(vars))
	for key, value := range vars {
		old, had := os.LookupEnv(key)
		prev[key] = prevState{value: old, had: had}
		_ = os.Setenv(key, value)
	}
	return func() {
		for key, state := range prev {
			if state.had {
				_ = os.Setenv(key, state.value)
			} else {
				_ = os.Unsetenv(key)
			}
		}
	}
}
