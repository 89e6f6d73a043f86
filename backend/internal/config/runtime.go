package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ModeLocal 表示使用内置 SQLite 的本地开发模式。
	ModeLocal = "local"
	// ModeOnline 表示连接 MySQL 的默认在线模式。
	ModeOnline = "online"

	defaultLocalDBRelPath = "data/gamecrowd-local.db"
	defaultHTTPPort       = "8080"
)

// RuntimeFlags 汇总运行期所需的模式与监听配置。
type RuntimeFlags struct {
	Mode        string
	Port        string
	LocalDBPath string
}

// IsLocal 报告当前是否运行在本地 SQLite 模式。
func (f RuntimeFlags) IsLocal() bool {
	return f.Mode == ModeLocal
}

// LoadRuntimeFlags 读取环境变量，推导当前运行模式及本地数据库路径。
func LoadRuntimeFlags() RuntimeFlags {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("APP_MODE")))
	if mode != ModeLocal {
		mode = ModeOnline
	}

	port := strings.TrimSpace(os.Getenv("HTTP_PORT"))
	if port == "" {
		port = defaultHTTPPort
	}

	dbPath := strings.TrimSpace(os.Getenv("LOCAL_SQLITE_PATH"))
	if dbPath == "" {
		dbPath = defaultLocalDBRelPath
	}

	return RuntimeFlags{
		Mode:        mode,
		Port:        port,
		LocalDBPath: normalisePath(dbPath),
	}
}

// normalisePath 将路径展开为绝对路径，兼容 ~ 前缀与相对路径。
func normalisePath(raw string) string {
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			raw = filepath.Join(home, strings.TrimPrefix(raw, "~"))
		}
	}
	if filepath.IsAbs(raw) {
		return raw
	}
	if abs, err := filepath.Abs(raw); err == nil {
		return abs
	}
	return raw
}
