package client

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewGORMSQLite 打开本地模式使用的 SQLite 数据库，必要时创建所在目录。
func NewGORMSQLite(path string) (*gorm.DB, *sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("open gorm sqlite: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("extract sql db: %w", err)
	}

	// SQLite 写并发能力有限，收紧连接池避免 database is locked。
	sqlDB.SetMaxOpenConns(1)

	return gormDB, sqlDB, nil
}
