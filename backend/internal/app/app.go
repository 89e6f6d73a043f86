package app

import (
	"database/sql"
	"fmt"

	"gamecrowd/backend/internal/config"
	"gamecrowd/backend/internal/domain/catalog"
	"gamecrowd/backend/internal/domain/pledge"
	"gamecrowd/backend/internal/infra/client"

	"gorm.io/gorm"
)

// Resources 聚合进程级共享资源：配置、ORM 与底层连接。
type Resources struct {
	Flags config.RuntimeFlags
	DB    *gorm.DB
	sqlDB *sql.DB
}

// Bootstrap 加载配置并按运行模式建立数据库连接，随后同步表结构。
// 本地模式使用 SQLite，在线模式使用 MySQL，业务代码对此无感。
func Bootstrap() (*Resources, error) {
	config.LoadEnvFiles()
	flags := config.LoadRuntimeFlags()

	var (
		gormDB *gorm.DB
		sqlDB  *sql.DB
		err    error
	)
	if flags.IsLocal() {
		gormDB, sqlDB, err = client.NewGORMSQLite(flags.LocalDBPath)
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
	} else {
		cfg, cfgErr := client.LoadMySQLConfigFromEnv()
		if cfgErr != nil {
			return nil, fmt.Errorf("load mysql config: %w", cfgErr)
		}
		gormDB, sqlDB, err = client.NewGORMMySQL(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
	}

	if err := Migrate(gormDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &Resources{
		Flags: flags,
		DB:    gormDB,
		sqlDB: sqlDB,
	}, nil
}

// Migrate 同步全部领域实体的表结构。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalog.Category{},
		&catalog.Publisher{},
		&catalog.Game{},
		&pledge.StretchGoal{},
		&pledge.Subscription{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close 释放底层数据库连接。
func (r *Resources) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}
