package client

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	mysqlDriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	defaultMySQLPort     = 3306
	defaultMySQLDatabase = "gamecrowd"
	defaultMySQLParams   = "charset=utf8mb4&parseTime=true&loc=Local"
)

// MySQLConfig 描述在线模式的数据库连接配置项，全部来自环境变量。
type MySQLConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Params   string
}

// LoadMySQLConfigFromEnv 从环境变量读取 MySQL 配置并填充默认值。
func LoadMySQLConfigFromEnv() (MySQLConfig, error) {
	cfg := MySQLConfig{
		Host:     strings.TrimSpace(os.Getenv("MYSQL_HOST")),
		Username: strings.TrimSpace(os.Getenv("MYSQL_USERNAME")),
		Password: os.Getenv("MYSQL_PASSWORD"),
		Database: strings.TrimSpace(os.Getenv("MYSQL_DATABASE")),
		Params:   strings.TrimSpace(os.Getenv("MYSQL_PARAMS")),
		Port:     defaultMySQLPort,
	}
	if rawPort := strings.TrimSpace(os.Getenv("MYSQL_PORT")); rawPort != "" {
		parsed, err := strconv.Atoi(rawPort)
		if err != nil || parsed <= 0 {
			return MySQLConfig{}, fmt.Errorf("invalid MYSQL_PORT %q", rawPort)
		}
		cfg.Port = parsed
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Username == "" {
		return MySQLConfig{}, fmt.Errorf("MYSQL_USERNAME is required in online mode")
	}
	if cfg.Database == "" {
		cfg.Database = defaultMySQLDatabase
	}
	if cfg.Params == "" {
		cfg.Params = defaultMySQLParams
	}
	return cfg, nil
}

// BuildMySQLDSN 拼接 go-sql-driver 格式的 DSN。
func BuildMySQLDSN(cfg MySQLConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		url.QueryEscape(cfg.Username),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.Params,
	)
}

// NewGORMMySQL 创建 GORM 连接并返回 ORM 与底层 *sql.DB，便于控制生命周期。
func NewGORMMySQL(cfg MySQLConfig) (*gorm.DB, *sql.DB, error) {
	dsn := BuildMySQLDSN(cfg)

	gormDB, err := gorm.Open(mysqlDriver.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("open gorm mysql: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("extract sql db: %w", err)
	}

	sqlDB.SetConnMaxLifetime(60 * time.Minute)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}

	return gormDB, sqlDB, nil
}
