package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnvFiles 按优先级加载 .env.local 与 .env，进程内只执行一次。
// 从当前目录一路向上查找，方便在 backend/ 子目录或仓库根目录启动。
// 测试场景可通过 CONFIG_SKIP_ENV_LOAD=1 跳过，避免被宿主机的配置污染。
func LoadEnvFiles() {
	if os.Getenv("CONFIG_SKIP_ENV_LOAD") == "1" {
		return
	}

	envOnce.Do(func() {
		for _, name := range []string{".env.local", ".env"} {
			path, ok := findUp(name)
			if !ok {
				continue
			}
			if err := godotenv.Overload(path); err != nil {
				log.Printf("[config] skip environment file %s: %v", path, err)
				continue
			}
			log.Printf("[config] loaded environment file: %s", path)
		}
	})
}

// findUp 从工作目录向上逐级查找指定文件。
func findUp(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
