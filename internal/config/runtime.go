package config

import (
	"os"
	"path/filepath"
)

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("MEMO_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = ".memobot"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

// EnvPath is the .env file inside a runtime directory.
func EnvPath(runtimePath string) string {
	return filepath.Join(runtimePath, ".env")
}
