package config

import (
	"path/filepath"
)

// ResolvePath anchors a relative path at root. Absolute paths pass through.
func ResolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if root == "" {
		root = "."
	}
	return filepath.Join(root, path)
}

// GetEnvFilePath is the optional dotenv file loaded before config parsing.
func GetEnvFilePath(root string) string {
	return ResolvePath(root, ".env")
}
