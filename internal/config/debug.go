package config

import "os"

func IsDebug() bool {
	return os.Getenv("PROTOX_DEBUG") == "1"
}
