// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnvFile loads variables from the file named by a --env-file argument.
// Variables already present in the environment are not overridden.
func LoadEnvFile() {
	envOnce.Do(func() {
		envFile := EnvFileArg(os.Args[1:])
		if envFile == "" {
			return
		}
		fmt.Printf("Loading environment variables from file: %s\n", envFile)
		if err := godotenv.Load(envFile); err != nil {
			fmt.Printf("Failed to load env file: %s\n", err)
		}
	})
}

func EnvFileArg(args []string) string {
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func GetEnv(key string, defaultValue ...string) string {
	LoadEnvFile()
	if v := os.Getenv(key); v != "" {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func GetEnvInt(key string, defaultValue int) int {
	v := GetEnv(key)
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		Logger.Warnf("Ignoring invalid integer for %s: %q", key, v)
		return defaultValue
	}
	return i
}
