package logger

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mdnishan/reportcron/internal/types"
)

// DefaultConfig returns the default logger configuration
func DefaultConfig() *types.LoggerConfig {
	return &types.LoggerConfig{
		Level:           "info",
		Format:          "text",
		Output:          "stdout",
		FilePath:        "",
		TimestampFormat: "2006-01-02 15:04:05.000",
		ShowCaller:      false,
		Colors:          true,
	}
}

// getDefaultLogPath returns the default log file path based on OS
func getDefaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = "C:\\ProgramData"
		}
		return filepath.Join(programData, "reportcron", "logs", "reportcrond.log")
	default: // linux, darwin and other unix-like
		return "/var/log/reportcrond.log"
	}
}
