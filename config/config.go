package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	SaveDir           string
	HotkeyFull        string
	HotkeyRegion      string
	DefaultColor      string
	BrushSize         int
	FontSize          int
	MinSelectionSpan  int
	CaptureDelaySec   int
	EnableFileLogging bool
	PortStart         int
	PortEnd           int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or executable directory
	envPaths := []string{".env"}
	if custom := os.Getenv("SCREENSHOT_TOOL_ENV"); custom != "" {
		envPaths = []string{custom}
	} else if execPath, err := os.Executable(); err == nil {
		// If running as executable, also try the executable's directory
		execDir := filepath.Dir(execPath)
		envPaths = append(envPaths, filepath.Join(execDir, ".env"))
	}

	// Try to load .env file (ignore errors if file doesn't exist)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}

	cfg := &Config{
		SaveDir:           os.Getenv("SAVE_DIR"),
		HotkeyFull:        getEnvWithDefault("HOTKEY_FULL", "Ctrl+Shift+S"),
		HotkeyRegion:      getEnvWithDefault("HOTKEY_REGION", "Ctrl+Shift+R"),
		DefaultColor:      getEnvWithDefault("DEFAULT_COLOR", "yellow"),
		BrushSize:         getEnvInt("BRUSH_SIZE", 20),
		FontSize:          getEnvInt("FONT_SIZE", 24),
		MinSelectionSpan:  getEnvInt("MIN_SELECTION_SPAN", 2),
		CaptureDelaySec:   getEnvInt("CAPTURE_DELAY_SEC", 0),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		PortStart:         getEnvInt("SCREENSHOT_TOOL_PORT_START", 49600),
		PortEnd:           getEnvInt("SCREENSHOT_TOOL_PORT_END", 49650),
	}

	// Brush sizes follow the editor's slider range
	if cfg.BrushSize < 5 {
		cfg.BrushSize = 5
	}
	if cfg.BrushSize > 50 {
		cfg.BrushSize = 50
	}
	if cfg.FontSize < 8 {
		cfg.FontSize = 8
	}
	if cfg.FontSize > 72 {
		cfg.FontSize = 72
	}
	if cfg.CaptureDelaySec < 0 {
		cfg.CaptureDelaySec = 0
	}
	if cfg.PortEnd < cfg.PortStart {
		cfg.PortEnd = cfg.PortStart
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}
