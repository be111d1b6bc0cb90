package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCREENSHOT_TOOL_ENV", "/nonexistent/.env")
	for _, key := range []string{
		"SAVE_DIR", "HOTKEY_FULL", "HOTKEY_REGION", "DEFAULT_COLOR",
		"BRUSH_SIZE", "FONT_SIZE", "MIN_SELECTION_SPAN", "CAPTURE_DELAY_SEC",
		"ENABLE_FILE_LOGGING", "SCREENSHOT_TOOL_PORT_START", "SCREENSHOT_TOOL_PORT_END",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HotkeyFull != "Ctrl+Shift+S" {
		t.Errorf("HotkeyFull = %q, want Ctrl+Shift+S", cfg.HotkeyFull)
	}
	if cfg.HotkeyRegion != "Ctrl+Shift+R" {
		t.Errorf("HotkeyRegion = %q, want Ctrl+Shift+R", cfg.HotkeyRegion)
	}
	if cfg.DefaultColor != "yellow" {
		t.Errorf("DefaultColor = %q, want yellow", cfg.DefaultColor)
	}
	if cfg.BrushSize != 20 {
		t.Errorf("BrushSize = %d, want 20", cfg.BrushSize)
	}
	if cfg.FontSize != 24 {
		t.Errorf("FontSize = %d, want 24", cfg.FontSize)
	}
	if cfg.MinSelectionSpan != 2 {
		t.Errorf("MinSelectionSpan = %d, want 2", cfg.MinSelectionSpan)
	}
	if cfg.EnableFileLogging {
		t.Error("EnableFileLogging should default to false")
	}
	if cfg.PortStart != 49600 || cfg.PortEnd != 49650 {
		t.Errorf("port range = %d-%d, want 49600-49650", cfg.PortStart, cfg.PortEnd)
	}
}

func TestLoadClampsValues(t *testing.T) {
	t.Setenv("SCREENSHOT_TOOL_ENV", "/nonexistent/.env")
	t.Setenv("BRUSH_SIZE", "500")
	t.Setenv("FONT_SIZE", "2000")
	t.Setenv("CAPTURE_DELAY_SEC", "-3")
	t.Setenv("SCREENSHOT_TOOL_PORT_START", "50000")
	t.Setenv("SCREENSHOT_TOOL_PORT_END", "40000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BrushSize != 50 {
		t.Errorf("BrushSize = %d, want clamp to 50", cfg.BrushSize)
	}
	if cfg.FontSize != 72 {
		t.Errorf("FontSize = %d, want clamp to 72", cfg.FontSize)
	}
	if cfg.CaptureDelaySec != 0 {
		t.Errorf("CaptureDelaySec = %d, want clamp to 0", cfg.CaptureDelaySec)
	}
	if cfg.PortEnd != cfg.PortStart {
		t.Errorf("PortEnd = %d, want PortStart %d", cfg.PortEnd, cfg.PortStart)
	}
}

func TestLoadIgnoresGarbageInts(t *testing.T) {
	t.Setenv("SCREENSHOT_TOOL_ENV", "/nonexistent/.env")
	t.Setenv("BRUSH_SIZE", "thick")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BrushSize != 20 {
		t.Errorf("BrushSize = %d, want default 20", cfg.BrushSize)
	}
}
