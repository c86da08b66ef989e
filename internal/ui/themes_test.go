package ui

import (
	"os"
	"testing"
)

// TestInitTheme verifies that InitTheme respects the noColor flag and the
// NO_COLOR environment variable.
func TestInitTheme(t *testing.T) {
	originalTheme := GetCurrentTheme()
	originalNoColor, hadNoColor := os.LookupEnv("NO_COLOR")
	t.Cleanup(func() {
		SetCurrentTheme(originalTheme)
		if hadNoColor {
			os.Setenv("NO_COLOR", originalNoColor)
		} else {
			os.Unsetenv("NO_COLOR")
		}
	})

	t.Run("noColor flag true disables colors", func(t *testing.T) {
		os.Unsetenv("NO_COLOR")
		InitTheme(true)
		current := GetCurrentTheme()
		if current.Name != "none" {
			t.Errorf("InitTheme(true): got theme %q, want %q", current.Name, "none")
		}
		if current.Primary != "" {
			t.Errorf("InitTheme(true): Primary should be empty, got %q", current.Primary)
		}
	})

	t.Run("noColor flag false uses dark theme", func(t *testing.T) {
		os.Unsetenv("NO_COLOR")
		InitTheme(false)
		if current := GetCurrentTheme(); current.Name != "dark" {
			t.Errorf("InitTheme(false): got theme %q, want %q", current.Name, "dark")
		}
	})

	t.Run("NO_COLOR set disables colors", func(t *testing.T) {
		os.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if current := GetCurrentTheme(); current.Name != "none" {
			t.Errorf("InitTheme with NO_COLOR=1: got theme %q, want %q", current.Name, "none")
		}
	})

	t.Run("NO_COLOR empty value still disables colors", func(t *testing.T) {
		os.Setenv("NO_COLOR", "")
		InitTheme(false)
		if current := GetCurrentTheme(); current.Name != "none" {
			t.Errorf("InitTheme with NO_COLOR='': got theme %q, want %q", current.Name, "none")
		}
	})
}

// TestThemeColors verifies that theme colors are properly defined.
func TestThemeColors(t *testing.T) {
	t.Run("DarkTheme has non-empty colors", func(t *testing.T) {
		if DarkTheme.Primary == "" || DarkTheme.Success == "" || DarkTheme.Error == "" {
			t.Error("DarkTheme should define Primary, Success and Error")
		}
		if DarkTheme.Reset == "" {
			t.Error("DarkTheme.Reset should not be empty")
		}
	})

	t.Run("LightTheme has non-empty colors", func(t *testing.T) {
		if LightTheme.Primary == "" || LightTheme.Success == "" || LightTheme.Error == "" {
			t.Error("LightTheme should define Primary, Success and Error")
		}
	})

	t.Run("NoColorTheme has all empty colors", func(t *testing.T) {
		if NoColorTheme.Primary != "" || NoColorTheme.Success != "" || NoColorTheme.Reset != "" {
			t.Errorf("NoColorTheme should be entirely empty, got %+v", NoColorTheme)
		}
	})
}

// TestColorFunctions verifies that color functions return current theme values.
func TestColorFunctions(t *testing.T) {
	originalTheme := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(originalTheme) })

	t.Run("Color functions with DarkTheme", func(t *testing.T) {
		SetCurrentTheme(DarkTheme)
		if ColorReset() != DarkTheme.Reset {
			t.Errorf("ColorReset() = %q, want %q", ColorReset(), DarkTheme.Reset)
		}
		if ColorGreen() != DarkTheme.Success {
			t.Errorf("ColorGreen() = %q, want %q", ColorGreen(), DarkTheme.Success)
		}
		if ColorRed() != DarkTheme.Error {
			t.Errorf("ColorRed() = %q, want %q", ColorRed(), DarkTheme.Error)
		}
	})

	t.Run("Color functions with NoColorTheme", func(t *testing.T) {
		SetCurrentTheme(NoColorTheme)
		if ColorReset() != "" || ColorGreen() != "" || ColorRed() != "" {
			t.Error("color functions should return empty strings with the none theme")
		}
	})
}
