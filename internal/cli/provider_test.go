package cli

import (
	"testing"

	"github.com/agbru/cyclecalc/internal/ui"
)

func TestCLIColorProvider(t *testing.T) {
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.DarkTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })

	p := CLIColorProvider{}
	if p.Yellow() != ui.DarkTheme.Warning {
		t.Errorf("Yellow() = %q, want the theme warning code", p.Yellow())
	}
	if p.Reset() != ui.DarkTheme.Reset {
		t.Errorf("Reset() = %q, want the theme reset code", p.Reset())
	}
}
