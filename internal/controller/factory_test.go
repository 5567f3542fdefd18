package controller

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewUI_TTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, true)

	if _, ok := ui.(*TUI); !ok {
		t.Errorf("NewUI(true) returned %T, want *TUI", ui)
	}
}

func TestNewUI_NonTTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, false)

	if _, ok := ui.(*SimpleUI); !ok {
		t.Errorf("NewUI(false) returned %T, want *SimpleUI", ui)
	}
}

func TestIsTTY_WithBuffer(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Fatalf("IsTTY(buffer) = true, want false")
	}
}

func TestIsTTY_WithRegularFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "treesel-tty")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	defer file.Close()

	if IsTTY(file) {
		t.Fatalf("IsTTY(regular file) = true, want false")
	}
}

func TestStartOptions(t *testing.T) {
	cfg := newStartConfig()
	if cfg.mode != ModeList || !cfg.showItems {
		t.Fatalf("default config = %+v", cfg)
	}

	cfg = newStartConfig(WithSelectMode(), WithShowItems(false))
	if cfg.mode != ModeSelect || cfg.showItems {
		t.Fatalf("config = %+v, want select mode without items", cfg)
	}

	cfg = newStartConfig(WithSelectMode(), WithListMode())
	if cfg.mode != ModeList {
		t.Fatalf("mode = %v, want list", cfg.mode)
	}
}
