// Package desktop opens documents and writes to the clipboard using the
// host platform's own utilities.
package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
)

const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Verify interface compliance.
var _ driven.Desktop = (*Desktop)(nil)

// Desktop dispatches open and copy requests to platform commands.
type Desktop struct {
	goos     string
	lookPath func(file string) (string, error)
	start    func(ctx context.Context, name string, args ...string) error
	run      func(ctx context.Context, stdin, name string, args ...string) error
}

// New returns a Desktop for the running platform.
func New() *Desktop {
	return &Desktop{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startCommand,
		run:      runCommand,
	}
}

// Open hands target to the platform's default handler without waiting for it.
func (d *Desktop) Open(ctx context.Context, target string) error {
	if target == "" {
		return fmt.Errorf("nothing to open")
	}

	switch d.goos {
	case osDarwin:
		return d.start(ctx, "open", target)
	case osLinux:
		return d.start(ctx, "xdg-open", target)
	case osWindows:
		return d.start(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", d.goos)
	}
}

// Copy places text on the system clipboard.
func (d *Desktop) Copy(ctx context.Context, text string) error {
	switch d.goos {
	case osDarwin:
		return d.run(ctx, text, "pbcopy")
	case osLinux:
		if _, err := d.lookPath("xclip"); err == nil {
			return d.run(ctx, text, "xclip", "-selection", "clipboard")
		}
		if _, err := d.lookPath("xsel"); err == nil {
			return d.run(ctx, text, "xsel", "--clipboard", "--input")
		}
		return fmt.Errorf("no clipboard utility found (install xclip or xsel)")
	case osWindows:
		return d.run(ctx, text, "cmd", "/c", "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", d.goos)
	}
}

// startCommand launches a detached handler. The handler outlives ctx, so ctx
// only gates whether it is started at all.
func startCommand(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func runCommand(ctx context.Context, stdin, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
