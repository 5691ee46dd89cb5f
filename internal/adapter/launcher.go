package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mmcdole/anidex/internal/domain"
)

// Opener opens resolved entry links in a browser or a configured program
type Opener struct {
	command string   // configured command, empty for system default
	args    []string // extra arguments placed before the URL
	goos    string
	start   func(*exec.Cmd) error
	logger  *slog.Logger
}

// NewOpener creates an Opener. An empty command uses the system handler
// (open, xdg-open or start).
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: strings.TrimSpace(command),
		args:    args,
		goos:    runtime.GOOS,
		start:   (*exec.Cmd).Start,
		logger:  logger,
	}
}

// Open launches url without waiting for the program to exit
func (o *Opener) Open(url string) error {
	if url == "" || url == domain.UnavailableURL {
		return fmt.Errorf("nothing to open for %q", url)
	}

	cmd := o.command
	var args []string
	if cmd != "" {
		args = append(append(args, o.args...), url)
		o.logger.Info("opening with configured command", "command", cmd, "args", args)
	} else {
		cmd, args = systemOpener(o.goos, url)
		o.logger.Info("opening with system default", "os", o.goos, "url", url)
	}

	if err := o.start(exec.Command(cmd, args...)); err != nil {
		o.logger.Error("open failed", "command", cmd, "error", err)
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// systemOpener returns the platform command that hands url to the default handler
func systemOpener(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
