// Package protonhax wraps the protonhax command-line tool, which tracks
// Steam games running under Proton and can launch extra executables inside
// a game's Proton prefix.
package protonhax

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoRunningGame is returned by ListRunning when protonhax reports no
// active game session.
var ErrNoRunningGame = errors.New("no running game found")

// Client runs protonhax commands.
type Client struct {
	// Command builds the command to execute; tests replace it to avoid
	// requiring a protonhax install.
	Command func(name string, args ...string) *exec.Cmd
}

// NewClient creates a client that shells out to the real protonhax binary.
func NewClient() *Client {
	return &Client{Command: exec.Command}
}

// ListRunning runs `protonhax ls` and returns the app id of the running
// game. The output's trailing whitespace-separated token is the id.
func (c *Client) ListRunning() (string, error) {
	cmd := c.Command("protonhax", "ls")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("'protonhax' command not found, is protonhax installed?")
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("'protonhax ls' failed: %s", msg)
		}
		return "", fmt.Errorf("'protonhax ls' failed: %w", err)
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		return "", ErrNoRunningGame
	}

	fields := strings.Fields(output)
	appID := fields[len(fields)-1]
	if !isDigits(appID) {
		return "", fmt.Errorf("could not parse app id from output: %q", output)
	}
	return appID, nil
}

// Run launches exe inside the Proton prefix of the game identified by
// appID via `protonhax run`. A non-zero exit from the launched program is
// not treated as an error.
func (c *Client) Run(appID, exe string) error {
	cmd := c.Command("protonhax", "run", appID, exe)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("'protonhax' command not found, is protonhax installed?")
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("'protonhax run' failed: %w", err)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
