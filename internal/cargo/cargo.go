// Package cargo spawns the build command and reads its JSON message stream.
package cargo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// DefaultCommand is the build tool spawned unless the caller overrides it.
const DefaultCommand = "cargo"

// ErrBuildFailed marks a build that ran but exited non-zero. Callers map it
// to the process exit code.
var ErrBuildFailed = errors.New("build command failed")

// DefaultArgs returns a new argument list with the exporter's default
// options placed directly after the build subcommand: --no-run keeps test
// and bench binaries on disk instead of executing them, and
// --message-format=json turns stdout into the machine-readable stream this
// package consumes. The input slice is not modified.
func DefaultArgs(buildArgs []string) []string {
	if len(buildArgs) == 0 {
		return nil
	}
	out := make([]string, 0, len(buildArgs)+2)
	out = append(out, buildArgs[0])
	out = append(out, "--no-run", "--message-format=json")
	out = append(out, buildArgs[1:]...)
	return out
}

// SplitArgv splits an argument vector on the first literal "--": arguments
// before it belong to goexport, arguments after it are handed to the build
// command verbatim. Without a "--" everything belongs to goexport.
func SplitArgv(argv []string) (self, build []string) {
	for i, a := range argv {
		if a == "--" {
			return argv[:i], argv[i+1:]
		}
	}
	return argv, nil
}

// Runner spawns the build command and collects the artifacts it reports.
type Runner struct {
	// Command is the binary to spawn; DefaultCommand when empty.
	Command string
}

// Run executes the build with the given arguments. Stderr passes through to
// the user unchanged; stdout is the JSON message stream and is consumed
// here. The returned artifacts are in stream order.
func (r Runner) Run(ctx context.Context, args []string) ([]Artifact, error) {
	command := r.Command
	if command == "" {
		command = DefaultCommand
	}

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe %s stdout: %w", command, err)
	}

	log.Debug().Str("command", command).Strs("args", args).Msg("spawning build")
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn %s: %w", command, err)
	}

	artifacts, decodeErr := CollectArtifacts(stdout)
	if decodeErr != nil {
		// Drain the pipe so Wait cannot block on a full buffer.
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := cmd.Wait()
	if decodeErr != nil {
		return nil, decodeErr
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("%w: %s exited with status %d", ErrBuildFailed, command, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("wait for %s: %w", command, waitErr)
	}
	return artifacts, nil
}
