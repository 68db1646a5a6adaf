// Package app wires together the build run, artifact discovery and the
// export copy step.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goexport/internal/cargo"
	"github.com/hyperifyio/goexport/internal/naming"
)

// App is one export run over a single build invocation.
type App struct {
	cfg    Config
	runner cargo.Runner
}

// New validates cfg and prepares a run.
func New(cfg Config) (*App, error) {
	if strings.TrimSpace(cfg.DestDir) == "" {
		return nil, errors.New("destination path is required")
	}
	if len(cfg.BuildArgs) == 0 {
		return nil, errors.New("build command is required after --")
	}
	return &App{cfg: cfg, runner: cargo.Runner{Command: cfg.Command}}, nil
}

// Run spawns the build, collects the executables it reports and copies each
// one into the destination directory under its normalized name.
func (a *App) Run(ctx context.Context) error {
	if err := os.MkdirAll(a.cfg.DestDir, 0o755); err != nil {
		return fmt.Errorf("create destination %q: %w", a.cfg.DestDir, err)
	}

	args := a.cfg.BuildArgs
	if !a.cfg.NoDefaultOptions {
		args = cargo.DefaultArgs(args)
	}

	artifacts, err := a.runner.Run(ctx, args)
	if err != nil {
		return err
	}

	for _, art := range artifacts {
		if err := a.exportArtifact(art); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(artifacts)).Str("dest", a.cfg.DestDir).Msg("exported binaries")
	return nil
}

// exportArtifact derives the output file name for one artifact and copies
// the executable to the destination. Only the leaf name takes part in name
// derivation; the artifact's directory components never influence it.
func (a *App) exportArtifact(art cargo.Artifact) error {
	name := naming.TargetFileName(filepath.Base(art.Executable), a.cfg.Tag)
	if a.cfg.NFCNames {
		name = naming.NFC(name)
	}
	dst := filepath.Join(a.cfg.DestDir, name)

	log.Debug().Str("from", art.Executable).Str("to", dst).Msg("copying artifact")
	if err := copyFile(art.Executable, dst); err != nil {
		return fmt.Errorf("copy %q to %q: %w", art.Executable, dst, err)
	}
	return nil
}

// copyFile copies src to dst and re-asserts the source file mode afterwards
// so the executable bit survives even when dst already existed.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode().Perm())
}
