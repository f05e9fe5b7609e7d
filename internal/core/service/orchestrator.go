package service

import (
	"context"
	"errors"
	"fmt"
	"iconpad/internal/core/domain"
	"iconpad/internal/core/port"
	"io"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

// Paths are the files a run reads and writes.
type Paths struct {
	Input        string
	Backup       string
	Output       string
	PropagateDir string
}

// FileOrchestrator runs the pad-and-replace sequence on a single icon file.
type FileOrchestrator struct {
	padder         port.IconPadder
	store          port.FileStore
	out            io.Writer
	paths          Paths
	paddingPercent int
}

// NewFileOrchestrator returns an orchestrator that writes progress and the summary to out.
func NewFileOrchestrator(padder port.IconPadder, store port.FileStore, out io.Writer, paths Paths,
	paddingPercent int) *FileOrchestrator {
	return &FileOrchestrator{padder: padder, store: store, out: out, paths: paths, paddingPercent: paddingPercent}
}

// Run returns the process exit code. The input file is only replaced after the
// padded output was written successfully.
func (o *FileOrchestrator) Run(ctx context.Context) int {
	l := log.With().Str("input", o.paths.Input).Logger()

	l.Info().Msg("fixing icon padding and transparency")

	exists, err := o.store.Exists(o.paths.Input)
	if err != nil || !exists {
		err = fmt.Errorf("%w: %s", domain.ErrMissingInput, o.paths.Input)
		l.Error().Err(err).Send()
		o.printf("error: %v\n", err)
		return ExitFailure
	}

	if err := o.ensureBackup(); err != nil {
		o.printf("error: could not back up %s: %v\n", o.paths.Input, err)
		return ExitFailure
	}

	res, err := o.padder.Pad(ctx, o.paths.Input, o.paths.Output, o.paddingPercent)
	if err != nil {
		o.discardOutput()
		l.Error().Err(err).Msg("icon padding failed")
		o.printf("icon padding failed: %s\n", describe(err))
		return ExitFailure
	}

	o.printf("icon padded successfully\n")

	if err := o.store.Move(o.paths.Output, o.paths.Input); err != nil {
		o.printf("error: could not replace %s: %v\n", o.paths.Input, err)
		return ExitFailure
	}
	l.Info().Str("from", o.paths.Output).Msg("replaced original icon")

	o.propagate()

	writeSummary(o.out, o.paddingPercent, res)

	return ExitOK
}

// ensureBackup copies the input to the backup path unless a backup already
// exists. An existing backup is never overwritten.
func (o *FileOrchestrator) ensureBackup() error {
	l := log.With().Str("backup", o.paths.Backup).Logger()

	exists, err := o.store.Exists(o.paths.Backup)
	if err != nil {
		return err
	}

	if exists {
		l.Info().Msg("backup already exists")
		o.printf("backup already exists: %s\n", o.paths.Backup)
		return nil
	}

	if err := o.store.Copy(o.paths.Input, o.paths.Backup); err != nil {
		return err
	}

	l.Info().Msg("created backup")
	o.printf("created backup: %s\n", o.paths.Backup)
	return nil
}

func (o *FileOrchestrator) discardOutput() {
	exists, err := o.store.Exists(o.paths.Output)
	if err == nil && exists {
		o.store.Remove(o.paths.Output)
	}
}

// propagate copies the updated icon into the secondary directory when it
// exists. Failures are logged and do not fail the run.
func (o *FileOrchestrator) propagate() {
	if o.paths.PropagateDir == "" || !o.store.DirExists(o.paths.PropagateDir) {
		log.Debug().Str("dir", o.paths.PropagateDir).Msg("secondary icon directory not present, skipping")
		return
	}

	dst := filepath.Join(o.paths.PropagateDir, filepath.Base(o.paths.Input))
	if err := o.store.Copy(o.paths.Input, dst); err != nil {
		log.Warn().Err(err).Str("dst", dst).Msg("could not update secondary icon")
		o.printf("warning: could not update %s: %v\n", dst, err)
		return
	}

	log.Info().Str("dst", dst).Msg("updated secondary icon")
	o.printf("updated %s\n", dst)
}

func (o *FileOrchestrator) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.out, format, args...)
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidPadding):
		return fmt.Sprintf("invalid padding (%v)", err)
	case errors.Is(err, domain.ErrDecode):
		return fmt.Sprintf("source icon could not be decoded (%v)", err)
	case errors.Is(err, domain.ErrProcessing):
		return fmt.Sprintf("resize or save failed (%v)", err)
	default:
		return err.Error()
	}
}
