package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// LocalStore implements port.FileStore on the local filesystem.
type LocalStore struct{}

// NewLocalStore returns a FileStore backed by the local filesystem.
func NewLocalStore() *LocalStore {
	return &LocalStore{}
}

// Exists reports whether anything exists at path.
func (s *LocalStore) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	err = fmt.Errorf("error checking file %w", err)
	log.Error().Err(err).Str("path", path).Send()
	return false, err
}

// DirExists reports whether path is an existing directory.
func (s *LocalStore) DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Copy stages the content next to dst under a unique name and renames it into
// place, so dst is either the old file or the complete copy.
func (s *LocalStore) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		err = fmt.Errorf("error reading source file %w", err)
		log.Error().Err(err).Str("src", src).Send()
		return err
	}

	tmp, err := stagingPath(dst)
	if err != nil {
		return err
	}

	if err := copyContent(src, tmp, info.Mode().Perm()); err != nil {
		s.Remove(tmp)
		log.Error().Err(err).Str("src", src).Str("dst", dst).Send()
		return err
	}

	if err := os.Chtimes(tmp, info.ModTime(), info.ModTime()); err != nil {
		log.Warn().Err(err).Str("path", tmp).Msg("could not preserve modification time")
	}

	if err := os.Rename(tmp, dst); err != nil {
		s.Remove(tmp)
		err = fmt.Errorf("error replacing destination file %w", err)
		log.Error().Err(err).Str("dst", dst).Send()
		return err
	}

	log.Debug().Str("src", src).Str("dst", dst).Msg("copied file")

	return nil
}

// Move renames src over dst. Across filesystems it falls back to copy and
// remove.
func (s *LocalStore) Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		log.Debug().Str("src", src).Str("dst", dst).Msg("moved file")
		return nil
	}

	if !errors.Is(err, syscall.EXDEV) {
		err = fmt.Errorf("error moving file %w", err)
		log.Error().Err(err).Str("src", src).Str("dst", dst).Send()
		return err
	}

	log.Debug().Str("src", src).Str("dst", dst).Msg("cross-device move, copying instead")
	if err := s.Copy(src, dst); err != nil {
		return err
	}
	s.Remove(src)

	return nil
}

// Remove deletes path and logs success or failure.
func (s *LocalStore) Remove(path string) {
	err := os.Remove(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("could not remove file")
		return
	}
	log.Debug().Str("path", path).Msg("removed file")
}

func stagingPath(dst string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	return filepath.Join(filepath.Dir(dst), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dst), id.String())), nil
}

func copyContent(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening source file %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("error creating destination file %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("error copying file %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("error closing destination file %w", err)
	}

	// OpenFile perm is filtered by umask.
	if err := os.Chmod(dst, perm); err != nil {
		return fmt.Errorf("error setting file mode %w", err)
	}

	return nil
}
