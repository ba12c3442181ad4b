// Package staging materializes a submission as a plain on-disk directory.
// A submission may arrive as a directory, which is used in place, or as a
// zip archive, which is extracted into a temporary directory scoped to the
// returned handle.
package staging

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zerospeech/zrc2021/internal/errors"
)

// Staged is a handle on a submission materialized as a directory. When the
// submission was extracted from an archive, Release removes the extraction
// directory; the caller must defer Release on every exit path.
type Staged struct {
	// Dir is the submission root. Read-only for the rest of the run.
	Dir string

	temp bool
	once sync.Once
}

// Stage resolves a submission location into a directory handle.
//
// A directory is returned unchanged with no teardown registered. A regular
// file that is a valid zip archive is extracted in full into a fresh
// temporary directory. Anything else (missing path, file that is not a
// valid archive) fails with a validation error naming the path.
func Stage(path string) (*Staged, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewValidationError("cannot resolve submission path").
			WithPath(path).WithCause(err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.NewValidationError("submission not found").
			WithPath(abs).WithCause(err)
	}

	if info.IsDir() {
		return &Staged{Dir: abs}, nil
	}

	reader, err := zip.OpenReader(abs)
	if err != nil {
		return nil, errors.NewValidationError("submission is not a zip file or a directory").
			WithPath(abs)
	}
	defer reader.Close()

	tmp, err := os.MkdirTemp("", "zrc2021-submission-")
	if err != nil {
		return nil, errors.Wrap(err, "creating staging directory")
	}

	staged := &Staged{Dir: tmp, temp: true}
	if err := extract(&reader.Reader, tmp); err != nil {
		staged.Release()
		return nil, errors.Wrapf(err, "extracting submission %s", abs)
	}

	return staged, nil
}

// Release removes the staging directory, if any. It is best-effort and
// idempotent; releasing a directory submission is a no-op.
func (s *Staged) Release() {
	s.once.Do(func() {
		if s.temp {
			_ = os.RemoveAll(s.Dir)
		}
	})
}

// Temp reports whether the handle owns a temporary extraction directory.
func (s *Staged) Temp() bool {
	return s.temp
}

// extract writes every archive entry under dest. Entry names escaping dest
// are rejected.
func extract(r *zip.Reader, dest string) error {
	for _, f := range r.File {
		target, err := sanitize(dest, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// sanitize joins an archive entry name onto dest, rejecting names that
// would escape it (zip-slip).
func sanitize(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", errors.NewValidationError("archive entry escapes staging directory").
			WithPath(name)
	}
	return target, nil
}
