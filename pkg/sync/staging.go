package sync

import (
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"

	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/logging"
)

// Stage copies syncPaths from sourceRoot into a fresh scratch directory and
// returns its path. Sync paths missing from the source are skipped silently.
//
// When resolveSymlinks is true every symlink under the staged paths is
// replaced by its resolved target's content; broken symlinks are skipped.
// When false, symlinks are recreated verbatim (the link target is not
// required to exist).
//
// The caller owns the returned directory and must remove it on every exit
// path. On error the directory is still returned so partial content can be
// cleaned up.
func Stage(sourceRoot string, syncPaths []string, resolveSymlinks bool) (string, error) {
	logger := logging.GetLogger("sync.staging")

	staging, err := os.MkdirTemp("", "ksync-")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrStagingCreate, "creating staging directory")
	}

	logger.Debug().
		Str("staging", staging).
		Str("source", sourceRoot).
		Bool("resolveSymlinks", resolveSymlinks).
		Msg("Staging sync paths")

	for _, sp := range syncPaths {
		src := filepath.Join(sourceRoot, sp)

		lst, err := os.Lstat(src)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Trace().Str("path", sp).Msg("Sync path missing from source, skipping")
				continue
			}
			return staging, errors.Wrapf(err, errors.ErrStagingCopy, "inspecting %s", src)
		}

		dst := filepath.Join(staging, sp)
		isSymlink := lst.Mode()&os.ModeSymlink != 0

		// Stat follows symlinks; for a broken link it fails and the entry
		// is treated as a non-directory below.
		st, statErr := os.Stat(src)
		isDir := statErr == nil && st.IsDir()

		switch {
		case isDir:
			// Directories, including symlinks to directories, are mirrored
			// entry by entry with the symlink policy applied per entry.
			if err := copyDir(src, dst, resolveSymlinks); err != nil {
				return staging, err
			}
		case isSymlink && resolveSymlinks:
			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				return staging, errors.Wrapf(err, errors.ErrStagingCopy, "creating parent for %s", dst)
			}
			real, err := filepath.EvalSymlinks(src)
			if err != nil {
				// Broken top-level symlink: nothing to resolve, treated the
				// same as a missing source path.
				logger.Trace().Str("path", sp).Msg("Broken symlink, skipping")
				continue
			}
			if err := deepCopy(real, dst); err != nil {
				return staging, errors.Wrapf(err, errors.ErrStagingCopy, "resolving %s", src)
			}
		case isSymlink:
			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				return staging, errors.Wrapf(err, errors.ErrStagingCopy, "creating parent for %s", dst)
			}
			if err := recreateSymlink(src, dst); err != nil {
				return staging, err
			}
		default:
			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				return staging, errors.Wrapf(err, errors.ErrStagingCopy, "creating parent for %s", dst)
			}
			if err := copyFile(src, dst); err != nil {
				return staging, err
			}
		}
	}

	return staging, nil
}

// copyDir mirrors src into dst, applying the symlink policy to every entry.
func copyDir(src, dst string, resolveSymlinks bool) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStagingCopy, "creating directory %s", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStagingCopy, "reading directory %s", src)
	}

	for _, entry := range entries {
		itemSrc := filepath.Join(src, entry.Name())
		itemDst := filepath.Join(dst, entry.Name())

		lst, err := os.Lstat(itemSrc)
		if err != nil {
			return errors.Wrapf(err, errors.ErrStagingCopy, "inspecting %s", itemSrc)
		}

		switch {
		case lst.Mode()&os.ModeSymlink != 0:
			if resolveSymlinks {
				real, err := filepath.EvalSymlinks(itemSrc)
				if err != nil {
					// Broken symlink, skip silently.
					continue
				}
				if err := deepCopy(real, itemDst); err != nil {
					return errors.Wrapf(err, errors.ErrStagingCopy, "resolving %s", itemSrc)
				}
			} else {
				if err := recreateSymlink(itemSrc, itemDst); err != nil {
					return err
				}
			}
		case lst.IsDir():
			if err := copyDir(itemSrc, itemDst, resolveSymlinks); err != nil {
				return err
			}
		case lst.Mode().IsRegular():
			if err := copyFile(itemSrc, itemDst); err != nil {
				return err
			}
		}
	}

	return nil
}

// recreateSymlink creates an equivalent symlink at dst with the same
// link target string as src.
func recreateSymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStagingCopy, "reading symlink %s", src)
	}
	if err := os.Symlink(target, dst); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "recreating symlink %s", dst)
	}
	return nil
}

// copyFile copies a single regular file, preserving permissions and times.
func copyFile(src, dst string) error {
	if err := cp.Copy(src, dst, cp.Options{PreserveTimes: true}); err != nil {
		return errors.Wrapf(err, errors.ErrStagingCopy, "copying %s", src)
	}
	return nil
}

// deepCopy copies src (file or directory) following every symlink. Broken
// symlinks inside the tree are skipped rather than failing the copy.
func deepCopy(src, dst string) error {
	return cp.Copy(src, dst, cp.Options{
		PreserveTimes: true,
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Deep
		},
		OnError: func(_, _ string, err error) error {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		},
	})
}
