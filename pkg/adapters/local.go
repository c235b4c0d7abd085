package adapters

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	cp "github.com/otiai10/copy"

	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/logging"
)

// LocalEnvironment deploys to the local filesystem in the same process.
type LocalEnvironment struct {
	run runner
}

// NewLocal creates the local filesystem adapter.
func NewLocal() *LocalEnvironment {
	return &LocalEnvironment{run: systemRunner}
}

// IsAvailable is always true for the local machine.
func (l *LocalEnvironment) IsAvailable() bool {
	return true
}

// Run executes an arbitrary local process.
func (l *LocalEnvironment) Run(argv []string) (RunResult, error) {
	if len(argv) == 0 {
		return RunResult{}, errors.New(errors.ErrInvalidInput, "empty command")
	}
	return l.run(argv[0], argv[1:]...), nil
}

func (l *LocalEnvironment) ReadFile(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func (l *LocalEnvironment) ListFiles(path string) []string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil
	}

	var files []string
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(files)
	return files
}

func (l *LocalEnvironment) Deploy(stagingDir, targetDir string, syncPaths []string) ([]string, error) {
	logger := logging.GetLogger("adapters.local")

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTransferFailure, "creating target directory %s", targetDir)
	}

	var deployed []string
	for _, sp := range syncPaths {
		src := filepath.Join(stagingDir, sp)
		info, err := os.Stat(src)
		if err != nil {
			continue
		}

		dst := filepath.Join(targetDir, sp)
		if info.IsDir() {
			// Directories are replaced wholesale, never merged.
			if err := os.RemoveAll(dst); err != nil {
				return deployed, errors.Wrapf(err, errors.ErrTransferFailure, "replacing %s", dst)
			}
			if err := copyTree(src, dst); err != nil {
				return deployed, errors.Wrapf(err, errors.ErrTransferFailure, "deploying %s", sp)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				return deployed, errors.Wrapf(err, errors.ErrTransferFailure, "creating parent for %s", dst)
			}
			if err := cp.Copy(src, dst, cp.Options{PreserveTimes: true}); err != nil {
				return deployed, errors.Wrapf(err, errors.ErrTransferFailure, "deploying %s", sp)
			}
		}

		logger.Debug().Str("path", sp).Str("target", targetDir).Msg("Deployed sync path")
		deployed = append(deployed, sp)
	}

	return deployed, nil
}

func (l *LocalEnvironment) Clean(targetDir string, syncPaths []string) error {
	for _, sp := range syncPaths {
		// RemoveAll is already a no-op for absent paths.
		if err := os.RemoveAll(filepath.Join(targetDir, sp)); err != nil {
			return errors.Wrapf(err, errors.ErrTransferFailure, "removing %s", sp)
		}
	}
	return nil
}

func (l *LocalEnvironment) DisplayName() string {
	return "local"
}

// copyTree copies a directory following symlinks; dangling links in the
// staged tree are skipped rather than failing the deploy.
func copyTree(src, dst string) error {
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
