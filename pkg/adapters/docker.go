package adapters

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/ksync/pkg/errors"
	"github.com/arthur-debert/ksync/pkg/logging"
)

// DockerEnvironment deploys via docker exec/cp to a running container of a
// configured image. The container id is resolved once per adapter instance
// and cached; when several containers of the image are running the first by
// listing order wins (a documented caveat, not validated further).
type DockerEnvironment struct {
	image string
	run   runner

	// containerID is either unresolved ("") or the cached resolution.
	containerID string
}

// NewDocker creates a docker adapter for the given image.
func NewDocker(image string) *DockerEnvironment {
	return &DockerEnvironment{image: image, run: systemRunner}
}

// resolveContainer finds the running container for the configured image,
// caching a successful resolution for the adapter's lifetime.
func (d *DockerEnvironment) resolveContainer() (string, bool) {
	if d.containerID != "" {
		return d.containerID, true
	}

	result := d.run("docker", "ps", "--filter", fmt.Sprintf("ancestor=%s", d.image), "--format", "{{.ID}}")
	if result.ExitCode != 0 {
		return "", false
	}

	ids := strings.Fields(strings.TrimSpace(result.Stdout))
	if len(ids) == 0 {
		return "", false
	}
	if len(ids) > 1 {
		logger := logging.GetLogger("adapters.docker")
		logger.Warn().
			Str("image", d.image).
			Int("matches", len(ids)).
			Msg("Multiple running containers match image, using first")
	}

	d.containerID = ids[0]
	return d.containerID, true
}

func (d *DockerEnvironment) IsAvailable() bool {
	_, ok := d.resolveContainer()
	return ok
}

func (d *DockerEnvironment) Run(argv []string) (RunResult, error) {
	cid, ok := d.resolveContainer()
	if !ok {
		return RunResult{}, errors.Newf(errors.ErrUnreachable, "no running container for image %s", d.image)
	}
	args := append([]string{"exec", cid}, argv...)
	return d.run("docker", args...), nil
}

func (d *DockerEnvironment) ReadFile(path string) (string, bool) {
	result, err := d.Run([]string{"cat", path})
	if err != nil || result.ExitCode != 0 {
		return "", false
	}
	return result.Stdout, true
}

func (d *DockerEnvironment) ListFiles(path string) []string {
	result, err := d.Run([]string{"find", path, "-type", "f"})
	if err != nil || result.ExitCode != 0 {
		return nil
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if !strings.HasPrefix(line, path) {
			continue
		}
		rel := strings.TrimLeft(strings.TrimPrefix(line, path), "/")
		if rel != "" {
			files = append(files, rel)
		}
	}
	sort.Strings(files)
	return files
}

func (d *DockerEnvironment) Deploy(stagingDir, targetDir string, syncPaths []string) ([]string, error) {
	logger := logging.GetLogger("adapters.docker")

	cid, ok := d.resolveContainer()
	if !ok {
		return nil, errors.Newf(errors.ErrUnreachable, "no running container for image %s", d.image)
	}

	if result, err := d.Run([]string{"mkdir", "-p", targetDir}); err != nil {
		return nil, err
	} else if result.ExitCode != 0 {
		return nil, errors.Newf(errors.ErrTransferFailure, "creating %s in container: %s", targetDir, result.Stderr)
	}

	var deployed []string
	for _, sp := range syncPaths {
		src := filepath.Join(stagingDir, sp)
		if _, err := os.Stat(src); err != nil {
			continue
		}

		dest := fmt.Sprintf("%s:%s", cid, path.Join(targetDir, sp))
		result := d.run("docker", "cp", src, dest)
		if result.ExitCode != 0 {
			return deployed, errors.Newf(errors.ErrTransferFailure, "docker cp %s failed: %s", sp, result.Stderr).
				WithDetail("path", sp)
		}

		logger.Debug().Str("path", sp).Str("container", cid).Msg("Deployed sync path")
		deployed = append(deployed, sp)
	}

	return deployed, nil
}

func (d *DockerEnvironment) Clean(targetDir string, syncPaths []string) error {
	for _, sp := range syncPaths {
		if _, err := d.Run([]string{"rm", "-rf", path.Join(targetDir, sp)}); err != nil {
			return err
		}
	}
	return nil
}

func (d *DockerEnvironment) DisplayName() string {
	if cid, ok := d.resolveContainer(); ok {
		short := cid
		if len(short) > 12 {
			short = short[:12]
		}
		return fmt.Sprintf("docker container %s", short)
	}
	return "docker container ?"
}
