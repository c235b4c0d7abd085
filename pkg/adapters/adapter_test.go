package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ksync/pkg/config"
	"github.com/arthur-debert/ksync/pkg/errors"
)

func TestNew_ByTypeTag(t *testing.T) {
	local, err := New(&config.EnvironmentConfig{Name: "here", Type: "local"})
	require.NoError(t, err)
	assert.IsType(t, &LocalEnvironment{}, local)

	docker, err := New(&config.EnvironmentConfig{Name: "devbox", Type: "docker", Image: "ubuntu:latest"})
	require.NoError(t, err)
	assert.IsType(t, &DockerEnvironment{}, docker)

	ssh, err := New(&config.EnvironmentConfig{Name: "server", Type: "ssh", Host: "my-server"})
	require.NoError(t, err)
	assert.IsType(t, &SSHEnvironment{}, ssh)
	assert.Equal(t, "ssh my-server", ssh.DisplayName())
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(&config.EnvironmentConfig{Name: "weird", Type: "carrier-pigeon"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownEnvType))
}
