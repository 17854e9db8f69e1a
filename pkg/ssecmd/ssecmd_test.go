package ssecmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	config := Config{
		APIKey:  "lin_api_test",
		Version: "test-version",
		Address: "localhost:8080",
	}

	server, err := NewServer(config)
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.NotNil(t, server.GetMcpServer())

	// Missing API key is an error unless the server is multi-user
	_, err = NewServer(Config{Address: "localhost:8080"})
	assert.Error(t, err)

	_, err = NewServer(Config{Address: "localhost:8080", MultiUser: true})
	assert.NoError(t, err)
}

func TestCreateServerWithOptions(t *testing.T) {
	server, err := CreateServerWithOptions(
		WithAPIKey("lin_api_test"),
		WithAddress("localhost:9090"),
		WithVersion("1.0.0"),
	)
	require.NoError(t, err)
	require.NotNil(t, server)

	assert.Equal(t, "localhost:9090", server.config.Address)
	assert.Equal(t, "1.0.0", server.config.Version)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "localhost:8080", config.Address)
	assert.Empty(t, config.BasePath)
	assert.False(t, config.ReadOnly)
}
