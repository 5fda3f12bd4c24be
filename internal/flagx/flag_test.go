package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	serverFlags = []string{"-a", "-s", "-f", "-d", "-m", "-l", "-u", "-p", "-b", "-g", "-e", "-o"}
	clientFlags = []string{"-u", "-t", "-l", "-y"}
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "server storage and upload limit",
			args:         []string{"-c", "server.yaml", "-s", "postgres", "-d", "postgres://u@db/catalog", "-m", "1048576"},
			allowedFlags: serverFlags,
			want:         []string{"-s", "postgres", "-d", "postgres://u@db/catalog", "-m", "1048576"},
		},
		{
			name:         "server bolt file in equals form",
			args:         []string{"-s=bolt", "-f=/var/lib/catalog/catalog.db", "-config=server.json"},
			allowedFlags: serverFlags,
			want:         []string{"-s=bolt", "-f=/var/lib/catalog/catalog.db"},
		},
		{
			name:         "server bucket and cors origins",
			args:         []string{"-b", "documents", "-e", "http://minio:9000", "-o", "http://a.test,http://b.test"},
			allowedFlags: serverFlags,
			want:         []string{"-b", "documents", "-e", "http://minio:9000", "-o", "http://a.test,http://b.test"},
		},
		{
			name:         "client flags drop the config file",
			args:         []string{"-c", "client.yaml", "-u", "http://localhost:5000", "-t", "5s", "-y"},
			allowedFlags: clientFlags,
			want:         []string{"-u", "http://localhost:5000", "-t", "5s", "-y"},
		},
		{
			name:         "client bool flag before another flag takes no value",
			args:         []string{"-y", "-l", "debug"},
			allowedFlags: clientFlags,
			want:         []string{"-y", "-l", "debug"},
		},
		{
			name:         "server-only flags are ignored by the client",
			args:         []string{"-s", "bolt", "-u", "http://catalog:5000", "-m", "10"},
			allowedFlags: clientFlags,
			want:         []string{"-u", "http://catalog:5000"},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-t"},
			allowedFlags: clientFlags,
			want:         []string{"-t"},
		},
		{
			name:         "value starting with dash is not consumed",
			args:         []string{"-l", "-y"},
			allowedFlags: clientFlags,
			want:         []string{"-l", "-y"},
		},
		{
			name:         "equals value may start with dash",
			args:         []string{"-config=--odd.json"},
			allowedFlags: []string{"-config"},
			want:         []string{"-config=--odd.json"},
		},
		{
			name:         "repeated flag keeps order",
			args:         []string{"-o", "http://a.test", "-o", "http://b.test"},
			allowedFlags: serverFlags,
			want:         []string{"-o", "http://a.test", "-o", "http://b.test"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: clientFlags,
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.yaml", ConfigFileFlag([]string{"-c", "/path/short.yaml"}))
	})

	t.Run("long -config with value", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigFileFlag([]string{"-config", "/path/long.json"}))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, ConfigFileFlag([]string{"-u", "http://x", "-t", "2"}))
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigFileFlag([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})
}

func TestIsYAML(t *testing.T) {
	assert.True(t, IsYAML("client.yaml"))
	assert.True(t, IsYAML("/etc/catalog/SERVER.YML"))
	assert.False(t, IsYAML("client.json"))
	assert.False(t, IsYAML(""))
}
