package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testParameters struct {
	URL     string        `default:"http://localhost:14265" usage:"the node endpoint"`
	Timeout time.Duration `default:"30s" usage:"the request timeout"`
	Index   uint64        `default:"0" usage:"the key index"`
	Count   int           `default:"1" usage:"the number of addresses"`
	Debug   bool          `default:"false" usage:"debug mode"`
	Paths   []string      `name:"outputPaths" default:"stdout" usage:"log outputs"`
	Auth    struct {
		Username string `default:"" usage:"basic auth user"`
	}
}

func newTestConfiguration(params *testParameters) *Configuration {
	c := New(pflag.NewFlagSet("test", pflag.ContinueOnError))
	c.DefineParameters(params, "node")
	return c
}

func TestConfiguration_Defaults(t *testing.T) {
	params := &testParameters{}
	c := newTestConfiguration(params)
	require.NoError(t, c.Load([]string{"--config-dir", t.TempDir()}))

	assert.Equal(t, "http://localhost:14265", params.URL)
	assert.Equal(t, 30*time.Second, params.Timeout)
	assert.Equal(t, 1, params.Count)
	assert.False(t, params.Debug)
	assert.Equal(t, []string{"stdout"}, params.Paths)
	assert.Empty(t, c.ConfigFileUsed())

	for _, name := range []string{"node.url", "node.timeout", "node.index", "node.count", "node.debug", "node.outputPaths", "node.auth.username"} {
		assert.NotNilf(t, c.Flags().Lookup(name), "flag %s", name)
	}
}

func TestConfiguration_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{
		"node": {
			"url": "http://from-file:14265",
			"timeout": "5s",
			"index": 9,
			"auth": {"username": "file-user"}
		}
	}`), 0o600))
	t.Setenv("NODE_INDEX", "12")

	params := &testParameters{}
	c := newTestConfiguration(params)
	require.NoError(t, c.Load([]string{"--config-dir", dir, "--node.count=3"}))

	assert.Equal(t, "http://from-file:14265", params.URL)
	assert.Equal(t, 5*time.Second, params.Timeout)
	assert.EqualValues(t, 12, params.Index)
	assert.Equal(t, 3, params.Count)
	assert.Equal(t, "file-user", params.Auth.Username)
	assert.Equal(t, filepath.Join(dir, "config.json"), c.ConfigFileUsed())
}

func TestConfiguration_InvalidFlag(t *testing.T) {
	c := newTestConfiguration(&testParameters{})
	c.Flags().SetOutput(&discard{})

	assert.Error(t, c.Load([]string{"--node.count=many"}))
}

func TestDefineParameters_InvalidDefault(t *testing.T) {
	params := &struct {
		Count int `default:"many"`
	}{}

	c := New(pflag.NewFlagSet("test", pflag.ContinueOnError))
	assert.Panics(t, func() { c.DefineParameters(params, "x") })
}

func TestLowerCamelCase(t *testing.T) {
	assert.Equal(t, "url", lowerCamelCase("URL"))
	assert.Equal(t, "bindAddress", lowerCamelCase("BindAddress"))
	assert.Equal(t, "httpTimeout", lowerCamelCase("HTTPTimeout"))
	assert.Equal(t, "a", lowerCamelCase("A"))
	assert.Equal(t, "", lowerCamelCase(""))
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
