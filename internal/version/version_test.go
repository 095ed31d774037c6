package version

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "dev", Commit)
	assert.Equal(t, "unknown", BuildTime)
}

func TestGet(t *testing.T) {
	info := Get("phrase-backend")
	assert.Equal(t, Info{
		Service:   "phrase-backend",
		Version:   "dev",
		Commit:    "dev",
		BuildTime: "unknown",
		GoVersion: runtime.Version(),
	}, info)
	assert.Equal(t, "phrase-backend dev (commit dev, built unknown, "+runtime.Version()+")", info.String())
}

func TestInfo_JSON(t *testing.T) {
	data, err := json.Marshal(Get("phrase"))
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "phrase", decoded["service"])
	assert.Equal(t, "dev", decoded["version"])
	assert.Contains(t, decoded, "buildTime")
	assert.Contains(t, decoded, "goVersion")
}
