package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedValues(t *testing.T) {
	assert.Equal(t, "dolittle", CLIName())
	assert.Equal(t, ".dolittle", HomeDir())
	assert.Equal(t, "DOLITTLE", EnvPrefix())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "DOLITTLE_HOME", EnvVar("home"))
	assert.Equal(t, "DOLITTLE_CORE_LANGUAGE", EnvVar("core_language"))
}
