package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/coursehub/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]environment.Environment{
		"production":  environment.Production,
		"prod":        environment.Production,
		" PROD ":      environment.Production,
		"staging":     environment.Staging,
		"stage":       environment.Staging,
		"development": environment.Development,
		"dev":         environment.Development,
		" Dev ":       environment.Development,
	}
	for in, want := range tests {
		assert.Equal(t, want, environment.Parse(in), "input %q", in)
	}
}

func TestParse_UnknownIsProduction(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "live", "prd", "production-eu", "local", "develop"} {
		env := environment.Parse(in)
		assert.Equal(t, environment.Production, env, "input %q", in)
		assert.True(t, env.IsProduction(), "input %q", in)
		assert.False(t, env.IsDevelopment(), "input %q", in)
	}
}
