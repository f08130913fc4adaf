package main

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/coursehub/pkg/environment"
)

func TestAppConfig_DefaultEnvIsProduction(t *testing.T) {
	t.Parallel()

	cfg, err := env.ParseAsWithOptions[AppConfig](env.Options{Environment: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, environment.Production, environment.Parse(cfg.Env))
}

func TestSecuritySettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		appEnv       string
		cookieSecure bool
		wantSecure   bool
		wantStack    bool
	}{
		{appEnv: "", wantSecure: true, wantStack: false},
		{appEnv: "prd", wantSecure: true, wantStack: false},
		{appEnv: "production", wantSecure: true, wantStack: false},
		{appEnv: "staging", wantSecure: true, wantStack: true},
		{appEnv: "development", wantSecure: false, wantStack: true},
		{appEnv: "development", cookieSecure: true, wantSecure: true, wantStack: true},
	}
	for _, tt := range tests {
		t.Run(tt.appEnv, func(t *testing.T) {
			var c configs
			c.cookie.Secure = tt.cookieSecure
			e := environment.Parse(tt.appEnv)
			assert.Equal(t, tt.wantSecure, c.secureCookies(e))
			assert.Equal(t, tt.wantStack, showStack(e))
		})
	}
}
