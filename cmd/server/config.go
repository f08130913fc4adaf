package main

import (
	"github.com/dmitrymomot/coursehub/pkg/cookie"
	"github.com/dmitrymomot/coursehub/pkg/email"
	"github.com/dmitrymomot/coursehub/pkg/environment"
	"github.com/dmitrymomot/coursehub/pkg/httpserver"
	"github.com/dmitrymomot/coursehub/pkg/jwt"
	"github.com/dmitrymomot/coursehub/pkg/mongo"
	"github.com/dmitrymomot/coursehub/pkg/ratelimit"
	"github.com/dmitrymomot/coursehub/pkg/redis"
)

// AppConfig holds process-level settings.
type AppConfig struct {
	Env         string `env:"APP_ENV" envDefault:"production"` // unknown values also mean production
	Name        string `env:"APP_NAME" envDefault:"CourseHub"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	BcryptCost  int    `env:"BCRYPT_COST" envDefault:"12"`
}

// configs groups every section loaded at startup.
type configs struct {
	app       AppConfig
	http      httpserver.Config
	mongo     mongo.Config
	redis     redis.Config
	jwt       jwt.Config
	email     email.Config
	cookie    cookie.Config
	ratelimit ratelimit.Config
}

func loadConfigs() (configs, error) {
	var (
		c   configs
		err error
	)
	if c.app, err = loadSection[AppConfig](); err != nil {
		return c, err
	}
	if c.http, err = loadSection[httpserver.Config](); err != nil {
		return c, err
	}
	if c.mongo, err = loadSection[mongo.Config](); err != nil {
		return c, err
	}
	if c.redis, err = loadSection[redis.Config](); err != nil {
		return c, err
	}
	if c.jwt, err = loadSection[jwt.Config](); err != nil {
		return c, err
	}
	if c.email, err = loadSection[email.Config](); err != nil {
		return c, err
	}
	if c.cookie, err = loadSection[cookie.Config](); err != nil {
		return c, err
	}
	if c.ratelimit, err = loadSection[ratelimit.Config](); err != nil {
		return c, err
	}
	return c, nil
}

// secureCookies reports whether cookies carry the Secure flag. Only an
// explicit development environment turns it off, unless COOKIE_SECURE forces it.
func (c configs) secureCookies(env environment.Environment) bool {
	return c.cookie.Secure || !env.IsDevelopment()
}

// showStack reports whether error bodies include the error chain.
func showStack(env environment.Environment) bool {
	return !env.IsProduction()
}
