// Package config parses environment variables into tagged structs with
// github.com/caarlos0/env. A .env file in the working directory, if present,
// is loaded into the environment on first use; variables already set win.
//
//	cfg, err := config.Load[mongo.Config]()
//	jwtCfg := config.MustLoad[jwt.Config]()
package config
