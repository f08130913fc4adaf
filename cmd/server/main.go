package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/coursehub/handler"
	"github.com/dmitrymomot/coursehub/modules/account"
	"github.com/dmitrymomot/coursehub/modules/catalog"
	"github.com/dmitrymomot/coursehub/pkg/auth"
	"github.com/dmitrymomot/coursehub/pkg/clientip"
	"github.com/dmitrymomot/coursehub/pkg/config"
	"github.com/dmitrymomot/coursehub/pkg/cookie"
	"github.com/dmitrymomot/coursehub/pkg/email"
	"github.com/dmitrymomot/coursehub/pkg/environment"
	"github.com/dmitrymomot/coursehub/pkg/httpserver"
	"github.com/dmitrymomot/coursehub/pkg/jwt"
	"github.com/dmitrymomot/coursehub/pkg/logger"
	"github.com/dmitrymomot/coursehub/pkg/mongo"
	"github.com/dmitrymomot/coursehub/pkg/ratelimit"
	"github.com/dmitrymomot/coursehub/pkg/rbac"
	"github.com/dmitrymomot/coursehub/pkg/redis"
	"github.com/dmitrymomot/coursehub/pkg/requestid"
	svcauth "github.com/dmitrymomot/coursehub/svc/auth"
	"github.com/dmitrymomot/coursehub/svc/resources"
	"github.com/dmitrymomot/coursehub/svc/userstore"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func loadSection[T any]() (T, error) {
	cfg, err := config.Load[T]()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%T: %w", zero, err)
	}
	return cfg, nil
}

func run(ctx context.Context) error {
	cfg, err := loadConfigs()
	if err != nil {
		return err
	}

	env := environment.Parse(cfg.app.Env)
	log := logger.New(
		logger.WithEnvironment(env, cfg.app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
			svcauth.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)
	log.Info("starting", slog.String("env", env.String()))

	db, err := mongo.Connect(ctx, cfg.mongo)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Warn("mongo disconnect failed", logger.Error(err))
		}
	}()

	users := userstore.NewMongo(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}

	checks := []httpserver.Check{{Name: "mongo", Fn: mongo.Healthcheck(db.Client())}}

	var limitStore ratelimit.Store
	if cfg.redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		limitStore = ratelimit.NewRedisStore(rdb)
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})
	} else {
		mem := ratelimit.NewMemoryStore()
		defer mem.Close()
		limitStore = mem
		log.Info("REDIS_URL not set, rate limits are per process")
	}

	limiter, err := ratelimit.NewFixedWindow(limitStore, cfg.ratelimit)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var sender email.EmailSender
	if cfg.email.PostmarkEnabled() {
		if sender, err = email.NewPostmarkClient(cfg.email); err != nil {
			return fmt.Errorf("postmark client: %w", err)
		}
	} else {
		sender = email.NewDevSender(cfg.email.DevDir)
		log.Info("postmark not configured, emails are written to disk", slog.String("dir", cfg.email.DevDir))
	}

	tokens, err := jwt.New(cfg.jwt)
	if err != nil {
		return fmt.Errorf("jwt codec: %w", err)
	}

	errorCfg := handler.ErrorHandlerConfig{ShowStack: showStack(env)}
	errorHandler := handler.NewErrorHandler(log, errorCfg)
	respond := handler.NewErrorResponder(log, errorCfg)

	authOpts := []auth.Option{
		auth.WithLogger(log),
		auth.WithBcryptCost(cfg.app.BcryptCost),
	}
	passwords := auth.NewPasswordService(users, append(authOpts,
		auth.WithAfterRegister(auth.WelcomeEmail(sender, cfg.app.Name, cfg.app.FrontendURL)),
	)...)

	authn := svcauth.NewAuthenticator(tokens, users,
		svcauth.WithErrorResponder(respond),
		svcauth.WithLogger(log),
	)
	guard := rbac.NewGuard(rbac.WithErrorResponder(respond))
	cookies := account.NewSessionCookies(
		cookie.NewFromConfig(cfg.cookie, cookie.WithSecure(cfg.secureCookies(env))),
		svcauth.DefaultCookieName,
	)

	throttle := ratelimit.Middleware(limiter,
		ratelimit.Composite(ratelimit.ByIP, ratelimit.ByPath),
		ratelimit.WithOnLimitReached(respond),
		ratelimit.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		environment.Middleware(env),
		clientip.Middleware,
	)
	r.Route("/health", httpserver.HealthRoutes(log, checks...))
	api := account.Router(account.RouterOptions{
		Auth: account.NewAuthService(account.AuthDeps{
			Passwords:     passwords,
			Sessions:      auth.NewSessionIssuer(tokens, users, authOpts...),
			Resets:        auth.NewResetService(users, tokens, sender, cfg.app.FrontendURL, authOpts...),
			Authenticator: authn,
			Cookies:       cookies,
			ErrorHandler:  errorHandler,
			Throttle:      throttle,
		}),
		Users: account.NewUsersService(users, authn, guard, cookies, errorHandler),
	})
	api.Group(catalog.Routes(catalog.RouterOptions{
		Courses:      resources.NewMongo(db.Collection(resources.CoursesCollection)),
		Reviews:      resources.NewMongo(db.Collection(resources.ReviewsCollection)),
		Authenticate: authn.Middleware,
		Guard:        guard,
		ErrorHandler: errorHandler,
	}))
	r.Mount("/api/v1", api)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, handler.ErrNotFound.WithMessage(fmt.Sprintf("Can't find %s on this server!", r.URL.Path)))
	})

	srv := httpserver.NewFromConfig(cfg.http, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}
