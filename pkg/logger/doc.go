// Package logger builds slog loggers configured per environment and
// decorated with context extractors, plus attribute helpers that keep log
// keys consistent across the codebase.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.AppName),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			auth.LoggerExtractor(),
//		),
//	)
//	log.ErrorContext(ctx, "failed to send welcome email",
//		logger.UserID(user.ID),
//		logger.Error(err),
//	)
package logger
