package config

import (
	"context"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// InitFirebase returns nil when no credentials file is configured; push
// delivery is then disabled.
func InitFirebase(ctx context.Context, cfg Config) *firebase.App {
	if cfg.FirebaseCredentialsPath == "" {
		return nil
	}

	opt := option.WithCredentialsFile(cfg.FirebaseCredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		slog.Error("error initializing firebase app", "error", err)
		return nil
	}
	return app
}
