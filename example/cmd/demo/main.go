package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zeus6768/sql-template-go/example/shared/config"
	"github.com/zeus6768/sql-template-go/example/shared/logging"
	"github.com/zeus6768/sql-template-go/example/userstore"
	"github.com/zeus6768/sql-template-go/sqltemplate"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Demo failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig())
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	tpl, err := sqltemplate.NewTemplateFromPGXPool(
		pool,
		sqltemplate.WithLogger(logging.NewTextLogger(slog.LevelDebug)),
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	store := userstore.New(tpl)

	token, err := store.Create(ctx, "gugu", userstore.Profile{Nickname: "gugu", Locale: "ko"})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("created user gugu with token %s", token)

	users, err := store.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	for _, user := range users {
		log.Printf("user %d: %s (%s)", user.ID, user.Account, user.Profile.Nickname)
	}

	return nil
}
