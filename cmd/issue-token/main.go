// Command issue-token prints a REST API bearer token for a caller number.
// A number that has never called in is registered first.
//
// Usage:
//
//	issue-token <phone>
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	"github.com/heartmarshall/huddle-backend/internal/app"
	"github.com/heartmarshall/huddle-backend/internal/auth"
	"github.com/heartmarshall/huddle-backend/internal/config"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: issue-token <phone>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc, err := app.NewServices(cfg, logger, pool)
	if err != nil {
		log.Fatalf("wire services: %v", err)
	}
	defer svc.Close()

	u, created, err := svc.Users.ResolveCaller(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("resolve caller: %v", err)
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL).
		GenerateAccessToken(u.ID, u.Phone)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	if created {
		fmt.Fprintf(os.Stderr, "registered %s as %s\n", u.Phone, u.ID)
	}
	fmt.Println(token)
}
