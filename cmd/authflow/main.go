package main

import (
	"context"
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"
	authflow "github.com/rgillies/go-authflow"
)

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	usersPath := flag.String("users", "users.json", "path to the JSON user store")
	tokenPath := flag.String("tokens", "fakeLocal.json", "path to the simulated client token store")
	secret := flag.String("secret", "TOP_SECRET", "token signing secret")
	dsn := flag.String("db", "", "sqlite DSN; when set, replaces the JSON user store")
	flag.Parse()

	store, err := buildStore(*dsn, *usersPath)
	if err != nil {
		log.Fatal(err)
	}

	cfg := &authflow.SimpleConfig{SigningKey: *secret}

	tokens := authflow.NewFileTokenStore(*tokenPath)
	service := authflow.NewTokenServiceFromConfig(cfg, nil)

	signup := authflow.NewSignupStrategy(store)
	login := authflow.NewLoginStrategy(store)
	guard := authflow.NewTokenGuard(tokens, authflow.NewTokenStrategy(service))

	controller := authflow.NewAuthController(signup, login, tokens, service)

	app := fiber.New(fiber.Config{
		ErrorHandler: authflow.NewErrorHandler(nil),
	})
	controller.RegisterRoutes(app, guard, cfg.GetContextKey())

	log.Fatal(app.Listen(*addr))
}

func buildStore(dsn, usersPath string) (authflow.CredentialStore, error) {
	if dsn == "" {
		store, err := authflow.NewFileCredentialStore(usersPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	db, err := authflow.OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}

	store := authflow.NewBunCredentialStore(db)
	if err := store.Init(context.Background()); err != nil {
		return nil, err
	}

	return store, nil
}
