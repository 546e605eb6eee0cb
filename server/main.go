package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/mgrizqy/ticketing-cli/server/controller"
	"github.com/mgrizqy/ticketing-cli/server/middleware"
	"github.com/mgrizqy/ticketing-cli/server/routes"
	"github.com/mgrizqy/ticketing-cli/server/store"
)

// seedAccounts builds the dev logins. Passwords come from the environment
// so the defaults never end up in a real deployment by accident.
func seedAccounts() []controller.Account {
	email := getEnv("DEV_USER_EMAIL", "eky@mail.com")
	password := getEnv("DEV_USER_PASSWORD", "password123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash dev password:", err)
	}
	return []controller.Account{
		{ID: "user-1", Email: email, PasswordHash: hash},
	}
}

func newApp(secret string, txStore *store.TransactionStore, accounts []controller.Account) *fiber.App {
	app := fiber.New()
	app.Use(logger.New())

	routes.RegisterAuthRoutes(app, controller.NewAuthController(secret, accounts))
	routes.RegisterTransactionRoutes(app, controller.NewTransactionController(txStore), middleware.AuthRequired(secret))
	return app
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	secret := getEnv("JWT_SECRET", "dev-secret")
	txStore := store.NewTransactionStore()

	// a ready-made pending transaction so the payment flow is exercisable
	// immediately after startup
	demo := txStore.Create("Jakarta Jazz Festival", 150000)
	log.Printf("seeded demo transaction %s (PENDING, amount %d)", demo.ID, demo.Amount)

	app := newApp(secret, txStore, seedAccounts())

	port := getEnv("PORT", "3007")
	log.Println("HTTP server running on port " + port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("fiber error:", err)
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
