package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mgrizqy/ticketing-cli/server/controller"
)

func RegisterAuthRoutes(app *fiber.App, ac *controller.AuthController) {
	api := app.Group("/api")
	api.Post("/auth/login", ac.Login)
}

func RegisterTransactionRoutes(app *fiber.App, tc *controller.TransactionController, authMiddleware fiber.Handler) {
	api := app.Group("/api")

	t := api.Group("/transaction")
	t.Post("/", authMiddleware, tc.Create)
	t.Get("/:id", authMiddleware, tc.Get)
	t.Patch("/upload/:id", authMiddleware, tc.Upload)

	// simulator endpoints, dev builds only
	sim := api.Group("/transactions")
	sim.Patch("/approve/:id", authMiddleware, tc.Approve)
	sim.Patch("/reject/:id", authMiddleware, tc.Reject)
}
