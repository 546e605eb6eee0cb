package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Account is a seeded dev login. The dev server has no registration.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
}

type AuthController struct {
	JWTSecret string
	Accounts  map[string]Account // keyed by email
}

func NewAuthController(secret string, accounts []Account) *AuthController {
	byEmail := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byEmail[a.Email] = a
	}
	return &AuthController{JWTSecret: secret, Accounts: byEmail}
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	account, ok := ac.Accounts[body.Email]
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": "invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(body.Password)); err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "invalid email or password"})
	}

	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(ac.JWTSecret))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to sign token"})
	}

	return c.JSON(fiber.Map{"result": fiber.Map{
		"id":    account.ID,
		"token": signed,
	}})
}
