package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mgrizqy/ticketing-cli/model"
	"github.com/mgrizqy/ticketing-cli/server/store"
)

type TransactionController struct {
	Store *store.TransactionStore
}

func NewTransactionController(s *store.TransactionStore) *TransactionController {
	return &TransactionController{Store: s}
}

func (tc *TransactionController) Create(c *fiber.Ctx) error {
	var body struct {
		EventName string `json:"event_name"`
		Amount    int64  `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.EventName == "" || body.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "event_name and a positive amount are required"})
	}

	rec := tc.Store.Create(body.EventName, body.Amount)
	return c.Status(201).JSON(fiber.Map{"data": rec})
}

func (tc *TransactionController) Get(c *fiber.Ctx) error {
	rec, ok := tc.Store.Get(c.Params("id"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "transaction not found"})
	}
	return c.JSON(fiber.Map{"data": rec})
}

// Upload accepts the payment proof reference and moves the transaction to
// WAITING_CONFIRMATION.
func (tc *TransactionController) Upload(c *fiber.Ctx) error {
	var body struct {
		PaymentProofFile string `json:"paymentProofFile"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.PaymentProofFile == "" {
		return c.Status(400).JSON(fiber.Map{"error": "paymentProofFile is required"})
	}

	rec, err := tc.Store.AttachProof(c.Params("id"), body.PaymentProofFile)
	if err != nil {
		return transitionError(c, err)
	}
	return c.JSON(fiber.Map{"data": rec})
}

// Approve and Reject are the simulator endpoints. They stand in for the
// organizer's confirmation step.

func (tc *TransactionController) Approve(c *fiber.Ctx) error {
	rec, err := tc.Store.SetStatus(c.Params("id"), model.StatusPaid)
	if err != nil {
		return transitionError(c, err)
	}
	return c.JSON(fiber.Map{"data": rec})
}

func (tc *TransactionController) Reject(c *fiber.Ctx) error {
	rec, err := tc.Store.SetStatus(c.Params("id"), model.StatusRejected)
	if err != nil {
		return transitionError(c, err)
	}
	return c.JSON(fiber.Map{"data": rec})
}

func transitionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "transaction not found"})
	}
	if errors.Is(err, store.ErrInvalidTransition) {
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}
