package payment

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/services"
	"github.com/devlaunch/academy-api/services/razorpay"
)

// PaymentHandler handles order creation, signature verification and
// enrollment. The response shapes here are part of the checkout widget
// contract, so they bypass the shared response envelope.
type PaymentHandler struct {
	orders      *services.OrderService
	enrollments *services.EnrollmentService
	keyID       string
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, gateway *razorpay.Client, keySecret string) *PaymentHandler {
	keyID := ""
	if gateway != nil {
		keyID = gateway.KeyID()
	}
	return &PaymentHandler{
		orders:      services.NewOrderService(db, gateway),
		enrollments: services.NewEnrollmentService(db, gateway, keySecret),
		keyID:       keyID,
	}
}

// CreateOrderRequest is the order creation body. Amount is a fallback only;
// a referenced course's stored price is authoritative.
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	CourseID uint   `json:"courseId"`
}

// CreateOrder handles POST /api/razorpay/order
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	order, err := h.orders.CreateOrder(c.UserContext(), services.CreateOrderInput{
		CourseID: req.CourseID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGatewayNotConfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment gateway not configured"})
		case errors.Is(err, services.ErrCourseInactive):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Course is not available for purchase"})
		default:
			var apiErr *razorpay.APIError
			if errors.As(err, &apiErr) {
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": apiErr.Description})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
		}
	}

	// The checkout widget needs the public key alongside the order.
	return c.JSON(fiber.Map{
		"id":       order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"receipt":  order.Receipt,
		"status":   order.Status,
		"key":      h.keyID,
	})
}

// VerifyRequest carries the confirmation triple returned by checkout.
type VerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Verify handles POST /api/razorpay/verify. It is a standalone signature
// check and mutates nothing. A mismatch is a normal outcome and answers 200
// {success: false}; only a malformed payload (400) or a server missing its
// signing secret (500) produce error statuses.
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	ok, err := h.enrollments.VerifyTriple(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		if errors.Is(err, services.ErrSecretNotConfigured) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment verification is not configured"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	return c.JSON(fiber.Map{"success": ok})
}

// EnrollRequest identifies the user and carries the checkout confirmation.
type EnrollRequest struct {
	User struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Verification VerifyRequest `json:"verification"`
}

// Enroll handles POST /api/enroll
func (h *PaymentHandler) Enroll(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	result, err := h.enrollments.Enroll(c.UserContext(), services.EnrollmentInput{
		UserID:    req.User.ID,
		Email:     req.User.Email,
		Name:      req.User.Name,
		OrderID:   req.Verification.RazorpayOrderID,
		PaymentID: req.Verification.RazorpayPaymentID,
		Signature: req.Verification.RazorpaySignature,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingEmail):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User email is required"})
		case errors.Is(err, services.ErrMissingVerification):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment verification details are required"})
		case errors.Is(err, services.ErrVerificationFailed):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment verification failed"})
		case errors.Is(err, services.ErrAccountNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No account found for this email. Please sign up first."})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete enrollment"})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    result.User,
	})
}
