package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/services/razorpay"
)

const (
	// DefaultOrderAmount is the fallback price in paise when no course is
	// referenced and the client supplied no amount.
	DefaultOrderAmount int64 = 29900
	// DefaultCourseTitle labels fallback orders in the gateway notes.
	DefaultCourseTitle = "Modern Web Development"
	// DefaultCurrency is the only currency the site charges in.
	DefaultCurrency = "INR"
)

var (
	ErrGatewayNotConfigured = errors.New("payment gateway credentials not configured")
	ErrCourseInactive       = errors.New("course is not available for purchase")
)

// OrderService creates gateway orders with server-resolved pricing.
type OrderService struct {
	db      *gorm.DB
	gateway *razorpay.Client
}

// NewOrderService creates a new order service. gateway may be nil when the
// Razorpay credentials are absent; every call then fails fast.
func NewOrderService(db *gorm.DB, gateway *razorpay.Client) *OrderService {
	return &OrderService{db: db, gateway: gateway}
}

// CreateOrderInput carries the client's order request. Amount is only a
// fallback; a referenced course's stored price always wins.
type CreateOrderInput struct {
	CourseID uint
	Amount   int64
	Currency string
	Receipt  string
}

// ResolveAmount resolves the authoritative amount and course title for an
// order. Resolution order: active course price, then client-supplied amount,
// then the hard default. A client can therefore never underpay for a real
// course: its stored price overrides whatever amount the request carried.
// An inactive course is an explicit error, not a silent fallback.
func (s *OrderService) ResolveAmount(ctx context.Context, courseID uint, clientAmount int64) (int64, string, error) {
	if courseID != 0 {
		var course model.Course
		err := s.db.WithContext(ctx).First(&course, courseID).Error
		switch {
		case err == nil:
			if !course.IsActive {
				return 0, "", ErrCourseInactive
			}
			return course.Price, course.Title, nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Unknown course id: fall through to the client amount/default.
			log.Printf("order: course %d not found, falling back to default pricing", courseID)
		default:
			log.Printf("order: course %d lookup failed: %v", courseID, err)
		}
	}

	if clientAmount > 0 {
		return clientAmount, DefaultCourseTitle, nil
	}
	return DefaultOrderAmount, DefaultCourseTitle, nil
}

// CreateOrder resolves the price and creates the order at the gateway. It
// writes no local state; failures surface to the caller with nothing to roll
// back.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*razorpay.Order, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}

	amount, title, err := s.ResolveAmount(ctx, input.CourseID, input.Amount)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	receipt := input.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%d", time.Now().UnixMilli())
	}

	notes := map[string]any{"course": title}
	if input.CourseID != 0 {
		notes["courseId"] = input.CourseID
	}

	return s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	})
}
