package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
	"github.com/devlaunch/academy-api/services/razorpay"
)

var (
	ErrMissingEmail        = errors.New("missing user email")
	ErrMissingVerification = errors.New("missing payment verification")
	ErrVerificationFailed  = errors.New("payment verification failed")
	ErrAccountNotFound     = errors.New("account not found")
	ErrSecretNotConfigured = errors.New("payment signing secret not configured")
)

// EnrollmentService applies the UNENROLLED -> ENROLLED transition after a
// payment has been verified. Signature verification is the sole gate: nothing
// mutates before it passes, and no intermediate "enrolling" state exists.
type EnrollmentService struct {
	db        *gorm.DB
	gateway   *razorpay.Client
	keySecret string
}

// NewEnrollmentService creates a new enrollment service. gateway may be nil;
// the audit enrichment is then skipped and the client-supplied payment id is
// used as the transaction reference.
func NewEnrollmentService(db *gorm.DB, gateway *razorpay.Client, keySecret string) *EnrollmentService {
	return &EnrollmentService{db: db, gateway: gateway, keySecret: keySecret}
}

// EnrollmentInput identifies the user and carries the gateway confirmation
// triple returned by checkout.
type EnrollmentInput struct {
	UserID    uint
	Email     string
	Name      string
	OrderID   string
	PaymentID string
	Signature string
}

// Enrichment reports the outcome of the best-effort steps around the
// mandatory user transition. Its failures never fail the enrollment.
type Enrichment struct {
	PaymentFetched  bool
	AuditRecorded   bool
	AlreadyRecorded bool
	BackfilledRows  int64
}

// EnrollmentResult separates the mandatory outcome (the enrolled user) from
// the auxiliary audit enrichment.
type EnrollmentResult struct {
	User       model.PublicUser
	Enrichment Enrichment
}

// VerifyTriple checks a checkout confirmation triple against the signing
// secret without touching any state. Used by the standalone verify endpoint.
// A mismatch is a normal false result; a missing secret or an incomplete
// triple is an error so callers can distinguish misconfiguration and
// malformed input from a failed check.
func (s *EnrollmentService) VerifyTriple(orderID, paymentID, signature string) (bool, error) {
	if s.keySecret == "" {
		return false, ErrSecretNotConfigured
	}
	if orderID == "" || paymentID == "" || signature == "" {
		return false, ErrMissingVerification
	}
	return razorpay.VerifySignature(s.keySecret, orderID, paymentID, signature), nil
}

// Enroll runs the enrollment transition:
//
//  1. hard gate on input shape,
//  2. hard gate on server-side signature verification,
//  3. best-effort gateway fetch + payment audit row,
//  4. the single mutating write flipping the user to enrolled,
//  5. best-effort back-fill of orphaned payment rows.
//
// The user must already exist; enrollment for an unknown identity is rejected
// rather than creating an unauthenticatable bare account.
func (s *EnrollmentService) Enroll(ctx context.Context, input EnrollmentInput) (*EnrollmentResult, error) {
	if input.Email == "" {
		return nil, ErrMissingEmail
	}
	if input.OrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return nil, ErrMissingVerification
	}
	if s.keySecret == "" {
		// Absent secret is server misconfiguration, not a failed verification.
		return nil, ErrSecretNotConfigured
	}

	if !razorpay.VerifySignature(s.keySecret, input.OrderID, input.PaymentID, input.Signature) {
		return nil, ErrVerificationFailed
	}

	// Signature verified. Everything from here runs with an authenticated
	// payment; only the user update below is allowed to fail the request.
	var enrichment Enrichment
	transactionID := input.PaymentID

	if fetched := s.fetchAndRecordPayment(ctx, input, &enrichment); fetched != "" {
		transactionID = fetched
	}

	user, err := s.markEnrolled(ctx, input, transactionID)
	if err != nil {
		return nil, err
	}

	// Back-fill user references on audit rows created before the user id was
	// known. A failure here is a missing denormalization, not a broken
	// enrollment.
	res := s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("email = ? AND user_id IS NULL", input.Email).
		Update("user_id", user.ID)
	if res.Error != nil {
		log.Printf("enroll: payment back-fill for %s failed: %v", input.Email, res.Error)
	} else {
		enrichment.BackfilledRows = res.RowsAffected
	}

	return &EnrollmentResult{User: user.Public(), Enrichment: enrichment}, nil
}

// fetchAndRecordPayment fetches the authoritative payment object and persists
// the audit row. Both steps are best-effort: a gateway read outage must not
// block a purchase whose signature already verified. Returns the gateway
// payment id when the fetch succeeded, else "".
func (s *EnrollmentService) fetchAndRecordPayment(ctx context.Context, input EnrollmentInput, enrichment *Enrichment) string {
	if s.gateway == nil {
		return ""
	}

	payment, err := s.gateway.FetchPayment(ctx, input.PaymentID)
	if err != nil {
		log.Printf("enroll: payment fetch for %s failed, continuing with client-supplied id: %v", input.PaymentID, err)
		return ""
	}
	enrichment.PaymentFetched = true

	record := model.Payment{
		Email:     input.Email,
		OrderID:   input.OrderID,
		PaymentID: payment.ID,
		Signature: input.Signature,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Status:    payment.Status,
		Method:    payment.Method,
		Raw:       datatypes.JSON(payment.Raw),
	}
	if len(payment.Notes) > 0 {
		if notes, err := marshalJSON(payment.Notes); err == nil {
			record.Notes = notes
		}
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if database.IsUniqueViolation(err) {
			// Replayed payment id: the audit row already exists.
			enrichment.AlreadyRecorded = true
		} else {
			log.Printf("enroll: payment audit write for %s failed: %v", payment.ID, err)
		}
	} else {
		enrichment.AuditRecorded = true
	}

	return payment.ID
}

// markEnrolled is the single mandatory mutation: one atomic row update
// matched by id when present, else by email.
func (s *EnrollmentService) markEnrolled(ctx context.Context, input EnrollmentInput, transactionID string) (*model.User, error) {
	var user model.User
	query := s.db.WithContext(ctx)
	if input.UserID != 0 {
		query = query.Where("id = ?", input.UserID)
	} else {
		query = query.Where("email = ?", input.Email)
	}

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	updates := map[string]any{
		"enrolled_course": true,
		"progress":        0,
		"transaction_id":  transactionID,
	}
	if input.Name != "" {
		updates["name"] = input.Name
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
