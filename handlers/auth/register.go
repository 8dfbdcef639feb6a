package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/devlaunch/academy-api/database"
	"github.com/devlaunch/academy-api/model"
	authutil "github.com/devlaunch/academy-api/utils/auth"
	"github.com/devlaunch/academy-api/utils/middleware"
	"github.com/devlaunch/academy-api/utils/response"
	"github.com/devlaunch/academy-api/utils/validation"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2"`
	Mobile   string `json:"mobile" validate:"required"`
}

// RegisterResponse represents a successful registration response
type RegisterResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID             uint      `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Mobile         string    `json:"mobile,omitempty"`
	Role           string    `json:"role"`
	EnrolledCourse bool      `json:"enrolled_course"`
	Progress       int       `json:"progress"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toUserResponse(user *model.User) UserResponse {
	mobile := ""
	if user.Mobile != nil {
		mobile = *user.Mobile
	}
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		Mobile:         mobile,
		Role:           user.Role,
		EnrolledCourse: user.EnrolledCourse,
		Progress:       user.Progress,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Mobile == "" {
		return response.BadRequest(c, "Email, password, name, and mobile are required")
	}

	if !validation.ValidateEmail(req.Email) {
		return response.BadRequest(c, "Invalid email format")
	}

	if !validation.ValidateMobile(req.Mobile) {
		return response.BadRequest(c, "Invalid mobile number")
	}
	mobile := validation.NormalizeMobile(req.Mobile)

	if !authutil.IsPasswordValid(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters long")
	}

	// Hash password
	hashedPassword, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	// Create user; unique indexes on email and mobile are the source of truth
	// for duplicates, not a racy pre-check.
	user := model.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Mobile:       &mobile,
		Role:         model.RoleStudent,
		TokenVersion: 0,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return response.Conflict(c, "An account with this email or mobile already exists")
		}
		return response.InternalServerError(c, "Failed to create user")
	}

	pair, err := h.jwtManager.GeneratePair(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	res := RegisterResponse{
		User:         toUserResponse(&user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}

	return response.Created(c, res)
}
