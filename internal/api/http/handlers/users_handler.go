package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wakanda-gov/platform/internal/api/dto"
	"github.com/wakanda-gov/platform/internal/auth"
	"github.com/wakanda-gov/platform/internal/domain"
	"github.com/wakanda-gov/platform/internal/repository"
	"github.com/wakanda-gov/platform/internal/service"
	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

// UsersHandler exposes registration, login and account administration.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// Register handles POST /api/v1/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, tokens, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:      req.Email,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Password:   req.Password,
		Role:       domain.Role(req.Role),
		Department: req.Department,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user":   dto.NewUserResponse(user),
			"tokens": tokenPairResponse(tokens),
		},
	})
}

// Login handles POST /api/v1/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, tokens, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user":   dto.NewUserResponse(user),
			"tokens": tokenPairResponse(tokens),
		},
	})
}

// Me handles GET /api/v1/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	user, err := h.users.Get(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewUserResponse(user)})
}

// UpdateMe handles PUT /api/v1/users/me. Role and active changes are
// ignored on this path; only admins may change them via UpdateByID.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), claims.UserID, service.UserUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: req.Department,
		Phone:      req.Phone,
		Address:    req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewUserResponse(user)})
}

// List handles GET /api/v1/users (admin or manager).
func (h *UsersHandler) List(c *fiber.Ctx) error {
	query := repository.UserQuery{
		Search:  c.Query("search"),
		Role:    domain.Role(c.Query("role")),
		SortBy:  c.Query("sortBy"),
		SortDir: c.Query("sortDir"),
		Offset:  c.QueryInt("offset", 0),
		Limit:   c.QueryInt("limit", 50),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		query.Active = &active
	}

	page, err := h.users.List(c.UserContext(), query)
	if err != nil {
		return err
	}

	users := make([]dto.UserResponse, 0, len(page.Users))
	for _, user := range page.Users {
		users = append(users, dto.NewUserResponse(user))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"users": users, "total": page.Total},
	})
}

// Stats handles GET /api/v1/users/stats (admin or manager).
func (h *UsersHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.users.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"totalUsers":          stats.TotalUsers,
			"activeUsers":         stats.ActiveUsers,
			"usersByRole":         stats.UsersByRole,
			"recentRegistrations": stats.RecentRegistrations,
		},
	})
}

// Get handles GET /api/v1/users/:id. Callers may read their own account;
// reading someone else's requires at least manager seniority.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	id := c.Params("id")
	if claims.UserID != id && !domain.Dominates(claims.Role, domain.RoleManager) {
		return apperrors.NewForbidden("Insufficient permissions")
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewUserResponse(user)})
}

// UpdateByID handles PUT /api/v1/users/:id (admin only); may change role
// and active state.
func (h *UsersHandler) UpdateByID(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	update := service.UserUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: req.Department,
		Phone:      req.Phone,
		Address:    req.Address,
		Active:     req.Active,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.users.Update(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /api/v1/users/:id (admin only).
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func tokenPairResponse(tokens *service.TokenPair) dto.TokensResponse {
	return dto.TokensResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}
}
