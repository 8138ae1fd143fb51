package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// UserHandlers handles admin user management endpoints
type UserHandlers struct {
	userService domain.UserService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userService domain.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// CreateUserRequest is the multipart form of a create-user request.
type CreateUserRequest struct {
	FirstName   string `form:"firstName" binding:"required"`
	LastName    string `form:"lastName" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	PhoneNumber string `form:"phoneNumber"`
	Role        string `form:"role"`
}

// EditUserRequest is the multipart form of an edit-user request. All
// fields are optional.
type EditUserRequest struct {
	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
	Email       string `form:"email"`
	PhoneNumber string `form:"phoneNumber"`
	Role        string `form:"role"`
	Password    string `form:"password"`
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func formFileBytes(c *gin.Context, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return readFormFile(header)
}

// CreateUser creates a new account with a generated password.
// POST /auth/create-user
func (h *UserHandlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	img, err := formFileBytes(c, "img")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid img upload"}})
		return
	}
	signature, err := formFileBytes(c, "signature")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid signature upload"}})
		return
	}

	role := domain.UserRole(req.Role)
	if req.Role != "" && !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), domain.CreateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
		Img:         img,
		Signature:   signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		case errors.Is(err, domain.ErrPhoneInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number already in use"})
		case errors.Is(err, domain.ErrInvalidPhoneNumber):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid phone number"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user.Public(),
	})
}

// EditUser updates an existing account.
// PATCH /auth/edit-user/:id
func (h *UserHandlers) EditUser(c *gin.Context) {
	var req EditUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	img, err := formFileBytes(c, "img")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid img upload"}})
		return
	}
	signature, err := formFileBytes(c, "signature")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid signature upload"}})
		return
	}

	role := domain.UserRole(req.Role)
	if req.Role != "" && !role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
		return
	}

	actorRole := domain.UserRole(c.GetString("user_role"))

	user, err := h.userService.EditUser(c.Request.Context(), c.Param("id"), domain.EditUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        role,
		Password:    req.Password,
		Img:         img,
		Signature:   signature,
	}, actorRole)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"message": "Cannot edit SUPER_ADMIN details"})
		case errors.Is(err, domain.ErrEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		case errors.Is(err, domain.ErrPhoneInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number already in use"})
		case errors.Is(err, domain.ErrInvalidPhoneNumber):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid phone number"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user.Public(),
	})
}

// ToggleUserStatus flips an account between Active and Inactive.
// PATCH /auth/user/:id/toggle-status
func (h *UserHandlers) ToggleUserStatus(c *gin.Context) {
	user, err := h.userService.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, domain.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"message": "Cannot change status of a SUPER_ADMIN user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User is now %s", user.Status),
		"user":    user.Public(),
	})
}
