// internal/services/user_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/shopnest/shopnest-backend/internal/authz"
	"github.com/shopnest/shopnest-backend/internal/models"
	"github.com/shopnest/shopnest-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type CreateUserRequest struct {
	Username     string   `json:"username" validate:"required,username"`
	Email        string   `json:"email" validate:"required,email"`
	Password     string   `json:"password" validate:"required,strong_password"`
	IsStaff      bool     `json:"is_staff"`
	IsSuperuser  bool     `json:"is_superuser"`
	Capabilities []string `json:"capabilities,omitempty"`
}

type UpdateUserRequest struct {
	Username     *string  `json:"username,omitempty" validate:"omitempty,username"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email"`
	Password     *string  `json:"password,omitempty" validate:"omitempty,strong_password"`
	IsStaff      *bool    `json:"is_staff,omitempty"`
	IsSuperuser  *bool    `json:"is_superuser,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser doubles as self-registration: anyone may create an account, but
// privilege fields are stripped unless the requesting actor is a superuser.
func (s *UserService) CreateUser(actor *authz.Actor, req *CreateUserRequest) (*models.User, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, models.ResourceUser); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		if existing.Email == req.Email {
			return nil, errors.New("user with this email already exists")
		}
		return nil, errors.New("username already taken")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		IsActive: true,
	}

	if authz.CanSetPrivileges(actor) {
		user.IsStaff = req.IsStaff
		user.IsSuperuser = req.IsSuperuser
		user.Capabilities = pq.StringArray(req.Capabilities)
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, internalErrorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, internalErrorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(actor *authz.Actor, params utils.PaginationParams) ([]models.User, int64, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceUser); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.User{})
	query = authz.Scope(actor, models.ResourceUser, query)

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, internalErrorf("failed to count users: %w", err)
	}

	var users []models.User
	query = utils.ApplySort(query, params, []string{"created_at", "username", "email"})
	if err := utils.ApplyPagination(query, params).Find(&users).Error; err != nil {
		return nil, 0, internalErrorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (s *UserService) GetUser(actor *authz.Actor, id uuid.UUID) (*models.User, error) {
	if err := authz.Authorize(actor, authz.ActionRead, models.ResourceUser); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionRead, models.ResourceUser, user.ID); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserService) UpdateUser(actor *authz.Actor, id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionUpdate, models.ResourceUser, user.ID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, internalErrorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = user.PasswordHash
	}

	if authz.CanSetPrivileges(actor) {
		if req.IsStaff != nil {
			updates["is_staff"] = *req.IsStaff
		}
		if req.IsSuperuser != nil {
			updates["is_superuser"] = *req.IsSuperuser
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if req.Capabilities != nil {
			updates["capabilities"] = pq.StringArray(req.Capabilities)
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, internalErrorf("failed to update user: %w", err)
		}
	}

	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, internalErrorf("database error: %w", err)
	}

	return &user, nil
}

func (s *UserService) DeleteUser(actor *authz.Actor, id uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return internalErrorf("database error: %w", err)
	}

	if err := authz.AuthorizeObject(actor, authz.ActionDelete, models.ResourceUser, user.ID); err != nil {
		return err
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return internalErrorf("failed to delete user: %w", err)
	}

	return nil
}
