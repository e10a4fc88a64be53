package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/marketloop/storefront-backend/pkg/db/models"
	"github.com/marketloop/storefront-backend/pkg/enums"
	"github.com/marketloop/storefront-backend/pkg/types"
)

// CreateUserDTO carries the fields needed to insert a user row.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         enums.UserRole
	Address      *types.Address
}

// ToModel converts the DTO into a persistable user model.
func (d CreateUserDTO) ToModel() *models.User {
	role := d.Role
	if !role.IsValid() {
		role = enums.UserRoleCustomer
	}
	return &models.User{
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         role,
		Address:      d.Address,
	}
}

// UserSummary is the public shape of an account, safe to return to clients.
type UserSummary struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      enums.UserRole `json:"role"`
	Address   *types.Address `json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// FromModel maps a user model onto the public summary.
func FromModel(user *models.User) UserSummary {
	if user == nil {
		return UserSummary{}
	}
	return UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
	}
}
