package converter

import (
	"clinic-management-server/internal/delivery/dto"
	"clinic-management-server/internal/domain/entity"
)

// UserToResponse converts a User entity to its DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
