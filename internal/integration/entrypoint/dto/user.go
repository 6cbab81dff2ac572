// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/yosan-kanri/backend/internal/domain/entity"

// UpdateUserRequest represents the request body for updating a user. Omitted
// fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	IsAdmin  *bool   `json:"is_admin"`
}

// UserListResponse represents the response for listing users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserListResponse converts domain User entities to a UserListResponse DTO.
func ToUserListResponse(users []*entity.User) UserListResponse {
	resp := UserListResponse{Users: make([]UserResponse, len(users))}
	for i, u := range users {
		resp.Users[i] = ToUserResponse(u)
	}
	return resp
}
