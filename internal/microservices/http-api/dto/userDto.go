package dto

import "bookswap/internal/microservices/http-api/models"

// UserResponse is the nested read-only user representation
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func FromModelToUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}
