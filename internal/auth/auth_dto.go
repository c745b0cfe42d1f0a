package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"access_token"`
	ExpiresAt string       `json:"expires_at"`
}

type StatusResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

func toUserResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
