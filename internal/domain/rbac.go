package domain

// Role names shared by auth (token claims) and rbac (policy subjects).
const (
	RoleViewer = "viewer"
	RoleHR     = "hr"
	RoleAdmin  = "admin"
)

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleViewer, RoleHR, RoleAdmin:
		return true
	default:
		return false
	}
}
