package approval

// Role represents the actor role resolved by the identity layer.
// The core only ever sees a resolved role per call; token handling is an
// infrastructure concern.
type Role string

const (
	RoleAccountManager Role = "ACCOUNT_MANAGER" // First-tier approver
	RoleHOF            Role = "HOF"             // Head of finance, second-tier approver
	RoleAdmin          Role = "ADMIN"           // May act in place of the head of finance
)

// IsValid checks if the role is a known approver role
func (r Role) IsValid() bool {
	switch r {
	case RoleAccountManager, RoleHOF, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanApprove is the single authorization capability check for the approval
// chain: it reports whether the role may decide a document in the given
// status. Presentation layers may consult it for hints; the flow enforces it.
func CanApprove(role Role, status Status) bool {
	switch status {
	case StatusPendingAccounts:
		return role == RoleAccountManager
	case StatusPendingHOF:
		return role == RoleHOF || role == RoleAdmin
	}
	return false
}

// PendingStatusFor returns the approval status whose queue the role serves.
// The second return is false for roles with no queue of their own.
func PendingStatusFor(role Role) (Status, bool) {
	switch role {
	case RoleAccountManager:
		return StatusPendingAccounts, true
	case RoleHOF, RoleAdmin:
		return StatusPendingHOF, true
	}
	return "", false
}
