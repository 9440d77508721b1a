// Package access resolves the acting principal of a request into the
// ownership/visibility predicates every lifecycle operation is gated on.
package access

import (
	"strings"

	"todoapp/internal/core/domain"
)

// RequireMember validates the acting principal id attached to a request.
func RequireMember(memberID string) error {
	if strings.TrimSpace(memberID) == "" {
		return domain.NewValidationError("memberId", "missing acting member")
	}
	return nil
}

// CanView reports whether memberID belongs to the record's visible set:
// the owner or any shared collaborator.
func CanView(ownerID string, sharedWith []string, memberID string) bool {
	if memberID == "" {
		return false
	}
	if ownerID == memberID {
		return true
	}
	for _, member := range sharedWith {
		if member == memberID {
			return true
		}
	}
	return false
}

func IsOwner(ownerID, memberID string) bool {
	return ownerID != "" && ownerID == memberID
}

// RequireOwner gates owner-only operations (delete, sharing changes,
// clearing completed tasks).
func RequireOwner(ownerID, memberID string) error {
	if !IsOwner(ownerID, memberID) {
		return domain.ErrForbidden
	}
	return nil
}
