package domain

// Visibility controls whether non-owners can see an entry. It is advisory only.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is one of the known visibility values.
// The empty value is not valid; callers default it with OrDefault first.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// OrDefault returns v, or public when v is unset.
func (v Visibility) OrDefault() Visibility {
	if v == "" {
		return VisibilityPublic
	}
	return v
}

// Owned is implemented by every entry that carries visibility and a soft owner tag.
type Owned interface {
	GetVisibility() Visibility
	GetOwnerID() string
}

// IsVisibleTo is the single visibility rule shared by videos, exercises, resources and plans:
// an entry is visible when it is public or when its owner is the principal.
// An ownerless private entry is visible to no one.
func IsVisibleTo(e Owned, principal string) bool {
	if e.GetVisibility() == VisibilityPublic {
		return true
	}
	owner := e.GetOwnerID()
	return owner != "" && owner == principal
}

// FilterVisible returns the entries of items visible to principal, preserving order.
// The result is never nil.
func FilterVisible[T Owned](items []T, principal string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if IsVisibleTo(it, principal) {
			out = append(out, it)
		}
	}
	return out
}
