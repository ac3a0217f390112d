package domain

// Access policy predicates. These are pure functions with no side
// effects; every privileged entry point checks the relevant predicate
// before touching a store.

// CanReadHistory reports whether p may read the exchange history of
// targetUserID. Admins may read anyone's history, users only their own.
func CanReadHistory(p Principal, targetUserID string) bool {
	return p.Role == RoleAdmin || p.ID == targetUserID
}

// CanReadAdminSurface reports whether p may use the admin surface
// (cross-user logs, usage statistics, user management).
func CanReadAdminSurface(p Principal) bool {
	return p.Role == RoleAdmin
}
