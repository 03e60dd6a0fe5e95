package auth

// Context is the request-scoped authorization context derived from a verified
// token. The admin flag is tri-state: "not yet resolved" and "resolved false"
// are distinct, so a handler can never mistake an unresolved flag for a
// granted or denied privilege.
type Context struct {
	UserID   uint
	Username string

	admin *bool
}

// NewContext builds a context for a verified identity with the admin flag
// unresolved.
func NewContext(userID uint, username string) *Context {
	return &Context{UserID: userID, Username: username}
}

// ResolveAdmin records the looked-up admin flag.
func (c *Context) ResolveAdmin(isAdmin bool) {
	c.admin = &isAdmin
}

// AdminResolved reports whether the admin-status resolution step has run.
func (c *Context) AdminResolved() bool {
	return c.admin != nil
}

// IsAdmin reports the resolved admin flag; an unresolved flag reads as false.
func (c *Context) IsAdmin() bool {
	return c.admin != nil && *c.admin
}

// IsSelfOrAdmin reports whether the context may act on a resource owned by
// ownerID: the requester must be the owner, or hold a resolved admin flag.
func IsSelfOrAdmin(ownerID uint, actx *Context) bool {
	if actx == nil {
		return false
	}
	return actx.UserID == ownerID || actx.IsAdmin()
}
