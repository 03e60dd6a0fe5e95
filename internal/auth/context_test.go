package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_AdminTriState(t *testing.T) {
	actx := NewContext(1, "claire.martin")

	assert.False(t, actx.AdminResolved())
	assert.False(t, actx.IsAdmin())

	actx.ResolveAdmin(false)
	assert.True(t, actx.AdminResolved())
	assert.False(t, actx.IsAdmin())

	actx.ResolveAdmin(true)
	assert.True(t, actx.AdminResolved())
	assert.True(t, actx.IsAdmin())
}

func TestIsSelfOrAdmin(t *testing.T) {
	resolved := func(userID uint, isAdmin bool) *Context {
		actx := NewContext(userID, "u")
		actx.ResolveAdmin(isAdmin)
		return actx
	}

	tests := []struct {
		name    string
		ownerID uint
		actx    *Context
		want    bool
	}{
		{"owner", 7, NewContext(7, "u"), true},
		{"owner with resolved non-admin", 7, resolved(7, false), true},
		{"other user, admin unresolved", 7, NewContext(8, "u"), false},
		{"other user, resolved non-admin", 7, resolved(8, false), false},
		{"other user, resolved admin", 7, resolved(8, true), true},
		{"nil context", 7, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSelfOrAdmin(tt.ownerID, tt.actx))
		})
	}
}
