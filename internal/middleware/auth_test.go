package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"covoiturage/internal/auth"
	"covoiturage/internal/model"
)

// MockUserFinder is a mock implementation of UserFinder.
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestApp(tokens *auth.TokenService, finder UserFinder) *echo.Echo {
	e := echo.New()

	identity := func(c echo.Context) error {
		actx := AuthContext(c)
		if actx == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "no auth context")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"userId":   actx.UserID,
			"username": actx.Username,
		})
	}
	adminStatus := func(c echo.Context) error {
		actx := AuthContext(c)
		return c.JSON(http.StatusOK, map[string]bool{"estadmin": actx.IsAdmin()})
	}

	e.GET("/protected", identity, Authenticate(tokens))
	e.GET("/admin-status", adminStatus, Authenticate(tokens), RequireAdminStatus(finder))
	e.GET("/unchained-admin-status", adminStatus, RequireAdminStatus(finder))
	return e
}

func doRequest(e *echo.Echo, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	expired := auth.NewTokenService("test-secret", -time.Minute)
	otherSecret := auth.NewTokenService("other-secret", time.Hour)

	validToken, err := tokens.Issue(7, "lucas.durand")
	require.NoError(t, err)
	expiredToken, err := expired.Issue(7, "lucas.durand")
	require.NoError(t, err)
	foreignToken, err := otherSecret.Issue(7, "lucas.durand")
	require.NoError(t, err)

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
	}{
		{"missing cookie", "", http.StatusUnauthorized},
		{"garbage token", "not-a-token", http.StatusForbidden},
		{"expired token", expiredToken, http.StatusForbidden},
		{"wrong signature", foreignToken, http.StatusForbidden},
		{"valid token", validToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestApp(tokens, new(MockUserFinder))
			rec := doRequest(e, "/protected", tt.cookie)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"userId":7`)
				assert.Contains(t, rec.Body.String(), `"username":"lucas.durand"`)
			}
		})
	}
}

func TestRequireAdminStatus(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	token, err := tokens.Issue(7, "lucas.durand")
	require.NoError(t, err)

	tests := []struct {
		name       string
		setupMock  func(*MockUserFinder)
		wantStatus int
		wantBody   string
	}{
		{
			name: "regular user",
			setupMock: func(m *MockUserFinder) {
				m.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, EstAdmin: false}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"estadmin":false`,
		},
		{
			name: "admin user",
			setupMock: func(m *MockUserFinder) {
				m.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, EstAdmin: true}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"estadmin":true`,
		},
		{
			name: "user row vanished",
			setupMock: func(m *MockUserFinder) {
				m.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "lookup failure",
			setupMock: func(m *MockUserFinder) {
				m.On("FindByID", mock.Anything, uint(7)).Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(MockUserFinder)
			tt.setupMock(finder)

			e := newTestApp(tokens, finder)
			rec := doRequest(e, "/admin-status", token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			finder.AssertExpectations(t)
		})
	}
}

func TestRequireAdminStatus_WithoutAuthenticate(t *testing.T) {
	e := newTestApp(auth.NewTokenService("test-secret", time.Hour), new(MockUserFinder))
	rec := doRequest(e, "/unchained-admin-status", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthContext_Unset(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, AuthContext(c))
}
