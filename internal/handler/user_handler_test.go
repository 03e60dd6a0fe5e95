package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"covoiturage/internal/auth"
	apperrors "covoiturage/internal/errors"
	appmw "covoiturage/internal/middleware"
	"covoiturage/internal/model"
	"covoiturage/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, user *model.User, password string) (*model.User, error) {
	args := m.Called(ctx, user, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uint, upd service.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserFinder is a mock implementation of middleware.UserFinder.
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

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestUserHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockAuthService)
		wantStatus int
		wantCookie bool
	}{
		{
			name: "successful login sets cookie",
			body: `{"username":"claire.martin","motdepasse":"motdepasse1"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "claire.martin", "motdepasse1").Return("signed-token", nil)
			},
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
		{
			name:       "missing password",
			body:       `{"username":"claire.martin"}`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad credentials",
			body: `{"username":"claire.martin","motdepasse":"wrong"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "claire.martin", "wrong").Return("", apperrors.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := new(MockAuthService)
			tt.setupMock(authSvc)
			h := NewUserHandler(authSvc, new(MockUserService))

			e := newEcho()
			e.POST("/utilisateurs/login", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/utilisateurs/login", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			cookies := rec.Result().Cookies()
			if tt.wantCookie {
				require.Len(t, cookies, 1)
				assert.Equal(t, appmw.CookieName, cookies[0].Name)
				assert.Equal(t, "signed-token", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
				assert.True(t, cookies[0].Secure)
			} else {
				assert.Empty(t, cookies)
			}
			authSvc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_MyAdminStatus(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	token, err := tokens.Issue(7, "lucas.durand")
	require.NoError(t, err)

	finder := new(MockUserFinder)
	finder.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, EstAdmin: false}, nil)

	h := NewUserHandler(new(MockAuthService), new(MockUserService))
	e := newEcho()
	e.GET("/utilisateurs/my-admin-status", h.MyAdminStatus, appmw.Authenticate(tokens), appmw.RequireAdminStatus(finder))

	req := httptest.NewRequest(http.MethodGet, "/utilisateurs/my-admin-status", nil)
	req.AddCookie(&http.Cookie{Name: appmw.CookieName, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"estadmin":false}`, rec.Body.String())
}

func TestUserHandler_UpdateUser_Ownership(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	tokenUser8, err := tokens.Issue(8, "emma.bernard")
	require.NoError(t, err)

	body := `{"nom":"Bernard","prenom":"Emma","age":23,"username":"emma.bernard"}`

	tests := []struct {
		name       string
		isAdmin    bool
		setupMock  func(*MockUserService)
		wantStatus int
	}{
		{
			name:       "non-admin updating another user",
			isAdmin:    false,
			setupMock:  func(m *MockUserService) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:    "admin updating another user",
			isAdmin: true,
			setupMock: func(m *MockUserService) {
				m.On("UpdateUser", mock.Anything, uint(7), mock.AnythingOfType("service.UserUpdate")).
					Return(&model.User{ID: 7, Username: "emma.bernard"}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(MockUserFinder)
			finder.On("FindByID", mock.Anything, uint(8)).Return(&model.User{ID: 8, EstAdmin: tt.isAdmin}, nil)

			userSvc := new(MockUserService)
			tt.setupMock(userSvc)

			h := NewUserHandler(new(MockAuthService), userSvc)
			e := newEcho()
			e.PUT("/utilisateurs/:id", h.UpdateUser, appmw.Authenticate(tokens), appmw.RequireAdminStatus(finder))

			req := httptest.NewRequest(http.MethodPut, "/utilisateurs/7", strings.NewReader(body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			req.AddCookie(&http.Cookie{Name: appmw.CookieName, Value: tokenUser8})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			userSvc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_Register_Conflict(t *testing.T) {
	authSvc := new(MockAuthService)
	authSvc.On("Register", mock.Anything, mock.AnythingOfType("*model.User"), "motdepasse1").
		Return(nil, apperrors.ErrUsernameTaken)

	h := NewUserHandler(authSvc, new(MockUserService))
	e := newEcho()
	e.POST("/utilisateurs", h.Register)

	body := `{"nom":"Martin","prenom":"Claire","username":"claire.martin","motdepasse":"motdepasse1"}`
	req := httptest.NewRequest(http.MethodPost, "/utilisateurs", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	authSvc.AssertExpectations(t)
}
