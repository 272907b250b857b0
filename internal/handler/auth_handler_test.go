package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vidshelf/internal/auth"
	"vidshelf/internal/model"
)

// requestValidator mirrors the router's validator hook for handler tests.
type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password, email, role string) (*model.User, error) {
	args := m.Called(ctx, username, password, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func TestAuthHandler_Register_RoleAssignment(t *testing.T) {
	tests := []struct {
		name          string
		callerRole    string
		body          string
		setupMock     func(*MockAuthService)
		expectedCode  int
		registerCalls bool
	}{
		{
			name:       "admin creates default-role user",
			callerRole: model.RoleAdmin,
			body:       `{"username":"alice","password":"password123"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "alice", "password123", "", "").
					Return(&model.User{ID: 1, Username: "alice", Role: model.RoleUser}, nil)
			},
			expectedCode:  http.StatusCreated,
			registerCalls: true,
		},
		{
			name:         "admin cannot mint a superadmin",
			callerRole:   model.RoleAdmin,
			body:         `{"username":"eve","password":"password123","role":"superadmin"}`,
			setupMock:    func(m *MockAuthService) {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "admin cannot mint another admin",
			callerRole:   model.RoleAdmin,
			body:         `{"username":"eve","password":"password123","role":"admin"}`,
			setupMock:    func(m *MockAuthService) {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:       "superadmin creates an admin",
			callerRole: model.RoleSuperadmin,
			body:       `{"username":"carol","password":"password123","role":"admin"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "carol", "password123", "", "admin").
					Return(&model.User{ID: 2, Username: "carol", Role: model.RoleAdmin}, nil)
			},
			expectedCode:  http.StatusCreated,
			registerCalls: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockAuthService)
			tt.setupMock(mockSvc)

			e := echo.New()
			e.Validator = &requestValidator{v: validator.New()}
			req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set("user", &jwt.Token{Claims: &auth.Claims{UserID: 1, Role: tt.callerRole}})

			h := NewAuthHandler(mockSvc)
			err := h.Register(c)

			if tt.expectedCode == http.StatusCreated {
				require.NoError(t, err)
				assert.Equal(t, http.StatusCreated, rec.Code)
			} else {
				var httpErr *echo.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.expectedCode, httpErr.Code)
			}

			if !tt.registerCalls {
				mockSvc.AssertNotCalled(t, "Register",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Register_RequiresIdentity(t *testing.T) {
	mockSvc := new(MockAuthService)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"alice","password":"password123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(mockSvc)
	err := h.Register(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	mockSvc.AssertNotCalled(t, "Register",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
