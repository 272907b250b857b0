package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "vidshelf/internal/errors"
	"vidshelf/internal/model"
)

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

func (m *MockUserService) UpdateUser(ctx context.Context, id uint, username, email, role string) (*model.User, error) {
	args := m.Called(ctx, id, username, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		setupMock    func(*MockUserService)
		expectedCode int
	}{
		{
			name: "regular user deleted",
			id:   "2",
			setupMock: func(m *MockUserService) {
				m.On("DeleteUser", mock.Anything, uint(2)).Return(&model.User{
					ID: 2, Username: "bob", Role: model.RoleUser,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "superadmin cannot be deleted",
			id:   "1",
			setupMock: func(m *MockUserService) {
				m.On("DeleteUser", mock.Anything, uint(1)).Return(nil, apperrors.ErrSuperadminProtected)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "unknown user",
			id:   "9",
			setupMock: func(m *MockUserService) {
				m.On("DeleteUser", mock.Anything, uint(9)).Return(nil, apperrors.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "non-numeric id",
			id:           "abc",
			setupMock:    func(m *MockUserService) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockUserService)
			tt.setupMock(mockSvc)

			e := echo.New()
			req := httptest.NewRequest(http.MethodDelete, "/api/user/"+tt.id, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			h := NewUserHandler(mockSvc)
			err := h.DeleteUser(c)

			if tt.expectedCode == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"username":"bob"`)
			} else {
				var httpErr *echo.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.expectedCode, httpErr.Code)
			}

			mockSvc.AssertExpectations(t)
		})
	}
}
