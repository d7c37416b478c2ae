package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/dto"
	"github.com/GlebRadaev/mlmledger/internal/service/accountservice"
	"github.com/GlebRadaev/mlmledger/pkg/auth"
	"github.com/GlebRadaev/mlmledger/pkg/utils"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)
	user := &domain.User{ID: 1, MemberID: "4821930575", Username: "newuser", Role: domain.RoleUser}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful registration",
			body: `{"username":"newuser","email":"new@example.com","password":"password123","sponsorMemberId":"1000000009","position":"RIGHT"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), accountservice.RegisterParams{
					Username:        "newuser",
					Email:           "new@example.com",
					Password:        "password123",
					SponsorMemberID: "1000000009",
					Position:        domain.Right,
				}).Return(user, nil)
				service.EXPECT().GenerateToken(user).Return("some-jwt-token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedError: "",
		},
		{
			name: "User already exists",
			body: `{"username":"existinguser","email":"e@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), gomock.Any()).Return(nil, domain.ErrUserExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: domain.ErrUserExists.Error(),
		},
		{
			name: "Sponsor not found",
			body: `{"username":"u","email":"u@example.com","password":"p","sponsorMemberId":"1234567890"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), gomock.Any()).Return(nil, domain.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: domain.ErrUserNotFound.Error(),
		},
		{
			name: "Password rejected",
			body: `{"username":"u","email":"u@example.com","password":""}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), gomock.Any()).Return(nil, domain.ErrInvalidPassword)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: domain.ErrInvalidPassword.Error(),
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"username":"newuser","email":"new@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), gomock.Any()).Return(user, nil)
				service.EXPECT().
					GenerateToken(user).
					Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/register", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
				return
			}
			var resp dto.RegisterResponseDTO
			assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, "4821930575", resp.MemberID)
			assert.Equal(t, "Bearer some-jwt-token", rr.Header().Get("Authorization"))
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)
	user := &domain.User{ID: 1, Username: "testuser", Role: domain.RoleUser}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"login":"testuser","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "testuser", "password123").
					Return(user, nil)

				service.EXPECT().
					GenerateToken(user).
					Return("some-jwt-token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedError: "",
		},
		{
			name: "Invalid credentials",
			body: `{"login":"testuser","password":"wrongpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "testuser", "wrongpassword").
					Return(nil, domain.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: domain.ErrInvalidCredentials.Error(),
		},
		{
			name: "Suspended account",
			body: `{"login":"testuser","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "testuser", "password123").
					Return(nil, domain.ErrUserSuspended)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: domain.ErrUserSuspended.Error(),
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Error generating token",
			body: `{"login":"testuser","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(context.Background(), "testuser", "password123").
					Return(user, nil)

				service.EXPECT().
					GenerateToken(user).
					Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestProfileHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Profile(rr, httptest.NewRequest("GET", "/api/user/profile", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Success", func(t *testing.T) {
		service.EXPECT().Profile(gomock.Any(), int64(7)).Return(&domain.User{ID: 7, MemberID: "1000000009", Username: "alice"}, nil)

		req := httptest.NewRequest("GET", "/api/user/profile", nil)
		req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, int64(7)))
		rr := httptest.NewRecorder()
		handler.Profile(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.UserDTO
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "1000000009", resp.MemberID)
	})
}
