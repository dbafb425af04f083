package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appuser "github.com/rsetiawan/agrostock/application/user"
	"github.com/rsetiawan/agrostock/cmd/config"
	"github.com/rsetiawan/agrostock/constant"
	redismocks "github.com/rsetiawan/agrostock/mocks/repository/redis"
	usermocks "github.com/rsetiawan/agrostock/mocks/repository/user"
	"github.com/rsetiawan/agrostock/model"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type fields struct {
	config    *config.Config
	userRepo  *usermocks.UserRepository
	redisRepo *redismocks.Repository
}

func newFields(t *testing.T) fields {
	return fields{
		config: &config.Config{
			Auth: config.AuthConfig{
				JWTSecret:      "test-secret",
				JWTExpiration:  time.Hour,
				SessionExpTime: time.Hour,
			},
		},
		userRepo:  usermocks.NewUserRepository(t),
		redisRepo: redismocks.NewRepository(t),
	}
}

func newApp(f fields) appuser.UserApp {
	return appuser.NewUserApp(f.config, f.userRepo, f.redisRepo)
}

func assertErrCode(t *testing.T, err error, errCode constant.ErrorType) {
	t.Helper()
	var ce interface {
		error
		ErrorCode() string
	}
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want coded error", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
}

func TestUserApp_Register(t *testing.T) {
	req := &model.RegisterRequest{
		Name:     "Budi",
		Email:    "budi@agrostock.id",
		Phone:    "08123456789",
		Password: "rahasia1",
	}

	tests := []struct {
		name     string
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: defaults to operator role",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: req.Email}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: req.Phone}).Return(nil, nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.UserEntity) bool {
					return u.Email == req.Email && u.Role == "operator" && u.PasswordHash != req.Password
				})).Return(&model.UserEntity{
					ID:    1,
					Name:  req.Name,
					Email: req.Email,
					Role:  "operator",
				}, nil).Once()
			},
		},
		{
			name: "error: email already registered",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: req.Email}).Return(&model.UserEntity{ID: 1}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: phone already registered",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: req.Email}).Return(nil, nil).Once()
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: req.Phone}).Return(&model.UserEntity{ID: 2}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := newApp(f).Register(context.Background(), req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Email != req.Email || got.Role != "operator" {
				t.Fatalf("Register() = %+v", got)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia1"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stored := &model.UserEntity{
		ID:           1,
		Name:         "Budi",
		Email:        "budi@agrostock.id",
		Role:         "operator",
		PasswordHash: string(hash),
	}

	tests := []struct {
		name     string
		req      *model.LoginRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: login by email",
			req:  &model.LoginRequest{Identifier: "budi@agrostock.id", Password: "rahasia1"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "budi@agrostock.id"}).Return(stored, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()
			},
		},
		{
			name: "success: login by phone",
			req:  &model.LoginRequest{Identifier: "08123456789", Password: "rahasia1"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Phone: "08123456789"}).Return(stored, nil).Once()
				f.redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()
			},
		},
		{
			name: "error: wrong password",
			req:  &model.LoginRequest{Identifier: "budi@agrostock.id", Password: "salah"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "budi@agrostock.id"}).Return(stored, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidPassword,
		},
		{
			name: "error: unknown user",
			req:  &model.LoginRequest{Identifier: "budi@agrostock.id", Password: "rahasia1"},
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{Email: "budi@agrostock.id"}).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			tt.mockCall(f)

			got, err := newApp(f).Login(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Token == "" {
				t.Fatal("Login() returned empty token")
			}
		})
	}
}

func TestUserApp_ValidateToken(t *testing.T) {
	f := newFields(t)

	// Obtain a real token through Login so the claims line up.
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia1"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	f.userRepo.On("Get", mock.Anything, mock.Anything).Return(&model.UserEntity{
		ID:           1,
		PasswordHash: string(hash),
	}, nil).Once()

	var jti string
	f.redisRepo.On("SetSession", mock.Anything, mock.MatchedBy(func(id string) bool {
		jti = id
		return id != ""
	}), uint64(1), time.Hour).Return(nil).Once()

	app := newApp(f)
	resp, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "budi@agrostock.id", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	f.redisRepo.On("GetSession", mock.Anything, jti).Return(uint64(1), nil).Once()

	userID, err := app.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if userID != 1 {
		t.Fatalf("ValidateToken() = %d, want 1", userID)
	}
}

func TestUserApp_ValidateToken_SessionRevoked(t *testing.T) {
	f := newFields(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("rahasia1"), bcrypt.MinCost)
	f.userRepo.On("Get", mock.Anything, mock.Anything).Return(&model.UserEntity{
		ID:           1,
		PasswordHash: string(hash),
	}, nil).Once()
	f.redisRepo.On("SetSession", mock.Anything, mock.Anything, uint64(1), time.Hour).Return(nil).Once()

	app := newApp(f)
	resp, err := app.Login(context.Background(), &model.LoginRequest{Identifier: "budi@agrostock.id", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	f.redisRepo.On("GetSession", mock.Anything, mock.Anything).Return(uint64(0), errors.New("session not found")).Once()

	if _, err := app.ValidateToken(context.Background(), resp.Token); err == nil {
		t.Fatal("ValidateToken() expected error for revoked session")
	}
}
