package service

import (
	"context"
	"os"
	"time"

	"champ-voting-be/internal/config"
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// IAuthService is the authentication provider: it issues the voter
// identity every vote mutation requires. Admin rights are a single-email
// check, nothing more.
type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error)
	IsAdmin(email string) bool
	IssueToken(user *entity.User) (string, time.Time, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        *config.Config
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{Id: user.Id}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: dto.MeResponse{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
			IsAdmin:  s.IsAdmin(user.Email),
		},
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return &dto.MeResponse{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
		IsAdmin:  s.IsAdmin(user.Email),
	}, nil
}

func (s *authService) IsAdmin(email string) bool {
	return s.cfg.Auth.AdminEmail != "" && email == s.cfg.Auth.AdminEmail
}

func (s *authService) IssueToken(user *entity.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.Auth.JwtExpiryHours) * time.Hour)
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := s.cfg.Auth.JwtSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
