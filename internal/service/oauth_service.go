package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"champ-voting-be/internal/config"
	"champ-voting-be/internal/dto"
	"champ-voting-be/internal/entity"
	"champ-voting-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type IOAuthService interface {
	// GoogleLogin exchanges an authorization code for a Google profile and
	// returns a first-party token, creating the user on first sign-in.
	GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory  unitofwork.RepositoryFactory
	authService IAuthService
	oauthConfig *oauth2.Config
	cfg         *config.Config
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, authService IAuthService, cfg *config.Config) IOAuthService {
	return &oauthService{
		uowFactory:  uowFactory,
		authService: authService,
		cfg:         cfg,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.Auth.GoogleClientID,
			ClientSecret: cfg.Auth.GoogleSecret,
			RedirectURL:  cfg.Auth.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

type googleProfile struct {
	Id      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *oauthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var profile googleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *oauthService) GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	token, err := s.oauthConfig.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByGoogleId(ctx, profile.Id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// First sign-in may still match an email/password account.
		user, err = uow.UserRepository().FindByEmail(ctx, profile.Email)
		if err != nil {
			return nil, err
		}
	}

	if user == nil {
		user = &entity.User{
			Id:         uuid.New(),
			Email:      profile.Email,
			FullName:   profile.Name,
			GoogleId:   &profile.Id,
			PictureURL: profile.Picture,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
	} else if user.GoogleId == nil {
		user.GoogleId = &profile.Id
		user.PictureURL = profile.Picture
		user.UpdatedAt = time.Now()
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	signed, expiresAt, err := s.authService.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User: dto.MeResponse{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
			IsAdmin:  s.authService.IsAdmin(user.Email),
		},
	}, nil
}
