package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/internal/tokenutil"
	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepository    domain.UserRepository
	accessTokenSecret string
	accessTokenExpiry int
	contextTimeout    time.Duration
}

// NewAuthUsecase 创建注册/登录业务实例
func NewAuthUsecase(userRepository domain.UserRepository, accessTokenSecret string, accessTokenExpiry int, timeout time.Duration) domain.AuthUsecase {
	return &authUsecase{
		userRepository:    userRepository,
		accessTokenSecret: accessTokenSecret,
		accessTokenExpiry: accessTokenExpiry,
		contextTimeout:    timeout,
	}
}

func (uc *authUsecase) Signup(ctx context.Context, request domain.SignupRequest) (*domain.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	existing, err := uc.userRepository.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: 该邮箱已注册", domain.ErrDuplicate)
	}

	encryptedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := domain.NewUser(request.Email, request.DisplayName, string(encryptedPassword))
	if err := uc.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, err := tokenutil.CreateAccessToken(user, uc.accessTokenSecret, uc.accessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}
	return &domain.AuthResponse{AccessToken: accessToken, User: user.Public()}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request domain.LoginRequest) (*domain.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	user, err := uc.userRepository.GetByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	// 不区分"账户不存在"与"密码错误"，避免泄露注册状态
	if user == nil {
		return nil, fmt.Errorf("%w: 邮箱或密码错误", domain.ErrAuthRequired)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, fmt.Errorf("%w: 邮箱或密码错误", domain.ErrAuthRequired)
	}

	accessToken, err := tokenutil.CreateAccessToken(user, uc.accessTokenSecret, uc.accessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}
	return &domain.AuthResponse{AccessToken: accessToken, User: user.Public()}, nil
}

func (uc *authUsecase) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	return uc.userRepository.GetByID(ctx, userID)
}

func (uc *authUsecase) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	users, err := uc.userRepository.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	publicUsers := make([]domain.PublicUser, 0, len(users))
	for _, user := range users {
		publicUsers = append(publicUsers, user.Public())
	}
	return publicUsers, nil
}
