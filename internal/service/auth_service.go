package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/domain/entity"
	"github.com/yourusername/quizpang-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizpang-api/internal/pkg/errors"
	"github.com/yourusername/quizpang-api/pkg/auth"
)

const (
	minPasswordLength = 6
	maxUsernameLength = 80
)

// TokenIssuer выпускает токены доступа
type TokenIssuer interface {
	GenerateToken(userID, username string) (string, time.Time, error)
}

// SignupInput — данные регистрации
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult — результат входа
type AuthResult struct {
	User        *entity.User
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService регистрирует пользователей и выпускает токены
type AuthService struct {
	userRepo     repository.UserRepository
	tokens       TokenIssuer
	emailService EmailService
	guard        storageGuard
	invalidator  RankingInvalidator
	emailTimeout time.Duration
	pending      sync.WaitGroup
	logger       *zap.Logger
}

var _ TokenIssuer = (*auth.JWTService)(nil)

// NewAuthService создает новый сервис аутентификации
func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenIssuer,
	emailService EmailService,
	probe repository.StorageProbe,
	invalidator RankingInvalidator,
	opts Options,
	logger *zap.Logger,
) *AuthService {
	if opts.EmailTimeout <= 0 {
		opts.EmailTimeout = DefaultOptions().EmailTimeout
	}
	return &AuthService{
		userRepo:     userRepo,
		tokens:       tokens,
		emailService: emailService,
		guard:        newStorageGuard(probe, opts.QueryTimeout),
		invalidator:  invalidatorOrNoop(invalidator),
		emailTimeout: opts.EmailTimeout,
		logger:       logger.Named("AuthService"),
	}
}

func validateSignup(in *SignupInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return fmt.Errorf("%w: missing required fields (username, email, password)", apperrors.ErrValidation)
	}
	if len([]rune(in.Username)) > maxUsernameLength {
		return fmt.Errorf("%w: username is longer than %d characters", apperrors.ErrValidation, maxUsernameLength)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}
	return nil
}

// Signup создает пользователя. Занятые email или username дают ErrConflict.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if err := validateSignup(&in); err != nil {
		return nil, err
	}

	opCtx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	if err := s.ensureAvailable(opCtx, in); err != nil {
		return nil, err
	}

	user := &entity.User{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password, // хешируется в BeforeSave
	}
	if err := s.userRepo.Create(opCtx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: email or username is already taken", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.invalidator.Invalidate(opCtx)
	s.logger.Info("Пользователь зарегистрирован", zap.String("user_id", user.ID), zap.String("username", user.Username))

	s.sendWelcome(ctx, user)
	return user, nil
}

// ensureAvailable проверяет, что username и email свободны.
// Гонку двух регистраций закрывают уникальные индексы, Create вернет ErrConflict.
func (s *AuthService) ensureAvailable(ctx context.Context, in SignupInput) error {
	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return fmt.Errorf("%w: username is already taken", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return fmt.Errorf("%w: email is already registered", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

// sendWelcome отправляет письмо в фоне со своим тайм-аутом, не задерживая ответ
func (s *AuthService) sendWelcome(ctx context.Context, user *entity.User) {
	if s.emailService == nil {
		return
	}

	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.emailTimeout)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()
		if err := s.emailService.SendWelcome(mailCtx, user.Email, user.Username); err != nil {
			s.logger.Warn("Не удалось отправить приветственное письмо", zap.String("user_id", user.ID), zap.Error(err))
		}
	}()
}

// WaitPending ждет фоновые отправки писем
func (s *AuthService) WaitPending() {
	s.pending.Wait()
}

// Login проверяет email и пароль и выпускает токен доступа
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: missing required fields (email, password)", apperrors.ErrValidation)
	}

	ctx, cancel, err := s.guard.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.logger.Info("Успешный вход", zap.String("user_id", user.ID))
	return &AuthResult{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}
