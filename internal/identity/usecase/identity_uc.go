package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hostelconnect/hostel-service/internal/identity/domain"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is what a successful login hands back to the client: the signed
// token plus the username and role for display.
type LoginResult struct {
	Token    string
	Username string
	UserType string
}

// IdentityUsecase implements registration, login and token authentication.
type IdentityUsecase struct {
	repo   domain.UserRepository
	tokens *TokenManager
	logger *logger.Logger
}

func NewIdentityUsecase(repo domain.UserRepository, tokens *TokenManager, log *logger.Logger) *IdentityUsecase {
	return &IdentityUsecase{
		repo:   repo,
		tokens: tokens,
		logger: log.Named("IdentityUsecase"),
	}
}

// Register creates a new account with a bcrypt-hashed secret. The username
// must be unique; a duplicate yields ErrUsernameTaken. The email is optional
// and only used for owner notifications.
func (uc *IdentityUsecase) Register(ctx context.Context, username, password, userType, email string) error {
	if username == "" || password == "" || userType == "" {
		return fmt.Errorf("%w: username, password and userType are required", domain.ErrInvalidInput)
	}
	if !domain.IsValidUserType(userType) {
		return fmt.Errorf("%w: userType must be %q or %q", domain.ErrInvalidInput, domain.UserTypeOwner, domain.UserTypeStudent)
	}

	if _, err := uc.repo.FindByUsername(ctx, username); err == nil {
		uc.logger.Warn("registration with existing username", zap.String("username", username))
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("failed to hash password", zap.Error(err))
		return err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		UserType:     userType,
		Email:        email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		// The unique index closes the race between the existence check and
		// the insert.
		if errors.Is(err, domain.ErrUsernameTaken) {
			return domain.ErrUsernameTaken
		}
		uc.logger.Error("failed to create user", zap.String("username", username), zap.Error(err))
		return err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("user_type", userType))
	return nil
}

// Login verifies the credentials and issues a session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (uc *IdentityUsecase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	user, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Warn("login with wrong password", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID, user.UserType)
	if err != nil {
		uc.logger.Error("failed to issue token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResult{Token: token, Username: user.Username, UserType: user.UserType}, nil
}

// Authenticate verifies a bearer token and returns the session it encodes.
func (uc *IdentityUsecase) Authenticate(tokenString string) (*Session, error) {
	return uc.tokens.Verify(tokenString)
}

// CurrentUser returns the account behind a session, without the credential
// digest being exposed by callers.
func (uc *IdentityUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
