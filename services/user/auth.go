package user

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pitchbook/models"
	"pitchbook/utils"
)

const (
	authTokenTTL    = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter, one digit, and one symbol.
func verifyPasswordComplexity(pw string) error {
	var (
		hasMinLen = len(pw) >= 8
		hasUpper  = regexp.MustCompile(`[A-Z]`).MatchString(pw)
		hasLower  = regexp.MustCompile(`[a-z]`).MatchString(pw)
		hasNumber = regexp.MustCompile(`[0-9]`).MatchString(pw)
		hasSymbol = regexp.MustCompile(`[\W_]`).MatchString(pw)
	)
	if !hasMinLen {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must include at least one number")
	}
	if !hasSymbol {
		return fmt.Errorf("password must include at least one symbol")
	}
	return nil
}

// RegisterUser creates a new account, issues tokens and stores their hashes.
func (s *DefaultUserService) RegisterUser(user models.User) (*AuthResponse, error) {
	ctx := context.Background()

	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if user.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if err := verifyPasswordComplexity(user.Password); err != nil {
		return nil, err
	}
	switch user.Role {
	case "":
		user.Role = models.RoleUser
	case models.RoleUser, models.RoleFutsalOwner:
	default:
		// Admin accounts are provisioned out of band.
		return nil, fmt.Errorf("invalid role %q", user.Role)
	}

	existing, err := s.Repo.GetByEmail(ctx, user.Email)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""

	user.ID = uuid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	token, refresh, err := s.issueTokens(&user)
	if err != nil {
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if err := s.Repo.Insert(ctx, &user); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:           user.ID,
		Token:        token,
		RefreshToken: refresh,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
	}, nil
}

// AuthenticateUser verifies credentials and rotates both tokens.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	ctx := context.Background()

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user for authentication", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if user == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := s.persistTokenHashes(ctx, user); err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	s.clearAuthCache(ctx, user.ID)

	return &AuthResponse{
		ID:           user.ID,
		Token:        token,
		RefreshToken: refresh,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
	}, nil
}

// refreshAttempts throttles token refreshes per account: at most two
// attempts within a five-second window.
var refreshAttempts = struct {
	sync.Mutex
	m map[string]refreshWindow
}{m: make(map[string]refreshWindow)}

type refreshWindow struct {
	start time.Time
	count int
}

const (
	refreshWindowLen  = 5 * time.Second
	refreshMaxPerSpan = 2
)

func allowRefresh(key string) bool {
	refreshAttempts.Lock()
	defer refreshAttempts.Unlock()

	now := time.Now()
	w := refreshAttempts.m[key]
	if now.Sub(w.start) > refreshWindowLen {
		w = refreshWindow{start: now}
	}
	w.count++
	refreshAttempts.m[key] = w
	return w.count <= refreshMaxPerSpan
}

// RefreshAuthToken exchanges a valid refresh token for a fresh token pair.
func (s *DefaultUserService) RefreshAuthToken(refreshToken string) (*AuthResponse, error) {
	ctx := context.Background()

	userID, err := utils.ExtractIDFromToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if !allowRefresh(userID) {
		return nil, fmt.Errorf("too many refresh attempts, slow down")
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if user.RefreshHash == "" || user.RefreshHash != utils.HashToken(refreshToken) {
		return nil, fmt.Errorf("invalid refresh token")
	}

	token, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed, please try again")
	}
	if err := s.persistTokenHashes(ctx, user); err != nil {
		return nil, fmt.Errorf("token refresh failed, please try again")
	}
	s.clearAuthCache(ctx, user.ID)

	return &AuthResponse{
		ID:           user.ID,
		Token:        token,
		RefreshToken: refresh,
		Role:         user.Role,
	}, nil
}

// RevokeUserAuthToken clears stored token hashes and drops live
// WebSocket connections (logout).
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	ctx := context.Background()

	update := map[string]any{
		"tokenHash":   "",
		"refreshHash": "",
		"updatedAt":   time.Now(),
	}
	if err := s.Repo.Update(ctx, userID, update); err != nil {
		utils.GetLogger().Error("Failed to revoke user auth token",
			zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	s.clearAuthCache(ctx, userID)
	if s.Hub != nil {
		s.Hub.Disconnect(userID)
	}
	return nil
}

// issueTokens generates a token pair and sets their hashes on the user
// struct; persistence is the caller's job.
func (s *DefaultUserService) issueTokens(user *models.User) (token, refresh string, err error) {
	token, err = utils.GenerateToken(user.ID, user.Email, user.Role, authTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return "", "", err
	}
	refresh, err = utils.GenerateToken(user.ID, user.Email, user.Role, refreshTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate refresh token", zap.Error(err))
		return "", "", err
	}
	user.TokenHash = utils.HashToken(token)
	user.RefreshHash = utils.HashToken(refresh)
	return token, refresh, nil
}

func (s *DefaultUserService) persistTokenHashes(ctx context.Context, user *models.User) error {
	update := map[string]any{
		"tokenHash":   user.TokenHash,
		"refreshHash": user.RefreshHash,
		"updatedAt":   time.Now(),
	}
	if err := s.Repo.Update(ctx, user.ID, update); err != nil {
		utils.GetLogger().Error("Failed to store token hashes", zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultUserService) clearAuthCache(ctx context.Context, userID string) {
	cacheKey := utils.AuthCachePrefix + userID
	if err := utils.GetAuthCacheClient().Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.Error(err))
	}
}
