package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/wishlist-backend/internal/clients/redis"
	"github.com/yungbote/wishlist-backend/internal/data/repos"
	types "github.com/yungbote/wishlist-backend/internal/domain"
	"github.com/yungbote/wishlist-backend/internal/platform/apierr"
	"github.com/yungbote/wishlist-backend/internal/platform/ctxutil"
	"github.com/yungbote/wishlist-backend/internal/platform/dbctx"
	"github.com/yungbote/wishlist-backend/internal/platform/logger"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, password, confirmation string) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (*types.User, string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type AuthConfig struct {
	JWTSecretKey string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	BcryptCost   int
}

type JWTClaims struct {
	jwt.RegisteredClaims
}

const minPasswordLen = 6

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	sessions      redis.SessionCache
	cfg           AuthConfig
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	sessions redis.SessionCache,
	cfg AuthConfig,
) AuthService {
	if sessions == nil {
		sessions = redis.NoopSessionCache{}
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 24 * time.Hour
	}
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		sessions:      sessions,
		cfg:           cfg,
	}
}

func (as *authService) RegisterUser(ctx context.Context, email, password, confirmation string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apierr.BadParams(errors.New("email and password are required"))
	}
	if password != confirmation {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeBadParams, errors.New("password confirmation does not match"))
	}
	if len(password) < minPasswordLen {
		return nil, apierr.Validation(fmt.Errorf("password must be at least %d characters", minPasswordLen))
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.userRepo.EmailExists(dbc, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apierr.Conflict(errors.New("email already registered"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), as.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	created, err := as.userRepo.Create(dbc, []*types.User{{
		Email:          email,
		HashedPassword: string(hashed),
	}})
	if err != nil {
		// lost a race with a concurrent sign-up; the unique index decides
		return nil, apierr.FromError(err)
	}
	as.log.Info("User registered", "user_id", created[0].ID)
	return created[0], nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", "", apierr.BadCredentials()
	}
	users, err := as.userRepo.GetByEmails(dbctx.Context{Ctx: ctx}, []string{email})
	if err != nil {
		return nil, "", "", fmt.Errorf("load user by email: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, "", "", apierr.BadCredentials()
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, "", "", apierr.BadCredentials()
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := as.purgeExpired(inner, user.ID); err != nil {
			return err
		}
		a, r, err := as.issueTokens(inner, user)
		if err != nil {
			return err
		}
		accessToken, refreshToken = a, r
		return nil
	})
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// RefreshUser trades a live refresh token for a new access/refresh pair. The old
// pair is revoked in the same transaction.
func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", apierr.Unauthorized(errors.New("missing refresh token"))
	}

	var accessToken, newRefresh, revokedAccess string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByRefreshTokens(inner, []string{refreshToken})
		if err != nil {
			return fmt.Errorf("load refresh token: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return apierr.Unauthorized(errors.New("invalid refresh token"))
		}
		existing := found[0]
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.FullDeleteByTokens(inner, []*types.UserToken{existing}); err != nil {
				return fmt.Errorf("delete expired token: %w", err)
			}
			return apierr.Unauthorized(errors.New("refresh token expired"))
		}
		users, err := as.userRepo.GetByIDs(inner, []uuid.UUID{existing.UserID})
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if len(users) == 0 || users[0] == nil {
			return apierr.Unauthorized(errors.New("user no longer exists"))
		}
		if err := as.userTokenRepo.FullDeleteByTokens(inner, []*types.UserToken{existing}); err != nil {
			return fmt.Errorf("revoke old token: %w", err)
		}
		a, r, err := as.issueTokens(inner, users[0])
		if err != nil {
			return err
		}
		accessToken, newRefresh, revokedAccess = a, r, existing.AccessToken
		return nil
	})
	if err != nil {
		return "", "", err
	}
	as.forget(ctx, revokedAccess)
	return accessToken, newRefresh, nil
}

// ChangePassword verifies the old password, stores the new hash and revokes every
// other session of the requester. The session making the call stays valid.
func (as *authService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.Unauthorized(nil)
	}
	if len(newPassword) < minPasswordLen {
		return apierr.Validation(fmt.Errorf("password must be at least %d characters", minPasswordLen))
	}

	var revoked []string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		users, err := as.userRepo.GetByIDs(inner, []uuid.UUID{rd.UserID})
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if len(users) == 0 || users[0] == nil {
			return apierr.Unauthorized(errors.New("user no longer exists"))
		}
		if err := bcrypt.CompareHashAndPassword([]byte(users[0].HashedPassword), []byte(oldPassword)); err != nil {
			return apierr.BadCredentials()
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), as.cfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := as.userRepo.UpdatePassword(inner, rd.UserID, string(hashed)); err != nil {
			return fmt.Errorf("update password: %w", err)
		}

		tokens, err := as.userTokenRepo.GetByUserIDs(inner, []uuid.UUID{rd.UserID})
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		others := make([]*types.UserToken, 0, len(tokens))
		for _, t := range tokens {
			if t == nil || t.AccessToken == rd.TokenString {
				continue
			}
			others = append(others, t)
			revoked = append(revoked, t.AccessToken)
		}
		return as.userTokenRepo.FullDeleteByTokens(inner, others)
	})
	if err != nil {
		return err
	}
	as.forget(ctx, revoked...)
	as.log.Info("Password changed", "user_id", rd.UserID, "revoked_sessions", len(revoked))
	return nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apierr.Unauthorized(nil)
	}
	dbc := dbctx.Context{Ctx: ctx}
	found, err := as.userTokenRepo.GetByAccessTokens(dbc, []string{rd.TokenString})
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if err := as.userTokenRepo.FullDeleteByTokens(dbc, found); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	as.forget(ctx, rd.TokenString)
	return nil
}

// SetContextFromToken verifies tokenString and returns ctx carrying the caller's
// RequestData. A well-signed JWT whose user_token row is gone is rejected.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized(nil)
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(as.cfg.JWTSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid token: %w", err))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Unauthorized(errors.New("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid subject: %w", err))
	}

	cached, hit, err := as.sessions.Get(ctx, tokenString)
	if err != nil {
		as.log.Warn("Session cache lookup failed", "error", err)
	}
	if !hit || cached != userID {
		found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
		if err != nil {
			return ctx, fmt.Errorf("load token: %w", err)
		}
		if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
			return ctx, apierr.Unauthorized(errors.New("token has been revoked"))
		}
		if claims.ExpiresAt != nil {
			if err := as.sessions.Set(ctx, tokenString, userID, time.Until(claims.ExpiresAt.Time)); err != nil {
				as.log.Warn("Session cache write failed", "error", err)
			}
		}
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.cfg.AccessTTL
}

func (as *authService) issueTokens(dbc dbctx.Context, user *types.User) (string, string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.AccessTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.cfg.JWTSecretKey))
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh := uuid.NewString()
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(as.cfg.RefreshTTL),
	}}); err != nil {
		return "", "", fmt.Errorf("store user token: %w", err)
	}
	return access, refresh, nil
}

func (as *authService) purgeExpired(dbc dbctx.Context, userID uuid.UUID) error {
	tokens, err := as.userTokenRepo.GetByUserIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	now := time.Now()
	var expired []*types.UserToken
	for _, t := range tokens {
		if t != nil && t.ExpiresAt.Before(now) {
			expired = append(expired, t)
		}
	}
	return as.userTokenRepo.FullDeleteByTokens(dbc, expired)
}

func (as *authService) forget(ctx context.Context, accessTokens ...string) {
	if len(accessTokens) == 0 {
		return
	}
	if err := as.sessions.Delete(ctx, accessTokens...); err != nil {
		as.log.Warn("Session cache delete failed", "error", err)
	}
}
