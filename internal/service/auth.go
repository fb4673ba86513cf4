package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/sofregit/backend/internal/model"
	"github.com/pageza/sofregit/backend/internal/store"
	"github.com/pageza/sofregit/backend/internal/types"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

type AuthService struct {
	db        *gorm.DB
	sessions  store.SessionStore
	hub       *AuthHub
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthService(db *gorm.DB, sessions store.SessionStore, hub *AuthHub, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		hub:       hub,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger.Named("auth"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and signs clientID in as that user. Mismatched
// passwords are rejected before anything is stored.
func (s *AuthService) Register(ctx context.Context, clientID string, in RegisterInput) (string, *model.User, error) {
	if in.Password != in.ConfirmPassword {
		return "", nil, ErrPasswordMismatch
	}

	email := normalizeEmail(in.Email)
	taken, err := s.emailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return "", nil, err
	}
	if taken {
		return "", nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(strings.TrimSpace(in.FirstName) + " " + strings.TrimSpace(in.LastName)),
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.Info("registered user", zap.String("user_id", user.ID.String()))

	token, err := s.bind(ctx, clientID, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SignIn checks the credentials and binds clientID to the user. Any
// mismatch, unknown email included, yields ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, clientID, email, password string) (string, *model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.bind(ctx, clientID, &user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// SignOut unbinds clientID, which also revokes the tokens issued to it.
func (s *AuthService) SignOut(ctx context.Context, clientID string) error {
	if err := s.sessions.Unbind(ctx, clientID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	s.publish(ctx, clientID, model.SignedOutState())
	return nil
}

func (s *AuthService) UpdateDisplayName(ctx context.Context, sess *model.Session, name string) error {
	if !sess.SignedIn() {
		return ErrNotAuthenticated
	}
	if err := s.db.WithContext(ctx).Model(sess.User).Update("display_name", name).Error; err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	sess.User.DisplayName = name
	s.publish(ctx, sess.ClientID, model.StateFor(sess.User))
	return nil
}

func (s *AuthService) UpdateEmail(ctx context.Context, sess *model.Session, email string) error {
	if !sess.SignedIn() {
		return ErrNotAuthenticated
	}
	email = normalizeEmail(email)
	taken, err := s.emailTaken(ctx, email, sess.User.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	if err := s.db.WithContext(ctx).Model(sess.User).Update("email", email).Error; err != nil {
		return fmt.Errorf("failed to update email: %w", err)
	}
	sess.User.Email = email
	s.publish(ctx, sess.ClientID, model.StateFor(sess.User))
	return nil
}

// State returns the current authentication state of clientID.
func (s *AuthService) State(ctx context.Context, clientID string) (model.AuthState, error) {
	sess, err := s.ResolveClient(ctx, clientID)
	if err != nil {
		return model.SignedOutState(), err
	}
	return model.StateFor(sess.User), nil
}

// Watch subscribes to the authentication state of clientID. The first value
// is the current state. The caller must invoke the returned func when done.
func (s *AuthService) Watch(ctx context.Context, clientID string) (<-chan model.AuthState, func(), error) {
	state, err := s.State(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}
	ch, unsubscribe := s.hub.Subscribe(clientID, state)
	return ch, unsubscribe, nil
}

// ResolveClient returns the session of clientID, signed out when no user is
// bound to it.
func (s *AuthService) ResolveClient(ctx context.Context, clientID string) (*model.Session, error) {
	sess := &model.Session{ClientID: clientID}
	userID, err := s.sessions.Lookup(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if userID == "" {
		return sess, nil
	}

	user, err := s.userByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sess, nil
	}
	if err != nil {
		return nil, err
	}
	sess.User = user
	return sess, nil
}

// ResolveToken validates a bearer token and returns the session it was
// issued to. Tokens of sessions that have since signed out are rejected.
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (*model.Session, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	bound, err := s.sessions.Lookup(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if bound == "" || bound != claims.UserID {
		return nil, ErrNotAuthenticated
	}

	user, err := s.userByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	return &model.Session{ClientID: claims.SessionID, User: user}, nil
}

func (s *AuthService) bind(ctx context.Context, clientID string, user *model.User) (string, error) {
	if err := s.sessions.Bind(ctx, clientID, user.ID.String()); err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}
	token, err := s.generateToken(clientID, user.ID.String())
	if err != nil {
		return "", err
	}
	s.publish(ctx, clientID, model.StateFor(user))
	return token, nil
}

func (s *AuthService) generateToken(clientID, userID string) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:    userID,
		SessionID: clientID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) publish(ctx context.Context, clientID string, state model.AuthState) {
	if err := s.hub.Publish(ctx, clientID, state); err != nil {
		s.logger.Error("failed to publish auth state", zap.String("client_id", clientID), zap.Error(err))
	}
}

func (s *AuthService) userByID(ctx context.Context, userID string) (*model.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) emailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error) {
	var count int64
	q := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}
