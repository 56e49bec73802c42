package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/medtrace/medtrace-backend/internal/data/repos/account"
	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/ctxutil"
	"github.com/medtrace/medtrace-backend/internal/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, acct *domain.Account) error
	// Login authenticates by email or phone and returns a signed access token.
	Login(ctx context.Context, identifier, password string) (string, *domain.Account, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	// CheckRole verifies the stored account's role, not the token claim.
	CheckRole(ctx context.Context, accountID uint, role domain.Role) error
	GetAccessTTL() time.Duration
}

type authService struct {
	db          *gorm.DB
	log         *logger.Logger
	accountRepo account.AccountRepo
	jwtSecret   string
	accessTTL   time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, accountRepo account.AccountRepo, jwtSecret string, accessTTL time.Duration) AuthService {
	return &authService{
		db:          db,
		log:         log.With("service", "AuthService"),
		accountRepo: accountRepo,
		jwtSecret:   jwtSecret,
		accessTTL:   accessTTL,
	}
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Register(ctx context.Context, acct *domain.Account) error {
	normalizeAccount(acct)
	if err := validateRegistration(acct); err != nil {
		return err
	}

	exists, err := as.accountRepo.IdentityExists(ctx, nil, acct.Email, acct.Phone)
	if err != nil {
		return storeErr("check identity", err)
	}
	if exists {
		return fmt.Errorf("%w: email or phone already registered", domain.ErrDuplicateIdentity)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(acct.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	acct.Password = string(hashed)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.accountRepo.Create(ctx, tx, []*domain.Account{acct}); err != nil {
			return storeErr("create account", err)
		}
		return nil
	})
}

func (as *authService) Login(ctx context.Context, identifier, password string) (string, *domain.Account, error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))
	if identifier == "" || password == "" {
		return "", nil, validationErr("identifier and password are required")
	}

	acct, err := as.accountRepo.GetByIdentifier(ctx, nil, identifier)
	if err != nil {
		return "", nil, storeErr("lookup account", err)
	}
	if acct == nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := as.signAccessToken(acct)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	as.log.Info("Account logged in", "account_id", acct.ID, "role", string(acct.Role))
	return token, acct, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ctx, domain.ErrInvalidCredentials
	}

	rawID, ok := claims["account_id"].(float64)
	if !ok || rawID <= 0 {
		return ctx, domain.ErrInvalidCredentials
	}
	role, _ := claims["role"].(string)

	rd := &ctxutil.RequestData{
		AccountID: uint(rawID),
		Role:      domain.Role(role),
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) CheckRole(ctx context.Context, accountID uint, role domain.Role) error {
	accounts, err := as.accountRepo.GetByIDs(ctx, nil, []uint{accountID})
	if err != nil {
		return storeErr("lookup account", err)
	}
	if len(accounts) == 0 || accounts[0].Role != role {
		return fmt.Errorf("%w: not a %s", domain.ErrUnauthorizedRole, role)
	}
	return nil
}

func (as *authService) signAccessToken(acct *domain.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"account_id": acct.ID,
		"role":       string(acct.Role),
		"iat":        now.Unix(),
		"exp":        now.Add(as.accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecret))
}

func normalizeAccount(acct *domain.Account) {
	acct.FirstName = strings.TrimSpace(acct.FirstName)
	acct.LastName = strings.TrimSpace(acct.LastName)
	acct.Email = strings.TrimSpace(strings.ToLower(acct.Email))
	acct.Phone = strings.TrimSpace(acct.Phone)
}

func validateRegistration(acct *domain.Account) error {
	switch {
	case acct.FirstName == "":
		return validationErr("first_name is required")
	case acct.LastName == "":
		return validationErr("last_name is required")
	case acct.Email == "":
		return validationErr("email is required")
	case acct.Phone == "":
		return validationErr("phone is required")
	case acct.Password == "":
		return validationErr("password is required")
	case !acct.Role.Valid():
		return validationErr("role must be one of Producer, Distributor, Retailer, Consumer")
	}
	return nil
}
