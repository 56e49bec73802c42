package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/medtrace/medtrace-backend/internal/data/repos/account"
	"github.com/medtrace/medtrace-backend/internal/data/repos/testutil"
	"github.com/medtrace/medtrace-backend/internal/domain"
	"github.com/medtrace/medtrace-backend/internal/pkg/ctxutil"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := account.NewAccountRepo(db, log)
	return NewAuthService(db, log, repo, "test-secret", time.Hour)
}

func registered(t *testing.T, svc AuthService) *domain.Account {
	t.Helper()
	acct := &domain.Account{
		FirstName: "Maria",
		LastName:  "Silva",
		Email:     "Maria@Acme.Test",
		Phone:     "+5511999990001",
		Password:  "s3cret",
		Role:      domain.RoleProducer,
	}
	if err := svc.Register(context.Background(), acct); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return acct
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newAuthFixture(t)
	acct := registered(t, svc)

	if acct.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if acct.Email != "maria@acme.test" {
		t.Fatalf("email not normalized: %s", acct.Email)
	}
	if acct.Password == "s3cret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterRejectsDuplicateIdentity(t *testing.T) {
	svc := newAuthFixture(t)
	registered(t, svc)

	dup := &domain.Account{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "different@acme.test",
		Phone:     "+5511999990001",
		Password:  "pw",
		Role:      domain.RoleRetailer,
	}
	err := svc.Register(context.Background(), dup)
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthFixture(t)

	err := svc.Register(context.Background(), &domain.Account{
		FirstName: "No",
		LastName:  "Role",
		Email:     "norole@acme.test",
		Phone:     "+1",
		Password:  "pw",
		Role:      domain.Role("Janitor"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad role, got %v", err)
	}
}

func TestLoginByEmailAndPhone(t *testing.T) {
	svc := newAuthFixture(t)
	acct := registered(t, svc)

	for _, identifier := range []string{"maria@acme.test", "+5511999990001"} {
		token, got, err := svc.Login(context.Background(), identifier, "s3cret")
		if err != nil {
			t.Fatalf("Login(%s): %v", identifier, err)
		}
		if token == "" {
			t.Fatalf("Login(%s): empty token", identifier)
		}
		if got.ID != acct.ID {
			t.Fatalf("Login(%s): wrong account %d", identifier, got.ID)
		}
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newAuthFixture(t)
	registered(t, svc)

	if _, _, err := svc.Login(context.Background(), "maria@acme.test", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@acme.test", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown identifier, got %v", err)
	}
}

func TestSetContextFromToken(t *testing.T) {
	svc := newAuthFixture(t)
	acct := registered(t, svc)

	token, _, err := svc.Login(context.Background(), "maria@acme.test", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.AccountID != acct.ID || rd.Role != domain.RoleProducer {
		t.Fatalf("unexpected request data: %+v", rd)
	}

	if _, err := svc.SetContextFromToken(context.Background(), "not.a.token"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for garbage token, got %v", err)
	}
}

func TestCheckRole(t *testing.T) {
	svc := newAuthFixture(t)
	acct := registered(t, svc)

	if err := svc.CheckRole(context.Background(), acct.ID, domain.RoleProducer); err != nil {
		t.Fatalf("CheckRole producer: %v", err)
	}
	if err := svc.CheckRole(context.Background(), acct.ID, domain.RoleRetailer); !errors.Is(err, domain.ErrUnauthorizedRole) {
		t.Fatalf("expected ErrUnauthorizedRole, got %v", err)
	}
	if err := svc.CheckRole(context.Background(), 9999, domain.RoleProducer); !errors.Is(err, domain.ErrUnauthorizedRole) {
		t.Fatalf("expected ErrUnauthorizedRole for missing account, got %v", err)
	}
}
