package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "github.com/carlosCACB333/bonny/internal/delivery/context"
	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/repository"
	"github.com/carlosCACB333/bonny/internal/domain/service"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	CompanyRepo  repository.CompanyRepository
	EmployeeRepo repository.EmployeeRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		companyRepo:  params.CompanyRepo,
		employeeRepo: params.EmployeeRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignupCompany registers a company account with its company profile as one
// unit and logs the fresh account in.
func (srv *accountService) SignupCompany(ctx context.Context, input *usecase.SignupCompanyInput) (*usecase.Session, error) {
	srv.log(ctx).Info("Starting company signup", slog.String("username", input.Username))

	if input.Password != input.Password2 {
		return nil, domainerrors.NewFieldError("password2", "Las contraseñas no coinciden")
	}
	if err := srv.hasher.ValidateStrength(input.Password); err != nil {
		return nil, err
	}

	// Hashing is slow on purpose, keep it outside the transaction.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	now := time.Now().UTC()
	account := &entity.Account{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
		Type:         entity.AccountTypeCompany,
		DateJoined:   now,
	}
	company := &entity.Company{
		ID:      uuid.New(),
		Account: account,
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}

	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		if err := txRepos.AccountRepo().Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}
		if err := txRepos.CompanyRepo().Create(ctx, company); err != nil {
			return errors.Wrap(err, "failed to create company")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Company signup failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Company signup completed", slog.Any("accountID", account.ID), slog.Any("companyID", company.ID))

	return srv.openSession(ctx, account, &entity.Profile{Type: entity.AccountTypeCompany, Company: company})
}

// Login verifies credentials, records the login time and issues a token.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.Session, error) {
	account, err := srv.accountRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}

	if !srv.hasher.Check(account.PasswordHash, input.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	profile, err := resolveProfile(ctx, account, srv.companyRepo, srv.employeeRepo)
	if err != nil {
		return nil, err
	}

	return srv.openSession(ctx, account, profile)
}

// openSession issues a token, persists its hash and stamps last_login,
// all inside one transaction.
func (srv *accountService) openSession(ctx context.Context, account *entity.Account, profile *entity.Profile) (*usecase.Session, error) {
	issued, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	now := time.Now().UTC()
	account.LastLogin = &now

	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		if err := txRepos.AccountRepo().Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to stamp last login")
		}

		token := &entity.SessionToken{
			ID:        uuid.New(),
			AccountID: account.ID,
			TokenHash: issued.TokenHash,
			ExpiresAt: issued.ExpiresAt,
			CreatedAt: now,
		}
		if err := txRepos.SessionRepo().Create(ctx, token); err != nil {
			return errors.Wrap(err, "failed to persist session token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to open session", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Session opened", slog.Any("accountID", account.ID), slog.String("type", account.Type.String()))

	return &usecase.Session{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		Account:   account,
		Profile:   profile,
	}, nil
}

// Logout revokes the stored token. An unknown token is already logged out.
func (srv *accountService) Logout(ctx context.Context, token string) error {
	err := srv.sessionRepo.DeleteByHash(ctx, srv.tokenService.Hash(token))
	if errors.Is(err, repository.ErrTokenNotFound) {
		return domainerrors.ErrSessionInvalid
	}
	if err != nil {
		return errors.Wrap(err, "failed to revoke session token")
	}

	return nil
}

// CheckSession validates a token against both its signature and the store,
// so revoked tokens fail even before their expiry.
func (srv *accountService) CheckSession(ctx context.Context, token string) (*usecase.Session, error) {
	accountID, err := srv.tokenService.Validate(token)
	if err != nil {
		return nil, domainerrors.ErrSessionInvalid
	}

	stored, err := srv.sessionRepo.FindByHash(ctx, srv.tokenService.Hash(token))
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, domainerrors.ErrSessionInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find session token")
	}

	if stored.AccountID != accountID || stored.Expired(time.Now().UTC()) {
		return nil, domainerrors.ErrSessionInvalid
	}

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrSessionInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}
	if !account.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	profile, err := resolveProfile(ctx, account, srv.companyRepo, srv.employeeRepo)
	if err != nil {
		return nil, err
	}

	return &usecase.Session{
		Token:     token,
		ExpiresAt: stored.ExpiresAt,
		Account:   account,
		Profile:   profile,
	}, nil
}

// ResetPassword replaces the account password after verifying the old one.
// Existing sessions stay valid.
func (srv *accountService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	if input.NewPassword != input.NewPassword2 {
		return domainerrors.NewFieldError("new_password2", "Las contraseñas no coinciden")
	}
	if err := srv.hasher.ValidateStrength(input.NewPassword); err != nil {
		return err
	}

	account, err := srv.accountRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to find account")
	}

	if !srv.hasher.Check(account.PasswordHash, input.OldPassword) {
		return domainerrors.ErrOldPasswordMismatch
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	account.PasswordHash = passwordHash
	err = srv.txManager.Execute(ctx, func(txRepos repository.RepositoryFactory) error {
		return txRepos.AccountRepo().Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Error("Password reset failed", slog.Any("accountID", account.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password reset", slog.Any("accountID", account.ID))

	return nil
}
