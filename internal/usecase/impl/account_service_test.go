package impl

import (
	"context"
	"testing"
	"time"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_SignupCompany_Success(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()

	session, err := fx.accounts.SignupCompany(ctx, &usecase.SignupCompanyInput{
		Username:  "bodega_admin",
		Password:  "Secret123!",
		Password2: "Secret123!",
		Name:      "Bodega Central",
		Phone:     "987654321",
	})

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, entity.AccountTypeCompany, session.Account.Type)
	assert.True(t, session.Account.IsActive)
	require.NotNil(t, session.Profile.Company)
	assert.Equal(t, "Bodega Central", session.Profile.Company.Name)

	// Exactly one account and one company row, linked 1:1.
	require.Len(t, fx.store.accounts, 1)
	require.Len(t, fx.store.companies, 1)
	for _, company := range fx.store.companies {
		assert.Equal(t, session.Account.ID, company.Account.ID)
	}

	// Signup logs the fresh account in.
	checked, err := fx.accounts.CheckSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Account.ID, checked.Account.ID)
}

func TestAccountService_SignupCompany_PasswordMismatch(t *testing.T) {
	fx := newFixtures(t)

	session, err := fx.accounts.SignupCompany(context.Background(), &usecase.SignupCompanyInput{
		Username:  "bodega_admin",
		Password:  "Secret123!",
		Password2: "Different123!",
		Name:      "Bodega Central",
	})

	assert.Nil(t, session)
	var fieldsErr *domainerrors.FieldsError
	require.ErrorAs(t, err, &fieldsErr)
	assert.Contains(t, fieldsErr.Fields(), "password2")
	assert.Empty(t, fx.store.accounts)
}

func TestAccountService_SignupCompany_WeakPassword(t *testing.T) {
	fx := newFixtures(t)

	session, err := fx.accounts.SignupCompany(context.Background(), &usecase.SignupCompanyInput{
		Username:  "bodega_admin",
		Password:  "short",
		Password2: "short",
		Name:      "Bodega Central",
	})

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestAccountService_SignupCompany_UsernameTaken(t *testing.T) {
	fx := newFixtures(t)
	fx.signupCompany(t, "bodega_admin", "Bodega Central")

	session, err := fx.accounts.SignupCompany(context.Background(), &usecase.SignupCompanyInput{
		Username:  "bodega_admin",
		Password:  "Secret123!",
		Password2: "Secret123!",
		Name:      "Otra Bodega",
	})

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	// The rollback leaves no orphan company behind.
	assert.Len(t, fx.store.companies, 1)
}

func TestAccountService_SignupCompany_CompanyNameTaken(t *testing.T) {
	fx := newFixtures(t)
	fx.signupCompany(t, "bodega_admin", "Bodega Central")

	session, err := fx.accounts.SignupCompany(context.Background(), &usecase.SignupCompanyInput{
		Username:  "otro_admin",
		Password:  "Secret123!",
		Password2: "Secret123!",
		Name:      "Bodega Central",
	})

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domainerrors.ErrCompanyNameTaken))
	// The account created in the same transaction rolls back with it.
	assert.Len(t, fx.store.accounts, 1)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := newFixtures(t)
	signup := fx.signupCompany(t, "bodega_admin", "Bodega Central")

	session, err := fx.accounts.Login(context.Background(), &usecase.LoginInput{
		Username: "bodega_admin",
		Password: "Secret123!",
	})

	require.NoError(t, err)
	assert.Equal(t, signup.Account.ID, session.Account.ID)
	assert.NotEmpty(t, session.Token)
	assert.NotEqual(t, signup.Token, session.Token)
	require.NotNil(t, session.Account.LastLogin)
	require.NotNil(t, session.Profile.Company)

	// Both sessions stay usable.
	assert.Len(t, fx.store.sessions, 2)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := newFixtures(t)
	fx.signupCompany(t, "bodega_admin", "Bodega Central")

	session, err := fx.accounts.Login(context.Background(), &usecase.LoginInput{
		Username: "bodega_admin",
		Password: "WrongPassword1!",
	})

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_UnknownUsername(t *testing.T) {
	fx := newFixtures(t)

	session, err := fx.accounts.Login(context.Background(), &usecase.LoginInput{
		Username: "nadie",
		Password: "Secret123!",
	})

	assert.Nil(t, session)
	// Indistinguishable from a wrong password.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_InactiveAccount(t *testing.T) {
	fx := newFixtures(t)
	signup := fx.signupCompany(t, "bodega_admin", "Bodega Central")
	fx.store.accounts[signup.Account.ID].IsActive = false

	session, err := fx.accounts.Login(context.Background(), &usecase.LoginInput{
		Username: "bodega_admin",
		Password: "Secret123!",
	})

	assert.Nil(t, session)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountInactive))
}

func TestAccountService_Logout_RevokesToken(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	session := fx.signupCompany(t, "bodega_admin", "Bodega Central")

	require.NoError(t, fx.accounts.Logout(ctx, session.Token))

	checked, err := fx.accounts.CheckSession(ctx, session.Token)
	assert.Nil(t, checked)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))

	// A second logout finds nothing to revoke.
	err = fx.accounts.Logout(ctx, session.Token)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))
}

func TestAccountService_CheckSession_ExpiredToken(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	session := fx.signupCompany(t, "bodega_admin", "Bodega Central")

	for _, stored := range fx.store.sessions {
		stored.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	}

	checked, err := fx.accounts.CheckSession(ctx, session.Token)
	assert.Nil(t, checked)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))
}

func TestAccountService_CheckSession_UnknownToken(t *testing.T) {
	fx := newFixtures(t)

	checked, err := fx.accounts.CheckSession(context.Background(), "no-such-token")
	assert.Nil(t, checked)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionInvalid))
}

func TestAccountService_CheckSession_InactiveAccount(t *testing.T) {
	fx := newFixtures(t)
	session := fx.signupCompany(t, "bodega_admin", "Bodega Central")
	fx.store.accounts[session.Account.ID].IsActive = false

	checked, err := fx.accounts.CheckSession(context.Background(), session.Token)
	assert.Nil(t, checked)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountInactive))
}

func TestAccountService_ResetPassword_Success(t *testing.T) {
	fx := newFixtures(t)
	ctx := context.Background()
	session := fx.signupCompany(t, "bodega_admin", "Bodega Central")

	err := fx.accounts.ResetPassword(ctx, &usecase.ResetPasswordInput{
		Username:     "bodega_admin",
		OldPassword:  "Secret123!",
		NewPassword:  "Renewed456!",
		NewPassword2: "Renewed456!",
	})
	require.NoError(t, err)

	// The old password stops working, the new one logs in.
	_, err = fx.accounts.Login(ctx, &usecase.LoginInput{Username: "bodega_admin", Password: "Secret123!"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = fx.accounts.Login(ctx, &usecase.LoginInput{Username: "bodega_admin", Password: "Renewed456!"})
	require.NoError(t, err)

	// Existing sessions survive the reset.
	checked, err := fx.accounts.CheckSession(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Account.ID, checked.Account.ID)
}

func TestAccountService_ResetPassword_OldPasswordMismatch(t *testing.T) {
	fx := newFixtures(t)
	fx.signupCompany(t, "bodega_admin", "Bodega Central")

	err := fx.accounts.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
		Username:     "bodega_admin",
		OldPassword:  "WrongOld123!",
		NewPassword:  "Renewed456!",
		NewPassword2: "Renewed456!",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrOldPasswordMismatch))
}

func TestAccountService_ResetPassword_ConfirmationMismatch(t *testing.T) {
	fx := newFixtures(t)
	fx.signupCompany(t, "bodega_admin", "Bodega Central")

	err := fx.accounts.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
		Username:     "bodega_admin",
		OldPassword:  "Secret123!",
		NewPassword:  "Renewed456!",
		NewPassword2: "Other456!",
	})

	var fieldsErr *domainerrors.FieldsError
	require.ErrorAs(t, err, &fieldsErr)
	assert.Contains(t, fieldsErr.Fields(), "new_password2")
}

func TestAccountService_ResetPassword_UnknownAccount(t *testing.T) {
	fx := newFixtures(t)

	err := fx.accounts.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
		Username:     "nadie",
		OldPassword:  "Secret123!",
		NewPassword:  "Renewed456!",
		NewPassword2: "Renewed456!",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}
