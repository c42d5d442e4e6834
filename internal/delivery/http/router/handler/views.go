// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	"github.com/carlosCACB333/bonny/internal/domain/service"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/google/uuid"
)

// View models keep credentials and storage keys out of responses: the
// password hash never serializes, and attachment references render as URLs.

// AccountView is the client-facing shape of an account.
type AccountView struct {
	ID         uuid.UUID  `json:"id"`
	Username   string     `json:"username"`
	IsActive   bool       `json:"is_active"`
	Type       string     `json:"type"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	DateJoined time.Time  `json:"date_joined"`
}

// PersonView is the client-facing shape of a person record.
type PersonView struct {
	ID        uuid.UUID  `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	FullName  string     `json:"full_name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	Birth     *time.Time `json:"birth,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	Picture   string     `json:"picture,omitempty"`
}

// CompanyView is the client-facing shape of a company profile.
type CompanyView struct {
	ID      uuid.UUID    `json:"id"`
	Account *AccountView `json:"account,omitempty"`
	Name    string       `json:"name"`
	Phone   string       `json:"phone,omitempty"`
	Address string       `json:"address,omitempty"`
	Logo    string       `json:"logo,omitempty"`
}

// EmployeeView is the client-facing shape of an employee profile.
type EmployeeView struct {
	ID      uuid.UUID    `json:"id"`
	Account *AccountView `json:"account,omitempty"`
	Person  *PersonView  `json:"person,omitempty"`
	Company *CompanyView `json:"company,omitempty"`
	Role    string       `json:"role"`
}

// ClientView is the client-facing shape of a walk-in client record.
type ClientView struct {
	ID     uuid.UUID   `json:"id"`
	Person *PersonView `json:"person,omitempty"`
}

// SessionView is the login/check-session payload: the token plus the
// role-resolved profile.
type SessionView struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Account   *AccountView  `json:"account"`
	Company   *CompanyView  `json:"company,omitempty"`
	Employee  *EmployeeView `json:"employee,omitempty"`
}

func toAccountView(account *entity.Account) *AccountView {
	if account == nil {
		return nil
	}

	return &AccountView{
		ID:         account.ID,
		Username:   account.Username,
		IsActive:   account.IsActive,
		Type:       account.Type.String(),
		LastLogin:  account.LastLogin,
		DateJoined: account.DateJoined,
	}
}

func toPersonView(person *entity.Person, attachments service.AttachmentStore) *PersonView {
	if person == nil {
		return nil
	}

	return &PersonView{
		ID:        person.ID,
		FirstName: person.FirstName,
		LastName:  person.LastName,
		FullName:  person.FullName(),
		Email:     person.Email,
		Phone:     person.Phone,
		Address:   person.Address,
		Birth:     person.Birth,
		Gender:    person.Gender.String(),
		Picture:   attachments.URL(person.Picture),
	}
}

func toCompanyView(company *entity.Company, attachments service.AttachmentStore) *CompanyView {
	if company == nil {
		return nil
	}

	return &CompanyView{
		ID:      company.ID,
		Account: toAccountView(company.Account),
		Name:    company.Name,
		Phone:   company.Phone,
		Address: company.Address,
		Logo:    attachments.URL(company.Logo),
	}
}

func toEmployeeView(employee *entity.Employee, attachments service.AttachmentStore) *EmployeeView {
	if employee == nil {
		return nil
	}

	return &EmployeeView{
		ID:      employee.ID,
		Account: toAccountView(employee.Account),
		Person:  toPersonView(employee.Person, attachments),
		Company: toCompanyView(employee.Company, attachments),
		Role:    employee.Role.String(),
	}
}

func toEmployeeViews(employees []*entity.Employee, attachments service.AttachmentStore) []*EmployeeView {
	views := make([]*EmployeeView, 0, len(employees))
	for _, employee := range employees {
		views = append(views, toEmployeeView(employee, attachments))
	}

	return views
}

func toClientView(client *entity.Client, attachments service.AttachmentStore) *ClientView {
	if client == nil {
		return nil
	}

	return &ClientView{
		ID:     client.ID,
		Person: toPersonView(client.Person, attachments),
	}
}

func toClientViews(clients []*entity.Client, attachments service.AttachmentStore) []*ClientView {
	views := make([]*ClientView, 0, len(clients))
	for _, client := range clients {
		views = append(views, toClientView(client, attachments))
	}

	return views
}

func toSessionView(session *usecase.Session, attachments service.AttachmentStore) *SessionView {
	if session == nil {
		return nil
	}

	view := &SessionView{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Account:   toAccountView(session.Account),
	}
	if session.Profile != nil {
		view.Company = toCompanyView(session.Profile.Company, attachments)
		view.Employee = toEmployeeView(session.Profile.Employee, attachments)
	}

	return view
}
