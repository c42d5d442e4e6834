package impl

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/repository"
	"github.com/carlosCACB333/bonny/internal/domain/service"
	"github.com/carlosCACB333/bonny/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory database shared by the fake repositories, so
// tests can assert what survives a rollback or a cascade.
type fakeStore struct {
	accounts  map[uuid.UUID]*entity.Account
	persons   map[uuid.UUID]*entity.Person
	companies map[uuid.UUID]*entity.Company
	employees map[uuid.UUID]*entity.Employee
	clients   map[uuid.UUID]*entity.Client
	sessions  map[string]*entity.SessionToken

	failures map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:  make(map[uuid.UUID]*entity.Account),
		persons:   make(map[uuid.UUID]*entity.Person),
		companies: make(map[uuid.UUID]*entity.Company),
		employees: make(map[uuid.UUID]*entity.Employee),
		clients:   make(map[uuid.UUID]*entity.Client),
		sessions:  make(map[string]*entity.SessionToken),
		failures:  make(map[string]error),
	}
}

// failOn makes the named repository operation fail with the given error.
func (s *fakeStore) failOn(op string, err error) {
	s.failures[op] = err
}

func (s *fakeStore) failure(op string) error {
	return s.failures[op]
}

func (s *fakeStore) snapshot() fakeStore {
	return fakeStore{
		accounts:  maps.Clone(s.accounts),
		persons:   maps.Clone(s.persons),
		companies: maps.Clone(s.companies),
		employees: maps.Clone(s.employees),
		clients:   maps.Clone(s.clients),
		sessions:  maps.Clone(s.sessions),
	}
}

func (s *fakeStore) restore(snap fakeStore) {
	s.accounts = snap.accounts
	s.persons = snap.persons
	s.companies = snap.companies
	s.employees = snap.employees
	s.clients = snap.clients
	s.sessions = snap.sessions
}

type fakeAccountRepo struct{ store *fakeStore }

func (r fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := r.store.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return account, nil
}

func (r fakeAccountRepo) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	for _, account := range r.store.accounts {
		if account.Username == username {
			return account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	if err := r.store.failure("account.create"); err != nil {
		return err
	}
	for _, existing := range r.store.accounts {
		if existing.Username == account.Username {
			return domainerrors.ErrUsernameTaken
		}
	}
	r.store.accounts[account.ID] = account

	return nil
}

func (r fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	if err := r.store.failure("account.update"); err != nil {
		return err
	}
	if _, ok := r.store.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	for _, existing := range r.store.accounts {
		if existing.ID != account.ID && existing.Username == account.Username {
			return domainerrors.ErrUsernameTaken
		}
	}
	r.store.accounts[account.ID] = account

	return nil
}

func (r fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.store.failure("account.delete"); err != nil {
		return err
	}
	delete(r.store.accounts, id)

	return nil
}

type fakePersonRepo struct{ store *fakeStore }

func (r fakePersonRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Person, error) {
	person, ok := r.store.persons[id]
	if !ok {
		return nil, repository.ErrPersonNotFound
	}

	return person, nil
}

func (r fakePersonRepo) Create(_ context.Context, person *entity.Person) error {
	if err := r.store.failure("person.create"); err != nil {
		return err
	}
	r.store.persons[person.ID] = person

	return nil
}

func (r fakePersonRepo) Update(_ context.Context, person *entity.Person) error {
	if err := r.store.failure("person.update"); err != nil {
		return err
	}
	if _, ok := r.store.persons[person.ID]; !ok {
		return repository.ErrPersonNotFound
	}
	r.store.persons[person.ID] = person

	return nil
}

func (r fakePersonRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.store.failure("person.delete"); err != nil {
		return err
	}
	delete(r.store.persons, id)

	return nil
}

type fakeCompanyRepo struct{ store *fakeStore }

func (r fakeCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	company, ok := r.store.companies[id]
	if !ok {
		return nil, repository.ErrCompanyNotFound
	}

	return company, nil
}

func (r fakeCompanyRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.Company, error) {
	for _, company := range r.store.companies {
		if company.Account != nil && company.Account.ID == accountID {
			return company, nil
		}
	}

	return nil, repository.ErrCompanyNotFound
}

func (r fakeCompanyRepo) Create(_ context.Context, company *entity.Company) error {
	if err := r.store.failure("company.create"); err != nil {
		return err
	}
	for _, existing := range r.store.companies {
		if existing.Name == company.Name {
			return domainerrors.ErrCompanyNameTaken
		}
	}
	r.store.companies[company.ID] = company

	return nil
}

func (r fakeCompanyRepo) Update(_ context.Context, company *entity.Company) error {
	if err := r.store.failure("company.update"); err != nil {
		return err
	}
	if _, ok := r.store.companies[company.ID]; !ok {
		return repository.ErrCompanyNotFound
	}
	r.store.companies[company.ID] = company

	return nil
}

func (r fakeCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.store.failure("company.delete"); err != nil {
		return err
	}
	delete(r.store.companies, id)

	return nil
}

type fakeEmployeeRepo struct{ store *fakeStore }

func (r fakeEmployeeRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*entity.Employee, error) {
	employee, ok := r.store.employees[id]
	if !ok || employee.CompanyID != companyID {
		return nil, repository.ErrEmployeeNotFound
	}

	return employee, nil
}

func (r fakeEmployeeRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.Employee, error) {
	for _, employee := range r.store.employees {
		if employee.Account != nil && employee.Account.ID == accountID {
			return employee, nil
		}
	}

	return nil, repository.ErrEmployeeNotFound
}

func (r fakeEmployeeRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]*entity.Employee, error) {
	var employees []*entity.Employee
	for _, employee := range r.store.employees {
		if employee.CompanyID == companyID {
			employees = append(employees, employee)
		}
	}

	return employees, nil
}

func (r fakeEmployeeRepo) SearchByCompany(_ context.Context, companyID uuid.UUID, query string) ([]*entity.Employee, error) {
	needle := strings.ToLower(query)
	var employees []*entity.Employee
	for _, employee := range r.store.employees {
		if employee.CompanyID != companyID || employee.Person == nil {
			continue
		}
		person := employee.Person
		if strings.Contains(strings.ToLower(person.FirstName), needle) ||
			strings.Contains(strings.ToLower(person.LastName), needle) ||
			strings.Contains(strings.ToLower(person.Email), needle) {
			employees = append(employees, employee)
		}
	}

	return employees, nil
}

func (r fakeEmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	if err := r.store.failure("employee.create"); err != nil {
		return err
	}
	r.store.employees[employee.ID] = employee

	return nil
}

func (r fakeEmployeeRepo) Update(_ context.Context, employee *entity.Employee) error {
	if err := r.store.failure("employee.update"); err != nil {
		return err
	}
	if _, ok := r.store.employees[employee.ID]; !ok {
		return repository.ErrEmployeeNotFound
	}
	r.store.employees[employee.ID] = employee

	return nil
}

func (r fakeEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.store.failure("employee.delete"); err != nil {
		return err
	}
	delete(r.store.employees, id)

	return nil
}

type fakeClientRepo struct{ store *fakeStore }

func (r fakeClientRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	client, ok := r.store.clients[id]
	if !ok {
		return nil, repository.ErrClientNotFound
	}

	return client, nil
}

func (r fakeClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	var clients []*entity.Client
	for _, client := range r.store.clients {
		clients = append(clients, client)
	}

	return clients, nil
}

func (r fakeClientRepo) Create(_ context.Context, client *entity.Client) error {
	if err := r.store.failure("client.create"); err != nil {
		return err
	}
	r.store.clients[client.ID] = client

	return nil
}

func (r fakeClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.store.failure("client.delete"); err != nil {
		return err
	}
	delete(r.store.clients, id)

	return nil
}

type fakeSessionRepo struct{ store *fakeStore }

func (r fakeSessionRepo) FindByHash(_ context.Context, tokenHash string) (*entity.SessionToken, error) {
	token, ok := r.store.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}

	return token, nil
}

func (r fakeSessionRepo) Create(_ context.Context, token *entity.SessionToken) error {
	if err := r.store.failure("session.create"); err != nil {
		return err
	}
	r.store.sessions[token.TokenHash] = token

	return nil
}

func (r fakeSessionRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	if _, ok := r.store.sessions[tokenHash]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(r.store.sessions, tokenHash)

	return nil
}

func (r fakeSessionRepo) DeleteByAccountID(_ context.Context, accountID uuid.UUID) error {
	if err := r.store.failure("session.deleteByAccount"); err != nil {
		return err
	}
	for hash, token := range r.store.sessions {
		if token.AccountID == accountID {
			delete(r.store.sessions, hash)
		}
	}

	return nil
}

func (r fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	now := time.Now().UTC()
	var count int64
	for hash, token := range r.store.sessions {
		if token.Expired(now) {
			delete(r.store.sessions, hash)
			count++
		}
	}

	return count, nil
}

type fakeFactory struct{ store *fakeStore }

func (f fakeFactory) AccountRepo() repository.AccountRepository   { return fakeAccountRepo{f.store} }
func (f fakeFactory) PersonRepo() repository.PersonRepository     { return fakePersonRepo{f.store} }
func (f fakeFactory) CompanyRepo() repository.CompanyRepository   { return fakeCompanyRepo{f.store} }
func (f fakeFactory) EmployeeRepo() repository.EmployeeRepository { return fakeEmployeeRepo{f.store} }
func (f fakeFactory) ClientRepo() repository.ClientRepository     { return fakeClientRepo{f.store} }
func (f fakeFactory) SessionRepo() repository.SessionRepository   { return fakeSessionRepo{f.store} }

// fakeTxManager snapshots the store before running fn and restores it when
// fn fails, mirroring a real rollback at the row level.
type fakeTxManager struct{ store *fakeStore }

func (m *fakeTxManager) Execute(_ context.Context, fn func(txRepos repository.RepositoryFactory) error) error {
	snap := m.store.snapshot()
	if err := fn(fakeFactory{m.store}); err != nil {
		m.store.restore(snap)

		return err
	}

	return nil
}

type fakeHasher struct{ minLength int }

func (h fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h fakeHasher) Check(hashedPassword, password string) bool {
	return hashedPassword == "hashed:"+password
}

func (h fakeHasher) ValidateStrength(password string) error {
	if len(password) < h.minLength {
		return domainerrors.ErrPasswordStrength.WithDetails("demasiado corta")
	}

	return nil
}

// fakeTokenService hands out sequential opaque tokens and remembers which
// account each one belongs to.
type fakeTokenService struct {
	ttl    time.Duration
	issued map[string]uuid.UUID
	seq    int
}

func newFakeTokenService(ttl time.Duration) *fakeTokenService {
	return &fakeTokenService{ttl: ttl, issued: make(map[string]uuid.UUID)}
}

func (s *fakeTokenService) Issue(accountID uuid.UUID) (*service.IssuedToken, error) {
	s.seq++
	token := "token-" + strconv.Itoa(s.seq)
	s.issued[token] = accountID

	return &service.IssuedToken{
		Token:     token,
		TokenHash: s.Hash(token),
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}, nil
}

func (s *fakeTokenService) Validate(token string) (uuid.UUID, error) {
	accountID, ok := s.issued[token]
	if !ok {
		return uuid.Nil, errors.New("unknown token")
	}

	return accountID, nil
}

func (s *fakeTokenService) Hash(token string) string {
	return "hash:" + token
}

// fakeAttachmentStore records saved blobs and every removal, so tests can
// assert the blob lifecycle around transactions.
type fakeAttachmentStore struct {
	saved   map[string][]byte
	removed []string
	seq     int
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{saved: make(map[string][]byte)}
}

func (s *fakeAttachmentStore) Save(_ context.Context, folder string, attachment *service.Attachment) (string, error) {
	content, err := io.ReadAll(attachment.Content)
	if err != nil {
		return "", err
	}
	s.seq++
	ref := folder + "/blob-" + strconv.Itoa(s.seq)
	s.saved[ref] = content

	return ref, nil
}

func (s *fakeAttachmentStore) Remove(_ context.Context, ref string) error {
	delete(s.saved, ref)
	s.removed = append(s.removed, ref)

	return nil
}

func (s *fakeAttachmentStore) URL(ref string) string {
	if ref == "" {
		return ""
	}

	return "https://files.test/" + ref
}

// fixtures wires every service over one shared fake store.
type fixtures struct {
	store       *fakeStore
	tokens      *fakeTokenService
	attachments *fakeAttachmentStore

	accounts  usecase.AccountUsecase
	employees usecase.EmployeeUsecase
	profiles  usecase.ProfileUsecase
	clients   usecase.ClientUsecase
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	store := newFakeStore()
	tokens := newFakeTokenService(time.Hour)
	attachments := newFakeAttachmentStore()
	hasher := fakeHasher{minLength: 8}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	txManager := &fakeTxManager{store: store}

	accountRepo := fakeAccountRepo{store}
	companyRepo := fakeCompanyRepo{store}
	employeeRepo := fakeEmployeeRepo{store}
	clientRepo := fakeClientRepo{store}
	sessionRepo := fakeSessionRepo{store}

	accounts := NewAccountService(AccountServiceParams{
		TxManager:    txManager,
		AccountRepo:  accountRepo,
		CompanyRepo:  companyRepo,
		EmployeeRepo: employeeRepo,
		SessionRepo:  sessionRepo,
		Hasher:       hasher,
		TokenService: tokens,
		Logger:       logger,
	})
	employees := NewEmployeeService(EmployeeServiceParams{
		TxManager:    txManager,
		AccountRepo:  accountRepo,
		CompanyRepo:  companyRepo,
		EmployeeRepo: employeeRepo,
		Hasher:       hasher,
		Attachments:  attachments,
		Logger:       logger,
	})
	profiles := NewProfileService(ProfileServiceParams{
		TxManager:    txManager,
		AccountRepo:  accountRepo,
		CompanyRepo:  companyRepo,
		EmployeeRepo: employeeRepo,
		Attachments:  attachments,
		Logger:       logger,
	})
	clients := NewClientService(ClientServiceParams{
		TxManager:   txManager,
		ClientRepo:  clientRepo,
		Attachments: attachments,
		Logger:      logger,
	})

	return &fixtures{
		store:       store,
		tokens:      tokens,
		attachments: attachments,
		accounts:    accounts,
		employees:   employees,
		profiles:    profiles,
		clients:     clients,
	}
}

func (f *fixtures) signupCompany(t *testing.T, username, name string) *usecase.Session {
	t.Helper()

	session, err := f.accounts.SignupCompany(context.Background(), &usecase.SignupCompanyInput{
		Username:  username,
		Password:  "Secret123!",
		Password2: "Secret123!",
		Name:      name,
	})
	require.NoError(t, err)

	return session
}

func (f *fixtures) createEmployee(t *testing.T, callerID uuid.UUID, username, firstName string) *entity.Employee {
	t.Helper()

	employee, err := f.employees.CreateEmployee(context.Background(), callerID, &usecase.CreateEmployeeInput{
		Username:  username,
		Password:  "Secret123!",
		Password2: "Secret123!",
		Role:      entity.EmployeeRoleCashier.String(),
		FirstName: firstName,
		LastName:  "Quispe",
		Email:     firstName + "@example.com",
	})
	require.NoError(t, err)

	return employee
}

func testAttachment(filename, content string) *service.Attachment {
	return &service.Attachment{
		Filename:    filename,
		ContentType: "image/png",
		Content:     strings.NewReader(content),
	}
}
