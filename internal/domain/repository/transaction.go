package repository

import "context"

// RepositoryFactory provides repositories bound to the same transaction,
// so multi-aggregate operations commit or roll back as one unit.
type RepositoryFactory interface {
	AccountRepo() AccountRepository
	PersonRepo() PersonRepository
	CompanyRepo() CompanyRepository
	EmployeeRepo() EmployeeRepository
	ClientRepo() ClientRepository
	SessionRepo() SessionRepository
}

// TransactionManager runs a function inside a database transaction.
// If fn returns an error or panics, the transaction rolls back;
// otherwise it commits.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepos RepositoryFactory) error) error
}
