package postgres

import (
	"context"

	"github.com/carlosCACB333/bonny/internal/domain/entity"
	domainerrors "github.com/carlosCACB333/bonny/internal/domain/errors"
	"github.com/carlosCACB333/bonny/internal/domain/repository"
	"github.com/carlosCACB333/bonny/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// personRepository implements the repository.PersonRepository interface.
type personRepository struct {
	db *gorm.DB
}

// NewPersonRepository is the constructor for personRepository.
func NewPersonRepository(db *gorm.DB) repository.PersonRepository {
	return &personRepository{
		db: db,
	}
}

// FindByID retrieves a single person by ID.
func (repo *personRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Person, error) {
	var personM model.PersonModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&personM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPersonNotFound
		}

		return nil, errors.Wrap(err, "failed to find person by ID")
	}

	return toPersonDomain(&personM), nil
}

// Create persists a new person.
func (repo *personRepository) Create(ctx context.Context, person *entity.Person) error {
	personM := fromPersonDomain(person)

	if err := repo.db.WithContext(ctx).Create(personM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required person information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create person")
	}

	person.ID = personM.ID
	person.CreatedAt = personM.CreatedAt
	person.UpdatedAt = personM.UpdatedAt

	return nil
}

// Update modifies an existing person.
func (repo *personRepository) Update(ctx context.Context, person *entity.Person) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PersonModel{}).
		Where("id = ?", person.ID).
		Select("first_name", "last_name", "email", "phone", "address", "birth", "gender", "picture").
		Updates(fromPersonDomain(person))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update person")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPersonNotFound
	}

	return nil
}

// Delete removes a person row.
func (repo *personRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PersonModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete person")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPersonNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPersonDomain converts a GORM PersonModel to a domain Person entity.
func toPersonDomain(data *model.PersonModel) *entity.Person {
	if data == nil {
		return nil
	}

	return &entity.Person{
		ID:        data.ID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Address:   data.Address,
		Birth:     data.Birth,
		Gender:    entity.Gender(data.Gender),
		Picture:   data.Picture,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromPersonDomain converts a domain Person entity to a GORM PersonModel.
func fromPersonDomain(data *entity.Person) *model.PersonModel {
	if data == nil {
		return nil
	}

	return &model.PersonModel{
		ID:        data.ID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Phone:     data.Phone,
		Address:   data.Address,
		Birth:     data.Birth,
		Gender:    data.Gender.String(),
		Picture:   data.Picture,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
