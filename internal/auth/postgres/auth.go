package postgres

import (
	"errors"

	"github.com/andikarahman/hr-management/internal"
	"github.com/andikarahman/hr-management/internal/auth"
	orgDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/organisation"
	userDatamodel "github.com/andikarahman/hr-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AuthRepository implements auth.RepositoryAPI using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AuthRepository) GetUserByEmail(email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

func (r *AuthRepository) GetUserByID(id int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInvalidSession
		}
		return nil, err
	}
	return &user, nil
}

// CreateOrganisationWithAdmin inserts the organisation and its first user
// atomically. The unique index on users.email backs the duplicate check;
// a duplicate-key error here is reported as a credential conflict.
func (r *AuthRepository) CreateOrganisationWithAdmin(org *orgDatamodel.Organisation, admin *userDatamodel.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		admin.OrganisationID = org.ID
		if err := tx.Create(admin).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return internal.ErrDuplicateCredential
			}
			return err
		}

		return nil
	})
}
