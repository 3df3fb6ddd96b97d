package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"user-api/internal/domain"
	"user-api/internal/repository"
)

// userRecord is the storage shape of domain.User.
type userRecord struct {
	ID   int64 `gorm:"primaryKey;autoIncrement"`
	Name string
	Age  int
}

func (userRecord) TableName() string {
	return "users"
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

// Init creates the users table when it is missing. Existing tables are left
// untouched, so running it on every startup is safe.
func (r *UserRepository) Init(ctx context.Context) error {
	migrator := r.db.WithContext(ctx).Migrator()
	if migrator.HasTable(&userRecord{}) {
		return nil
	}
	if err := migrator.CreateTable(&userRecord{}); err != nil {
		// another process may have won the race
		if migrator.HasTable(&userRecord{}) {
			return nil
		}
		return &domain.StorageError{Op: "create users table", Err: err}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	record := userRecord{Name: user.Name, Age: user.Age}

	err := r.withSession(ctx, "insert user", func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		return 0, err
	}

	user.ID = record.ID
	return record.ID, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	err := r.withSession(ctx, "list users", func(tx *gorm.DB) error {
		return tx.Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, len(records))
	for i, rec := range records {
		users[i] = domain.User{ID: rec.ID, Name: rec.Name, Age: rec.Age}
	}
	return users, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *UserRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	return sqlDB.Close()
}

// withSession runs fn on a connection reserved for this call. The connection
// goes back to the pool when fn returns, whether or not it failed.
func (r *UserRepository) withSession(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if err := r.db.WithContext(ctx).Connection(fn); err != nil {
		return &domain.StorageError{Op: op, Err: err}
	}
	return nil
}
