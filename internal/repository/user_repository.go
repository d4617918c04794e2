package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT id, username, password_hash, full_name, email, role, status, created_at, last_login
	FROM users
`

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := r.db.WithContext(ctx).Raw(userSelect + " ORDER BY id DESC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	var found model.User
	if err := r.db.WithContext(ctx).Raw(userSelect+" WHERE id = ? LIMIT 1", id).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var found model.User
	if err := r.db.WithContext(ctx).Raw(userSelect+" WHERE username = ? LIMIT 1", username).Scan(&found).Error; err != nil {
		return nil, err
	}
	if found.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *UserRepository) Create(ctx context.Context, u model.User) (*model.User, error) {
	var saved model.User
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO users (username, password_hash, full_name, email, role, status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, username, password_hash, full_name, email, role, status, created_at, last_login
	`, u.Username, u.PasswordHash, u.FullName, u.Email, u.Role, u.Status).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role model.UserRole) error {
	return r.touch(r.db.WithContext(ctx).Exec(`UPDATE users SET role = ? WHERE id = ?`, role, id))
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status model.UserStatus) error {
	return r.touch(r.db.WithContext(ctx).Exec(`UPDATE users SET status = ? WHERE id = ?`, status, id))
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.touch(r.db.WithContext(ctx).Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, hash, id))
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.touch(r.db.WithContext(ctx).Exec(`UPDATE users SET last_login = ? WHERE id = ?`, at, id))
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.touch(r.db.WithContext(ctx).Exec(`DELETE FROM users WHERE id = ?`, id))
}

func (r *UserRepository) touch(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
