package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	repocommon "github.com/amirasaad/finhealth/infra/repository/common"
	"github.com/amirasaad/finhealth/pkg/domain"
	domainuser "github.com/amirasaad/finhealth/pkg/domain/user"
	"github.com/amirasaad/finhealth/pkg/dto"
	"github.com/amirasaad/finhealth/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a GORM backed user repository.
func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) error {
	u := &User{
		ID:          create.ID,
		Name:        create.Name,
		Email:       strings.ToLower(create.Email),
		Password:    create.Password,
		Preferences: create.Preferences,
	}
	err := repocommon.MapGormErrorToDomain(r.db.WithContext(ctx).Create(u).Error)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return domainuser.ErrEmailTaken
	}
	return err
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	uu *dto.UserUpdate,
) error {
	updates := make(map[string]any)
	if uu.Name != nil {
		updates["name"] = *uu.Name
	}
	if uu.Preferences != nil {
		// map updates skip field serializers
		raw, err := json.Marshal(uu.Preferences)
		if err != nil {
			return err
		}
		updates["preferences"] = string(raw)
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(updates)
	return repocommon.RequireAffected(res, domainuser.ErrUserNotFound)
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, repocommon.NotFoundAs(err, domainuser.ErrUserNotFound)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&u).Error; err != nil {
		return nil, repocommon.NotFoundAs(err, domainuser.ErrUserNotFound)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, repocommon.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) ListIDs(
	ctx context.Context,
	offset, limit int,
) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, repocommon.MapGormErrorToDomain(err)
	}
	return ids, nil
}

func mapModelToDTO(u *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		HashedPassword: u.Password,
		Preferences:    u.Preferences,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

var _ user.Repository = (*repository)(nil)
