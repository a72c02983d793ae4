// Package addressrepo looks up the user's saved delivery addresses.
package addressrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressDTO represents one saved delivery address row.
type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Line1     string    `gorm:"size:255"`
	Line2     string    `gorm:"size:255"`
	City      string    `gorm:"size:100"`
	State     string    `gorm:"size:100"`
	Pincode   string    `gorm:"size:16"`
	Phone     string    `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for address rows.
func (AddressDTO) TableName() string {
	return "addresses"
}

// GormAddressProvider implements ports.AddressProvider against the platform's
// own address table.
type GormAddressProvider struct {
	db *gorm.DB
}

// NewGormAddressProvider creates an address provider backed by the given
// connection.
func NewGormAddressProvider(db *gorm.DB) *GormAddressProvider {
	return &GormAddressProvider{db: db}
}

// FindForUser returns the address only when it belongs to the given user.
// A missing address and another user's address are both ErrAddressNotFound.
func (p *GormAddressProvider) FindForUser(ctx context.Context, userID, addressID kernel.UUID) (ports.Address, error) {
	if err := errors.Join(userID.Validate(), addressID.Validate()); err != nil {
		return ports.Address{}, err
	}

	var dto AddressDTO
	err := p.db.WithContext(ctx).
		First(&dto, "id = ? AND user_id = ?", addressID.Bytes(), userID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Address{}, fmt.Errorf("%w: %s", ports.ErrAddressNotFound, addressID.String())
		}
		return ports.Address{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Address{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return ports.Address{}, err
	}

	return ports.Address{
		ID:      id,
		UserID:  ownerID,
		Line1:   dto.Line1,
		Line2:   dto.Line2,
		City:    dto.City,
		State:   dto.State,
		Pincode: dto.Pincode,
		Phone:   dto.Phone,
	}, nil
}
