package customer

import (
	"strings"
	"time"

	"github.com/booktime/backend/internal/domain/shared"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Address is a mailing address in a user's address book.
// Orders copy its fields by value at checkout, so editing an address never
// changes historical orders.
type Address struct {
	shared.BaseEntity
	UserID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name     string              `gorm:"type:varchar(60);not null"`
	Address1 string              `gorm:"type:varchar(60);not null"`
	Address2 string              `gorm:"type:varchar(60)"`
	ZipCode  string              `gorm:"type:varchar(12);not null"`
	City     string              `gorm:"type:varchar(60);not null"`
	Country  valueobject.Country `gorm:"type:varchar(4);not null"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new address owned by the given user
func NewAddress(userID uuid.UUID, name, address1, address2, zipCode, city string, country valueobject.Country) (*Address, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if address1 == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if city == "" {
		return nil, shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if !country.IsValid() {
		return nil, shared.NewDomainError("UNSUPPORTED_COUNTRY", "Country is not in the supported set")
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Name:       name,
		Address1:   address1,
		Address2:   address2,
		ZipCode:    zipCode,
		City:       city,
		Country:    country,
	}, nil
}

// Update replaces the address fields, keeping ownership intact
func (a *Address) Update(name, address1, address2, zipCode, city string, country valueobject.Country) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if address1 == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if city == "" {
		return shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if !country.IsValid() {
		return shared.NewDomainError("UNSUPPORTED_COUNTRY", "Country is not in the supported set")
	}

	a.Name = name
	a.Address1 = address1
	a.Address2 = address2
	a.ZipCode = zipCode
	a.City = city
	a.Country = country
	a.UpdatedAt = time.Now()

	return nil
}

// String renders the comma-joined mailing form of the address
func (a *Address) String() string {
	return strings.Join([]string{
		a.Name,
		a.Address1,
		a.Address2,
		a.ZipCode,
		a.City,
		a.Country.String(),
	}, ", ")
}
