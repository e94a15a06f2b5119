package customer

import (
	"context"
	"time"

	"github.com/booktime/backend/internal/domain/customer"
	"github.com/booktime/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CreateAddressRequest represents a request to create an address-book entry
type CreateAddressRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=60"`
	Address1 string `json:"address1" binding:"required,min=1,max=60"`
	Address2 string `json:"address2" binding:"max=60"`
	ZipCode  string `json:"zip_code" binding:"max=12"`
	City     string `json:"city" binding:"required,min=1,max=60"`
	Country  string `json:"country" binding:"required"`
}

// UpdateAddressRequest represents a request to update an address-book entry
type UpdateAddressRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=60"`
	Address1 *string `json:"address1" binding:"omitempty,min=1,max=60"`
	Address2 *string `json:"address2" binding:"omitempty,max=60"`
	ZipCode  *string `json:"zip_code" binding:"omitempty,max=12"`
	City     *string `json:"city" binding:"omitempty,min=1,max=60"`
	Country  *string `json:"country"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address1  string    `json:"address1"`
	Address2  string    `json:"address2"`
	ZipCode   string    `json:"zip_code"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CountryResponse represents a supported shipping country
type CountryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ToAddressResponse converts a domain Address to AddressResponse
func ToAddressResponse(a *customer.Address) AddressResponse {
	return AddressResponse{
		ID:        a.ID,
		Name:      a.Name,
		Address1:  a.Address1,
		Address2:  a.Address2,
		ZipCode:   a.ZipCode,
		City:      a.City,
		Country:   a.Country.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToAddressResponses converts a slice of domain Addresses to responses
func ToAddressResponses(addresses []customer.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses
}

// AddressService handles address-book operations. Every operation is scoped
// to the calling user.
type AddressService struct {
	addressRepo customer.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo customer.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// Create creates an address-book entry for the user
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	address, err := customer.NewAddress(
		userID,
		req.Name,
		req.Address1,
		req.Address2,
		req.ZipCode,
		req.City,
		valueobject.Country(req.Country),
	)
	if err != nil {
		return nil, err
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// GetByID retrieves one of the user's addresses
func (s *AddressService) GetByID(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByIDForUser(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// List lists the user's address book
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// Update updates one of the user's addresses
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByIDForUser(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	name := address.Name
	address1 := address.Address1
	address2 := address.Address2
	zipCode := address.ZipCode
	city := address.City
	country := address.Country

	if req.Name != nil {
		name = *req.Name
	}
	if req.Address1 != nil {
		address1 = *req.Address1
	}
	if req.Address2 != nil {
		address2 = *req.Address2
	}
	if req.ZipCode != nil {
		zipCode = *req.ZipCode
	}
	if req.City != nil {
		city = *req.City
	}
	if req.Country != nil {
		country = valueobject.Country(*req.Country)
	}

	if err := address.Update(name, address1, address2, zipCode, city, country); err != nil {
		return nil, err
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// Delete removes one of the user's addresses
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.addressRepo.DeleteForUser(ctx, userID, addressID)
}

// SupportedCountries lists the shipping countries the store accepts
func (s *AddressService) SupportedCountries() []CountryResponse {
	countries := make([]CountryResponse, 0, len(valueobject.SupportedCountries))
	for _, c := range valueobject.SupportedCountries {
		countries = append(countries, CountryResponse{Code: c.String(), Name: c.DisplayName()})
	}
	return countries
}
