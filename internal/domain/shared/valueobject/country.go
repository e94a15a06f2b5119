package valueobject

// Country is a value object for the fixed set of countries the store ships to
type Country string

const (
	CountryUK Country = "uk" // United Kingdom
	CountryUS Country = "us" // United States of America
	CountryRU Country = "ru" // Russian Federation
)

// SupportedCountries lists every country the store ships to, in display order
var SupportedCountries = []Country{CountryUK, CountryUS, CountryRU}

// IsValid checks if the country is in the supported set
func (c Country) IsValid() bool {
	switch c {
	case CountryUK, CountryUS, CountryRU:
		return true
	}
	return false
}

// String returns the country code
func (c Country) String() string {
	return string(c)
}

// DisplayName returns the human-readable country name
func (c Country) DisplayName() string {
	switch c {
	case CountryUK:
		return "United Kingdom"
	case CountryUS:
		return "United States of America"
	case CountryRU:
		return "Russian Federation"
	}
	return string(c)
}
