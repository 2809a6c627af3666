package provider

import "github.com/google/uuid"

// Provider is one clinic/practitioner entry in the directory.
type Provider struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Specialty        string    `json:"specialty" db:"specialty"`
	Rating           float64   `json:"rating" db:"rating"`
	ReviewCount      int       `json:"review_count" db:"review_count"`
	Distance         string    `json:"distance" db:"distance"`
	Address          string    `json:"address" db:"address"`
	Phone            string    `json:"phone" db:"phone"`
	AcceptsInsurance bool      `json:"accepts_insurance" db:"accepts_insurance"`
	NextAvailable    string    `json:"next_available" db:"next_available"`
	Languages        []string  `json:"languages" db:"languages"`
	Education        string    `json:"education" db:"education"`
	Experience       string    `json:"experience" db:"experience"`
}

// Filter narrows a directory listing.
type Filter struct {
	Specialty string
	Query     string
}
