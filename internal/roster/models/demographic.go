package models

import (
	"time"

	"roster/pkg/domain"
)

// Gender is the wire "sex" of a person.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var genderCodes = map[string]Gender{
	"male":   GenderMale,
	"female": GenderFemale,
}

// ParseGender decodes a wire sex code.
//
// Errors: CodeUnknownEnumCode.
func ParseGender(s string) (Gender, error) {
	g, ok := genderCodes[s]
	if !ok {
		return "", domain.UnknownEnumCode("sex", s)
	}
	return g, nil
}

func (g Gender) IsValid() bool {
	_, ok := genderCodes[string(g)]
	return ok
}

func (g Gender) String() string {
	return string(g)
}

func (g Gender) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, domain.UnknownEnumCode("sex", string(g))
	}
	return []byte(g), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Ethnicity is a race or ethnicity category derived from demographic flags.
type Ethnicity string

const (
	EthnicityAsian           Ethnicity = "asian"
	EthnicityBlack           Ethnicity = "black"
	EthnicityHispanic        Ethnicity = "hispanic"
	EthnicityNativeAmerican  Ethnicity = "nativeAmerican"
	EthnicityPacificIslander Ethnicity = "pacificIslander"
	EthnicityWhite           Ethnicity = "white"
)

// EthnicityOrder is the fixed order categories appear in Demographic.Ethnicity.
func EthnicityOrder() []Ethnicity {
	return []Ethnicity{
		EthnicityAsian,
		EthnicityBlack,
		EthnicityHispanic,
		EthnicityNativeAmerican,
		EthnicityPacificIslander,
		EthnicityWhite,
	}
}

// Demographic is the normalized demographic record of a person.
//
// Invariants:
//   - Ethnicity is ordered by EthnicityOrder and has no duplicates
//   - Optional fields are nil when absent on the wire
type Demographic struct {
	ID       domain.ResourceID
	Status   domain.Status
	Modified time.Time
	Metadata map[string]string

	BirthDate *domain.Date
	Sex       *Gender
	Ethnicity []Ethnicity

	CountryOfBirth *string
	StateOfBirth   *string
	CityOfBirth    *string
	Residency      *string
}

// IsMultiRace reports whether more than one category applies.
func (d *Demographic) IsMultiRace() bool {
	return len(d.Ethnicity) > 1
}

// HasEthnicity reports whether e is among the record's categories.
func (d *Demographic) HasEthnicity(e Ethnicity) bool {
	for _, have := range d.Ethnicity {
		if have == e {
			return true
		}
	}
	return false
}
