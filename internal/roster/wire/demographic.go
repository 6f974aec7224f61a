package wire

import (
	"roster/internal/roster/models"
	"roster/pkg/domain"
)

// Demographic is a person's demographic record as sent on the wire. The race
// and ethnicity categories are independent flags.
type Demographic struct {
	SourcedID        domain.ResourceID    `json:"sourcedId"`
	Status           domain.Status        `json:"status"`
	DateLastModified domain.WireTimestamp `json:"dateLastModified"`
	Metadata         map[string]string    `json:"metadata"`

	BirthDate *domain.Date   `json:"birthDate,omitempty"`
	Sex       *models.Gender `json:"sex,omitempty"`

	AmericanIndianOrAlaskaNative         bool `json:"americanIndianOrAlaskaNative"`
	Asian                                bool `json:"asian"`
	BlackOrAfricanAmerican               bool `json:"blackOrAfricanAmerican"`
	NativeHawaiianOrOtherPacificIslander bool `json:"nativeHawaiianOrOtherPacificIslander"`
	White                                bool `json:"white"`
	DemographicRaceTwoOrMoreRaces        bool `json:"demographicRaceTwoOrMoreRaces"`
	HispanicOrLatinoEthnicity            bool `json:"hispanicOrLatinoEthnicity"`

	CountryOfBirthCode          *string `json:"countryOfBirthCode,omitempty"`
	StateOfBirthAbbreviation    *string `json:"stateOfBirthAbbreviation,omitempty"`
	CityOfBirth                 *string `json:"cityOfBirth,omitempty"`
	PublicSchoolResidenceStatus *string `json:"publicSchoolResidenceStatus,omitempty"`
}

// DecodeDemographic parses a wire demographic record from JSON.
// Absent flags are false.
func DecodeDemographic(data []byte) (Demographic, error) {
	r, err := newReader(data)
	if err != nil {
		return Demographic{}, err
	}

	var d Demographic
	if d.SourcedID, err = required(r, "sourcedId", domain.ParseResourceID); err != nil {
		return Demographic{}, err
	}
	if d.Status, err = required(r, "status", domain.ParseStatus); err != nil {
		return Demographic{}, err
	}
	if d.DateLastModified, err = required(r, "dateLastModified", domain.ParseWireTimestamp); err != nil {
		return Demographic{}, err
	}
	if d.Metadata, err = r.metadata("metadata"); err != nil {
		return Demographic{}, err
	}
	if d.BirthDate, err = optional(r, "birthDate", domain.ParseDate); err != nil {
		return Demographic{}, err
	}
	if d.Sex, err = optional(r, "sex", models.ParseGender); err != nil {
		return Demographic{}, err
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"americanIndianOrAlaskaNative", &d.AmericanIndianOrAlaskaNative},
		{"asian", &d.Asian},
		{"blackOrAfricanAmerican", &d.BlackOrAfricanAmerican},
		{"nativeHawaiianOrOtherPacificIslander", &d.NativeHawaiianOrOtherPacificIslander},
		{"white", &d.White},
		{"demographicRaceTwoOrMoreRaces", &d.DemographicRaceTwoOrMoreRaces},
		{"hispanicOrLatinoEthnicity", &d.HispanicOrLatinoEthnicity},
	}
	for _, f := range flags {
		if *f.dst, err = r.flag(f.name); err != nil {
			return Demographic{}, err
		}
	}

	if d.CountryOfBirthCode, err = r.optionalString("countryOfBirthCode"); err != nil {
		return Demographic{}, err
	}
	if d.StateOfBirthAbbreviation, err = r.optionalString("stateOfBirthAbbreviation"); err != nil {
		return Demographic{}, err
	}
	if d.CityOfBirth, err = r.optionalString("cityOfBirth"); err != nil {
		return Demographic{}, err
	}
	if d.PublicSchoolResidenceStatus, err = r.optionalString("publicSchoolResidenceStatus"); err != nil {
		return Demographic{}, err
	}
	return d, nil
}

// DecodeDemographicValue decodes a demographic record supplied as structured
// field data.
func DecodeDemographicValue(fields map[string]any) (Demographic, error) {
	data, err := marshalValue(fields)
	if err != nil {
		return Demographic{}, err
	}
	return DecodeDemographic(data)
}
