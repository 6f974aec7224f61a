package normalize

import (
	"roster/internal/roster/models"
	"roster/internal/roster/wire"
	"roster/pkg/domain"
)

// Demographic normalizes a wire demographic record. The race and ethnicity
// flags become an ordered category list (Asian, Black, Hispanic,
// NativeAmerican, PacificIslander, White). The two-or-more-races flag has no
// category of its own; IsMultiRace derives it from the list.
func Demographic(raw wire.Demographic) (*models.Demographic, error) {
	modified, err := resolveModified(raw.DateLastModified)
	if err != nil {
		return nil, err
	}

	d := &models.Demographic{
		ID:             raw.SourcedID,
		Status:         raw.Status,
		Modified:       modified,
		Metadata:       cloneMap(raw.Metadata),
		Ethnicity:      ethnicity(raw),
		CountryOfBirth: cloneString(raw.CountryOfBirthCode),
		StateOfBirth:   cloneString(raw.StateOfBirthAbbreviation),
		CityOfBirth:    cloneString(raw.CityOfBirth),
		Residency:      cloneString(raw.PublicSchoolResidenceStatus),
	}
	if raw.BirthDate != nil {
		dob := *raw.BirthDate
		d.BirthDate = &dob
	}
	if raw.Sex != nil {
		sex := *raw.Sex
		d.Sex = &sex
	}
	return d, nil
}

func ethnicity(raw wire.Demographic) []models.Ethnicity {
	flags := map[models.Ethnicity]bool{
		models.EthnicityAsian:           raw.Asian,
		models.EthnicityBlack:           raw.BlackOrAfricanAmerican,
		models.EthnicityHispanic:        raw.HispanicOrLatinoEthnicity,
		models.EthnicityNativeAmerican:  raw.AmericanIndianOrAlaskaNative,
		models.EthnicityPacificIslander: raw.NativeHawaiianOrOtherPacificIslander,
		models.EthnicityWhite:           raw.White,
	}
	out := []models.Ethnicity{}
	for _, e := range models.EthnicityOrder() {
		if flags[e] {
			out = append(out, e)
		}
	}
	return out
}

// ParseDemographic decodes and normalizes a wire demographic record.
func ParseDemographic(data []byte) (*models.Demographic, error) {
	raw, err := wire.DecodeDemographic(data)
	if err != nil {
		return nil, err
	}
	return Demographic(raw)
}

// DemographicToWire rebuilds the wire shape of d. The two-or-more-races flag
// is set when more than one category applies.
func DemographicToWire(d *models.Demographic) wire.Demographic {
	w := wire.Demographic{
		SourcedID:                            d.ID,
		Status:                               d.Status,
		DateLastModified:                     domain.WireTimestampOf(d.Modified),
		Metadata:                             cloneMap(d.Metadata),
		Asian:                                d.HasEthnicity(models.EthnicityAsian),
		BlackOrAfricanAmerican:               d.HasEthnicity(models.EthnicityBlack),
		HispanicOrLatinoEthnicity:            d.HasEthnicity(models.EthnicityHispanic),
		AmericanIndianOrAlaskaNative:         d.HasEthnicity(models.EthnicityNativeAmerican),
		NativeHawaiianOrOtherPacificIslander: d.HasEthnicity(models.EthnicityPacificIslander),
		White:                                d.HasEthnicity(models.EthnicityWhite),
		DemographicRaceTwoOrMoreRaces:        d.IsMultiRace(),
		CountryOfBirthCode:                   cloneString(d.CountryOfBirth),
		StateOfBirthAbbreviation:             cloneString(d.StateOfBirth),
		CityOfBirth:                          cloneString(d.CityOfBirth),
		PublicSchoolResidenceStatus:          cloneString(d.Residency),
	}
	if d.BirthDate != nil {
		dob := *d.BirthDate
		w.BirthDate = &dob
	}
	if d.Sex != nil {
		sex := *d.Sex
		w.Sex = &sex
	}
	return w
}
