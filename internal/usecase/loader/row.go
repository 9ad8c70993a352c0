package loader

import (
	"fmt"
	"strconv"

	"github.com/crimedex/crimedex/internal/domain"
	"github.com/crimedex/crimedex/internal/jsonx"
)

// Source column names of the LA crime dataset.
const (
	colReportNumber = "DR_NO"
	colDateReported = "Date Rptd"
	colDateOccurred = "DATE OCC"
	colTimeOccurred = "TIME OCC"
	colAreaID       = "AREA"
	colAreaName     = "AREA NAME"
	colReportDist   = "Rpt Dist No"
	colCrimeCode    = "Crm Cd"
	colCrimeDesc    = "Crm Cd Desc"
	colStatus       = "Status"
	colStatusDesc   = "Status Desc"
	colLocation     = "LOCATION"
	colLongitude    = "LON"
	colLatitude     = "LAT"
	colVictimAge    = "Vict Age"
	colVictimSex    = "Vict Sex"
	colVictDescent  = "Vict Descent"
	colWeaponCode   = "Weapon Used Cd"
	colWeaponDesc   = "Weapon Desc"
)

// columnIndex maps the dataset's column names to record indexes.
type columnIndex struct {
	idx map[string]int
}

func newColumnIndex(header []string) (*columnIndex, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}

	required := []string{
		colReportNumber, colDateReported, colDateOccurred, colTimeOccurred,
		colAreaID, colAreaName, colReportDist, colCrimeCode, colCrimeDesc,
		colStatus, colStatusDesc, colLocation,
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return &columnIndex{idx: idx}, nil
}

// parseRow transforms one CSV record into a crime document plus an optional
// victim and weapon. CrimeID on the returned victim/weapon is filled by the
// caller once the crime has an assigned identifier.
func (c *columnIndex) parseRow(record []string) (domain.Crime, *domain.Victim, *domain.Weapon, error) {
	reportNumber, err := c.intField(record, colReportNumber)
	if err != nil {
		return domain.Crime{}, nil, nil, err
	}
	timeOccurred, err := c.intField(record, colTimeOccurred)
	if err != nil {
		return domain.Crime{}, nil, nil, err
	}
	areaID, err := c.intField(record, colAreaID)
	if err != nil {
		return domain.Crime{}, nil, nil, err
	}
	reportDist, err := c.intField(record, colReportDist)
	if err != nil {
		return domain.Crime{}, nil, nil, err
	}
	crimeCode, err := c.intField(record, colCrimeCode)
	if err != nil {
		return domain.Crime{}, nil, nil, err
	}

	crime := domain.Crime{
		ReportNumber: reportNumber,
		DateReported: c.strField(record, colDateReported),
		DateOccurred: c.strField(record, colDateOccurred),
		TimeOccurred: int(timeOccurred),
		Area: domain.Area{
			ID:                int(areaID),
			Name:              c.strField(record, colAreaName),
			ReportingDistrict: int(reportDist),
		},
		CrimeCode:        int(crimeCode),
		CrimeDescription: c.strField(record, colCrimeDesc),
		Status: domain.Status{
			Code:        c.strField(record, colStatus),
			Description: c.strField(record, colStatusDesc),
		},
		Location: domain.Location{
			Address:     c.strField(record, colLocation),
			Coordinates: c.coordinates(record),
		},
	}

	return crime, c.victim(record), c.weapon(record), nil
}

// coordinates returns [longitude, latitude] or nil when either is missing; a
// half-present pair never produces a malformed coordinate.
func (c *columnIndex) coordinates(record []string) []jsonx.Float64 {
	lon, lonOK := c.floatField(record, colLongitude)
	lat, latOK := c.floatField(record, colLatitude)
	if !lonOK || !latOK {
		return nil
	}
	return []jsonx.Float64{jsonx.Float64(lon), jsonx.Float64(lat)}
}

// victim returns a victim document when at least one of age, sex, or descent
// is present in the row, nil otherwise.
func (c *columnIndex) victim(record []string) *domain.Victim {
	v := domain.Victim{}
	if age, ok := c.floatField(record, colVictimAge); ok {
		f := jsonx.Float64(age)
		v.Age = &f
	}
	if sex := c.strField(record, colVictimSex); sex != "" {
		v.Sex = &sex
	}
	if descent := c.strField(record, colVictDescent); descent != "" {
		v.Descent = &descent
	}
	if !v.HasData() {
		return nil
	}
	return &v
}

// weapon returns a weapon document when the row carries a weapon code,
// nil otherwise.
func (c *columnIndex) weapon(record []string) *domain.Weapon {
	code, ok := c.floatField(record, colWeaponCode)
	if !ok {
		return nil
	}
	return &domain.Weapon{
		Code:        int(code),
		Description: c.strField(record, colWeaponDesc),
	}
}

func (c *columnIndex) strField(record []string, name string) string {
	i, ok := c.idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// intField parses a required numeric field. The export renders some integer
// columns as floats ("624.0"), so parsing goes through ParseFloat.
func (c *columnIndex) intField(record []string, name string) (int64, error) {
	s := c.strField(record, name)
	if s == "" {
		return 0, fmt.Errorf("missing value for %q", name)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q value %q: %w", name, s, err)
	}
	return int64(f), nil
}

// floatField parses an optional numeric field; ok is false when empty or
// unparseable.
func (c *columnIndex) floatField(record []string, name string) (float64, bool) {
	s := c.strField(record, name)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
