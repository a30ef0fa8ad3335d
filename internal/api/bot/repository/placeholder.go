package botRepository

import (
	"strings"
	"sync"

	"GminaGolang/internal/entity"
	"GminaGolang/pkg/search"
)

// placeholderCache memoizes synthesized municipality records so repeated
// lookups of the same unknown name return structurally identical data. The
// canonical dataset is never touched.
type placeholderCache struct {
	mu      sync.Mutex
	records map[string]entity.MunicipalityRecord
}

func newPlaceholderCache() *placeholderCache {
	return &placeholderCache{records: make(map[string]entity.MunicipalityRecord)}
}

func (c *placeholderCache) getOrBuild(name string) entity.MunicipalityRecord {
	key := strings.ToLower(strings.TrimSpace(name))

	c.mu.Lock()
	defer c.mu.Unlock()

	if rec, ok := c.records[key]; ok {
		return rec
	}

	rec := buildPlaceholder(name)
	c.records[key] = rec
	return rec
}

// buildPlaceholder is deterministic: the same name always yields the same
// address pattern and generated email.
func buildPlaceholder(name string) entity.MunicipalityRecord {
	name = strings.TrimSpace(name)
	slug := strings.ReplaceAll(search.Normalize(name), " ", "")
	if slug == "" {
		slug = "gmina"
	}

	return entity.MunicipalityRecord{
		Name:        name,
		OfficeName:  "Urząd Gminy " + name,
		Address:     "ul. Urzędowa 1, " + name,
		Phone:       "Brak danych",
		Email:       "kontakt@" + slug + ".pl",
		NIP:         "Brak danych",
		REGON:       "Brak danych",
		Website:     "https://" + slug + ".pl",
		Placeholder: true,
		Departments: defaultDepartments(),
		Forms:       nil,
	}
}

// defaultDepartments gives placeholder municipalities a minimal directory so
// quick-answer cards degrade to "contact the office" data instead of failing.
func defaultDepartments() []entity.Department {
	return []entity.Department{
		{
			Key:         "ogolny",
			Name:        "Sekretariat Urzędu",
			Phone:       "Brak danych",
			Email:       "Brak danych",
			OfficeHours: "pn-pt 8:00-16:00",
			Status:      entity.DepartmentStatusNoData,
		},
	}
}
