package entity

type MunicipalityRecord struct {
	Name        string       `json:"name" db:"name"`
	OfficeName  string       `json:"office_name" db:"office_name"`
	Address     string       `json:"address" db:"address"`
	Phone       string       `json:"phone" db:"phone"`
	Email       string       `json:"email" db:"email"`
	NIP         string       `json:"nip" db:"nip"`
	REGON       string       `json:"regon" db:"regon"`
	Website     string       `json:"website" db:"website"`
	Placeholder bool         `json:"placeholder" db:"-"`
	Departments []Department `json:"departments" db:"-"`
	Forms       []FormRecord `json:"forms" db:"-"`
}

// Department returns the department stored under the given category key,
// or false when the municipality has no data for it.
func (m MunicipalityRecord) Department(key string) (Department, bool) {
	for _, d := range m.Departments {
		if d.Key == key {
			return d, true
		}
	}
	return Department{}, false
}

func (m MunicipalityRecord) Form(key string) (FormRecord, bool) {
	for _, f := range m.Forms {
		if f.Key == key {
			return f, true
		}
	}
	return FormRecord{}, false
}

type Department struct {
	Key         string           `json:"key" db:"key"`
	Name        string           `json:"name" db:"name"`
	Phone       string           `json:"phone" db:"phone"`
	Email       string           `json:"email" db:"email"`
	OfficeHours string           `json:"office_hours" db:"office_hours"`
	Status      DepartmentStatus `json:"status" db:"status"`
}

type FormRecord struct {
	Key      string `json:"key" db:"key"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
	Code     string `json:"code" db:"code"`
	Link     string `json:"link" db:"link"`
	Online   bool   `json:"online" db:"online"`
}

type DepartmentStatus uint8

const (
	DepartmentStatusNoData DepartmentStatus = iota
	DepartmentStatusAvailableOnline
	DepartmentStatusRequiresVisit
	DepartmentStatusComplex
)

var departmentStatusMap = map[DepartmentStatus]string{
	DepartmentStatusNoData:          "brak_danych",
	DepartmentStatusAvailableOnline: "dostepne_online",
	DepartmentStatusRequiresVisit:   "wymaga_wizyty",
	DepartmentStatusComplex:         "skomplikowane",
}

var departmentStatusLabels = map[DepartmentStatus]string{
	DepartmentStatusNoData:          "Brak danych",
	DepartmentStatusAvailableOnline: "Dostępne online",
	DepartmentStatusRequiresVisit:   "Wymaga wizyty",
	DepartmentStatusComplex:         "Skomplikowane",
}

var departmentStatusColors = map[DepartmentStatus]string{
	DepartmentStatusNoData:          "grey-dot",
	DepartmentStatusAvailableOnline: "green-dot",
	DepartmentStatusRequiresVisit:   "orange-dot",
	DepartmentStatusComplex:         "red-dot",
}

func (s DepartmentStatus) String() string {
	return departmentStatusMap[s]
}

func (s DepartmentStatus) Label() string {
	return departmentStatusLabels[s]
}

func (s DepartmentStatus) Color() string {
	return departmentStatusColors[s]
}

func (s DepartmentStatus) Value() uint8 {
	return uint8(s)
}
