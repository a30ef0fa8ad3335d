package entity

// PersonRecord is an entry of the static staff directory. It is not tied to a
// single municipality record.
type PersonRecord struct {
	Name       string `json:"name" db:"name"`
	Position   string `json:"position" db:"position"`
	Phone      string `json:"phone" db:"phone"`
	Email      string `json:"email" db:"email"`
	Department string `json:"department" db:"department"`
}

// ProblemTemplate seeds predictive search with common complaint phrasings.
type ProblemTemplate struct {
	Text     string `json:"text" db:"text"`
	Category string `json:"category" db:"category"`
}
