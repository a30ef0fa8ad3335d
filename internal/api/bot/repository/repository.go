package botRepository

import (
	"GminaGolang/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Repository is the read-only dataset provider for the dialog core. Every
// lookup is total: GetMunicipality falls back to a deterministic placeholder
// for unknown names, list operations return fixed collections in insertion
// order. Implementations never mutate the dataset after construction.
type Repository interface {
	GetMunicipality(ctx context.Context, name string) (entity.MunicipalityRecord, error)
	ListPersons(ctx context.Context) ([]entity.PersonRecord, error)
	ListDepartments(ctx context.Context) ([]entity.Department, error)
	ListForms(ctx context.Context) ([]entity.FormRecord, error)
	ListProblemTemplates(ctx context.Context) ([]entity.ProblemTemplate, error)
}

// NewPostgres reads the dataset from postgres; unknown municipalities still
// resolve via the placeholder cache instead of surfacing sql.ErrNoRows.
func NewPostgres(db *sqlx.DB, log *logrus.Logger) Repository {
	return &postgresRepository{
		db:           db,
		log:          log,
		placeholders: newPlaceholderCache(),
	}
}

// NewMemory serves the embedded seed dataset; used when no database is
// configured and in tests.
func NewMemory(log *logrus.Logger) Repository {
	return &memoryRepository{
		log:            log,
		municipalities: seedMunicipalities(),
		persons:        seedPersons(),
		forms:          seedForms(),
		problems:       seedProblemTemplates(),
		placeholders:   newPlaceholderCache(),
	}
}
