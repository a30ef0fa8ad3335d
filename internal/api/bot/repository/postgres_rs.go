package botRepository

import (
	"database/sql"
	"errors"

	"GminaGolang/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type postgresRepository struct {
	db           *sqlx.DB
	log          *logrus.Logger
	placeholders *placeholderCache
}

func (r *postgresRepository) GetMunicipality(ctx context.Context, name string) (entity.MunicipalityRecord, error) {
	var rec entity.MunicipalityRecord
	err := r.db.GetContext(ctx, &rec, queryGetMunicipality, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"municipality": name,
			}).Debug("Unknown municipality, serving placeholder record")
			return r.placeholders.getOrBuild(name), nil
		}
		r.log.Error("Error GetMunicipality : ", err)
		return entity.MunicipalityRecord{}, err
	}

	if err = r.db.SelectContext(ctx, &rec.Departments, queryListDepartmentsByMunicipality, rec.Name); err != nil {
		r.log.Error("Error GetMunicipality departments : ", err)
		return entity.MunicipalityRecord{}, err
	}

	if err = r.db.SelectContext(ctx, &rec.Forms, queryListFormsByMunicipality, rec.Name); err != nil {
		r.log.Error("Error GetMunicipality forms : ", err)
		return entity.MunicipalityRecord{}, err
	}

	return rec, nil
}

func (r *postgresRepository) ListPersons(ctx context.Context) ([]entity.PersonRecord, error) {
	var persons []entity.PersonRecord
	if err := r.db.SelectContext(ctx, &persons, queryListPersons); err != nil {
		r.log.Error("Error ListPersons : ", err)
		return nil, err
	}
	return persons, nil
}

func (r *postgresRepository) ListDepartments(ctx context.Context) ([]entity.Department, error) {
	var departments []entity.Department
	if err := r.db.SelectContext(ctx, &departments, queryListDepartments); err != nil {
		r.log.Error("Error ListDepartments : ", err)
		return nil, err
	}
	return departments, nil
}

func (r *postgresRepository) ListForms(ctx context.Context) ([]entity.FormRecord, error) {
	var forms []entity.FormRecord
	if err := r.db.SelectContext(ctx, &forms, queryListForms); err != nil {
		r.log.Error("Error ListForms : ", err)
		return nil, err
	}
	return forms, nil
}

func (r *postgresRepository) ListProblemTemplates(ctx context.Context) ([]entity.ProblemTemplate, error) {
	var problems []entity.ProblemTemplate
	if err := r.db.SelectContext(ctx, &problems, queryListProblemTemplates); err != nil {
		r.log.Error("Error ListProblemTemplates : ", err)
		return nil, err
	}
	return problems, nil
}
