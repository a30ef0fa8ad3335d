package botRepository

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository() Repository {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewMemory(logger)
}

func TestGetMunicipalityKnown(t *testing.T) {
	repo := newTestRepository()

	rec, err := repo.GetMunicipality(context.Background(), "Przykładowa Gmina")

	require.NoError(t, err)
	assert.False(t, rec.Placeholder)
	assert.Equal(t, "Urząd Gminy Przykładowa", rec.OfficeName)
	assert.Equal(t, "1234567890", rec.NIP)
	assert.NotEmpty(t, rec.Departments)
	assert.NotEmpty(t, rec.Forms)
}

func TestGetMunicipalityCaseInsensitive(t *testing.T) {
	repo := newTestRepository()

	rec, err := repo.GetMunicipality(context.Background(), "  przykładowa gmina ")

	require.NoError(t, err)
	assert.False(t, rec.Placeholder)
	assert.Equal(t, "Przykładowa Gmina", rec.Name)
}

func TestGetMunicipalityUnknownServesPlaceholder(t *testing.T) {
	repo := newTestRepository()

	rec, err := repo.GetMunicipality(context.Background(), "Gmina Nieznana")

	require.NoError(t, err)
	assert.True(t, rec.Placeholder)
	assert.Equal(t, "Urząd Gminy Gmina Nieznana", rec.OfficeName)
	assert.Equal(t, "kontakt@gminanieznana.pl", rec.Email)
	require.NotEmpty(t, rec.Departments)
	assert.Equal(t, "ogolny", rec.Departments[0].Key)
}

func TestPlaceholderDeterministic(t *testing.T) {
	repo := newTestRepository()

	first, err := repo.GetMunicipality(context.Background(), "Gmina Widmo")
	require.NoError(t, err)

	second, err := repo.GetMunicipality(context.Background(), "gmina widmo")
	require.NoError(t, err)

	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, first.Address, second.Address)
	assert.Equal(t, first.Website, second.Website)
}

func TestListPersonsSeeded(t *testing.T) {
	repo := newTestRepository()

	persons, err := repo.ListPersons(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, persons)

	var found bool
	for _, p := range persons {
		if p.Name == "Jan Kowalski" {
			found = true
			assert.Equal(t, "Kierownik Referatu Finansowego", p.Position)
		}
	}
	assert.True(t, found, "seed directory should contain Jan Kowalski")
}

func TestListFormsSeeded(t *testing.T) {
	repo := newTestRepository()

	forms, err := repo.ListForms(context.Background())

	require.NoError(t, err)
	require.Len(t, forms, 4)
	assert.Equal(t, "deklaracja_smieciowa", forms[0].Key)
}

func TestListProblemTemplatesSeeded(t *testing.T) {
	repo := newTestRepository()

	templates, err := repo.ListProblemTemplates(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, templates)
	assert.Equal(t, "Nieodebrane śmieci", templates[0].Text)
	assert.Equal(t, "odpady", templates[0].Category)
}
