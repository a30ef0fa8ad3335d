package botRepository

const (
	queryGetMunicipality = `
		SELECT name, office_name, address, phone, email, nip, regon, website
		FROM municipalities
		WHERE LOWER(name) = LOWER($1)
	`

	queryListDepartmentsByMunicipality = `
		SELECT key, name, phone, email, office_hours, status
		FROM departments
		WHERE municipality_name = $1
		ORDER BY id
	`

	queryListFormsByMunicipality = `
		SELECT key, name, category, code, link, online
		FROM forms
		WHERE municipality_name = $1
		ORDER BY id
	`

	queryListPersons = `
		SELECT name, position, phone, email, department
		FROM persons
		ORDER BY id
	`

	queryListDepartments = `
		SELECT d.key, d.name, d.phone, d.email, d.office_hours, d.status
		FROM departments d
		JOIN municipalities m ON m.name = d.municipality_name
		WHERE m.is_primary = TRUE
		ORDER BY d.id
	`

	queryListForms = `
		SELECT f.key, f.name, f.category, f.code, f.link, f.online
		FROM forms f
		JOIN municipalities m ON m.name = f.municipality_name
		WHERE m.is_primary = TRUE
		ORDER BY f.id
	`

	queryListProblemTemplates = `
		SELECT text, category
		FROM problem_templates
		ORDER BY id
	`
)
