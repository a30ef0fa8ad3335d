package bot

import "GminaGolang/pkg/response"

// An absent or expired session is not an error: dialog operations answer it
// with a reply telling the user to pick a municipality again.
var (
	ErrMunicipalityRequired = response.NewError(400, "municipality name is required")
	ErrEmptyEvent           = response.NewError(400, "message, button action or selection is required")
	ErrUnknownCandidateType = response.NewError(400, "unknown candidate type")
	ErrInvalidSelection     = response.NewError(400, "invalid selection payload")
	ErrUnknownSearchContext = response.NewError(400, "unknown search context")
)
