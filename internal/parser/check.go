package parser

import (
	"fmt"

	"github.com/toyz/syringe/internal/models"
	"github.com/toyz/syringe/pkg/syringe"
)

// Check validates every scanned type against the constructor selection
// policy, the same one the runtime applies, so policy violations
// surface at build time instead of first resolution.
func Check(metadata *models.PackageMetadata) []*models.BuildError {
	var errs []*models.BuildError
	for _, t := range metadata.Types {
		if _, err := Selected(&t); err != nil {
			errs = append(errs, &models.BuildError{
				Type:    models.ErrorTypeValidation,
				File:    t.FileName,
				Line:    t.Line,
				Message: fmt.Sprintf("type %s: %v", t.Name, err),
			})
		}
	}
	return errs
}

// Selected returns the index of the constructor the policy picks for a
// type, mirroring what the runtime resolver does with the generated
// registrations.
func Selected(t *models.TypeMetadata) (int, error) {
	infos := make([]syringe.CandidateInfo, len(t.Constructors))
	for i, c := range t.Constructors {
		visibility := syringe.VisibilityPackage
		if c.Exported {
			visibility = syringe.VisibilityPublic
		}
		infos[i] = syringe.CandidateInfo{
			Name:       c.FuncName,
			Arity:      len(c.Params),
			Visibility: visibility,
			Annotated:  c.Annotated,
		}
	}
	return syringe.Select(infos)
}
