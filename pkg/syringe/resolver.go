package syringe

// Select applies the constructor selection policy to a candidate set
// and returns the index of the chosen candidate. The policy is a pure
// function of the candidates, in precedence order:
//
//  1. Exactly one annotated constructor wins, regardless of visibility.
//  2. More than one annotated constructor is a hard failure.
//  3. With no annotated constructor, a sole zero-argument constructor
//     is chosen if it is public or package-visible; a private one fails.
//  4. A sole constructor that takes parameters must be annotated.
//  5. Multiple unannotated constructors are never disambiguated.
//
// Annotation presence always beats arity and visibility; multiplicity
// among annotated constructors is an error, never a heuristic pick.
func Select(candidates []CandidateInfo) (int, error) {
	annotated := -1
	for i, c := range candidates {
		if !c.Annotated {
			continue
		}
		if annotated >= 0 {
			return -1, ErrMultipleAnnotated
		}
		annotated = i
	}
	if annotated >= 0 {
		return annotated, nil
	}

	switch len(candidates) {
	case 0:
		return -1, ErrNoConstructors
	case 1:
		c := candidates[0]
		if c.Arity > 0 {
			return -1, ErrNotAnnotated
		}
		if c.Visibility == VisibilityPrivate {
			return -1, ErrNotVisible
		}
		return 0, nil
	default:
		return -1, ErrNoAnnotated
	}
}
