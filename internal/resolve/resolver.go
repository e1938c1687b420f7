// Package resolve turns human-supplied names and emails into the opaque
// identifiers the platform API expects. Callers supply the listing
// operation; the resolver only decides whether a lookup is needed and how
// candidates are matched.
package resolve

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// identifierPattern is the canonical UUID textual form the platform uses
// for identifiers. Anything matching it is passed through untouched.
var identifierPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsIdentifier reports whether value is already an opaque identifier.
func IsIdentifier(value string) bool {
	return identifierPattern.MatchString(value)
}

// Fetcher lists the full collection to search, one page, as raw JSON
// records.
type Fetcher func(ctx context.Context) ([]gjson.Result, error)

// Spec describes how one kind of record is matched.
type Spec struct {
	// Kind names the record type in error messages ("team", "member").
	Kind string
	// IDField is the field holding the opaque identifier.
	IDField string
	// PrimaryField is matched exactly and by substring (a name or email).
	PrimaryField string
	// CompositeFields, when set, are joined with single spaces, trimmed,
	// and matched exactly (e.g. firstName + lastName).
	CompositeFields []string
}

// NotFoundError reports that no record matched the candidate.
type NotFoundError struct {
	Kind      string
	Candidate string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Candidate)
}

// AmbiguousError reports that several records matched the candidate by
// substring. Matches holds the conflicting display names so the operator
// can disambiguate.
type AmbiguousError struct {
	Kind      string
	Candidate string
	Matches   []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s name %q, matches: %s", e.Kind, e.Candidate, strings.Join(e.Matches, ", "))
}

// Resolve maps candidate to an identifier. A candidate that already looks
// like an identifier is returned as-is without invoking fetch. Otherwise
// the collection is fetched once and matched in a fixed strategy order:
// exact on the primary field, then exact on the composite fields, then
// substring on the primary field. An earlier strategy always wins.
func Resolve(ctx context.Context, fetch Fetcher, spec Spec, candidate string) (string, error) {
	if IsIdentifier(candidate) {
		return candidate, nil
	}

	records, err := fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list %ss: %w", spec.Kind, err)
	}

	needle := strings.ToLower(candidate)

	for _, record := range records {
		if strings.ToLower(record.Get(spec.PrimaryField).String()) == needle {
			return identifierOf(record, spec, candidate)
		}
	}

	if len(spec.CompositeFields) > 0 {
		for _, record := range records {
			if compositeValue(record, spec.CompositeFields) == needle {
				return identifierOf(record, spec, candidate)
			}
		}
	}

	var matches []gjson.Result
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Get(spec.PrimaryField).String()), needle) {
			matches = append(matches, record)
		}
	}

	switch len(matches) {
	case 1:
		return identifierOf(matches[0], spec, candidate)
	case 0:
		return "", &NotFoundError{Kind: spec.Kind, Candidate: candidate}
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Get(spec.PrimaryField).String())
		}
		return "", &AmbiguousError{Kind: spec.Kind, Candidate: candidate, Matches: names}
	}
}

func identifierOf(record gjson.Result, spec Spec, candidate string) (string, error) {
	id := record.Get(spec.IDField).String()
	if id == "" {
		return "", fmt.Errorf("matched %s %q has no %s field", spec.Kind, candidate, spec.IDField)
	}
	return id, nil
}

func compositeValue(record gjson.Result, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, record.Get(field).String())
	}
	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}
