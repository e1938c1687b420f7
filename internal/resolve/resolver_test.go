package resolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"pgregory.net/rapid"
)

var teamSpec = Spec{
	Kind:         "team",
	IDField:      "teamId",
	PrimaryField: "name",
}

var memberSpec = Spec{
	Kind:            "member",
	IDField:         "memberId",
	PrimaryField:    "email",
	CompositeFields: []string{"firstName", "lastName"},
}

// fixedFetcher returns the given JSON array and counts invocations.
func fixedFetcher(doc string, calls *int) Fetcher {
	return func(ctx context.Context) ([]gjson.Result, error) {
		*calls++
		return gjson.Parse(doc).Array(), nil
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"3fa85f64-5717-4562-b3fc-2c963f66afa6", true},
		{"3FA85F64-5717-4562-B3FC-2C963F66AFA6", true},
		{"Sales Team", false},
		{"alice@example.com", false},
		{"3fa85f64-5717-4562-b3fc", false},
		{"3fa85f645717-4562-b3fc-2c963f66afa6x", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIdentifier(tt.value))
		})
	}
}

func TestResolve_IdentifierShortCircuit(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[]`, &calls)

	id := uuid.NewString()
	got, err := Resolve(context.Background(), fetch, teamSpec, id)

	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Zero(t, calls, "an identifier candidate must never hit the network")
}

func TestResolve_ExactMatchWins(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[
		{"teamId": "id-ops", "name": "Ops"},
		{"teamId": "id-ops-team", "name": "Ops Team"}
	]`, &calls)

	got, err := Resolve(context.Background(), fetch, teamSpec, "Ops")

	require.NoError(t, err)
	assert.Equal(t, "id-ops", got, "exact match beats a would-be substring ambiguity")
	assert.Equal(t, 1, calls)
}

func TestResolve_ExactMatchIsCaseInsensitive(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[{"teamId": "id-1", "name": "Sales East"}]`, &calls)

	got, err := Resolve(context.Background(), fetch, teamSpec, "sales east")

	require.NoError(t, err)
	assert.Equal(t, "id-1", got)
}

func TestResolve_SubstringSingleMatch(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[
		{"teamId": "id-1", "name": "Northbridge Analytics"},
		{"teamId": "id-2", "name": "Finance"}
	]`, &calls)

	got, err := Resolve(context.Background(), fetch, teamSpec, "northbridge")

	require.NoError(t, err)
	assert.Equal(t, "id-1", got)
}

func TestResolve_AmbiguousSubstring(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[
		{"teamId": "id-1", "name": "Sales"},
		{"teamId": "id-2", "name": "Sales East"}
	]`, &calls)

	_, err := Resolve(context.Background(), fetch, teamSpec, "sale")

	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"Sales", "Sales East"}, ambiguous.Matches)
	assert.Contains(t, err.Error(), "Sales East")
}

func TestResolve_NotFound(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[{"teamId": "id-1", "name": "Finance"}]`, &calls)

	_, err := Resolve(context.Background(), fetch, teamSpec, "Engineering")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Engineering", notFound.Candidate)
	assert.Equal(t, "team", notFound.Kind)
}

func TestResolve_MemberByEmail(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[
		{"memberId": "m-1", "email": "alice@example.com", "firstName": "Alice", "lastName": "Smith"},
		{"memberId": "m-2", "email": "bob@example.com", "firstName": "Bob", "lastName": "Stone"}
	]`, &calls)

	got, err := Resolve(context.Background(), fetch, memberSpec, "Alice@Example.com")

	require.NoError(t, err)
	assert.Equal(t, "m-1", got)
}

func TestResolve_MemberByFullName(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[
		{"memberId": "m-1", "email": "alice@example.com", "firstName": "Alice", "lastName": "Smith"},
		{"memberId": "m-2", "email": "bob@example.com", "firstName": "Bob", "lastName": "Stone"}
	]`, &calls)

	got, err := Resolve(context.Background(), fetch, memberSpec, "bob stone")

	require.NoError(t, err)
	assert.Equal(t, "m-2", got)
}

func TestResolve_FetcherErrorPropagates(t *testing.T) {
	fetchErr := errors.New("listing exploded")
	fetch := func(ctx context.Context) ([]gjson.Result, error) {
		return nil, fetchErr
	}

	_, err := Resolve(context.Background(), fetch, teamSpec, "Ops")

	require.ErrorIs(t, err, fetchErr)
}

func TestResolve_MatchedRecordMissingIdentifier(t *testing.T) {
	calls := 0
	fetch := fixedFetcher(`[{"name": "Ops"}]`, &calls)

	_, err := Resolve(context.Background(), fetch, teamSpec, "Ops")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "teamId")
}

// Property: any generated UUID short-circuits, and candidates containing a
// character outside the identifier alphabet never do.
func TestResolve_IdentifierDetection_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := uuid.New().String()
		assert.True(t, IsIdentifier(id))
		assert.True(t, IsIdentifier(strings.ToUpper(id)))

		mangled := id + rapid.StringMatching(`[g-z]{1,4}`).Draw(t, "suffix")
		assert.False(t, IsIdentifier(mangled))
	})
}
