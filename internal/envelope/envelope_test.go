package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kampomido/pkg/domain-errors"
)

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Every supported envelope shape must resolve to the same canonical list given
// equivalent underlying records.
func TestListResolvesAllEnvelopeShapes(t *testing.T) {
	want := []user{{ID: 1, Name: "Asha"}, {ID: 2, Name: "Ravi"}}

	shapes := map[string]string{
		"data array":       `{"data": [{"id":1,"name":"Asha"},{"id":2,"name":"Ravi"}]}`,
		"data.resource":    `{"data": {"users": [{"id":1,"name":"Asha"},{"id":2,"name":"Ravi"}]}}`,
		"data.data":        `{"data": {"data": [{"id":1,"name":"Asha"},{"id":2,"name":"Ravi"}]}}`,
		"bare array":       `[{"id":1,"name":"Asha"},{"id":2,"name":"Ravi"}]`,
		"resource at root": `{"users": [{"id":1,"name":"Asha"},{"id":2,"name":"Ravi"}]}`,
	}

	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			got, err := List[user]([]byte(body), "users")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestProbePriorityOrder(t *testing.T) {
	// data.data must win over data.<resource> and both over data itself.
	body := `{"data": {"data": [{"id":1,"name":"inner"}], "users": [{"id":9,"name":"named"}]}}`
	got, err := List[user]([]byte(body), "users")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "inner", got[0].Name)

	// Without data.data, the resource key inside data wins.
	body = `{"data": {"users": [{"id":9,"name":"named"}], "total": 1}}`
	got, err = List[user]([]byte(body), "users")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "named", got[0].Name)
}

func TestNullDataFallsThrough(t *testing.T) {
	// "data": null is not a payload; the resource key at the root must win.
	body := `{"data": null, "users": [{"id":3,"name":"Meera"}]}`
	got, err := List[user]([]byte(body), "users")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Meera", got[0].Name)
}

func TestOneResolvesDetailEnvelope(t *testing.T) {
	body := `{"data": {"id": 7, "name": "Kiran"}}`
	got, err := One[user]([]byte(body), "user")
	require.NoError(t, err)
	assert.Equal(t, user{ID: 7, Name: "Kiran"}, got)
}

func TestListWrapsSingleObjectPayload(t *testing.T) {
	body := `{"data": {"id": 7, "name": "Kiran"}}`
	got, err := List[user]([]byte(body), "users")
	require.NoError(t, err)
	assert.Equal(t, []user{{ID: 7, Name: "Kiran"}}, got)
}

func TestResolveRejectsScalarBody(t *testing.T) {
	_, err := Resolve([]byte(`"just a string"`), "users")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDecode))
}

func TestListDecodeMismatchIsDecodeError(t *testing.T) {
	_, err := List[user]([]byte(`{"data": [{"id": "not-a-number"}]}`), "users")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeDecode))
}
