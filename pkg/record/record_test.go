package record_test

import (
	"testing"

	"github.com/octofit/octofit-web/pkg/errs"
	"github.com/octofit/octofit-web/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name      string
		payload   string
		expect    [][]string
		expectErr bool
	}{
		{
			name:    "bare list",
			payload: `[{"id":1,"name":"Run"},{"id":2,"name":"Swim"}]`,
			expect:  [][]string{{"id", "name"}, {"id", "name"}},
		},
		{
			name:    "paginated envelope",
			payload: `{"count":2,"next":null,"previous":null,"results":[{"id":1,"name":"Run"},{"id":2,"name":"Swim"}]}`,
			expect:  [][]string{{"id", "name"}, {"id", "name"}},
		},
		{
			name:    "empty results",
			payload: `{"results":[]}`,
			expect:  [][]string{},
		},
		{
			name:    "repeated results key takes the last value",
			payload: `{"results":[],"results":[{"id":1}]}`,
			expect:  [][]string{{"id"}},
		},
		{
			name:      "repeated results key ending in null",
			payload:   `{"results":[{"id":1}],"results":null}`,
			expectErr: true,
		},
		{
			name:    "empty list",
			payload: `[]`,
			expect:  [][]string{},
		},
		{
			name:      "null results falls back to the object",
			payload:   `{"results":null}`,
			expectErr: true,
		},
		{
			name:      "object without results",
			payload:   `{"detail":"Not found."}`,
			expectErr: true,
		},
		{
			name:      "list of scalars",
			payload:   `[1,2,3]`,
			expectErr: true,
		},
		{
			name:      "not json",
			payload:   `<html>Bad Gateway</html>`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := record.Normalize([]byte(tc.payload))
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errs.KindIs(errs.IO, err))

				return
			}

			require.NoError(t, err)

			keys := [][]string{}
			for _, r := range got {
				keys = append(keys, r.Keys())
			}
			assert.Equal(t, tc.expect, keys)
		})
	}
}

func TestNormalize_EnvelopeAndListAgree(t *testing.T) {
	items := `[{"id":1,"name":"Run","exercises":["a","b"]},{"id":2,"name":"Swim","user":{"id":7}}]`

	fromList, err := record.Normalize([]byte(items))
	require.NoError(t, err)

	fromEnvelope, err := record.Normalize([]byte(`{"count":2,"results":` + items + `}`))
	require.NoError(t, err)

	assert.Equal(t, record.Tabulate(fromList), record.Tabulate(fromEnvelope))
}

func TestRecord_KeyOrder(t *testing.T) {
	testCases := []struct {
		name   string
		raw    string
		expect []string
	}{
		{
			name:   "document order",
			raw:    `{"name":"Run","id":1,"_id":"abc"}`,
			expect: []string{"name", "id", "_id"},
		},
		{
			name:   "integer keys first in ascending order",
			raw:    `{"b":1,"10":2,"a":3,"2":4,"02":5}`,
			expect: []string{"2", "10", "b", "a", "02"},
		},
		{
			name:   "duplicate key keeps first position",
			raw:    `{"a":1,"b":2,"a":3}`,
			expect: []string{"a", "b"},
		},
		{
			name:   "max uint32 is not an index",
			raw:    `{"x":1,"4294967295":2,"4294967294":3}`,
			expect: []string{"4294967294", "x", "4294967295"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := record.FromJSON(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, r.Keys())
		})
	}
}

func TestRecord_DuplicateKeepsLastValue(t *testing.T) {
	r, err := record.FromJSON(`{"a":1,"b":2,"a":3}`)
	require.NoError(t, err)

	v, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "3", record.CellText(v))
}

func TestFromJSON_NotAnObject(t *testing.T) {
	_, err := record.FromJSON(`[1]`)
	assert.Error(t, err)
}
