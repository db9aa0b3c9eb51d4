package errs_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/octofit/octofit-web/pkg/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE(t *testing.T) {
	const inner errs.Op = "tracker.GetCollection"
	const outer errs.Op = "viewService.Mount"

	err := errs.E(outer, errs.E(inner, errs.IO, fmt.Errorf("connection refused")))

	assert.True(t, errs.KindIs(errs.IO, err))
	assert.False(t, errs.KindIs(errs.NotExist, err))
	assert.Equal(t, []string{string(outer), string(inner)}, errs.OpStack(err))
	assert.Equal(t, "viewService.Mount: io_error: tracker.GetCollection: io_error: connection refused", err.Error())
}

func TestKindIs_NotAnError(t *testing.T) {
	assert.False(t, errs.KindIs(errs.IO, fmt.Errorf("plain")))
}

func TestHTTPErrorResponse(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
	}{
		{
			name:    "not exist",
			err:     errs.E(errs.Op("views.Lookup"), errs.NotExist, errs.Parameter("entity"), "unknown entity: foo"),
			status:  http.StatusNotFound,
			kind:    "not_exist",
			message: "views.Lookup: parameter entity: not_exist: unknown entity: foo",
		},
		{
			name:    "io is hidden",
			err:     errs.E(errs.Op("tracker.GetCollection"), errs.IO, fmt.Errorf("dial tcp: refused")),
			status:  http.StatusBadGateway,
			kind:    "io_error",
			message: http.StatusText(http.StatusBadGateway),
		},
		{
			name:    "plain error",
			err:     fmt.Errorf("boom"),
			status:  http.StatusInternalServerError,
			kind:    "internal_error",
			message: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			errs.HTTPErrorResponse(rr, zerolog.Nop(), tc.err)

			assert.Equal(t, tc.status, rr.Code)

			got := struct {
				Error struct {
					Kind    string `json:"kind"`
					Message string `json:"message"`
				} `json:"error"`
			}{}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tc.kind, got.Error.Kind)
			assert.Equal(t, tc.message, got.Error.Message)
		})
	}
}
