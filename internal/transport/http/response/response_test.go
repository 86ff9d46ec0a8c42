package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/eventhub/internal/domain"
)

func doErr(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	Err(w, r, err)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErr_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrValidation("bad"), http.StatusBadRequest, "validation_error"},
		{domain.ErrInvalidState("event is full"), http.StatusBadRequest, "invalid_state"},
		{domain.ErrUnauthorized("nope"), http.StatusUnauthorized, "unauthorized"},
		{domain.ErrForbidden("nope"), http.StatusForbidden, "forbidden"},
		{domain.ErrNotFound("gone"), http.StatusNotFound, "not_found"},
		{domain.ErrConflict("dup"), http.StatusConflict, "conflict"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			w, body := doErr(t, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestErr_UnknownErrorIsOpaque500(t *testing.T) {
	w, body := doErr(t, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestErr_MetaPassthrough(t *testing.T) {
	_, body := doErr(t, domain.ErrValidationMeta("invalid field", map[string]string{"title": "required"}))
	assert.Equal(t, "required", body.Error.Meta["title"])
}

func TestData_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	Data(w, http.StatusCreated, map[string]string{"id": "x"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"data":{"id":"x"}}`, w.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}
