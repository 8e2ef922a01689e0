package httpx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osa-portal/osa-portal/internal/shared"
)

func TestEnvelopeShapes(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, http.StatusOK, map[string]string{"k": "v"})
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"success":true,"data":{"k":"v"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	OKMessage(rec, http.StatusCreated, "Created", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"success":true,"message":"Created"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	OKList(rec, http.StatusOK, 0, []string{})
	require.JSONEq(t, `{"success":true,"count":0,"data":[]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Fail(rec, http.StatusBadRequest, "bad input")
	require.JSONEq(t, `{"success":false,"message":"bad input"}`, rec.Body.String())
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{shared.ErrNotFound, http.StatusNotFound, "not found"},
		{shared.ErrValidation, http.StatusBadRequest, "validation failed"},
		{shared.ErrSelfDelete, http.StatusBadRequest, "cannot delete your own account"},
		{shared.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{shared.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{shared.ErrForbidden, http.StatusForbidden, "forbidden"},
		{shared.ErrDeleteAdmin, http.StatusForbidden, "cannot delete admin users"},
		{shared.ErrDuplicateEmail, http.StatusConflict, "email already registered"},
		{fmt.Errorf("pg: connection refused"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		require.Equal(t, tc.status, rec.Code, tc.err.Error())

		want := fmt.Sprintf(`{"success":false,"message":%q}`, tc.message)
		require.JSONEq(t, want, rec.Body.String())
	}
}

func TestRespondErrorWrapped(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("%w: expiration date must be after establishment date", shared.ErrValidation))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
