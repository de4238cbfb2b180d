package species

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	speciesapi "github.com/rozennrd/dave-backend/internal/species"
)

type fakeLookup struct {
	lastPage int
	lastID   int
	err      error
}

func (f *fakeLookup) List(_ context.Context, page int) ([]speciesapi.Ref, error) {
	f.lastPage = page
	if f.err != nil {
		return nil, f.err
	}
	return []speciesapi.Ref{{ID: 1, CommonName: "European Silver Fir"}}, nil
}

func (f *fakeLookup) Details(_ context.Context, id int) (speciesapi.Details, error) {
	f.lastID = id
	if f.err != nil {
		return speciesapi.Details{}, f.err
	}
	return speciesapi.Details{ID: id, CommonName: "European Silver Fir"}, nil
}

func newTestHandler() (*Handler, *fakeLookup) {
	lu := &fakeLookup{}
	return &Handler{Log: log.New(io.Discard, "", 0), Species: lu}, lu
}

func TestList(t *testing.T) {
	h, lu := newTestHandler()
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/species?page=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, lu.lastPage)
	assert.Contains(t, rec.Body.String(), "European Silver Fir")
}

func TestList_BadPageFallsBackToFirst(t *testing.T) {
	for _, q := range []string{"", "?page=0", "?page=abc", "?page=-2"} {
		h, lu := newTestHandler()
		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/api/species"+q, nil))
		require.Equal(t, http.StatusOK, rec.Code, q)
		assert.Equal(t, 1, lu.lastPage, q)
	}
}

func TestList_UpstreamFailure(t *testing.T) {
	h, lu := newTestHandler()
	lu.err = fmt.Errorf("perenual down")
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/species", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDetails(t *testing.T) {
	h, lu := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/species/42", nil)
	r.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.Details(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, lu.lastID)
}

func TestDetails_BadID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-1", ""} {
		h, _ := newTestHandler()
		r := httptest.NewRequest(http.MethodGet, "/api/species/"+id, nil)
		r.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.Details(rec, r)
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}
