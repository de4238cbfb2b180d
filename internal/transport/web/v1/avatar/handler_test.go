package avatar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rozennrd/dave-backend/internal/domain"
	"github.com/rozennrd/dave-backend/internal/transport/web/mw"
)

type storedAvatar struct {
	data        []byte
	contentType string
}

type fakeStorage struct {
	byUser map[domain.UserID]storedAvatar
	putErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{byUser: make(map[domain.UserID]storedAvatar)}
}

func (f *fakeStorage) PutAvatar(_ context.Context, userID domain.UserID, r io.Reader, _ int64, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.byUser[userID] = storedAvatar{data: data, contentType: contentType}
	return "http://s3.test/avatars/" + userID.String() + "/avatar.jpg", nil
}

func (f *fakeStorage) GetAvatar(_ context.Context, userID domain.UserID) (io.ReadCloser, int64, string, error) {
	a, ok := f.byUser[userID]
	if !ok {
		return nil, 0, "", fmt.Errorf("no such object")
	}
	return io.NopCloser(bytes.NewReader(a.data)), int64(len(a.data)), a.contentType, nil
}

func (f *fakeStorage) DeleteAvatar(_ context.Context, userID domain.UserID) error {
	delete(f.byUser, userID)
	return nil
}

func (f *fakeStorage) Ping(context.Context) error { return nil }

func newTestHandler() (*Handler, *fakeStorage) {
	st := newFakeStorage()
	return &Handler{Log: log.New(io.Discard, "", 0), Storage: st}, st
}

var alice = domain.User{ID: uuid.New(), Login: "alice@example.com"}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadGetDelete_RoundTrip(t *testing.T) {
	h, st := newTestHandler()
	payload := []byte("fake-jpeg-bytes")

	body, ctype := multipartBody(t, "file", "avatar.jpg", payload)
	r := httptest.NewRequest(http.MethodPost, "/api/avatar", body)
	r.Header.Set("Content-Type", ctype)
	r = r.WithContext(mw.WithUser(r.Context(), alice))
	rec := httptest.NewRecorder()
	h.Upload(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), alice.ID.String())
	require.Contains(t, st.byUser, alice.ID)
	assert.Equal(t, payload, st.byUser[alice.ID].data)

	// скачивание отдаёт байты как есть
	r = httptest.NewRequest(http.MethodGet, "/api/avatar", nil)
	r = r.WithContext(mw.WithUser(r.Context(), alice))
	rec = httptest.NewRecorder()
	h.Get(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())

	// удаление
	r = httptest.NewRequest(http.MethodDelete, "/api/avatar", nil)
	r = r.WithContext(mw.WithUser(r.Context(), alice))
	rec = httptest.NewRecorder()
	h.Delete(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, st.byUser, alice.ID)

	// после удаления — 404
	r = httptest.NewRequest(http.MethodGet, "/api/avatar", nil)
	r = r.WithContext(mw.WithUser(r.Context(), alice))
	rec = httptest.NewRecorder()
	h.Get(rec, r)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpload_MissingFileField(t *testing.T) {
	h, _ := newTestHandler()
	body, ctype := multipartBody(t, "picture", "avatar.jpg", []byte("x"))
	r := httptest.NewRequest(http.MethodPost, "/api/avatar", body)
	r.Header.Set("Content-Type", ctype)
	r = r.WithContext(mw.WithUser(r.Context(), alice))
	rec := httptest.NewRecorder()
	h.Upload(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_NotMultipart(t *testing.T) {
	h, _ := newTestHandler()
	r := httptest.NewRequest(http.MethodPost, "/api/avatar", bytes.NewReader([]byte("raw")))
	r = r.WithContext(mw.WithUser(r.Context(), alice))
	rec := httptest.NewRecorder()
	h.Upload(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_StorageFailure(t *testing.T) {
	h, st := newTestHandler()
	st.putErr = fmt.Errorf("s3 down")
	body, ctype := multipartBody(t, "file", "avatar.jpg", []byte("x"))
	r := httptest.NewRequest(http.MethodPost, "/api/avatar", body)
	r.Header.Set("Content-Type", ctype)
	r = r.WithContext(mw.WithUser(r.Context(), alice))
	rec := httptest.NewRecorder()
	h.Upload(rec, r)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
