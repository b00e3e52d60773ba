package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/memobot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeChat struct {
	users    []string
	messages []string
	images   [][]byte
	turns    []core.TranscriptEntry
	reply    string
	err      error
}

func (f *fakeChat) Reply(_ context.Context, userID, message string) (string, error) {
	f.users = append(f.users, userID)
	f.messages = append(f.messages, message)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeChat) DescribeImage(_ context.Context, image []byte) (string, error) {
	f.images = append(f.images, image)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeChat) History(_ context.Context, userID string) ([]core.TranscriptEntry, error) {
	f.users = append(f.users, userID)
	if f.err != nil {
		return nil, f.err
	}
	return f.turns, nil
}

func serve(t *testing.T, svc ChatService, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(context.Background(), svc, core.DefaultUserID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func imageRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRoot(t *testing.T) {
	w := serve(t, &fakeChat{}, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello World"}`, w.Body.String())
}

func TestChat(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		header     string
		svc        *fakeChat
		wantStatus int
		wantBody   string
		wantUser   string
	}{
		{
			name:       "success",
			body:       `{"message":"hello"}`,
			svc:        &fakeChat{reply: "hi there"},
			wantStatus: http.StatusOK,
			wantBody:   `{"response":"hi there"}`,
			wantUser:   core.DefaultUserID,
		},
		{
			name:       "explicit user",
			body:       `{"message":"hello"}`,
			header:     "alice",
			svc:        &fakeChat{reply: "hi alice"},
			wantStatus: http.StatusOK,
			wantBody:   `{"response":"hi alice"}`,
			wantUser:   "alice",
		},
		{
			name:       "empty message is accepted",
			body:       `{"message":""}`,
			svc:        &fakeChat{reply: "?"},
			wantStatus: http.StatusOK,
			wantBody:   `{"response":"?"}`,
			wantUser:   core.DefaultUserID,
		},
		{
			name:       "service failure",
			body:       `{"message":"hello"}`,
			svc:        &fakeChat{err: core.ErrGateway},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"detail":"Error generating bot response"}`,
			wantUser:   core.DefaultUserID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := jsonRequest(http.MethodPost, "/chat", tt.body)
			if tt.header != "" {
				req.Header.Set(userHeader, tt.header)
			}

			w := serve(t, tt.svc, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			require.Len(t, tt.svc.users, 1)
			assert.Equal(t, tt.wantUser, tt.svc.users[0])
		})
	}
}

func TestChat_MalformedBody(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":5}`, `not json`} {
		t.Run(body, func(t *testing.T) {
			svc := &fakeChat{}
			w := serve(t, svc, jsonRequest(http.MethodPost, "/chat", body))

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Empty(t, svc.messages)
		})
	}
}

func TestImage(t *testing.T) {
	svc := &fakeChat{reply: "a sunset"}
	data := []byte("fake image bytes")

	w := serve(t, svc, imageRequest(t, "file", data))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"a sunset"}`, w.Body.String())
	require.Len(t, svc.images, 1)
	assert.Equal(t, data, svc.images[0])
}

func TestImage_Failure(t *testing.T) {
	svc := &fakeChat{err: errors.New("bad image")}

	w := serve(t, svc, imageRequest(t, "file", []byte("x")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Error processing the image"}`, w.Body.String())
}

func TestImage_MissingFile(t *testing.T) {
	svc := &fakeChat{}

	w := serve(t, svc, imageRequest(t, "upload", []byte("x")))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, svc.images)
}

func TestHistory(t *testing.T) {
	svc := &fakeChat{turns: []core.TranscriptEntry{
		{ID: 1, User: "hi", Bot: "hello"},
		{ID: 2, User: "my name is Ada", Bot: "Got it, your name is Ada!"},
	}}

	w := serve(t, svc, httptest.NewRequest(http.MethodGet, "/history", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		History [][]any `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.History, 2)
	assert.Equal(t, []any{float64(1), "hi", "hello"}, body.History[0])
	assert.Equal(t, []any{float64(2), "my name is Ada", "Got it, your name is Ada!"}, body.History[1])
}

func TestHistory_Empty(t *testing.T) {
	w := serve(t, &fakeChat{}, httptest.NewRequest(http.MethodGet, "/history", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"history":[]}`, w.Body.String())
}

func TestHistory_Failure(t *testing.T) {
	w := serve(t, &fakeChat{err: core.ErrStorage}, httptest.NewRequest(http.MethodGet, "/history", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Error fetching history"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := serve(t, &fakeChat{}, req)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-42")
	w = serve(t, &fakeChat{}, req)
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
}
