package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prefscale/internal/logging"
)

type fakeMessageStore struct {
	created  []*Message
	failWith error
}

func (f *fakeMessageStore) Create(ctx context.Context, m *Message) error {
	if f.failWith != nil {
		return f.failWith
	}
	copy := *m
	f.created = append(f.created, &copy)
	return nil
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestContactSubmit(t *testing.T) {
	store := &fakeMessageStore{}
	h := &Handler{Store: store, Logger: logging.New()}

	rec, resp := post(t, h, `{"name":"Ann","company":"Acme","email":"ann@x.com","message":"Hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp["message"] != "Message sent successfully" {
		t.Fatalf("got %q", resp["message"])
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one stored message, got %d", len(store.created))
	}
	if store.created[0].Body != "Hello" {
		t.Fatalf("message body: got %q", store.created[0].Body)
	}
}

func TestContactMissingFields(t *testing.T) {
	h := &Handler{Store: &fakeMessageStore{}, Logger: logging.New()}

	cases := []string{
		`{"email":"a@x.com","message":"hi"}`,
		`{"name":"Ann","message":"hi"}`,
		`{"name":"Ann","email":"a@x.com"}`,
	}
	for _, body := range cases {
		rec, resp := post(t, h, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
		if resp["message"] != "Required fields missing" {
			t.Fatalf("body %s: got %q", body, resp["message"])
		}
	}
}

func TestContactCompanyOptional(t *testing.T) {
	store := &fakeMessageStore{}
	h := &Handler{Store: store, Logger: logging.New()}

	rec, _ := post(t, h, `{"name":"Ann","email":"ann@x.com","message":"Hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestContactStoreFailure(t *testing.T) {
	store := &fakeMessageStore{failWith: context.DeadlineExceeded}
	h := &Handler{Store: store, Logger: logging.New()}

	rec, resp := post(t, h, `{"name":"Ann","email":"ann@x.com","message":"Hello"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp["message"] != "Failed to send message" {
		t.Fatalf("got %q", resp["message"])
	}
}
