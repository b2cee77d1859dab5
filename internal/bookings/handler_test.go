package bookings

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/jambidev/barokah/internal/validation"
)

func newTestHandler(t *testing.T, repo *fakeRepo) *Handler {
	t.Helper()
	svc := NewService(repo, jakartaLocation(t))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(svc, validation.New(), log)
}

type adminListResponse struct {
	Items  []json.RawMessage `json:"items"`
	Limit  int64             `json:"limit"`
	Offset int64             `json:"offset"`
	Total  int64             `json:"total"`
}

func TestAdminListPaginates(t *testing.T) {
	loc := jakartaLocation(t)
	repo := newFakeRepo()
	svc := NewService(repo, loc)
	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), validCreateRequest(loc)); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	h := newTestHandler(t, repo)

	req := httptest.NewRequest("GET", "/api/admin/bookings?limit=2&offset=4", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp adminListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 5 {
		t.Fatalf("total = %d, want 5", resp.Total)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("last page size = %d, want 1", len(resp.Items))
	}
	if resp.Limit != 2 || resp.Offset != 4 {
		t.Fatalf("limit/offset echoed as %d/%d, want 2/4", resp.Limit, resp.Offset)
	}
}

func TestAdminListFiltersByQueryAndStatus(t *testing.T) {
	loc := jakartaLocation(t)
	repo := newFakeRepo()
	svc := NewService(repo, loc)
	booking, err := svc.Create(context.Background(), validCreateRequest(loc))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	h := newTestHandler(t, repo)

	req := httptest.NewRequest("GET", "/api/admin/bookings?q=ahmad&status=pending", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	var resp adminListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1 for %s", resp.Total, booking.ID)
	}

	req = httptest.NewRequest("GET", "/api/admin/bookings?status=completed", nil)
	rec = httptest.NewRecorder()
	h.AdminList(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 0 {
		t.Fatalf("total = %d, want 0 for completed filter", resp.Total)
	}
}

func TestAdminListRejectsBadPagination(t *testing.T) {
	h := newTestHandler(t, newFakeRepo())

	req := httptest.NewRequest("GET", "/api/admin/bookings?limit=abc", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
