package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LastWeekNextDay/CamMask-host/internal/services"
)

// Reports succeed regardless of whether the reported item exists.
func TestPostReportHandlerNoExistenceCheck(t *testing.T) {
	store := &memReportStore{}
	h := NewReportHandler(services.NewReportService(store))

	body := `{"reportedItemType":"mask","reportedItemId":"999999","reporterGoogleId":"g-1","reason":"spam"}`
	req := httptest.NewRequest(http.MethodPost, "/postReport", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.PostReport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if len(store.reports) != 1 {
		t.Errorf("reports stored = %d, want 1", len(store.reports))
	}
}

func TestPostReportHandlerValidation(t *testing.T) {
	h := NewReportHandler(services.NewReportService(&memReportStore{}))

	body := `{"reportedItemType":"mask","reportedItemId":"1"}`
	req := httptest.NewRequest(http.MethodPost, "/postReport", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.PostReport(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
