package services

import (
	"context"
	"errors"
	"testing"
)

func validReport() PostReportRequest {
	return PostReportRequest{
		ReportedItemType: "mask",
		ReportedItemID:   "12345",
		ReporterGoogleID: "g-1",
		Reason:           "inappropriate",
		Description:      "offensive imagery",
	}
}

// Reports are accepted without any existence check on the reported item.
func TestPostReportNeverChecksItem(t *testing.T) {
	store := &fakeReportStore{}
	svc := NewReportService(store)

	req := validReport()
	req.ReportedItemID = "no-such-item-anywhere"
	if err := svc.PostReport(context.Background(), req); err != nil {
		t.Fatalf("PostReport: %v", err)
	}
	if len(store.reports) != 1 {
		t.Fatalf("reports stored = %d, want 1", len(store.reports))
	}

	r := store.reports[0]
	if r.ID == "" {
		t.Error("report id not assigned")
	}
	if r.ReportedOn.IsZero() {
		t.Error("reportedOn not set")
	}
}

func TestPostReportValidation(t *testing.T) {
	svc := NewReportService(&fakeReportStore{})

	for name, mutate := range map[string]func(*PostReportRequest){
		"missing type":     func(r *PostReportRequest) { r.ReportedItemType = "" },
		"missing item id":  func(r *PostReportRequest) { r.ReportedItemID = "" },
		"missing reporter": func(r *PostReportRequest) { r.ReporterGoogleID = "" },
		"missing reason":   func(r *PostReportRequest) { r.Reason = "" },
	} {
		t.Run(name, func(t *testing.T) {
			req := validReport()
			mutate(&req)
			if err := svc.PostReport(context.Background(), req); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}

	// Description is optional.
	req := validReport()
	req.Description = ""
	if err := svc.PostReport(context.Background(), req); err != nil {
		t.Errorf("missing description: err = %v, want nil", err)
	}
}
