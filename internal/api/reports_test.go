package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adilkhann/dayrep/internal/models"
)

func TestReportsPagedQueryDefaults(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write([]byte(`{"reports":[{"id":1,"title":"a","content":"b","date":"2024-01-15"}],"currentPage":0,"totalItems":1,"totalPages":1}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	res, err := client.ReportsPaged(context.Background(), 7, 0, 5, "", 0, "", "")
	if err != nil {
		t.Fatalf("ReportsPaged() error: %v", err)
	}

	want := map[string]string{
		"userId":  "7",
		"page":    "0",
		"size":    "5",
		"sortBy":  "date",
		"sortDir": "desc",
	}
	for key, wantValue := range want {
		if gotQuery[key] != wantValue {
			t.Errorf("query[%s] = %q, want %q", key, gotQuery[key], wantValue)
		}
	}
	if _, ok := gotQuery["date"]; ok {
		t.Error("date param sent despite empty filter")
	}
	if _, ok := gotQuery["tagId"]; ok {
		t.Error("tagId param sent despite no tag filter")
	}

	if len(res.Reports) != 1 || res.TotalItems != 1 {
		t.Errorf("page = %+v, want one report", res)
	}
}

func TestReportsPagedFilters(t *testing.T) {
	var gotDate, gotTag string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		gotTag = r.URL.Query().Get("tagId")
		w.Write([]byte(`{"reports":[],"currentPage":0,"totalItems":0,"totalPages":0}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	if _, err := client.ReportsPaged(context.Background(), 7, 0, 5, "2024-01-15", 3, "", ""); err != nil {
		t.Fatalf("ReportsPaged() error: %v", err)
	}
	if gotDate != "2024-01-15" {
		t.Errorf("date = %q, want 2024-01-15", gotDate)
	}
	if gotTag != "3" {
		t.Errorf("tagId = %q, want 3", gotTag)
	}
}

func TestReportsPagedDegradesToEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Unreachable server

	client := newTestClient(srv.URL, "t1")
	res, err := client.ReportsPaged(context.Background(), 7, 0, 5, "", 0, "", "")
	if err != nil {
		t.Fatalf("ReportsPaged() error = %v, want graceful empty page", err)
	}
	if res.Reports == nil || len(res.Reports) != 0 {
		t.Errorf("Reports = %v, want empty slice", res.Reports)
	}
	if res.TotalItems != 0 || res.TotalPages != 0 {
		t.Errorf("page = %+v, want zeroed totals", res)
	}
}

func TestReportsPagedDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	res, err := client.ReportsPaged(context.Background(), 7, 2, 5, "", 0, "", "")
	if err != nil {
		t.Fatalf("ReportsPaged() error = %v, want graceful empty page", err)
	}
	if len(res.Reports) != 0 {
		t.Errorf("Reports = %v, want empty", res.Reports)
	}
}

func TestSearchReportsPagedPropagatesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"search index unavailable"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	_, err := client.SearchReportsPaged(context.Background(), 7, "importer", 0, 5)
	if err == nil {
		t.Fatal("SearchReportsPaged() succeeded, want error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
}

func TestSearchReportsPagedQuery(t *testing.T) {
	var gotTerm string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reports/search/paged" {
			t.Errorf("path = %s, want /reports/search/paged", r.URL.Path)
		}
		gotTerm = r.URL.Query().Get("searchTerm")
		w.Write([]byte(`{"reports":[],"currentPage":0,"totalItems":0,"totalPages":0}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	res, err := client.SearchReportsPaged(context.Background(), 7, "login flow", 0, 5)
	if err != nil {
		t.Fatalf("SearchReportsPaged() error: %v", err)
	}
	if gotTerm != "login flow" {
		t.Errorf("searchTerm = %q, want %q", gotTerm, "login flow")
	}
	if res.Reports == nil {
		t.Error("Reports is nil, want empty slice")
	}
}

func TestCreateReportValidationSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	_, err := client.CreateReport(context.Background(), models.Report{Title: "no content"})
	if err == nil {
		t.Fatal("CreateReport() succeeded, want ValidationError")
	}
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if requests != 0 {
		t.Errorf("server saw %d requests, want 0", requests)
	}
}

func TestCreateReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/reports" {
			t.Errorf("request = %s %s, want POST /reports", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"id":12,"title":"Shipped the importer","content":"done","date":"2024-01-15"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	created, err := client.CreateReport(context.Background(), models.Report{
		Title:   "Shipped the importer",
		Content: "done",
		Date:    "2024-01-15",
	})
	if err != nil {
		t.Fatalf("CreateReport() error: %v", err)
	}
	if created.ID != 12 {
		t.Errorf("ID = %d, want 12", created.ID)
	}
}

func TestDeleteReport(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	if err := client.DeleteReport(context.Background(), 12); err != nil {
		t.Fatalf("DeleteReport() error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/reports/12" {
		t.Errorf("request = %s %s, want DELETE /reports/12", gotMethod, gotPath)
	}
}

func TestCountReports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reports/count" {
			t.Errorf("path = %s, want /reports/count", r.URL.Path)
		}
		w.Write([]byte(`42`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "t1")
	count, err := client.CountReports(context.Background(), 7)
	if err != nil {
		t.Fatalf("CountReports() error: %v", err)
	}
	if count != 42 {
		t.Errorf("count = %d, want 42", count)
	}
}
