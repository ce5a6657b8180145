package models

import "testing"

func TestReportValidate(t *testing.T) {
	valid := Report{
		Title:          "Wired up the login flow",
		Content:        "Finished the token exchange and the session cache",
		Date:           "2024-01-15",
		Progress:       80,
		RemainingHours: 2.5,
	}

	tests := []struct {
		name    string
		mutate  func(r *Report)
		wantErr bool
	}{
		{"valid", func(r *Report) {}, false},
		{"empty title", func(r *Report) { r.Title = "  " }, true},
		{"empty content", func(r *Report) { r.Content = "" }, true},
		{"empty date", func(r *Report) { r.Date = "" }, true},
		{"malformed date", func(r *Report) { r.Date = "15/01/2024" }, true},
		{"progress below range", func(r *Report) { r.Progress = -1 }, true},
		{"progress above range", func(r *Report) { r.Progress = 101 }, true},
		{"progress at bounds", func(r *Report) { r.Progress = 100 }, false},
		{"negative hours", func(r *Report) { r.RemainingHours = -0.5 }, true},
		{"zero hours", func(r *Report) { r.RemainingHours = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := valid
			tt.mutate(&report)
			err := report.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmptyPage(t *testing.T) {
	page := EmptyPage()
	if page.Reports == nil {
		t.Error("EmptyPage() Reports is nil, want empty slice")
	}
	if len(page.Reports) != 0 || page.TotalItems != 0 || page.TotalPages != 0 || page.CurrentPage != 0 {
		t.Errorf("EmptyPage() = %+v, want all-zero page", page)
	}
}
