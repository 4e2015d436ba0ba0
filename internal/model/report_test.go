package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewReport(t *testing.T) {
	t.Parallel()

	t.Run("nil data is replaced by empty data", func(t *testing.T) {
		t.Parallel()
		r := NewReport(nil, []byte("<html></html>"))
		if r.Data == nil {
			t.Fatal("expected non-nil data")
		}
		if r.HasPopulated() {
			t.Error("new report must not have populated sections")
		}
		if r.GeneratedAt.IsZero() {
			t.Error("expected GeneratedAt to be set")
		}
	})

	t.Run("mark helpers deduplicate", func(t *testing.T) {
		t.Parallel()
		r := NewReport(&ReportData{}, nil)
		r.MarkPopulated("sec1")
		r.MarkPopulated("sec1")
		r.MarkSkipped("sec2")
		r.MarkSkipped("sec2")
		if len(r.Populated) != 1 || len(r.Skipped) != 1 {
			t.Errorf("expected one entry each, got %v / %v", r.Populated, r.Skipped)
		}
		if !r.IsPopulated("sec1") || r.IsPopulated("sec2") {
			t.Error("IsPopulated returned unexpected result")
		}
	})
}

func TestReportJSON(t *testing.T) {
	t.Parallel()

	r := NewReport(&ReportData{}, []byte("<html>secret body</html>"))
	r.MarkPopulated("sec1")
	r.AddWarning("section sec9 not found")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(data)

	if strings.Contains(out, "secret body") {
		t.Error("document content must not be serialized")
	}
	if !strings.Contains(out, `"populated":["sec1"]`) {
		t.Errorf("expected populated sections in output: %s", out)
	}
	if !strings.Contains(out, "sec9") {
		t.Errorf("expected warnings in output: %s", out)
	}
}

func TestReportDataDecode(t *testing.T) {
	t.Parallel()

	input := `{
	  "report_period": {"report_date": "2025-12-02"},
	  "section1_projects": [{"date": "12月1日", "region": "美国", "details": "d", "impact": "i"}],
	  "section1_summary": "本周项目集中",
	  "section5_synthesis": ["趋势：需求上升"],
	  "section6_watchlist": [{"focus": "钢价", "timing": "下周", "impact": "高"}]
	}`

	var d ReportData
	if err := json.Unmarshal([]byte(input), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.ReportPeriod.ReportDate != "2025-12-02" {
		t.Errorf("unexpected report date %q", d.ReportPeriod.ReportDate)
	}
	if got := d.Records("section1_projects"); len(got) != 1 || got[0].Get("region") != "美国" {
		t.Errorf("unexpected projects %v", got)
	}
	if d.ProjectsSummary != "本周项目集中" {
		t.Errorf("unexpected summary %q", d.ProjectsSummary)
	}
	if got := d.Points("section5_synthesis"); len(got) != 1 {
		t.Errorf("unexpected synthesis %v", got)
	}
	if got := d.Records("section6_watchlist"); len(got) != 1 {
		t.Errorf("unexpected watchlist %v", got)
	}
	if d.Records("section2_industry") != nil {
		t.Error("absent key must return nil")
	}
	if d.Records("unknown") != nil || d.Points("unknown") != nil {
		t.Error("unknown key must return nil")
	}

	var nilData *ReportData
	if nilData.Records("section1_projects") != nil || nilData.Points("section5_synthesis") != nil {
		t.Error("nil data must return nil")
	}
}
