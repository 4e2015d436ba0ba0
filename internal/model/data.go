package model

// ReportPeriod holds report-level metadata.
type ReportPeriod struct {
	// ReportDate is substituted into the document header (YYYY-MM-DD).
	// When empty, the generation date is used.
	ReportDate string `json:"report_date,omitempty"`
}

// ReportData is the decoded JSON input of the generator.
// Every key is optional; absent keys leave their section untouched.
type ReportData struct {
	ReportPeriod ReportPeriod `json:"report_period"`

	Projects        []Record `json:"section1_projects,omitempty"`
	ProjectsSummary string   `json:"section1_summary,omitempty"`
	Industry        []Record `json:"section2_industry,omitempty"`
	Manufacturers   []Record `json:"section3_manufacturers,omitempty"`
	Rental          []Record `json:"section4_rental,omitempty"`
	Synthesis       []string `json:"section5_synthesis,omitempty"`
	Watchlist       []Record `json:"section6_watchlist,omitempty"`
}

// Records returns the tabular data stored under the given JSON key.
// Unknown keys and list sections return nil.
func (d *ReportData) Records(key string) []Record {
	if d == nil {
		return nil
	}
	switch key {
	case "section1_projects":
		return d.Projects
	case "section2_industry":
		return d.Industry
	case "section3_manufacturers":
		return d.Manufacturers
	case "section4_rental":
		return d.Rental
	case "section6_watchlist":
		return d.Watchlist
	default:
		return nil
	}
}

// Points returns the list data stored under the given JSON key.
func (d *ReportData) Points(key string) []string {
	if d == nil || key != "section5_synthesis" {
		return nil
	}
	return d.Synthesis
}

// Summary returns the summary callout text supplied for a section.
// Only the projects section carries a summary.
func (d *ReportData) Summary(sectionID string) string {
	if d == nil || sectionID != SectionProjects {
		return ""
	}
	return d.ProjectsSummary
}
