package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"vitalens/domain/risk"
)

// WriteWorkbook writes the report to an xlsx file: a summary sheet plus one
// sheet per assessment.
func WriteWorkbook(r *risk.ComprehensiveRiskReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"User", r.UserID.String()},
		{"Generated", r.GeneratedAt.Time().Format("2006-01-02 15:04")},
		{"Overall risk score", r.OverallRiskScore},
		{},
		{"Top risks", "Score", "Level"},
	}
	for _, tr := range r.TopRisks {
		rows = append(rows, []interface{}{string(tr.Disease), tr.RiskScore, string(tr.RiskLevel)})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Insights"})
	for _, insight := range r.ActionableInsights {
		rows = append(rows, []interface{}{insight})
	}
	if err := writeRows(f, summary, rows); err != nil {
		return err
	}

	for _, a := range r.Assessments {
		sheet := string(a.Disease)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		rows := [][]interface{}{
			{"Score", a.RiskScore},
			{"Level", string(a.RiskLevel)},
			{"Probability", a.Probability},
			{"Timeframe", a.Timeframe},
			{"Next screening", a.NextScreening.Time().Format("2006-01-02")},
			{},
			{"Recommendations"},
		}
		for _, rec := range a.Recommendations {
			rows = append(rows, []interface{}{rec})
		}
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
