package http

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/tricountyrescue/rescue-dashboard/internal/dashboard"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportChart streams one chart snapshot as an XLSX workbook, one row
// per slice plus a totals row.
func (a *API) handleExportChart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("chart")
	snap, ok := a.store.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown chart: " + name})
		return
	}

	book, err := buildWorkbook(snap)
	if err != nil {
		a.logger.Error("chart export failed", "chart", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "export failed"})
		return
	}
	defer book.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	if err := book.Write(w); err != nil {
		// Headers are already sent; all we can do is log the broken stream.
		a.logger.Warn("chart export write failed", "chart", name, "error", err)
	}
}

func buildWorkbook(snap dashboard.Snapshot) (*excelize.File, error) {
	book := excelize.NewFile()
	const sheet = "Totals"

	if err := book.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := book.SetSheetRow(sheet, "A1", &[]any{"Category", "Pounds", "Percent"}); err != nil {
		return nil, err
	}

	rowIdx := 2
	for _, s := range snap.Chart.Slices {
		cell := fmt.Sprintf("A%d", rowIdx)
		if err := book.SetSheetRow(sheet, cell, &[]any{s.Label, s.Pounds, s.Percent}); err != nil {
			return nil, err
		}
		rowIdx++
	}

	cell := fmt.Sprintf("A%d", rowIdx+1)
	if err := book.SetSheetRow(sheet, cell, &[]any{"TOTAL", snap.Chart.TotalPounds}); err != nil {
		return nil, err
	}

	footer := fmt.Sprintf("A%d", rowIdx+2)
	if err := book.SetSheetRow(sheet, footer, &[]any{
		"Source: " + snap.SourceFile, "Refreshed: " + snap.RefreshedAt.Format("2006-01-02 15:04 UTC"),
	}); err != nil {
		return nil, err
	}

	return book, nil
}
