package render

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/kreyling/cragg/internal/dashboard"
)

const (
	sheetMatrix = "Matrix"
	sheetBuilds = "Builds"
)

// Sheet saves the dashboard as a spreadsheet with the matrix and the build
// summary on separate sheets.
func Sheet(path string, d *dashboard.Dashboard) error {
	sheet := excelize.NewFile()
	defer sheet.Close()

	idx, err := sheet.NewSheet(sheetMatrix)
	if err != nil {
		return errors.Wrap(err, "unable to create matrix sheet")
	}
	sheet.SetActiveSheet(idx)
	if err := populateMatrix(sheet, d); err != nil {
		return err
	}

	if _, err := sheet.NewSheet(sheetBuilds); err != nil {
		return errors.Wrap(err, "unable to create builds sheet")
	}
	if err := populateBuilds(sheet, d); err != nil {
		return err
	}

	if err := sheet.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "unable to remove default sheet")
	}
	if err := sheet.SaveAs(path); err != nil {
		return errors.Wrapf(err, "unable to save %s", path)
	}
	return nil
}

func populateMatrix(sheet *excelize.File, d *dashboard.Dashboard) error {
	header := []interface{}{"Feature"}
	for _, col := range d.Columns {
		header = append(header, col.BuildNumber())
	}
	if err := sheet.SetSheetRow(sheetMatrix, "A1", &header); err != nil {
		return errors.Wrap(err, "unable to write matrix header")
	}

	for i, row := range d.Rows {
		values := []interface{}{row.Feature.Name}
		for _, cell := range row.Cells {
			values = append(values, cell.Line.Status)
		}
		if err := sheet.SetSheetRow(sheetMatrix, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return errors.Wrapf(err, "unable to write row %s", row.Feature.Name)
		}
	}
	return nil
}

func populateBuilds(sheet *excelize.File, d *dashboard.Dashboard) error {
	header := []interface{}{"Build", "Started by", "Duration (s)", "Failed features", "Longest failure run", "System failure"}
	if err := sheet.SetSheetRow(sheetBuilds, "A1", &header); err != nil {
		return errors.Wrap(err, "unable to write builds header")
	}
	for i, col := range d.Columns {
		values := []interface{}{
			col.BuildNumber(),
			col.Build.StartedBy(),
			col.Build.Duration.Seconds(),
			col.FailedFeatures,
			col.LongestFailureRun,
			col.SystemFailure,
		}
		if err := sheet.SetSheetRow(sheetBuilds, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return errors.Wrapf(err, "unable to write build %s", col.BuildNumber())
		}
	}
	return nil
}
