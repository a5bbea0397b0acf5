package excel

import (
	"context"
	"fmt"
	"time"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
	"github.com/k-shtanenko/city-weather/internal/pkg/logger"
	"github.com/k-shtanenko/city-weather/internal/validation"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	DataSheet       = "Weather Data"
	StatisticsSheet = "Statistics"
)

var dataHeaders = []string{
	"ID", "City", "Temperature (°C)", "Humidity (%)", "Pressure (hPa)",
	"Description", "Wind Speed (km/h)", "Visibility (km)", "Updated At",
}

type WorkbookExporter struct {
	logger logger.Logger
}

func NewWorkbookExporter(log logger.Logger) *WorkbookExporter {
	if log == nil {
		log = logger.NewNop()
	}
	return &WorkbookExporter{
		logger: log.WithField("component", "excel_exporter"),
	}
}

func (e *WorkbookExporter) ContentType() string {
	return ContentType
}

// ExportRecords writes one row per record to the data sheet, in the order
// given, plus a summary sheet when there is anything to summarize.
func (e *WorkbookExporter) ExportRecords(ctx context.Context, records []entities.WeatherRecord) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       "City Weather",
		Subject:     "Current weather by city",
		Creator:     "Weather API Server",
		Description: fmt.Sprintf("%d weather records", len(records)),
		Created:     time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	if err := e.createDataSheet(f, records); err != nil {
		return nil, fmt.Errorf("failed to create data sheet: %w", err)
	}

	if err := e.createStatisticsSheet(f, records); err != nil {
		return nil, fmt.Errorf("failed to create statistics sheet: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(DataSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	e.logger.Infof("Exported %d weather records", len(records))
	return buf.Bytes(), nil
}

func (e *WorkbookExporter) createDataSheet(f *excelize.File, records []entities.WeatherRecord) error {
	if _, err := f.NewSheet(DataSheet); err != nil {
		return err
	}

	for i, header := range dataHeaders {
		if err := f.SetCellValue(DataSheet, e.cell(i+1, 1), header); err != nil {
			return err
		}
	}

	for rowIdx, r := range records {
		row := rowIdx + 2
		values := []interface{}{
			r.ID,
			r.City,
			validation.RoundToOneDecimal(r.Temperature),
			r.Humidity,
			r.Pressure,
			r.Description,
			r.WindSpeed,
			r.Visibility,
			r.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for colIdx, v := range values {
			if err := f.SetCellValue(DataSheet, e.cell(colIdx+1, row), v); err != nil {
				return err
			}
		}
	}

	if err := f.SetPanes(DataSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	for i := 1; i <= len(dataHeaders); i++ {
		width := 15.0
		switch i {
		case 1:
			width = 8
		case 2, 6:
			width = 20
		case 9:
			width = 20
		}
		if err := f.SetColWidth(DataSheet, e.colLetter(i), e.colLetter(i), width); err != nil {
			return err
		}
	}

	return nil
}

func (e *WorkbookExporter) createStatisticsSheet(f *excelize.File, records []entities.WeatherRecord) error {
	if len(records) == 0 {
		return nil
	}

	if _, err := f.NewSheet(StatisticsSheet); err != nil {
		return err
	}

	var totalTemp, totalHumidity, totalPressure, totalWindSpeed float64
	minTemp, maxTemp := records[0].Temperature, records[0].Temperature
	minCity, maxCity := records[0].City, records[0].City

	for _, r := range records {
		totalTemp += r.Temperature
		totalHumidity += r.Humidity
		totalPressure += r.Pressure
		totalWindSpeed += r.WindSpeed

		if r.Temperature < minTemp {
			minTemp, minCity = r.Temperature, r.City
		}
		if r.Temperature > maxTemp {
			maxTemp, maxCity = r.Temperature, r.City
		}
	}

	n := float64(len(records))
	stats := []struct {
		label string
		value interface{}
	}{
		{"Total Records", len(records)},
		{"Average Temperature", fmt.Sprintf("%.1f °C", totalTemp/n)},
		{"Coldest City", fmt.Sprintf("%s (%.1f °C)", minCity, minTemp)},
		{"Warmest City", fmt.Sprintf("%s (%.1f °C)", maxCity, maxTemp)},
		{"Average Humidity", fmt.Sprintf("%.1f %%", totalHumidity/n)},
		{"Average Pressure", fmt.Sprintf("%.1f hPa", totalPressure/n)},
		{"Average Wind Speed", fmt.Sprintf("%.1f km/h", totalWindSpeed/n)},
	}

	for i, stat := range stats {
		row := i + 1
		if err := f.SetCellValue(StatisticsSheet, e.cell(1, row), stat.label); err != nil {
			return err
		}
		if err := f.SetCellValue(StatisticsSheet, e.cell(2, row), stat.value); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(StatisticsSheet, "A", "A", 25); err != nil {
		return err
	}
	return f.SetColWidth(StatisticsSheet, "B", "B", 28)
}

func (e *WorkbookExporter) cell(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func (e *WorkbookExporter) colLetter(col int) string {
	letter, _ := excelize.ColumnNumberToName(col)
	return letter
}
