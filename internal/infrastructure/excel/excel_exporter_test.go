package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/k-shtanenko/city-weather/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testRecords() []entities.WeatherRecord {
	updated := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	return []entities.WeatherRecord{
		{ID: 1, City: "London", Temperature: 18.34, Humidity: 72, Pressure: 1008.5, Description: "Light rain", WindSpeed: 12.8, Visibility: 8.5, UpdatedAt: updated},
		{ID: 2, City: "Tokyo", Temperature: 28.75, Humidity: 58, Pressure: 1015.8, Description: "Sunny", WindSpeed: 8.4, Visibility: 15, UpdatedAt: updated},
		{ID: 3, City: "Oslo", Temperature: -0.05, Humidity: 80, Pressure: 1001, Description: "Snow", WindSpeed: 3, Visibility: 2, UpdatedAt: updated},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWorkbookExporter_ExportRecords(t *testing.T) {
	exporter := NewWorkbookExporter(nil)

	data, err := exporter.ExportRecords(context.Background(), testRecords())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{DataSheet, StatisticsSheet}, f.GetSheetList())

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, dataHeaders, rows[0])
	assert.Equal(t, []string{"1", "London", "18.3", "72", "1008.5", "Light rain", "12.8", "8.5", "2024-05-01 12:30:00"}, rows[1])
	assert.Equal(t, "28.8", rows[2][2])
	assert.Equal(t, "-0.1", rows[3][2])

	stats, err := f.GetRows(StatisticsSheet)
	require.NoError(t, err)
	require.NotEmpty(t, stats)
	assert.Equal(t, []string{"Total Records", "3"}, stats[0])
	assert.Equal(t, []string{"Coldest City", "Oslo (-0.1 °C)"}, stats[2])
	assert.Equal(t, []string{"Warmest City", "Tokyo (28.8 °C)"}, stats[3])
}

func TestWorkbookExporter_Empty(t *testing.T) {
	exporter := NewWorkbookExporter(nil)

	data, err := exporter.ExportRecords(context.Background(), nil)
	require.NoError(t, err)

	f := openWorkbook(t, data)
	assert.Equal(t, []string{DataSheet}, f.GetSheetList())

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWorkbookExporter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWorkbookExporter(nil).ExportRecords(ctx, testRecords())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkbookExporter_ContentType(t *testing.T) {
	assert.Equal(t, ContentType, NewWorkbookExporter(nil).ContentType())
}
