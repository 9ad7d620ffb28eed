package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"stationhub/internal/domain"
	"stationhub/internal/service"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var readingsExportHeader = []string{
	"Reading ID",
	"Device ID",
	"Parameter",
	"Value",
	"Unit",
	"Timestamp",
}

// ExportHandler streams sensor readings as an .xlsx workbook. It reuses the
// search query parameters (deviceId, parameter, from, to).
type ExportHandler struct {
	sensorData service.SensorDataService
	logger     *zap.Logger
}

func NewExportHandler(sensorData service.SensorDataService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{sensorData: sensorData, logger: logger}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	req, err := searchRequestFromQuery(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	readings, err := h.sensorData.Search(ctx, UserFromContext(ctx), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	workbook, err := generateReadingsWorkbook(readings)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("sensor-data-%s.xlsx", req.DeviceID)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = w.Write(workbook)
}

func generateReadingsWorkbook(readings []*domain.SensorReading) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Sensor Data"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range readingsExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, reading := range readings {
		row := rowIdx + 2
		unit := ""
		if reading.Unit.Valid {
			unit = reading.Unit.String
		}
		values := []any{
			reading.ReadingID,
			reading.DeviceID,
			reading.Parameter,
			reading.Value,
			unit,
			reading.Timestamp.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
