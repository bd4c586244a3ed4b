package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// DataReader reads the raw appointment table from CSV or Excel files.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	log      *logrus.Logger
}

// NewDataReader creates a reader for the given file, picking the format from
// the extension. Anything that is not .csv is treated as an Excel workbook.
func NewDataReader(filePath string, log *logrus.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, log: log}
}

// ReadRecords reads every row of the source table as raw strings, header
// row first.
func (r *DataReader) ReadRecords() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVRecords()
	case "xlsx":
		return r.readExcelRecords()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelRecords reads Sheet1 of an Excel workbook.
func (r *DataReader) readExcelRecords() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	readStart := time.Now()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	r.log.WithFields(logrus.Fields{
		"file":    r.filePath,
		"rows":    len(rows),
		"read_ms": float64(time.Since(readStart).Nanoseconds()) / 1e6,
	}).Info("Excel source read")

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}
	return rows, nil
}

// readCSVRecords reads a comma-separated source file.
func (r *DataReader) readCSVRecords() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	readStart := time.Now()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.log.WithFields(logrus.Fields{
		"file":    r.filePath,
		"rows":    len(rows),
		"read_ms": float64(time.Since(readStart).Nanoseconds()) / 1e6,
	}).Info("CSV source read")

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}
	return rows, nil
}
