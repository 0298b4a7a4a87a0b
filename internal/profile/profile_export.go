package profile

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportPayload is a ready-to-write export body. Filename carries the date
// so repeated downloads do not clobber each other.
type ExportPayload struct {
	ContentType string
	Filename    string
	Body        []byte
}

var exportHeaders = []string{
	"ID", "Full Name", "Email", "Phone", "Role",
	"Employment Type", "Hourly Rate", "Salary", "Is Active", "Start Date", "Created At",
}

func (s *service) Export(ctx context.Context, req OperationRequest) (ExportPayload, error) {
	q, err := normalizeListQuery(req)
	if err != nil {
		return ExportPayload{}, err
	}

	// Export ignores pagination: the whole filtered set goes out.
	q.Offset = 0
	q.Limit = 0

	profiles, _, err := s.repo.List(ctx, q)
	if err != nil {
		return ExportPayload{}, err
	}

	stamp := time.Now().UTC().Format("2006-01-02")

	switch req.Format {
	case "csv", "":
		body, err := exportCSV(profiles)
		if err != nil {
			return ExportPayload{}, err
		}
		return ExportPayload{
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("profiles-%s.csv", stamp),
			Body:        body,
		}, nil

	case "xlsx":
		body, err := exportXLSX(profiles)
		if err != nil {
			return ExportPayload{}, err
		}
		return ExportPayload{
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Filename:    fmt.Sprintf("profiles-%s.xlsx", stamp),
			Body:        body,
		}, nil

	default: // json
		rows := make([]ProfileResponse, len(profiles))
		for i, p := range profiles {
			rows[i] = mapToResponse(p)
		}
		body, err := json.Marshal(rows)
		if err != nil {
			return ExportPayload{}, err
		}
		return ExportPayload{
			ContentType: "application/json",
			Filename:    fmt.Sprintf("profiles-%s.json", stamp),
			Body:        body,
		}, nil
	}
}

func exportRow(p Profile) []string {
	phone := ""
	if p.Phone != nil {
		phone = *p.Phone
	}
	employmentType := ""
	if p.EmploymentType != nil {
		employmentType = *p.EmploymentType
	}
	salary := "0"
	if p.Salary != nil {
		salary = strconv.FormatFloat(*p.Salary, 'f', 2, 64)
	}
	startDate := ""
	if p.StartDate != nil {
		startDate = p.StartDate.Format("2006-01-02")
	}

	return []string{
		p.ID.String(),
		p.FullName,
		p.Email,
		phone,
		p.Role,
		employmentType,
		strconv.FormatFloat(p.HourlyRate, 'f', 2, 64),
		salary,
		strconv.FormatBool(p.IsActive),
		startDate,
		p.CreatedAt.Format(time.RFC3339),
	}
}

func exportCSV(profiles []Profile) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if err := w.Write(exportRow(p)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportXLSX(profiles []Profile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Profiles"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, p := range profiles {
		for col, value := range exportRow(p) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
