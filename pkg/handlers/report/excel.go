package report

import (
	"fmt"

	"github.com/hm-tools/stay-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

// buildWorkbook renders the report as an xlsx workbook: a summary sheet
// plus one sheet per list section.
func buildWorkbook(rep *domain.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummary(f, rep, headerStyle); err != nil {
		return nil, err
	}

	trendRows := make([][]interface{}, 0, len(rep.RevenueTrend))
	for _, p := range rep.RevenueTrend {
		trendRows = append(trendRows, []interface{}{p.Label, p.Revenue})
	}
	if err := writeSheet(f, "Revenue Trend", headerStyle,
		[]string{"Bucket", "Revenue"}, trendRows); err != nil {
		return nil, err
	}

	roomRows := make([][]interface{}, 0, len(rep.TopRooms))
	for _, r := range rep.TopRooms {
		roomRows = append(roomRows, []interface{}{r.Name, r.Bookings, r.Revenue})
	}
	if err := writeSheet(f, "Top Rooms", headerStyle,
		[]string{"Room", "Bookings", "Revenue"}, roomRows); err != nil {
		return nil, err
	}

	serviceRows := make([][]interface{}, 0, len(rep.TopServices))
	for _, s := range rep.TopServices {
		serviceRows = append(serviceRows, []interface{}{s.Name, s.Bookings, s.Revenue})
	}
	if err := writeSheet(f, "Top Services", headerStyle,
		[]string{"Service", "Bookings", "Revenue"}, serviceRows); err != nil {
		return nil, err
	}

	statusRows := make([][]interface{}, 0, len(rep.GuestStatuses))
	for _, s := range rep.GuestStatuses {
		statusRows = append(statusRows, []interface{}{s.Status, s.Guests})
	}
	if err := writeSheet(f, "Guest Statuses", headerStyle,
		[]string{"Status", "Guests"}, statusRows); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSummary(f *excelize.File, rep *domain.Report, headerStyle int) error {
	window := "All time"
	if !rep.Window.AllTime {
		window = fmt.Sprintf("%s to %s",
			rep.Window.Start.Format("2006-01-02"),
			rep.Window.End.Format("2006-01-02"))
	}

	rating := "n/a"
	if rep.AverageRating != nil {
		rating = fmt.Sprintf("%.2f", *rep.AverageRating)
	}

	rows := [][]interface{}{
		{"Window", window},
		{"Total Revenue", rep.TotalRevenue},
		{"Reservations", rep.ReservationCount},
		{"Occupancy Rate", rep.OccupancyRate},
		{"Average Rating", rating},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	return f.SetCellStyle(summarySheet, "A1", "A5", headerStyle)
}

func writeSheet(f *excelize.File, name string, headerStyle int, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header of %s: %w", name, err)
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write row of %s: %w", name, err)
		}
	}
	return nil
}
