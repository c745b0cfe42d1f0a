package leave

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet    = "Leaves"
	calendarProdID = "-//go-leave//Leave Calendar//EN"
)

var exportHeader = []any{
	"ID", "Employee", "Department", "Start Date", "End Date", "Days", "Reason", "Status", "Created At",
}

// WriteWorkbook renders leaves as a single-sheet xlsx workbook.
func WriteWorkbook(w io.Writer, leaves []LeaveResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", "I1", bold); err != nil {
		return err
	}

	for i, l := range leaves {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			l.ID,
			l.EmployeeName,
			l.EmployeeDepartment,
			l.StartDate,
			l.EndDate,
			l.Days,
			l.Reason,
			l.Status,
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(exportSheet, "B", "C", 24)
	_ = f.SetColWidth(exportSheet, "G", "G", 40)

	_, err = f.WriteTo(w)
	return err
}

// WriteCalendar renders leaves as all-day VEVENTs. DTEND is exclusive in
// iCalendar, so it is the day after the last day of leave.
func WriteCalendar(w io.Writer, leaves []LeaveResponse, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProdID)
	cal.SetName("Employee Leaves")

	for _, l := range leaves {
		start, err := time.Parse(dateLayout, l.StartDate)
		if err != nil {
			return fmt.Errorf("leave %d start date: %w", l.ID, err)
		}
		end, err := time.Parse(dateLayout, l.EndDate)
		if err != nil {
			return fmt.Errorf("leave %d end date: %w", l.ID, err)
		}

		event := cal.AddEvent(fmt.Sprintf("leave-%d@go-leave", l.ID))
		event.SetDtStampTime(now.UTC())
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s (%s) on leave", l.EmployeeName, l.EmployeeDepartment))
		event.SetDescription(fmt.Sprintf("%s - %d day(s), %s", l.Reason, l.Days, l.Status))
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
