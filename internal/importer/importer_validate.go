package importer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go-leave/internal/employee"
)

// Validation is the outcome of checking a parsed file before anything is
// written. Accepted and RowNumbers are parallel.
type Validation struct {
	Accepted   []employee.NewEmployee
	RowNumbers []int
	Errors     []string
	Duplicates []string
}

func (v Validation) Skipped() int { return len(v.Errors) }

// parseCount accepts integers, plus whole numbers written with a fractional
// part as spreadsheets often render them ("25.0"). Both forms must fit in
// an int32.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n), true
	} else if errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// Validate checks rows in order. Each row stops at its first failure; the
// reported row number counts the header as row 1.
func Validate(rows []Row, existing []employee.Identity) Validation {
	seen := make(map[string]struct{}, len(existing)+len(rows))
	for _, id := range existing {
		seen[id.Key()] = struct{}{}
	}

	var v Validation
	v.Errors = []string{}
	for i, raw := range rows {
		rowNum := i + 2
		row := canonicalize(raw)

		var missing []string
		for _, f := range RequiredFields {
			if strings.TrimSpace(row[f]) == "" {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: Missing required fields: %s", rowNum, strings.Join(missing, ", ")))
			continue
		}

		total, okTotal := parseCount(row[FieldTotalLeaves])
		available, okAvailable := parseCount(row[FieldAvailableLeaves])
		if !okTotal || !okAvailable {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: Invalid number format for leave values", rowNum))
			continue
		}
		if total < 0 || available < 0 {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: Leave values cannot be negative", rowNum))
			continue
		}
		if available > total {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: Available leaves cannot exceed total leaves", rowNum))
			continue
		}

		id := employee.Identity{
			Name:       strings.TrimSpace(row[FieldName]),
			Department: strings.TrimSpace(row[FieldDepartment]),
		}
		if _, dup := seen[id.Key()]; dup {
			v.Errors = append(v.Errors, fmt.Sprintf("Row %d: Employee \"%s\" in department \"%s\" already exists", rowNum, id.Name, id.Department))
			v.Duplicates = append(v.Duplicates, fmt.Sprintf("%s (%s)", id.Name, id.Department))
			continue
		}
		seen[id.Key()] = struct{}{}

		v.Accepted = append(v.Accepted, employee.NewEmployee{
			Name:            id.Name,
			Department:      id.Department,
			TotalLeaves:     total,
			AvailableLeaves: available,
		})
		v.RowNumbers = append(v.RowNumbers, rowNum)
	}
	return v
}
