package importer

import (
	"regexp"
	"strings"
)

const (
	FieldName            = "name"
	FieldDepartment      = "department"
	FieldTotalLeaves     = "total_leaves"
	FieldAvailableLeaves = "available_leaves"
)

// RequiredFields is the canonical column order used by the template and in
// "missing fields" messages.
var RequiredFields = []string{FieldName, FieldDepartment, FieldTotalLeaves, FieldAvailableLeaves}

// fieldAliases lists accepted header spellings per canonical field, already
// in normalized form.
var fieldAliases = map[string][]string{
	FieldName:            {"name", "employee name", "employee", "full name"},
	FieldDepartment:      {"department", "dept", "division"},
	FieldTotalLeaves:     {"total leaves", "total leave", "total", "leave entitlement", "entitlement"},
	FieldAvailableLeaves: {"available leaves", "available leave", "available", "remaining leaves", "leave balance", "balance"},
}

var separatorRun = regexp.MustCompile(`[\s_\-]+`)

// NormalizeHeader folds case and collapses runs of spaces, underscores and
// hyphens so "Total_Leaves" and "total  leaves" compare equal.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.TrimSpace(separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), " "))
}

var aliasIndex = func() map[string]string {
	idx := make(map[string]string)
	for field, aliases := range fieldAliases {
		for _, a := range aliases {
			idx[a] = field
		}
	}
	return idx
}()

// CanonicalField maps a raw header to its canonical field.
func CanonicalField(header string) (string, bool) {
	f, ok := aliasIndex[NormalizeHeader(header)]
	return f, ok
}

// canonicalize rekeys a row by canonical field. When a file carries two
// spellings of the same column the non-blank value wins.
func canonicalize(row Row) map[string]string {
	out := make(map[string]string, len(RequiredFields))
	for header, value := range row {
		field, ok := CanonicalField(header)
		if !ok {
			continue
		}
		if existing, seen := out[field]; seen && strings.TrimSpace(existing) != "" {
			continue
		}
		out[field] = value
	}
	return out
}
