package importer

type ImportResult struct {
	Message    string   `json:"message"`
	Imported   int      `json:"imported"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors"`
	Duplicates []string `json:"duplicates"`
}
