package domain

// TravelerExportRow is a single line of a user's traveler export.
// Dates are pre-formatted so the CSV writer stays a dumb encoder.
type TravelerExportRow struct {
	Name        string
	Email       string
	Phone       string
	Destination string
	AddedOn     string // "2006-01-02"
}
