// Package handler: export.go implements GET /travelers/export/.
// Returns the signed-in user's travelers as a CSV download.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/travelxplore/site/internal/domain"
)

// csvHeaders defines the column names written as the first row of the export.
var csvHeaders = []string{"name", "email", "phone", "destination", "added_on"}

// travelerExport streams the owner's travelers as CSV, newest first.
func (s *Server) travelerExport(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	rows, err := s.travelers.Export(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	body := buildCSV(rows)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="travelers.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// buildCSV encodes rows with a header line.
func buildCSV(rows []domain.TravelerExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write([]string{r.Name, r.Email, r.Phone, r.Destination, r.AddedOn})
	}
	w.Flush()
	return &buf
}
