package report

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Title heads every exported document.
const Title = "Cost Estimation Report"

// Document is a formatted report with the metadata printed on exports.
type Document struct {
	Report
	Reference   string
	CreatedDate string
}

// NewDocument stamps r with a fresh reference number and the date of now.
func NewDocument(r Report, now time.Time) Document {
	return Document{
		Report:      r,
		Reference:   "EST-" + strings.ToUpper(uuid.NewString()[:8]),
		CreatedDate: now.Format("2006-01-02"),
	}
}

// Filename is the attachment name for the given extension.
func (d Document) Filename(ext string) string {
	return "Cost_Estimation_Report_" + d.Reference + "." + ext
}
