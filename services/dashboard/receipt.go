package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"solvo/models"

	"github.com/phpdave11/gofpdf"
)

// BuildReceiptPDF renders a booking receipt as PDF bytes plus a download
// filename.
func BuildReceiptPDF(b *models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref     : #%d", b.ID),
		fmt.Sprintf("Name            : %s", orDash(b.Name)),
		fmt.Sprintf("Email           : %s", orDash(b.Email)),
		fmt.Sprintf("Phone           : %s", orDash(b.Phone)),
		fmt.Sprintf("Travel Date     : %s", orDash(b.Date)),
		fmt.Sprintf("Guests          : %d", b.Guests),
		fmt.Sprintf("Status          : %s", orDash(b.Status)),
		fmt.Sprintf("Payment Status  : %s", orDash(b.PaymentStatus)),
		fmt.Sprintf("Total Price     : USD %.2f", b.TotalPrice),
	}
	if b.DepositAmount > 0 {
		lines = append(lines, fmt.Sprintf("Deposit Paid    : USD %.2f", b.DepositAmount))
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	if len(b.PaymentHistory) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Payment History")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for _, entry := range b.PaymentHistory {
			pdf.Cell(0, 6, paymentLine(entry))
			pdf.Ln(6)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: please keep this receipt and present it at the start of your safari. Contact us for any changes to your booking.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECEIPT_%d_%s.pdf", b.ID, filenamePart(b.Name))
	return buf.Bytes(), filename, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func paymentLine(entry map[string]any) string {
	parts := make([]string, 0, 3)
	if v, ok := entry["date"].(string); ok && v != "" {
		parts = append(parts, v)
	}
	if v, ok := entry["method"].(string); ok && v != "" {
		parts = append(parts, v)
	}
	if v, ok := entry["amount"].(float64); ok {
		parts = append(parts, fmt.Sprintf("USD %.2f", v))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "  ")
}

func filenamePart(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == ' ', r == '_', r == '-':
			out.WriteRune('_')
		}
	}
	if out.Len() == 0 {
		return "booking"
	}
	return out.String()
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Booking Receipt #{{.ID}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 40px; color: #222; }
h1 { font-size: 22px; border-bottom: 2px solid #222; padding-bottom: 8px; }
table { border-collapse: collapse; margin-top: 16px; }
td { padding: 4px 12px 4px 0; }
td.label { font-weight: bold; }
.note { margin-top: 24px; font-style: italic; font-size: 13px; }
@media print { body { margin: 10mm; } }
</style>
</head>
<body onload="window.print()">
<h1>Booking Receipt</h1>
<table>
<tr><td class="label">Booking Ref</td><td>#{{.ID}}</td></tr>
<tr><td class="label">Name</td><td>{{.Name}}</td></tr>
<tr><td class="label">Email</td><td>{{.Email}}</td></tr>
<tr><td class="label">Travel Date</td><td>{{.Date}}</td></tr>
<tr><td class="label">Guests</td><td>{{.Guests}}</td></tr>
<tr><td class="label">Status</td><td>{{.Status}}</td></tr>
<tr><td class="label">Payment Status</td><td>{{.PaymentStatus}}</td></tr>
<tr><td class="label">Total Price</td><td>USD {{printf "%.2f" .TotalPrice}}</td></tr>
</table>
<p class="note">Please keep this receipt and present it at the start of your safari.</p>
</body>
</html>
`))

// RenderReceiptHTML renders the printable receipt page. The page triggers
// the browser print dialog on load.
func RenderReceiptHTML(b *models.Booking) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
