// Package receipt renders printable collection receipts.
package receipt

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/resline/laundromat-go/internal/models"
	"github.com/skip2/go-qrcode"
)

// Generate creates a PDF receipt for a collected laundry request. The caller
// is expected to have verified that the record is in Collected status.
func Generate(req *models.LaundryRequest) ([]byte, error) {
	if req.Status != models.StatusCollected {
		return nil, fmt.Errorf("request %d is not collected (status %s)", req.ID, req.Status)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Laundry Collection Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Reference: "+req.ReferenceNumber, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	row := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	row("Submitted by", fmt.Sprintf("%s %s", req.Name, req.Surname))
	row("Contact", req.Contact)
	row("Commune / Room", fmt.Sprintf("%s / %s", req.Commune, req.Room))
	row("Items", fmt.Sprintf("%d pieces", req.ClothesCount))
	row("Date submitted", req.DateSubmitted.Format("2006-01-02 15:04"))
	if req.DateCompleted != nil {
		row("Date completed", req.DateCompleted.Format("2006-01-02 15:04"))
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Collected by", "", 1, "L", false, 0, "")
	row("Name", req.CollectionName)
	row("Contact", req.CollectionContact)
	row("ID number", req.CollectionIDNumber)
	if req.CollectionDate != nil {
		row("Collection date", req.CollectionDate.Format("2006-01-02 15:04"))
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 7, "Signature", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 7, req.CollectionSignature, "B", 1, "L", false, 0, "")

	// Reference QR in the bottom corner so the record can be pulled up later
	qrPng, err := qrcode.Encode(req.ReferenceNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode receipt QR: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("ref_qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("ref_qr", 160, 240, 30, 30, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt PDF: %w", err)
	}
	return buf.Bytes(), nil
}
