package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Line is one already-formatted row of the item table.
type Line struct {
	SNo   string
	Name  string
	Price string
	Qty   string
	Total string
}

// Document holds everything needed to render one printable invoice. All
// monetary fields arrive pre-formatted; the renderer is purely a layout
// transform.
type Document struct {
	InvoiceNo     string
	StallNo       string
	ArtisanCode   string
	Date          string
	PhoneNo       string
	PaymentMethod string
	Items         []Line
	Subtotal      string
	TotalDiscount string
	GSTAmount     string
	GrandTotal    string
}

const (
	pageWidth  = 200.0
	baseHeight = 250.0
	rowHeight  = 15.0
)

// Render produces the fixed-width two-page document: the customer invoice
// followed by the artisan copy. Page height grows linearly with item count.
func Render(doc *Document) ([]byte, error) {
	height := baseHeight + rowHeight*float64(len(doc.Items))

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	drawPage(pdf, "INVOICE", doc)
	drawPage(pdf, "ARTISAN SLIP", doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPage(pdf *gofpdf.Fpdf, heading string, doc *Document) {
	pdf.AddPage()

	pdf.Line(5, 45, 195, 45)
	pdf.SetFont("Times", "B", 12)
	pdf.SetXY(0, 50)
	pdf.CellFormat(pageWidth, 12, heading, "", 0, "C", false, 0, "")

	pdf.SetFont("Times", "B", 8)
	// Left column
	pdf.Text(15, 70, "Invoice No.: "+doc.InvoiceNo)
	pdf.Text(15, 80, "Artisan Code: "+doc.ArtisanCode)
	pdf.Text(15, 90, "Date: "+doc.Date)
	// Right column
	pdf.Text(110, 70, "Stall No.: "+doc.StallNo)
	pdf.Text(110, 80, "Customer Ph No.: "+doc.PhoneNo)
	pdf.Text(110, 90, "Payment Method: "+doc.PaymentMethod)

	// Item table
	startY := 100.0
	tableHeight := rowHeight * float64(len(doc.Items)+1)
	pdf.RoundedRect(15, startY, 170, tableHeight, 5, "1234", "D")

	pdf.Text(20, startY+10, "S.No")
	pdf.Text(45, startY+10, "Item")
	pdf.Text(100, startY+10, "Price")
	pdf.Text(130, startY+10, "Qty")
	pdf.Text(155, startY+10, "Total")

	y := startY + 10 + rowHeight
	for _, line := range doc.Items {
		pdf.Text(20, y, line.SNo)
		pdf.Text(45, y, line.Name)
		pdf.Text(100, y, line.Price)
		pdf.Text(130, y, line.Qty)
		pdf.Text(155, y, line.Total)
		y += rowHeight
	}

	pdf.SetFont("Times", "B", 9)
	pdf.Text(15, y+10, "Subtotal: "+doc.Subtotal)
	pdf.Text(15, y+20, "Total Discount: "+doc.TotalDiscount)
	if doc.GSTAmount != "" {
		pdf.Text(15, y+30, "GST: "+doc.GSTAmount)
	}
	pdf.Text(140, y+10, "Grand Total: "+doc.GrandTotal)
	pdf.Text(140, y+60, "Tulip")
	pdf.Text(140, y+68, "Signature")
}
