// Package renderer lays an invoice out as a printable A4 PDF document.
package renderer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/Minhaj401/invoice-generator-api/internal/domain/invoice"
	"github.com/Minhaj401/invoice-generator-api/internal/utils/platformerrors"
)

const (
	pageMargin   = 15.0
	contentWidth = 180.0 // A4 width minus margins
	qrSideMM     = 45.0
	dateLayout   = "02 January 2006"
)

// Dark navy theme, matching the printed invoice design.
var (
	colorPrimary  = rgb{44, 62, 80}
	colorDarkText = rgb{33, 37, 41}
	colorGrayText = rgb{108, 117, 125}
	colorLightBG  = rgb{248, 249, 250}
	colorBorder   = rgb{222, 226, 230}
)

type rgb struct{ r, g, b int }

// PDFRenderer is a pure function of (Invoice, QR image) -> bytes. Rendering
// embeds no wall-clock timestamp, so two renders of the same input are
// byte-identical.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the paginated invoice document. Missing required profile
// fields and text outside the supported character range are render failures,
// never silent omissions.
func (r *PDFRenderer) Render(ctx context.Context, inv *invoice.Invoice, qrPNG []byte) ([]byte, error) {
	if err := validateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	if len(qrPNG) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRender,
			"payment QR image is missing", nil, "")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	// Fixed creation date keeps output reproducible for identical input.
	pdf.SetCreationDate(inv.IssueDate.UTC())
	// The core fonts use cp1252; accented text must be translated or it
	// would land in the content stream as raw UTF-8 bytes.
	inv = translated(inv, pdf.UnicodeTranslatorFromDescriptor(""))
	pdf.AddPage()

	r.drawHeader(pdf, inv)
	r.drawPartyBlocks(pdf, inv)
	r.drawItemsTable(pdf, inv)
	r.drawTotals(pdf, inv)
	r.drawPaymentSection(pdf, inv, qrPNG)
	r.drawTermsAndFooter(pdf, inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRender,
			"assemble PDF document", err, "")
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) drawHeader(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	setText(pdf, colorDarkText)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentWidth/2, 10, inv.Seller.Name, "", 0, "L", false, 0, "")

	setText(pdf, colorPrimary)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(contentWidth/2, 10, "INVOICE", "", 1, "R", false, 0, "")
	pdf.Ln(6)
}

func (r *PDFRenderer) drawPartyBlocks(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	top := pdf.GetY()

	// FROM block, left column
	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(100, 4, "FROM:", "", 1, "L", false, 0, "")
	setText(pdf, colorDarkText)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(100, 5, inv.Seller.Name, "", 1, "L", false, 0, "")
	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(100, 4.5, inv.Seller.Address, "", "L", false)
	pdf.CellFormat(100, 4.5, "Phone: "+inv.Seller.Phone, "", 1, "L", false, 0, "")
	pdf.CellFormat(100, 4.5, "Email: "+inv.Seller.Email, "", 1, "L", false, 0, "")
	if inv.Seller.TaxID != "" {
		pdf.CellFormat(100, 4.5, "GST No: "+inv.Seller.TaxID, "", 1, "L", false, 0, "")
	}
	fromBottom := pdf.GetY()

	// Invoice info box, right column
	infoX := pageMargin + 105
	infoW := contentWidth - 105
	pdf.SetXY(infoX, top)
	setFill(pdf, colorLightBG)
	setDraw(pdf, colorBorder)

	infoRow := func(label, value string, bold bool) {
		pdf.SetX(infoX)
		setText(pdf, colorGrayText)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(infoW*0.45, 7, label, "LB", 0, "L", true, 0, "")
		if bold {
			setText(pdf, colorPrimary)
			pdf.SetFont("Helvetica", "B", 10)
		} else {
			setText(pdf, colorDarkText)
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.CellFormat(infoW*0.55, 7, value, "RB", 1, "R", true, 0, "")
	}

	infoRow("INVOICE NO:", inv.Number, true)
	infoRow("DATE:", inv.IssueDate.Format(dateLayout), false)
	infoRow("DUE DATE:", inv.DueDate.Format(dateLayout), false)
	infoRow("AMOUNT DUE:", formatMoney(inv.Total), true)

	if infoBottom := pdf.GetY(); infoBottom > fromBottom {
		fromBottom = infoBottom
	}
	pdf.SetXY(pageMargin, fromBottom+8)

	// BILL TO block
	setDraw(pdf, colorPrimary)
	pdf.SetLineWidth(0.8)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.SetLineWidth(0.2)
	pdf.Ln(2)

	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentWidth, 5, "BILL TO:", "", 1, "L", false, 0, "")
	setText(pdf, colorDarkText)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidth, 6, inv.Customer.Name, "", 1, "L", false, 0, "")
	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, 4.5, "Phone: "+orNA(inv.Customer.Phone), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentWidth, 4.5, "Email: "+orNA(inv.Customer.Email), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (r *PDFRenderer) drawItemsTable(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	colW := []float64{90, 20, 35, 35}
	headers := []string{"ITEM", "QTY", "RATE", "AMOUNT"}
	aligns := []string{"L", "C", "R", "R"}

	setFill(pdf, colorPrimary)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 8, h, "", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	setDraw(pdf, colorBorder)
	pdf.SetFont("Helvetica", "", 9)
	for i, item := range inv.Items {
		fill := i%2 == 1
		if fill {
			setFill(pdf, colorLightBG)
		}
		setText(pdf, colorDarkText)
		pdf.CellFormat(colW[0], 8, item.Description, "B", 0, "L", fill, 0, "")
		pdf.CellFormat(colW[1], 8, item.Quantity.String(), "B", 0, "C", fill, 0, "")
		pdf.CellFormat(colW[2], 8, formatMoney(item.UnitPrice), "B", 0, "R", fill, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(colW[3], 8, formatMoney(item.LineTotal), "B", 1, "R", fill, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) drawTotals(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	labelW, valueW := 45.0, 35.0
	x := pageMargin + contentWidth - labelW - valueW

	taxLabel := fmt.Sprintf("GST (%s%%):", inv.TaxRate.Mul(decimal.NewFromInt(100)).String())

	pdf.SetX(x)
	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 7, "Subtotal:", "", 0, "R", false, 0, "")
	setText(pdf, colorDarkText)
	pdf.CellFormat(valueW, 7, formatMoney(inv.Subtotal), "B", 1, "R", false, 0, "")

	pdf.SetX(x)
	setText(pdf, colorGrayText)
	pdf.CellFormat(labelW, 7, taxLabel, "", 0, "R", false, 0, "")
	setText(pdf, colorDarkText)
	pdf.CellFormat(valueW, 7, formatMoney(inv.TaxAmount), "B", 1, "R", false, 0, "")

	pdf.SetX(x)
	setFill(pdf, colorPrimary)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelW, 9, "TOTAL AMOUNT", "", 0, "R", true, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(valueW, 9, formatMoney(inv.Total), "", 1, "R", true, 0, "")
	pdf.Ln(8)
}

func (r *PDFRenderer) drawPaymentSection(pdf *gofpdf.Fpdf, inv *invoice.Invoice, qrPNG []byte) {
	setText(pdf, colorDarkText)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentWidth, 6, "Payment Information", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	top := pdf.GetY()

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("payment-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("payment-qr", pageMargin+2, top+2, qrSideMM, qrSideMM, false, opts, 0, "")

	setDraw(pdf, colorBorder)
	pdf.Rect(pageMargin, top, qrSideMM+4, qrSideMM+10, "D")
	pdf.SetXY(pageMargin, top+qrSideMM+3)
	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(qrSideMM+4, 4, "Scan to Pay via UPI", "", 1, "C", false, 0, "")

	detailX := pageMargin + qrSideMM + 12
	pdf.SetXY(detailX, top+2)
	setText(pdf, colorDarkText)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth-qrSideMM-12, 5, "Pay via UPI", "", 1, "L", false, 0, "")

	detailRow := func(label, value string) {
		pdf.SetX(detailX)
		setText(pdf, colorGrayText)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(20, 5.5, label, "", 0, "L", false, 0, "")
		setText(pdf, colorDarkText)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentWidth-qrSideMM-32, 5.5, value, "", 1, "L", false, 0, "")
	}
	detailRow("Payee:", inv.Seller.Name)
	detailRow("Amount:", formatMoney(inv.Total))
	detailRow("Note:", "Invoice "+inv.Number)

	pdf.SetX(detailX)
	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(contentWidth-qrSideMM-12, 4,
		"Scan the QR code using any UPI app (GooglePay, PhonePe, Paytm, etc.)", "", "L", false)

	pdf.SetY(top + qrSideMM + 14)
}

func (r *PDFRenderer) drawTermsAndFooter(pdf *gofpdf.Fpdf, inv *invoice.Invoice) {
	setText(pdf, colorDarkText)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentWidth, 6, "Terms & Conditions", "", 1, "L", false, 0, "")

	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "", 8)
	terms := []string{
		"- Payment is due by " + inv.DueDate.Format(dateLayout) + ".",
		"- Please include the invoice number when making payment.",
		"- Late payments may incur additional charges.",
		"- For queries regarding this invoice, contact " + inv.Seller.Email + " or " + inv.Seller.Phone + ".",
	}
	for _, line := range terms {
		pdf.CellFormat(contentWidth, 4.5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	setText(pdf, colorPrimary)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth, 7, "Thank You for Your Business!", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	setDraw(pdf, colorBorder)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+contentWidth, pdf.GetY())
	pdf.Ln(2)
	setText(pdf, colorGrayText)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentWidth, 4, "This is a computer-generated invoice and does not require a physical signature.", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentWidth, 4, inv.Seller.Name+" | "+inv.Seller.Email+" | "+inv.Seller.Phone, "", 1, "C", false, 0, "")
}

func validateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRender,
			"invoice is nil", nil, "")
	}
	required := map[string]string{
		"seller name":    inv.Seller.Name,
		"seller address": inv.Seller.Address,
		"seller phone":   inv.Seller.Phone,
		"seller email":   inv.Seller.Email,
		"customer name":  inv.Customer.Name,
		"invoice number": inv.Number,
	}
	for field, value := range required {
		if value == "" {
			return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRender,
				"missing required invoice field", nil, "", map[string]any{"field": field})
		}
	}

	texts := []string{
		inv.Seller.Name, inv.Seller.Address, inv.Seller.Phone, inv.Seller.Email, inv.Seller.TaxID,
		inv.Customer.Name, inv.Customer.Phone, inv.Customer.Email,
	}
	for _, item := range inv.Items {
		texts = append(texts, item.Description)
	}
	for _, text := range texts {
		if err := checkEncodable(text); err != nil {
			return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRender,
				"text is not encodable in the document font", err, "", map[string]any{"text": text})
		}
	}
	return nil
}

// translated returns a copy of the invoice with every free-text field run
// through the cp1252 translator. Validation has already rejected anything
// above U+00FF, so the translation is total.
func translated(inv *invoice.Invoice, tr func(string) string) *invoice.Invoice {
	out := *inv
	out.Seller.Name = tr(inv.Seller.Name)
	out.Seller.Address = tr(inv.Seller.Address)
	out.Seller.Phone = tr(inv.Seller.Phone)
	out.Seller.Email = tr(inv.Seller.Email)
	out.Seller.TaxID = tr(inv.Seller.TaxID)
	out.Customer.Name = tr(inv.Customer.Name)
	out.Customer.Phone = tr(inv.Customer.Phone)
	out.Customer.Email = tr(inv.Customer.Email)

	items := make([]invoice.LineItem, len(inv.Items))
	for i, item := range inv.Items {
		item.Description = tr(item.Description)
		items[i] = item
	}
	out.Items = items
	return &out
}

// checkEncodable rejects text outside the latin range the core PDF fonts can
// represent, rather than letting glyphs drop silently.
func checkEncodable(s string) error {
	for _, r := range s {
		if r > 0xFF {
			return fmt.Errorf("unsupported character %q", r)
		}
	}
	return nil
}

func formatMoney(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func setText(pdf *gofpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setFill(pdf *gofpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setDraw(pdf *gofpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
