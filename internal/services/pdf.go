package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/khaynem/WasteWise-Backend/internal/models"
)

// Report PDF layout constants.
const (
	pdfMargin      = 15.0
	pdfImageWidth  = 55.0
	pdfImageHeight = 45.0
	pdfMaxImages   = 9
)

// WriteReportsPDF renders the admin violation-report export: a header and
// summary block, then one section per report with its fields and embedded
// images, paginated with page-number footers.
func WriteReportsPDF(w io.Writer, reports []models.Report, statusFilter, from, to string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetHeaderFunc(func() {
		pdf.SetTextColor(4, 120, 87)
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, "WasteWise Violation Reports", "", 1, "C", false, 0, "")
		pdf.SetTextColor(102, 102, 102)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, "Generated: "+time.Now().Format("Jan 2, 2006 15:04"), "", 1, "C", false, 0, "")
		pdf.SetDrawColor(224, 224, 224)
		pdf.Line(pdfMargin, pdf.GetY()+2, 210-pdfMargin, pdf.GetY()+2)
		pdf.Ln(6)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetTextColor(136, 136, 136)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Summary block
	pdf.SetTextColor(34, 34, 34)
	pdf.SetFont("Helvetica", "BU", 11)
	pdf.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 5, fmt.Sprintf("Total Reports: %d", len(reports)), "", 1, "L", false, 0, "")
	if len(reports) > 0 {
		first := reports[len(reports)-1].Date.Format("Jan 2, 2006")
		last := reports[0].Date.Format("Jan 2, 2006")
		pdf.CellFormat(0, 5, fmt.Sprintf("Date Range: %s - %s", first, last), "", 1, "L", false, 0, "")
	}
	if statusFilter != "" {
		pdf.CellFormat(0, 5, "Filtered Status: "+statusFilter, "", 1, "L", false, 0, "")
	}
	if from != "" || to != "" {
		fromLabel, toLabel := from, to
		if fromLabel == "" {
			fromLabel = "---"
		}
		if toLabel == "" {
			toLabel = "---"
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("Filter Dates: %s to %s", fromLabel, toLabel), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for i, r := range reports {
		if i > 0 {
			pdf.SetDrawColor(224, 224, 224)
			pdf.Line(pdfMargin, pdf.GetY(), 210-pdfMargin, pdf.GetY())
			pdf.Ln(4)
		}

		writeField(pdf, "Title: ", r.Title)
		writeField(pdf, "Date and Time: ", r.Date.Format("January 2, 2006 03:04 PM"))

		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(34, 34, 34)
		pdf.CellFormat(0, 6, "Description:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(51, 51, 51)
		pdf.MultiCell(0, 5, orDefault(r.Description, "No description provided."), "", "L", false)

		writeField(pdf, "Location: ", orDefault(r.Location, "Not specified"))
		writeField(pdf, "Status: ", strings.ToUpper(string(r.Status)))

		if len(r.Images) > 0 {
			writeImages(pdf, r.ID, r.Images)
		}
		pdf.Ln(3)
	}

	return pdf.Output(w)
}

func writeField(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(34, 34, 34)
	pdf.CellFormat(pdf.GetStringWidth(label)+1, 5, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 5, orDefault(value, "N/A"), "", 1, "L", false, 0, "")
}

func writeImages(pdf *gofpdf.Fpdf, reportID string, urls []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(34, 34, 34)
	pdf.CellFormat(0, 6, "Image:", "", 1, "L", false, 0, "")

	shown := urls
	if len(shown) > pdfMaxImages {
		shown = shown[:pdfMaxImages]
	}

	x := pdfMargin
	for i, url := range shown {
		data, imgType := fetchImage(url)
		if data == nil {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(176, 0, 32)
			pdf.CellFormat(0, 5, "(Image missing)", "", 1, "L", false, 0, "")
			continue
		}

		name := fmt.Sprintf("%s-%d", reportID, i)
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imgType}, bytes.NewReader(data))
		if pdf.GetY()+pdfImageHeight > 270 {
			pdf.AddPage()
			x = pdfMargin
		}
		pdf.ImageOptions(name, x, pdf.GetY(), pdfImageWidth, pdfImageHeight, false, gofpdf.ImageOptions{ImageType: imgType}, 0, "")

		x += pdfImageWidth + 5
		if x+pdfImageWidth > 210-pdfMargin || i == len(shown)-1 {
			pdf.SetY(pdf.GetY() + pdfImageHeight + 3)
			x = pdfMargin
		}
	}

	if len(urls) > pdfMaxImages {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(0, 5, fmt.Sprintf("(+ %d more not shown)", len(urls)-pdfMaxImages), "", 1, "L", false, 0, "")
	}
}

var pdfHTTPClient = &http.Client{Timeout: 10 * time.Second}

func fetchImage(url string) ([]byte, string) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, ""
	}
	resp, err := pdfHTTPClient.Get(url)
	if err != nil {
		return nil, ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, ""
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, ""
	}

	imgType := "JPG"
	if strings.Contains(resp.Header.Get("Content-Type"), "png") || strings.HasSuffix(strings.ToLower(url), ".png") {
		imgType = "PNG"
	}
	return data, imgType
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
