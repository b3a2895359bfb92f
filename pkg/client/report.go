package client

import (
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"mime"
	"net/url"
	"path/filepath"
	"strconv"
)

var ErrNotPDF = errors.New("server did not return a PDF")

// Report is a downloaded PDF with the filename the server suggested.
type Report struct {
	Filename string
	Data     []byte
}

func (c *Client) MonthlyReport(ctx context.Context, workplaceID string, year, month int) (Report, error) {
	return c.report(ctx, "/reports/monthly", url.Values{
		"workplace_id": {workplaceID},
		"year":         {strconv.Itoa(year)},
		"month":        {strconv.Itoa(month)},
	})
}

func (c *Client) AnnualReport(ctx context.Context, workplaceID string, year int) (Report, error) {
	return c.report(ctx, "/reports/annual", url.Values{
		"workplace_id": {workplaceID},
		"year":         {strconv.Itoa(year)},
	})
}

// CustomReport covers the inclusive days from..to, both YYYY-MM-DD.
func (c *Client) CustomReport(ctx context.Context, workplaceID, from, to string) (Report, error) {
	return c.report(ctx, "/reports/custom", url.Values{
		"workplace_id": {workplaceID},
		"from":         {from},
		"to":           {to},
	})
}

func (c *Client) report(ctx context.Context, path string, query url.Values) (Report, error) {
	meta, raw, err := c.send(ctx, fiber.MethodGet, path, query, nil, true)
	if err != nil {
		return Report{}, err
	}

	mediaType, _, err := mime.ParseMediaType(meta.contentType)
	if err != nil || mediaType != "application/pdf" {
		return Report{}, fmt.Errorf("%w: content type %q", ErrNotPDF, meta.contentType)
	}

	return Report{Filename: attachmentName(meta.disposition), Data: raw}, nil
}

// attachmentName keeps only the base name so a hostile header cannot escape the
// output directory.
func attachmentName(disposition string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return "report.pdf"
	}
	name := filepath.Base(params["filename"])
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "report.pdf"
	}
	return name
}
