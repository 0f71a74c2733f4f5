package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReadHTMLTable extracts the first <table> in an HTML document into a
// dataset. Review platforms commonly hand exports over as saved report
// pages rather than delimited text; the header row comes from <th> cells,
// or from the first row when the table carries none.
func ReadHTMLTable(r io.Reader) (*Dataset, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found in document")
	}

	var header []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		header = append(header, strings.TrimSpace(th.Text()))
	})

	rows := table.Find("tr")
	start := 0
	if len(header) == 0 {
		first := rows.First()
		first.Find("td").Each(func(_ int, td *goquery.Selection) {
			header = append(header, strings.TrimSpace(td.Text()))
		})
		start = 1
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("table has no header cells")
	}

	d := New(header...)
	var rowErr error
	rows.Each(func(i int, tr *goquery.Selection) {
		if i < start || rowErr != nil {
			return
		}
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return // header-only row
		}
		record := make([]string, 0, len(header))
		cells.Each(func(_ int, td *goquery.Selection) {
			record = append(record, strings.TrimSpace(td.Text()))
		})
		if len(record) != len(header) {
			rowErr = fmt.Errorf("table row %d has %d cells, header has %d", i, len(record), len(header))
			return
		}
		if err := d.AppendRow(record); err != nil {
			rowErr = err
		}
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return d, nil
}

// ReadFile dispatches on the file extension: .html/.htm goes through the
// table extractor, everything else is treated as delimited text.
func ReadFile(r io.Reader, name string) (*Dataset, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return ReadHTMLTable(r)
	}
	return ReadCSV(r)
}
