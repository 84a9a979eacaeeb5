// Package htmltable converts HTML tables into rows keyed by column heading.
package htmltable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Convert returns one slice of rows per <table> in html, in document order.
// Headings come from the <th> cells of a table; a table without <th> uses its
// first row as headings. A cell whose heading is empty is keyed by its column
// index. Repeated headings get a numeric suffix ("Name", "Name_2").
func Convert(html string) ([][]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var tables [][]map[string]string
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		tables = append(tables, convertTable(table))
	})

	return tables, nil
}

func convertTable(table *goquery.Selection) []map[string]string {
	// nested tables are converted on their own
	rows := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.ParentsFiltered("table").First().IsSelection(table)
	})

	var headings []string
	rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		th := tr.ChildrenFiltered("th")
		if th.Length() == 0 {
			return true
		}
		headings = cellTexts(th)
		return false
	})

	records := make([]map[string]string, 0, rows.Length())
	rows.Each(func(i int, tr *goquery.Selection) {
		td := tr.ChildrenFiltered("td")
		if td.Length() == 0 {
			return
		}
		if headings == nil {
			headings = cellTexts(td)
			return
		}
		records = append(records, toRecord(headings, cellTexts(td)))
	})

	return records
}

func toRecord(headings, cells []string) map[string]string {
	keys := uniqueKeys(headings, len(cells))
	record := make(map[string]string, len(cells))
	for i, cell := range cells {
		record[keys[i]] = cell
	}
	return record
}

func uniqueKeys(headings []string, n int) []string {
	keys := make([]string, n)
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		key := ""
		if i < len(headings) {
			key = headings[i]
		}
		if key == "" {
			key = strconv.Itoa(i)
		}
		seen[key]++
		if c := seen[key]; c > 1 {
			key = key + "_" + strconv.Itoa(c)
		}
		keys[i] = key
	}
	return keys
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, strings.TrimSpace(c.Text()))
	})
	return out
}
