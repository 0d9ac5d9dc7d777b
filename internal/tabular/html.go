// internal/tabular/html.go
package tabular

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ExtractHTMLTables parses every <table> in an HTML document into a Table.
// The first row of each table becomes its provisional header; real header
// detection is PromoteHeader's job. Cells with a colspan are replicated
// into the spanned logical columns so downstream column-index heuristics
// see a stable column count.
func ExtractHTMLTables(data []byte) ([]Table, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var tables []Table
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if t, ok := tableFromNode(n); ok {
				tables = append(tables, t)
			}
			return // nested tables are noise in these exports
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return tables, nil
}

func tableFromNode(table *html.Node) (Table, bool) {
	var rows [][]string
	var walkRows func(n *html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, cellsFromRow(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)

	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return Table{}, false
	}
	return Table{Header: trimAll(rows[0]), Rows: rows[1:]}, true
}

func cellsFromRow(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		text := strings.Join(strings.Fields(nodeText(c)), " ")
		span := colspan(c)
		for i := 0; i < span; i++ {
			cells = append(cells, text)
		}
	}
	return cells
}

func colspan(n *html.Node) int {
	for _, a := range n.Attr {
		if a.Key == "colspan" {
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil && v > 1 {
				return v
			}
		}
	}
	return 1
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
