package content

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// page is the parsed form of a saved HTML page
type page struct {
	Title    string
	Keywords []string
	Body     string // Inner HTML of <body>
}

// parsePage reads the title, keywords and body of a saved HTML page.
// The title comes from <title> inside <head>, or the first <title>
// anywhere when the head has none.
func parsePage(r io.Reader) (*page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	p := &page{}

	titleSel := doc.Find("head title").First()
	if titleSel.Length() == 0 {
		titleSel = doc.Find("title").First()
	}
	p.Title = strings.Join(strings.Fields(titleSel.Text()), " ")

	doc.Find("meta").EachWithBreak(func(_ int, meta *goquery.Selection) bool {
		name, _ := meta.Attr("name")
		if !strings.EqualFold(name, "keywords") {
			return true
		}
		value, _ := meta.Attr("content")
		for _, kw := range strings.Split(value, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				p.Keywords = append(p.Keywords, kw)
			}
		}
		return false
	})

	body, err := doc.Find("body").First().Html()
	if err != nil {
		return nil, fmt.Errorf("render body: %w", err)
	}
	p.Body = body

	return p, nil
}
