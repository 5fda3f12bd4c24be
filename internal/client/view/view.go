// Package view renders catalog state as plain text. It never mutates the
// store; every function takes the data it prints.
package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/doccatalog/internal/client/models"
	"github.com/dmitrijs2005/doccatalog/internal/client/store"
)

// EmptyCatalog is printed instead of a table when there are no documents.
const EmptyCatalog = "No documents found"

const quotePreview = 60

var tableHeader = []string{"ID", "File Name", "Category", "From", "To", "Status"}

// RenderTable writes one row per document in the given order.
func RenderTable(w io.Writer, docs []models.DocumentRecord) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, EmptyCatalog)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader, "\t"))
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.FileName, d.Category, d.From(), d.To(), d.MigrationStatus())
	}
	return tw.Flush()
}

// RenderDocument writes the details of a single document.
func RenderDocument(w io.Writer, d models.DocumentRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", d.ID)
	fmt.Fprintf(tw, "File Name:\t%s\n", d.FileName)
	fmt.Fprintf(tw, "Category:\t%s\n", d.Category)
	fmt.Fprintf(tw, "From:\t%s\n", d.From())
	fmt.Fprintf(tw, "To:\t%s\n", d.To())
	if d.PageCount != nil {
		fmt.Fprintf(tw, "Pages:\t%d\n", *d.PageCount)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", d.MigrationStatus())
	return tw.Flush()
}

// RenderStatus writes the workflow status as a single line. Idle prints
// nothing.
func RenderStatus(w io.Writer, s store.WorkflowStatus) error {
	var err error
	switch s.Kind {
	case store.Loading:
		_, err = fmt.Fprintln(w, "Loading...")
	case store.Succeeded:
		_, err = fmt.Fprintln(w, s.Message)
	case store.Failed:
		_, err = fmt.Fprintf(w, "Error: %s\n", s.Message)
	}
	return err
}

// RenderQuotations writes quotations in sequence-number order as received,
// with the text collapsed to one line and shortened.
func RenderQuotations(w io.Writer, quotes []models.Quotation) error {
	if len(quotes) == 0 {
		_, err := fmt.Fprintln(w, "No quotations found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tMigrated\tText")
	for _, q := range quotes {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%s\n", q.SequenceNumber, q.ID, q.IsMigrated, preview(q.Text, quotePreview))
	}
	return tw.Flush()
}

func preview(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
