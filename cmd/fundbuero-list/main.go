package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/erazemk/fundbuero/internal/client"
	"github.com/erazemk/fundbuero/internal/listing"
	"github.com/erazemk/fundbuero/internal/model"
)

const usage = `Usage: fundbuero-list [flags]

Lists lost and found items.

Flags:
  -s, -server <url>       server address (default: http://localhost:8080)
  -q <text>               search titles and descriptions
  -category <name|id>     only this category
  -location <name|id>     only this location
  -date <YYYY-MM-DD>      only items dated on this day
  -type <lost|found>      only lost or only found items
  -tz <zone>              display time zone (default: local)
  -email, -password       log in to see reporters' contact details
  -open <id>              show one item with its reporter's contact
  -h, -help               show this help and exit
`

type options struct {
	server, query, category, location, date, kind, tz string
	email, password, open                             string
}

func main() {
	fs := flag.NewFlagSet("fundbuero-list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { fmt.Fprint(os.Stdout, usage) }

	var o options
	fs.StringVar(&o.server, "server", "http://localhost:8080", "")
	fs.StringVar(&o.server, "s", "http://localhost:8080", "")
	fs.StringVar(&o.query, "q", "", "")
	fs.StringVar(&o.category, "category", "", "")
	fs.StringVar(&o.location, "location", "", "")
	fs.StringVar(&o.date, "date", "", "")
	fs.StringVar(&o.kind, "type", "", "")
	fs.StringVar(&o.tz, "tz", "", "")
	fs.StringVar(&o.email, "email", "", "")
	fs.StringVar(&o.password, "password", "", "")
	fs.StringVar(&o.open, "open", "", "")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, o, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, out io.Writer) error {
	loc := time.Local
	if o.tz != "" {
		var err error
		if loc, err = time.LoadLocation(o.tz); err != nil {
			return fmt.Errorf("unknown time zone %q: %w", o.tz, err)
		}
	}
	if o.date != "" {
		if _, err := time.Parse(time.DateOnly, o.date); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		}
	}

	c, err := client.New(o.server)
	if err != nil {
		return err
	}
	if o.email != "" {
		if _, err := c.Login(ctx, o.email, o.password); err != nil {
			return fmt.Errorf("logging in: %w", err)
		}
	}

	view := listing.NewView(c, loc)
	if err := view.Load(ctx); err != nil {
		return err
	}

	s := view.State()
	view.Dispatch(listing.SearchChanged{Query: o.query})
	view.Dispatch(listing.CategoryChanged{ID: termID(s.Categories, o.category)})
	view.Dispatch(listing.LocationChanged{ID: termID(s.Locations, o.location)})
	view.Dispatch(listing.DateChanged{Date: o.date})
	s = view.Dispatch(listing.TypeChanged{Type: o.kind})

	if o.open != "" {
		return showDetail(ctx, view, o.open, out)
	}

	printCards(out, listing.Cards(s))
	return nil
}

// termID resolves a vocabulary name (any case) or ID to an ID.
func termID(terms []model.Term, nameOrID string) string {
	if nameOrID == "" {
		return ""
	}
	for _, t := range terms {
		if t.ID == nameOrID || strings.EqualFold(t.Name, nameOrID) {
			return t.ID
		}
	}
	// Unknown names match nothing, like an unknown ID.
	return nameOrID
}

func printCards(out io.Writer, cards []listing.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(out, "Keine Einträge gefunden.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYP\tTITEL\tKATEGORIE\tORT\tDATUM")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.TypeLabel, c.Title, c.Category, c.Location, c.Date)
	}
	tw.Flush()
}

func showDetail(ctx context.Context, view *listing.View, id string, out io.Writer) error {
	if err := view.Open(ctx, id); err != nil {
		if errors.Is(err, listing.ErrUnknownItem) {
			return fmt.Errorf("no listed item with id %s", id)
		}
		return err
	}

	s := view.State()
	if s.Redirect != "" {
		fmt.Fprintf(out, "Bitte melden Sie sich an (%s), um die Kontaktdaten zu sehen.\n", s.Redirect)
		return nil
	}

	card, ok := listing.SelectedCard(s)
	if !ok {
		return fmt.Errorf("item %s could not be opened", id)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Titel:\t%s\n", card.Title)
	fmt.Fprintf(tw, "Typ:\t%s\n", card.TypeLabel)
	fmt.Fprintf(tw, "Kategorie:\t%s\n", card.Category)
	fmt.Fprintf(tw, "Ort:\t%s\n", card.Location)
	fmt.Fprintf(tw, "Datum:\t%s\n", card.Date)
	if card.Description != "" {
		fmt.Fprintf(tw, "Beschreibung:\t%s\n", card.Description)
	}
	fmt.Fprintf(tw, "Bild:\t%s\n", card.Image)
	if s.Contact != nil {
		fmt.Fprintf(tw, "Gemeldet von:\t%s %s <%s>\n", s.Contact.Prename, s.Contact.Surname, s.Contact.Email)
	} else if s.ContactErr != nil {
		fmt.Fprintf(tw, "Gemeldet von:\t%s (%v)\n", listing.Unknown, s.ContactErr)
	}
	tw.Flush()

	view.Close()
	return nil
}
