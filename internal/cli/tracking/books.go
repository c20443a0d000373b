package tracking

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/cli"
)

type BookCmd struct {
	Add  BookAddCmd  `cmd:"" help:"Start a new book."`
	List BookListCmd `cmd:"" help:"List books and progress."`
}

type BookAddCmd struct {
	Title  string `arg:"" help:"Book title."`
	Pages  int    `short:"p" help:"Total pages." required:""`
	Author string `short:"a" help:"Author."`
}

func (c *BookAddCmd) Run(ctx *cli.Context) error {
	book, err := ctx.Tracker.AddBook(c.Title, c.Author, c.Pages, ctx.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Started %s (%d pages)\n", book.Title, book.TotalPages)
	return nil
}

type BookListCmd struct {
	Finished bool `short:"f" help:"Include finished books."`
}

func (c *BookListCmd) Run(ctx *cli.Context) error {
	shown := 0
	for _, b := range ctx.Tracker.Books() {
		if b.IsFinished() && !c.Finished {
			continue
		}
		shown++
		by := ""
		if b.Author != "" {
			by = " by " + b.Author
		}
		status := fmt.Sprintf("p. %d/%d (%.0f%%)", b.CurrentPage, b.TotalPages, b.Progress()*100)
		if b.IsFinished() {
			status = "finished " + b.FinishedAt.Format("2006-01-02")
		}
		fmt.Printf("- %s%s: %s\n", b.Title, by, status)
	}
	if shown == 0 {
		fmt.Println("No books in progress.")
	}
	return nil
}

type ReadCmd struct {
	Log ReadLogCmd `cmd:"" help:"Record a reading session." default:"withargs"`
}

type ReadLogCmd struct {
	Pages   int    `short:"p" help:"Pages read."`
	Minutes int    `short:"m" help:"Minutes read."`
	Book    string `short:"b" help:"Book ID or title to advance."`
}

func (c *ReadLogCmd) Run(ctx *cli.Context) error {
	session, err := ctx.Tracker.LogReading(strings.TrimSpace(c.Book), c.Pages, c.Minutes, ctx.Now())
	if err != nil {
		return err
	}
	parts := []string{}
	if session.Pages > 0 {
		parts = append(parts, fmt.Sprintf("%d pages", session.Pages))
	}
	if session.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", session.Minutes))
	}
	fmt.Printf("Logged reading: %s\n", strings.Join(parts, ", "))
	if session.BookID != "" {
		book, err := ctx.Tracker.FindBook(session.BookID)
		if err == nil && book.IsFinished() {
			fmt.Printf("Finished %s!\n", book.Title)
		}
	}
	return nil
}
