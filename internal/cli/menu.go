package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/historical-temps/internal/history"
)

// Loader builds a record for a postal code with the default date range.
type Loader func(ctx context.Context, postalCode string) (*history.Record, error)

// Session is the menu state threaded through every action. Slots are nil until
// loaded.
type Session struct {
	Datasets [2]*history.Record
}

// topListSize is how many days the "highest historical dates" option lists.
const topListSize = 5

var validate = validator.New()

// Menu drives the interactive console loop.
type Menu struct {
	in   *bufio.Scanner
	out  io.Writer
	load Loader
}

func NewMenu(in io.Reader, out io.Writer, load Loader) *Menu {
	return &Menu{
		in:   bufio.NewScanner(in),
		out:  out,
		load: load,
	}
}

// Run greets the user and serves menu choices until quit, end of input, or
// ctx is cancelled. It returns the final session.
func (m *Menu) Run(ctx context.Context) Session {
	var s Session

	name, ok := m.prompt("Please enter your name: ")
	if !ok {
		return s
	}
	if ctx.Err() == nil {
		m.printf("Hi %s, let's explore some historical temperatures.\n\n", name)
	}

	for ctx.Err() == nil {
		m.printMenu(s)
		choice, ok := m.prompt("What is your choice? ")
		if !ok || ctx.Err() != nil {
			break
		}
		var quit bool
		if s, quit = m.dispatch(ctx, s, choice); quit {
			break
		}
	}

	m.printf("Goodbye!  Thank you for using the database\n")
	return s
}

// dispatch runs one menu choice; quit is true for any input that parses to 9.
func (m *Menu) dispatch(ctx context.Context, s Session, choice string) (next Session, quit bool) {
	n, err := strconv.Atoi(choice)
	if err != nil {
		m.printf("Please enter a number only\n")
		return s, false
	}

	switch n {
	case 1:
		return m.loadDataset(ctx, s, 0), false
	case 2:
		return m.loadDataset(ctx, s, 1), false
	case 3:
		return m.compareAverages(s), false
	case 4:
		return m.printDaysAbove(s), false
	case 5:
		return m.printTopDays(s), false
	case 6:
		return m.changeDates(ctx, s, 0), false
	case 7:
		return m.changeDates(ctx, s, 1), false
	case 9:
		return s, true
	default:
		m.printf("That wasn't a valid selection\n")
		return s, false
	}
}

func (m *Menu) printMenu(s Session) {
	m.printf("Main Menu\n")
	for i, label := range []string{"one", "two"} {
		if r := s.Datasets[i]; r != nil {
			m.printf("%d - Replace %s\n", i+1, r.Location().Name)
		} else {
			m.printf("%d - Load dataset %s\n", i+1, label)
		}
	}
	m.printf("3 - Compare average temperatures\n")
	m.printf("4 - Dates above threshold temperature\n")
	m.printf("5 - Highest historical dates\n")
	m.printf("6 - Change start and end dates for dataset one\n")
	m.printf("7 - Change start and end dates for dataset two\n")
	m.printf("9 - Quit\n")
}

// loadDataset replaces the slot only when the new record loads; a failed load
// keeps whatever was there.
func (m *Menu) loadDataset(ctx context.Context, s Session, slot int) Session {
	code, ok := m.prompt("Please enter a zip code: ")
	if !ok {
		return s
	}
	if err := validate.Var(code, "required,alphanum,max=10"); err != nil {
		m.printf("Please enter a valid zip code\n")
		return s
	}

	r, err := m.load(ctx, code)
	if err != nil {
		m.printf("Data could not be loaded. Please check that the zip code is " +
			"correct and that you have a working internet connection.\n")
		return s
	}
	s.Datasets[slot] = r
	return s
}

func (m *Menu) compareAverages(s Session) Session {
	if s.Datasets[0] == nil || s.Datasets[1] == nil {
		m.printf("Please load two datasets first\n")
		return s
	}
	for _, r := range s.Datasets {
		avg, err := r.Average()
		if errors.Is(err, history.ErrEmptySeries) {
			m.printf("There are no temperatures on record for %s\n", r.Location().Name)
			continue
		}
		m.printf("The average maximum temperature for %s was %.2f degrees Celsius\n", r.Location().Name, avg)
	}
	return s
}

func (m *Menu) printDaysAbove(s Session) Session {
	r := s.Datasets[0]
	if r == nil {
		m.printf("Please load this dataset first\n")
		return s
	}

	input, ok := m.prompt("List days above what temperature? ")
	if !ok {
		return s
	}
	threshold, err := strconv.ParseFloat(input, 64)
	if err != nil {
		m.printf("Please enter a valid temperature\n")
		return s
	}

	days := r.DaysAbove(threshold)
	m.printf("There are %d days above %s degrees in %s\n",
		len(days), strconv.FormatFloat(threshold, 'f', -1, 64), r.Location().Name)
	for _, d := range days {
		m.printf("%s: %.1f\n", d.Date, d.Temperature)
	}
	return s
}

func (m *Menu) printTopDays(s Session) Session {
	r := s.Datasets[0]
	if r == nil {
		m.printf("Please load this dataset first\n")
		return s
	}

	m.printf("Following are the hottest five days in %s on record from\n%s to %s\n",
		r.Location().Name, r.Start(), r.End())
	for _, d := range r.TopDays(topListSize) {
		m.printf("Date %s: %.1f\n", d.Date, d.Temperature)
	}
	return s
}

// changeDates asks for a new start and then a new end date. An empty answer
// keeps the current bound. Each change commits or rolls back on its own.
func (m *Menu) changeDates(ctx context.Context, s Session, slot int) Session {
	r := s.Datasets[slot]
	if r == nil {
		m.printf("Please load this dataset first\n")
		return s
	}

	if date, ok := m.promptDate("Please enter a new start date (YYYY-MM-DD): "); ok {
		if err := r.SetStart(ctx, date); err != nil {
			m.printf("Start date could not be changed. It remains %s.\n", r.Start())
		}
	}

	if date, ok := m.promptDate("Please enter a new end date (YYYY-MM-DD): "); ok {
		if err := r.SetEnd(ctx, date); err != nil {
			m.printf("End date could not be changed. Please check that the end "+
				"date is in the correct format and is not before the start date "+
				"of %s. It remains %s.\n", r.Start(), r.End())
		}
	}
	return s
}

// promptDate returns ok=false for an empty answer, end of input, or a value
// that is not a YYYY-MM-DD date.
func (m *Menu) promptDate(msg string) (string, bool) {
	date, ok := m.prompt(msg)
	if !ok || date == "" {
		return "", false
	}
	if err := validate.Var(date, "datetime=2006-01-02"); err != nil {
		m.printf("%q is not a date in YYYY-MM-DD format\n", date)
		return "", false
	}
	return date, true
}

func (m *Menu) prompt(msg string) (string, bool) {
	m.printf("%s", msg)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
