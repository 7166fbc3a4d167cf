package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/additem"
	"github.com/AntonStoeckl/library-circulation-go/features/command/extendloan"
	"github.com/AntonStoeckl/library-circulation-go/features/command/lenditem"
	"github.com/AntonStoeckl/library-circulation-go/features/command/registerreader"
	"github.com/AntonStoeckl/library-circulation-go/features/command/returnitem"
	"github.com/AntonStoeckl/library-circulation-go/features/query/itemsincategory"
	"github.com/AntonStoeckl/library-circulation-go/features/query/loanreport"
	"github.com/AntonStoeckl/library-circulation-go/features/query/searchitems"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

const dateLayout = "2006-01-02"

const (
	logMsgCommandHandled = "command handled"
	logMsgQueryHandled   = "query handled"
)

const (
	logAttrCommandType = "command_type"
	logAttrQueryType   = "query_type"
	logAttrError       = "error"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("wrong number of arguments")
)

// app binds the use-case handlers to the command line.
type app struct {
	library   *shell.Library
	librarian *core.Librarian
	out       io.Writer
	now       func() time.Time
	logger    shell.Logger
}

func newApp(library *shell.Library, librarian *core.Librarian, out io.Writer, now func() time.Time, logger shell.Logger) app {
	return app{library: library, librarian: librarian, out: out, now: now, logger: logger}
}

// dispatch runs one command and reports whether it changed the library state.
func (a app) dispatch(ctx context.Context, command string, args []string) (bool, error) {
	switch command {
	case "add-book":
		return true, a.addBook(ctx, args)
	case "add-magazine":
		return true, a.addMagazine(ctx, args)
	case "register":
		return true, a.register(ctx, args)
	case "lend":
		return true, a.lend(ctx, args)
	case "return":
		return true, a.returnItem(ctx, args)
	case "extend":
		return true, a.extend(ctx, args)
	case "search":
		return false, a.search(ctx, args)
	case "category":
		return false, a.category(ctx, args)
	case "report":
		return false, a.report(ctx, args)
	case "books":
		return false, a.books(args)
	case "magazines":
		return false, a.magazines(args)
	case "readers":
		return false, a.readers(args)
	default:
		return false, errors.Join(errUnknownCommand, errors.New(command))
	}
}

func (a app) addBook(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return usage("add-book <title> <author> <genre> <year> [category...]")
	}

	year, err := strconv.Atoi(args[3])
	if err != nil {
		return errors.Join(core.ErrInvalidArgument, err)
	}

	command := additem.BuildBookCommand(args[0], args[1], args[2], year, args[4:]...)
	item, err := additem.NewCommandHandler(a.library).Handle(ctx, command)
	a.logHandled(logMsgCommandHandled, logAttrCommandType, command.CommandType(), err)
	if err != nil {
		return err
	}

	return a.printf("Added book %s\n", item.ID())
}

func (a app) addMagazine(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return usage("add-magazine <title> <year> <issue> <publisher> [category...]")
	}

	year, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Join(core.ErrInvalidArgument, err)
	}

	issue, err := strconv.Atoi(args[2])
	if err != nil {
		return errors.Join(core.ErrInvalidArgument, err)
	}

	command := additem.BuildMagazineCommand(args[0], year, issue, args[3], args[4:]...)
	item, err := additem.NewCommandHandler(a.library).Handle(ctx, command)
	a.logHandled(logMsgCommandHandled, logAttrCommandType, command.CommandType(), err)
	if err != nil {
		return err
	}

	return a.printf("Added magazine %s\n", item.ID())
}

func (a app) register(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("register <first name> <last name>")
	}

	command := registerreader.BuildCommand(args[0], args[1])
	user, err := registerreader.NewCommandHandler(a.library).Handle(ctx, command)
	a.logHandled(logMsgCommandHandled, logAttrCommandType, command.CommandType(), err)
	if err != nil {
		return err
	}

	return a.printf("Registered reader %s\n", user.ID())
}

func (a app) lend(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("lend <item id> <reader id>")
	}

	command := lenditem.BuildCommand(args[0], args[1], a.librarian.ID())
	err := lenditem.NewCommandHandler(a.library).Handle(ctx, command)
	a.logHandled(logMsgCommandHandled, logAttrCommandType, command.CommandType(), err)
	if err != nil {
		return err
	}

	return a.printLastTransaction()
}

func (a app) returnItem(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("return <item id> <reader id>")
	}

	command := returnitem.BuildCommand(args[0], args[1], a.librarian.ID())
	err := returnitem.NewCommandHandler(a.library).Handle(ctx, command)
	a.logHandled(logMsgCommandHandled, logAttrCommandType, command.CommandType(), err)
	if err != nil {
		return err
	}

	return a.printLastTransaction()
}

func (a app) extend(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usage("extend <item id> <reader id> <days>")
	}

	days, err := strconv.Atoi(args[2])
	if err != nil {
		return errors.Join(core.ErrInvalidArgument, err)
	}

	command := extendloan.BuildCommand(args[0], args[1], a.librarian.ID(), days)
	err = extendloan.NewCommandHandler(a.library).Handle(ctx, command)
	a.logHandled(logMsgCommandHandled, logAttrCommandType, command.CommandType(), err)
	if err != nil {
		return err
	}

	return a.printLastTransaction()
}

func (a app) search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("search <text>")
	}

	query := searchitems.BuildQuery(strings.Join(args, " "))
	result, err := searchitems.NewQueryHandler(a.library).Handle(ctx, query)
	a.logHandled(logMsgQueryHandled, logAttrQueryType, query.QueryType(), err)
	if err != nil {
		return err
	}

	return a.printItemInfos(result.Items)
}

func (a app) category(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("category <name>")
	}

	query := itemsincategory.BuildQuery(args[0])
	result, err := itemsincategory.NewQueryHandler(a.library).Handle(ctx, query)
	a.logHandled(logMsgQueryHandled, logAttrQueryType, query.QueryType(), err)
	if err != nil {
		return err
	}

	return a.printItemInfos(result.Items)
}

func (a app) report(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usage("report")
	}

	query := loanreport.BuildQuery()
	result, err := loanreport.NewQueryHandler(a.library).Handle(ctx, query)
	a.logHandled(logMsgQueryHandled, logAttrQueryType, query.QueryType(), err)
	if err != nil {
		return err
	}

	return a.printf("%s", result.Text())
}

func (a app) books(args []string) error {
	if len(args) != 0 {
		return usage("books")
	}

	for _, book := range a.library.Books() {
		if err := a.printf("%s  %s by %s, %s (%d) %s\n",
			book.ID(), book.Title(), book.Author(), book.Genre(), book.YearOfPublication(), a.loanStatus(book)); err != nil {
			return err
		}
	}

	return nil
}

func (a app) magazines(args []string) error {
	if len(args) != 0 {
		return usage("magazines")
	}

	for _, magazine := range a.library.Magazines() {
		if err := a.printf("%s  %s #%d, %s (%d) %s\n",
			magazine.ID(), magazine.Title(), magazine.IssueNumber(), magazine.Publisher(),
			magazine.YearOfPublication(), a.loanStatus(magazine)); err != nil {
			return err
		}
	}

	return nil
}

func (a app) readers(args []string) error {
	if len(args) != 0 {
		return usage("readers")
	}

	for _, user := range a.library.Users() {
		if err := a.printf("%s  %s, %d borrowed\n", user.ID(), user.FullName(), user.BorrowedCount()); err != nil {
			return err
		}
	}

	return nil
}

func (a app) loanStatus(item core.Loanable) string {
	switch {
	case item.IsAvailable():
		return "[available]"
	case item.IsOverdue(a.now()):
		return fmt.Sprintf("[overdue since %s]", item.DueDate().Format(dateLayout))
	default:
		return fmt.Sprintf("[due %s]", item.DueDate().Format(dateLayout))
	}
}

func (a app) printItemInfos(items []searchitems.ItemInfo) error {
	for _, item := range items {
		status := "available"
		if !item.Available {
			status = "lent"
		}

		if err := a.printf("%s  %s %s (%d) [%s]\n",
			item.ItemID, strings.ToLower(string(item.Kind)), item.Title, item.YearOfPublication, status); err != nil {
			return err
		}
	}

	return nil
}

func (a app) printLastTransaction() error {
	transactions := a.librarian.Transactions()
	if len(transactions) == 0 {
		return nil
	}

	return a.printf("%s\n", transactions[len(transactions)-1])
}

func (a app) logHandled(msg string, typeAttr string, typeName string, err error) {
	if err != nil {
		a.logger.Debug(msg, typeAttr, typeName, logAttrError, err.Error())
		return
	}

	a.logger.Debug(msg, typeAttr, typeName)
}

func (a app) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(a.out, format, args...)

	return err
}

func usage(synopsis string) error {
	return errors.Join(errUsage, errors.New("usage: library [flags] "+synopsis))
}
