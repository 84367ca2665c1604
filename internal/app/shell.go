package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bistro/internal/controller"
	"github.com/vladislavdragonenkov/bistro/internal/domain"
	"github.com/vladislavdragonenkov/bistro/internal/menu"
	"github.com/vladislavdragonenkov/bistro/internal/ui"
)

// ErrQuit возвращается командой quit.
var ErrQuit = errors.New("quit")

const helpText = `commands:
  menu                          show the menu
  add <id|name> [price]         add one item (price in rupees for items not on the menu)
  remove <name>                 remove a line
  inc <name> | dec <name>       change quantity by one
  set name|table|phone <value>  fill checkout details
  order                         place the order
  show                          redraw the cart
  help                          this text
  quit                          exit
`

// Shell переводит текстовые команды в события контроллера корзины.
type Shell struct {
	ctrl    *controller.Controller
	term    *ui.Terminal
	catalog *menu.Catalog
	out     io.Writer
	logger  *log.Entry

	pending sync.WaitGroup
}

// NewShell создаёт интерпретатор команд.
func NewShell(ctrl *controller.Controller, term *ui.Terminal, catalog *menu.Catalog, out io.Writer, logger *log.Entry) *Shell {
	return &Shell{
		ctrl:    ctrl,
		term:    term,
		catalog: catalog,
		out:     out,
		logger:  logger,
	}
}

// Exec выполняет одну команду. Ошибки ввода печатаются и возвращаются.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.print(helpText)
	case "menu":
		s.printMenu()
	case "show":
		s.ctrl.Render()
	case "add":
		err = s.add(args)
	case "remove", "rm":
		err = s.withName(args, s.ctrl.RemoveFromCart)
	case "inc", "+":
		err = s.withName(args, func(name string) { s.ctrl.UpdateQuantity(name, 1) })
	case "dec", "-":
		err = s.withName(args, func(name string) { s.ctrl.UpdateQuantity(name, -1) })
	case "set":
		err = s.set(args)
	case "order":
		s.order(ctx)
	case "quit", "exit":
		return ErrQuit
	default:
		err = fmt.Errorf("unknown command %q, type help", cmd)
	}

	if err != nil {
		s.print("? " + err.Error() + "\n")
	}
	return err
}

// Wait ждёт завершения отправок, запущенных командой order.
func (s *Shell) Wait() {
	s.pending.Wait()
}

func (s *Shell) add(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <id|name> [price]")
	}

	// Последний аргумент-число трактуется как цена позиции вне меню.
	if len(args) >= 2 {
		if price, err := strconv.ParseFloat(args[len(args)-1], 64); err == nil {
			name := strings.Join(args[:len(args)-1], " ")
			return s.ctrl.AddToCart(name, domain.MinorFromMajor(price))
		}
	}

	item, err := s.catalog.Lookup(strings.Join(args, " "))
	if err != nil {
		return err
	}
	return s.ctrl.AddToCart(item.Name, item.PriceMinor)
}

func (s *Shell) withName(args []string, fn func(name string)) error {
	if len(args) == 0 {
		return errors.New("item name is required")
	}
	name := strings.Join(args, " ")
	if item, err := s.catalog.Lookup(name); err == nil {
		if _, inCart := s.ctrl.Cart().Find(name); !inCart {
			name = item.Name
		}
	}
	fn(name)
	return nil
}

func (s *Shell) set(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: set name|table|phone <value>")
	}
	field, err := ui.ParseCheckoutField(args[0])
	if err != nil {
		return err
	}
	s.term.SetField(field, strings.Join(args[1:], " "))
	return nil
}

// order отправляет заказ асинхронно, чтобы ввод оставался доступным.
func (s *Shell) order(ctx context.Context) {
	s.pending.Add(1)
	done := s.ctrl.PlaceOrderAsync(ctx)
	go func() {
		defer s.pending.Done()
		if err := <-done; err != nil {
			s.logger.WithError(err).Debug("order command finished with error")
		}
	}()
}

func (s *Shell) printMenu() {
	var b strings.Builder
	b.WriteString("---- menu ----\n")
	for _, item := range s.catalog.Items() {
		fmt.Fprintf(&b, "%2d. %-24s %s\n", item.ID, item.Name, domain.FormatMinor(item.PriceMinor))
	}
	s.print(b.String())
}

func (s *Shell) print(text string) {
	_, _ = io.WriteString(s.out, text)
}
