// Package console is the terminal frontend of the floor client. It is a thin
// driver over the operational core: every command maps to one core
// operation, and queued notifications are flushed after each command.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/floor/internal/floor"
)

// retryDelay paces identity-gate retries that consumed no input, so a down
// backend is re-polled at a human cadence instead of in a tight loop.
const retryDelay = 2 * time.Second

type Deps struct {
	Menu     *floor.MenuState
	Cart     *floor.Cart
	Identity *floor.IdentityHolder
	Pipeline *floor.Pipeline
	Comandas *floor.Comandas
	Overview *floor.OverviewBoard
	Queue    *floor.PrintQueue
	Backend  floor.Backend
	Notifier *floor.Notifier
	Logout   func(ctx context.Context)
}

type Console struct {
	deps   Deps
	in     *bufio.Scanner
	out    io.Writer
	logger apt.Logger

	retryDelay time.Duration

	lastTables   []floor.OverviewRow
	lastProducts []floor.MenuProduct
	lastJobs     []floor.PrintJob
}

func New(deps Deps, in io.Reader, out io.Writer, logger apt.Logger) *Console {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Console{
		deps:       deps,
		in:         bufio.NewScanner(in),
		out:        out,
		logger:     logger,
		retryDelay: retryDelay,
	}
}

// Run reads commands until EOF, "quit" or context cancellation.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "floor client ready. Type 'help' for commands.")
	if !c.requireIdentity(ctx) {
		return ctx.Err()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(c.out, "> ")
		// Scan blocks until a line or EOF; cancellation is observed between
		// commands, which is as prompt as a line-oriented terminal gets.
		if !c.in.Scan() {
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			return nil
		}

		c.dispatch(ctx, cmd, args, line)
		c.flushNotifications()
	}
}

func (c *Console) dispatch(ctx context.Context, cmd string, args []string, line string) {
	switch cmd {
	case "help":
		c.printHelp()
	case "tables":
		c.showTables(ctx)
	case "table":
		c.showTable(ctx, args)
	case "close":
		c.closeComanda(ctx, args)
	case "menu":
		c.showMenu()
	case "products":
		c.showProducts(args)
	case "search":
		c.deps.Cart.SetSearch(strings.TrimSpace(strings.TrimPrefix(line, "search")))
	case "add":
		c.adjust(args, +1)
	case "sub":
		c.adjust(args, -1)
	case "cart":
		c.showCart()
	case "note":
		c.deps.Cart.SetNote(strings.TrimSpace(strings.TrimPrefix(line, "note")))
	case "clear":
		c.deps.Cart.Clear()
		fmt.Fprintln(c.out, "cart cleared")
	case "send":
		c.send(ctx, args)
	case "waiter":
		c.waiter(ctx, args)
	case "day":
		c.showDay(ctx, args)
	case "jobs":
		c.showJobs(ctx)
	case "printed":
		c.markPrinted(ctx, args)
	case "logout":
		if c.deps.Logout != nil {
			c.deps.Logout(ctx)
		}
	default:
		fmt.Fprintf(c.out, "unknown command %q, try 'help'\n", cmd)
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `commands:
  tables                 floor overview (free/open + partial totals)
  table <n>              comanda detail for table n
  close <n>              close the comanda on table n
  menu                   list menu categories
  products <n>           list products of category n (search filter applies)
  search <text>          set the product search filter
  add <n> | sub <n>      change quantity of listed product n
  cart                   show cart snapshot and total
  note <text>            set the order note
  clear                  reset cart, note and search
  send <n>               submit the cart against table n
  waiter [clear]         select or clear the operational waiter
  day [open|closed] [q]  today's comandas
  jobs                   pending kitchen print jobs
  printed <n>            mark listed job n as printed
  logout                 end session (clears waiter selection)
  quit
`)
}

func (c *Console) flushNotifications() {
	if c.deps.Notifier == nil {
		return
	}
	for _, n := range c.deps.Notifier.Drain() {
		if n.Message != "" {
			fmt.Fprintf(c.out, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
		} else {
			fmt.Fprintf(c.out, "[%s] %s\n", n.Level, n.Title)
		}
	}
}

type selectResult int

const (
	waiterSelected selectResult = iota
	// selectRetry consumed a line of input; retrying immediately is safe.
	selectRetry
	// selectUnavailable consumed no input (down backend, empty roster); the
	// retry must be paced or the gate spins against the failure.
	selectUnavailable
	// selectAbort means the input is exhausted; the flow cannot complete.
	selectAbort
)

// requireIdentity runs the selection flow when no operational waiter is set.
// The flow cannot be dismissed until an identity exists, matching the
// submission gate, but it stays abortable: cancellation and input EOF end it
// with false so the caller can wind down instead of spinning.
func (c *Console) requireIdentity(ctx context.Context) bool {
	if _, ok := c.deps.Identity.Current(); ok {
		return true
	}
	fmt.Fprintln(c.out, "select the operational waiter before placing orders.")
	for {
		if ctx.Err() != nil {
			return false
		}
		switch c.selectWaiter(ctx) {
		case waiterSelected:
			return true
		case selectAbort:
			return false
		case selectUnavailable:
			select {
			case <-ctx.Done():
				return false
			case <-time.After(c.retryDelay):
			}
		}
		fmt.Fprintln(c.out, "a waiter must be selected to continue.")
	}
}

func (c *Console) selectWaiter(ctx context.Context) selectResult {
	waiters, err := c.deps.Backend.FetchWaiters(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "could not load waiters: %v\n", err)
		return selectUnavailable
	}
	if len(waiters) == 0 {
		fmt.Fprintln(c.out, "no active waiters registered. Ask a manager to add one.")
		return selectUnavailable
	}
	for i, w := range waiters {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, w.Name)
	}
	fmt.Fprint(c.out, "waiter #: ")
	if !c.in.Scan() {
		return selectAbort
	}
	idx, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
	if err != nil || idx < 1 || idx > len(waiters) {
		fmt.Fprintln(c.out, "invalid selection")
		return selectRetry
	}
	w := waiters[idx-1]
	if err := c.deps.Identity.Set(w.ID, w.Name); err != nil {
		fmt.Fprintf(c.out, "could not select waiter: %v\n", err)
		return selectRetry
	}
	fmt.Fprintf(c.out, "selected: %s\n", w.Name)
	return waiterSelected
}

func (c *Console) waiter(ctx context.Context, args []string) {
	if len(args) > 0 && args[0] == "clear" {
		if err := c.deps.Identity.Clear(); err != nil {
			fmt.Fprintf(c.out, "could not clear selection: %v\n", err)
		}
		return
	}
	c.selectWaiter(ctx)
}

func (c *Console) showTables(ctx context.Context) {
	if err := c.deps.Overview.Refresh(ctx); err != nil && !c.deps.Overview.Loaded() {
		fmt.Fprintf(c.out, "could not load overview: %v\n", err)
		return
	}
	c.lastTables = c.deps.Overview.Rows()
	for i, r := range c.lastTables {
		state := "free"
		total := ""
		if r.ComandaOpen != nil {
			state = "open"
			total = "  " + floor.FormatBRL(r.ComandaOpen.PartialTotal)
		}
		fmt.Fprintf(c.out, "  %d. table %-10s %s%s\n", i+1, r.Table.Name, state, total)
	}
	fmt.Fprintf(c.out, "%d open comanda(s)\n", c.deps.Overview.OpenCount())
}

func (c *Console) pickTable(args []string) (floor.OverviewRow, bool) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "table number required, run 'tables' first")
		return floor.OverviewRow{}, false
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 1 || idx > len(c.lastTables) {
		fmt.Fprintln(c.out, "invalid table number, run 'tables' first")
		return floor.OverviewRow{}, false
	}
	return c.lastTables[idx-1], true
}

func (c *Console) showTable(ctx context.Context, args []string) {
	row, ok := c.pickTable(args)
	if !ok {
		return
	}
	if row.ComandaOpen == nil {
		fmt.Fprintf(c.out, "table %s is free. Submitting an order opens the comanda automatically.\n", row.Table.Name)
		return
	}

	detail, err := c.deps.Comandas.LoadDetail(ctx, row.ComandaOpen.ID)
	if err != nil {
		return
	}
	fmt.Fprintf(c.out, "comanda %s  opened %s\n", detail.Comanda.ID, detail.Comanda.OpenedAt.Format("15:04"))
	for _, o := range detail.Orders {
		who := "-"
		if o.OperationalWaiter != nil {
			who = o.OperationalWaiter.Name
		}
		fmt.Fprintf(c.out, "  order by %s", who)
		if o.Note != "" {
			fmt.Fprintf(c.out, "  note: %s", o.Note)
		}
		fmt.Fprintln(c.out)
		for _, it := range o.Items {
			fmt.Fprintf(c.out, "    %dx %-24s %s\n", it.Quantity, it.ProductName, floor.FormatBRL(it.Subtotal))
		}
	}
	fmt.Fprintf(c.out, "partial total: %s\n", floor.FormatBRL(row.ComandaOpen.PartialTotal))
}

func (c *Console) closeComanda(ctx context.Context, args []string) {
	row, ok := c.pickTable(args)
	if !ok {
		return
	}
	if row.ComandaOpen == nil {
		fmt.Fprintf(c.out, "table %s has no open comanda\n", row.Table.Name)
		return
	}
	if !c.confirm(fmt.Sprintf("close comanda on table %s? This blocks new orders on it.", row.Table.Name)) {
		return
	}
	if closed, err := c.deps.Comandas.Close(ctx, row.ComandaOpen.ID); err == nil {
		fmt.Fprintf(c.out, "closed. final total: %s\n", floor.FormatBRL(closed.TotalAmount))
	}
}

func (c *Console) confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (c *Console) showMenu() {
	cats := c.deps.Menu.Categories()
	if len(cats) == 0 {
		fmt.Fprintln(c.out, "no active categories/products")
		return
	}
	for i, cat := range cats {
		fmt.Fprintf(c.out, "  %d. %s (%d products)\n", i+1, cat.Name, len(cat.Products))
	}
}

func (c *Console) showProducts(args []string) {
	cats := c.deps.Menu.Categories()
	if len(args) == 0 {
		fmt.Fprintln(c.out, "category number required, run 'menu' first")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 1 || idx > len(cats) {
		fmt.Fprintln(c.out, "invalid category number")
		return
	}
	cat := cats[idx-1]
	c.lastProducts = c.deps.Menu.VisibleProducts(cat.ID, c.deps.Cart.Search())
	for i, p := range c.lastProducts {
		qty := c.deps.Cart.Quantity(p.ID)
		fmt.Fprintf(c.out, "  %d. %-24s %s  (in cart: %d)\n", i+1, p.Name, floor.FormatBRL(p.Price), qty)
	}
}

func (c *Console) adjust(args []string, delta int) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "product number required, run 'products' first")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 1 || idx > len(c.lastProducts) {
		fmt.Fprintln(c.out, "invalid product number, run 'products' first")
		return
	}
	p := c.lastProducts[idx-1]
	if delta > 0 {
		c.deps.Cart.Increment(p.ID)
	} else {
		c.deps.Cart.Decrement(p.ID)
	}
	fmt.Fprintf(c.out, "%s: %d\n", p.Name, c.deps.Cart.Quantity(p.ID))
}

func (c *Console) showCart() {
	items := c.deps.Cart.Snapshot()
	if len(items) == 0 {
		fmt.Fprintln(c.out, "no items selected")
		return
	}
	for _, it := range items {
		fmt.Fprintf(c.out, "  %dx %-24s %s\n", it.Quantity, it.Name, floor.FormatBRL(it.UnitPrice))
	}
	fmt.Fprintf(c.out, "total: %s\n", floor.FormatBRL(c.deps.Cart.Total()))
	if note := c.deps.Cart.Note(); note != "" {
		fmt.Fprintf(c.out, "note: %s\n", note)
	}
}

func (c *Console) send(ctx context.Context, args []string) {
	row, ok := c.pickTable(args)
	if !ok {
		return
	}
	if !c.confirm("send the order to the kitchen?") {
		return
	}

	receipt, err := c.deps.Pipeline.Submit(ctx, row.Table.ID)
	if errors.Is(err, floor.ErrIdentityRequired) {
		if c.requireIdentity(ctx) {
			fmt.Fprintln(c.out, "waiter selected, run 'send' again.")
		}
		return
	}
	if err != nil {
		return
	}
	fmt.Fprintf(c.out, "order %s on comanda %s\n", receipt.OrderID, receipt.ComandaID)
}

func (c *Console) showDay(ctx context.Context, args []string) {
	rows, err := c.deps.Comandas.Day(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "could not load day log: %v\n", err)
		return
	}

	filter := floor.DayAll
	search := ""
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "open":
			filter = floor.DayOpen
		case "closed":
			filter = floor.DayClosed
		default:
			search = args[0]
		}
	}
	if len(args) > 1 {
		search = strings.Join(args[1:], " ")
	}

	for _, r := range floor.FilterDay(rows, filter, search) {
		fmt.Fprintf(c.out, "  table %-10s %-6s %s\n", r.Table.Name, r.Status, floor.FormatBRL(r.Total))
	}
}

func (c *Console) showJobs(ctx context.Context) {
	if err := c.deps.Queue.Refresh(ctx); err != nil && !c.deps.Queue.Loaded() {
		fmt.Fprintf(c.out, "could not load print jobs: %v\n", err)
		return
	}
	c.lastJobs = c.deps.Queue.Pending()
	if len(c.lastJobs) == 0 {
		fmt.Fprintln(c.out, "no pending jobs")
		return
	}
	for i, j := range c.lastJobs {
		table := "-"
		if j.Payload.Table != nil {
			table = j.Payload.Table.Name
		}
		who := "-"
		if j.Payload.OperationalWaiter != nil {
			who = j.Payload.OperationalWaiter.Name
		}
		fmt.Fprintf(c.out, "  %d. table %-10s waiter %-16s %s\n", i+1, table, who, j.CreatedAt.Format("15:04"))
		for _, it := range j.Payload.Items {
			fmt.Fprintf(c.out, "       %dx %-24s %s\n", it.Quantity, it.Name, floor.FormatBRL(it.Subtotal))
		}
		if j.Payload.Note != "" {
			fmt.Fprintf(c.out, "       note: %s\n", j.Payload.Note)
		}
	}
}

func (c *Console) markPrinted(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "job number required, run 'jobs' first")
		return
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 1 || idx > len(c.lastJobs) {
		fmt.Fprintln(c.out, "invalid job number, run 'jobs' first")
		return
	}
	_ = c.deps.Queue.MarkPrinted(ctx, c.lastJobs[idx-1].ID)
	c.lastJobs = c.deps.Queue.Pending()
}
