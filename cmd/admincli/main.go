// Command admincli is the terminal admin console for the storefront BFF.
// main wires configuration, session storage, logging and the BFF client,
// then dispatches one subcommand. All protected subcommands run behind the
// session guard.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"backoffice/internal/bff"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/metrics"
	"backoffice/internal/session"
	"backoffice/internal/session/guard"
	"backoffice/pkg/domain"
)

func main() {
	_ = godotenv.Load() //nolint:errcheck // a missing .env is fine

	cfg := config.FromEnv()

	var sink logger.Sink
	if len(cfg.LogSinkBrokers) > 0 && cfg.LogSinkTopic != "" {
		kafkaSink, err := logger.NewKafkaSink(cfg.LogSinkBrokers, cfg.LogSinkTopic)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log sink unavailable: %v\n", err)
		} else {
			defer kafkaSink.Close() //nolint:errcheck
			sink = kafkaSink
		}
	}

	log := logger.New(logger.Options{
		Development: cfg.Development,
		StateDir:    cfg.StateDir,
		Sink:        sink,
	})

	ctx := context.Background()

	var store session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			fatal("connect session store: %v", err)
		}
		defer redisStore.Close() //nolint:errcheck
		store = redisStore
	} else {
		fileStore, err := session.NewFileStore(cfg.StateDir)
		if err != nil {
			fatal("open session store: %v", err)
		}
		store = fileStore
	}

	client, err := bff.New(bff.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
		Store:   store,
		Logger:  log,
		Metrics: metrics.New(),
		OnSessionExpired: func() {
			fmt.Fprintln(os.Stderr, "session expired, please run: admincli login")
		},
	})
	if err != nil {
		fatal("init client: %v", err)
	}

	app := &app{cfg: cfg, log: log, store: store, client: client}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fatal("%v", err)
	}
}

type app struct {
	cfg    config.Client
	log    *logger.Logger
	store  session.Store
	client *bff.Client
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "verbose":
		return a.verbose(args)
	case "dashboard":
		return a.guarded(ctx, func() error { return a.dashboard(ctx, args) })
	case "users":
		return a.guarded(ctx, func() error { return a.users(ctx, args) })
	case "products":
		return a.guarded(ctx, func() error { return a.products(ctx, args) })
	case "orders":
		return a.guarded(ctx, func() error { return a.orders(ctx, args) })
	case "reviews":
		return a.guarded(ctx, func() error { return a.reviews(ctx, args) })
	case "inventory":
		return a.guarded(ctx, func() error { return a.inventory(ctx, args) })
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// guarded runs fn only once the session guard has reached Authenticated.
func (a *app) guarded(ctx context.Context, fn func() error) error {
	g := guard.New(a.store, a.client.Auth, a.log)
	fmt.Fprintln(os.Stderr, "verifying session...")
	if g.Check(ctx) != guard.StateAuthenticated {
		return fmt.Errorf("not signed in, run: admincli login <email>")
	}
	if u := g.User(); u != nil {
		a.log.UserAction("guarded command", map[string]any{"operator": u.Email})
	}
	return fn()
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: admincli login <email> [password]")
	}
	email := args[0]
	password := os.Getenv("BFF_PASSWORD")
	if len(args) > 1 {
		password = args[1]
	}

	res := a.client.Auth.Login(ctx, email, password)
	if !res.Success {
		return fmt.Errorf("login failed: %s", res.Message)
	}

	if err := a.store.Set(ctx, &session.Session{
		AccessToken:  res.Data.Token,
		RefreshToken: res.Data.RefreshToken,
		User:         res.Data.User,
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	fmt.Printf("signed in as %s (%s)\n", res.Data.User.Name, res.Data.User.Role)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	res := a.client.Auth.Logout(ctx)
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Println(res.Message)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	s, err := a.store.Get(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		fmt.Println("not signed in")
		return nil
	}
	res := a.client.Auth.Verify(ctx)
	if !res.Success {
		fmt.Println("session rejected:", res.Message)
		return nil
	}
	if s.User != nil {
		return printJSON(s.User)
	}
	fmt.Println("signed in (no cached profile)")
	return nil
}

func (a *app) verbose(args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return fmt.Errorf("usage: admincli verbose on|off")
	}
	a.log.SetVerbose(args[0] == "on")
	fmt.Println("verbose logging:", args[0])
	return nil
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "analytics" {
		period := "7d"
		if len(args) > 1 {
			period = args[1]
		}
		analytics, err := a.client.Dashboard.Analytics(ctx, period)
		if err != nil {
			return err
		}
		return printJSON(analytics)
	}
	ov, err := a.client.Dashboard.Overview(ctx)
	if err != nil {
		return err
	}
	return printJSON(ov)
}

func (a *app) users(ctx context.Context, args []string) error {
	switch sub(args) {
	case "list":
		page, err := a.client.Users.List(ctx, bff.UserListParams{Search: argAt(args, 1)})
		if err != nil {
			return err
		}
		return printJSON(page)
	case "get":
		u, err := a.client.Users.Get(ctx, argAt(args, 1))
		if err != nil {
			return err
		}
		return printJSON(u)
	case "status":
		status := domain.UserStatus(argAt(args, 2))
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q", argAt(args, 2))
		}
		u, err := a.client.Users.UpdateStatus(ctx, argAt(args, 1), status)
		if err != nil {
			return err
		}
		return printJSON(u)
	case "delete":
		return a.client.Users.Delete(ctx, argAt(args, 1))
	default:
		return fmt.Errorf("usage: admincli users list|get|status|delete ...")
	}
}

func (a *app) products(ctx context.Context, args []string) error {
	switch sub(args) {
	case "list":
		page, err := a.client.Products.List(ctx, bff.ProductListParams{Search: argAt(args, 1)})
		if err != nil {
			return err
		}
		return printJSON(page)
	case "get":
		p, err := a.client.Products.Get(ctx, argAt(args, 1))
		if err != nil {
			return err
		}
		return printJSON(p)
	default:
		return fmt.Errorf("usage: admincli products list|get ...")
	}
}

func (a *app) orders(ctx context.Context, args []string) error {
	switch sub(args) {
	case "list":
		page, err := a.client.Orders.List(ctx, bff.OrderListParams{Status: argAt(args, 1)})
		if err != nil {
			return err
		}
		return printJSON(page)
	case "get":
		o, err := a.client.Orders.Get(ctx, argAt(args, 1))
		if err != nil {
			return err
		}
		return printJSON(o)
	case "track":
		o, err := a.client.Orders.UpdateTracking(ctx, argAt(args, 1), argAt(args, 2))
		if err != nil {
			return err
		}
		return printJSON(o)
	case "note":
		o, err := a.client.Orders.AddNote(ctx, argAt(args, 1), argAt(args, 2))
		if err != nil {
			return err
		}
		return printJSON(o)
	default:
		return fmt.Errorf("usage: admincli orders list|get|track|note ...")
	}
}

func (a *app) reviews(ctx context.Context, args []string) error {
	switch sub(args) {
	case "list":
		page, err := a.client.Reviews.List(ctx, bff.ReviewListParams{Status: argAt(args, 1)})
		if err != nil {
			return err
		}
		return printJSON(page)
	case "approve", "reject":
		status := domain.ReviewStatusApproved
		if sub(args) == "reject" {
			status = domain.ReviewStatusRejected
		}
		r, err := a.client.Reviews.UpdateStatus(ctx, argAt(args, 1), status)
		if err != nil {
			return err
		}
		return printJSON(r)
	default:
		return fmt.Errorf("usage: admincli reviews list|approve|reject ...")
	}
}

func (a *app) inventory(ctx context.Context, args []string) error {
	switch sub(args) {
	case "list":
		page, err := a.client.Inventory.List(ctx, bff.InventoryListParams{LowStock: argAt(args, 1) == "low"})
		if err != nil {
			return err
		}
		return printJSON(page)
	case "adjust":
		qty, err := strconv.Atoi(argAt(args, 2))
		if err != nil {
			return fmt.Errorf("quantity must be an integer: %w", err)
		}
		item, err := a.client.Inventory.UpdateStock(ctx, argAt(args, 1), qty, argAt(args, 3))
		if err != nil {
			return err
		}
		return printJSON(item)
	case "movements":
		moves, err := a.client.Inventory.Movements(ctx, argAt(args, 1))
		if err != nil {
			return err
		}
		return printJSON(moves)
	default:
		return fmt.Errorf("usage: admincli inventory list|adjust|movements ...")
	}
}

func sub(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func argAt(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i]
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, `admincli - storefront admin console

commands:
  login <email> [password]   sign in (password may come from BFF_PASSWORD)
  logout                     revoke the refresh token and clear the session
  whoami                     show the signed-in operator
  verbose on|off             toggle persisted verbose logging
  dashboard [analytics [period]]
  users list|get|status|delete ...
  products list|get ...
  orders list|get|track|note ...
  reviews list|approve|reject ...
  inventory list|adjust|movements ...`)
}
