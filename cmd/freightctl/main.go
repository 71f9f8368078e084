// Command freightctl is a terminal client for the freightdesk API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/freightdesk/freightdesk/internal/apiclient"
	"github.com/freightdesk/freightdesk/internal/ui"
)

const usageText = `usage: freightctl <command> [args]

commands:
  login <email>            sign in and store the token
  logout                   revoke and forget the token
  whoami                   print the signed-in user
  list <resource> [query]  print the first page of a resource
  pick <resource>          choose a record interactively

resources: %s
`

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "freightctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("freightctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", envOr("FREIGHTDESK_API_URL", apiclient.DefaultBaseURL), "API base URL")
	page := fs.Int("page", 1, "page for list")
	fs.Usage = func() { fmt.Fprintf(stderr, usageText, strings.Join(resourceNames(), ", ")) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	path, err := apiclient.DefaultCredentialPath()
	if err != nil {
		return err
	}
	store, err := apiclient.NewCredentialStore(path)
	if err != nil {
		return err
	}
	client, err := apiclient.New(apiclient.Config{
		BaseURL:     *apiURL,
		Credentials: store,
		Notifier:    apiclient.WriterNotifier{W: stderr},
		OnLogout:    func() { fmt.Fprintln(stderr, "Session expired, run freightctl login") },
		Logger:      slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	})
	if err != nil {
		return err
	}
	bindings := newBindings(apiclient.NewResources(client))

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return login(ctx, client, rest, stdout, stderr)
	case "logout":
		if err := client.Logout(ctx); err != nil {
			fmt.Fprintln(stderr, "server logout failed:", err)
		}
		fmt.Fprintln(stdout, "Logged out")
		return nil
	case "whoami":
		u, err := client.Profile(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s <%s> %s\n", u.Name, u.Email, u.Role)
		return nil
	case "list":
		b, err := bindingFor(bindings, rest)
		if err != nil {
			return err
		}
		params := apiclient.ListParams{Page: *page}
		if len(rest) > 1 {
			params.Search = strings.Join(rest[1:], " ")
		}
		return list(ctx, b, params, stdout)
	case "pick":
		b, err := bindingFor(bindings, rest)
		if err != nil {
			return err
		}
		return pick(ctx, b, stdout)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func login(ctx context.Context, client *apiclient.Client, args []string, stdout, stderr io.Writer) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		fmt.Fprint(stderr, "Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		email = strings.TrimSpace(line)
	}
	fmt.Fprint(stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	u, err := client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Logged in as %s (%s)\n", u.Name, u.Role)
	return nil
}

func list(ctx context.Context, b binding, params apiclient.ListParams, stdout io.Writer) error {
	rows, meta, err := b.list(ctx, params)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(stdout, "No records found")
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.ID, r.Name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s (page %d of %d)\n", ui.ShowingSummary(meta), meta.Page, max(meta.TotalPages, 1))
	return nil
}

func bindingFor(bindings map[string]binding, args []string) (binding, error) {
	if len(args) == 0 {
		return binding{}, errors.New("missing resource")
	}
	b, ok := bindings[args[0]]
	if !ok {
		return binding{}, fmt.Errorf("unknown resource %q (one of %s)", args[0], strings.Join(resourceNames(), ", "))
	}
	return b, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
