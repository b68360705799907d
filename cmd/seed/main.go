// Command seed creates or resets the operator account and can load demo
// content. It reads the same configuration as the server.
//
// Usage:
//
//	seed [-email owner@example.com] [-name Owner] [-sample]
//
// The password comes from ADMIN_PASSWORD or, when unset, an interactive prompt.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dmitrijs2005/portfolio/internal/flagx"
	"github.com/dmitrijs2005/portfolio/internal/logging"
	"github.com/dmitrijs2005/portfolio/internal/server/auth"
	"github.com/dmitrijs2005/portfolio/internal/server/config"
	"github.com/dmitrijs2005/portfolio/internal/server/notify"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/portfolio/internal/server/services"
)

// seams for tests
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

type options struct {
	email  string
	name   string
	sample bool
}

func parseOptions(args []string, cfg *config.Config) (options, error) {
	opts := options{email: cfg.AdminEmail, name: "Admin"}

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.StringVar(&opts.email, "email", opts.email, "operator email")
	fs.StringVar(&opts.name, "name", opts.name, "operator display name")
	fs.BoolVar(&opts.sample, "sample", false, "insert sample content")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-email", "-name", "-sample"})); err != nil {
		return opts, err
	}

	if strings.TrimSpace(opts.email) == "" {
		return opts, errors.New("operator email is required: pass -email or set ADMIN_EMAIL")
	}
	return opts, nil
}

// adminPassword returns ADMIN_PASSWORD or asks for it on the terminal.
// Non-interactive input is read as a single line.
func adminPassword(stdin *os.File, out io.Writer) (string, error) {
	if p := os.Getenv("ADMIN_PASSWORD"); p != "" {
		return p, nil
	}

	fmt.Fprint(out, "Admin password: ")
	fd := int(stdin.Fd())
	if isTerminal(fd) {
		b, err := readPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func run(ctx context.Context, cfg *config.Config, opts options, password string, out io.Writer) error {
	logger := logging.New(os.Stderr, cfg.Environment, cfg.LogLevel)

	rm := repomanager.NewPostgresRepositoryManager()
	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.TokenTTL)
	notifier := notify.NewNotifier(notify.NewLogMailer(logger), logger, cfg.MailTimeout, cfg.OTPTTL)
	us := services.NewUserService(db, rm, cfg, issuer, notifier, logger)

	user, created, err := us.EnsureAdmin(ctx, opts.name, opts.email, password)
	if err != nil {
		return fmt.Errorf("operator account: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created admin %s\n", user.Email)
	} else {
		fmt.Fprintf(out, "Updated admin %s\n", user.Email)
	}

	if !opts.sample {
		return nil
	}

	report, err := services.NewContentService(db, rm).SeedSamples(ctx)
	if err != nil {
		return fmt.Errorf("sample content: %w", err)
	}
	fmt.Fprintf(out, "Inserted %d projects, %d skills, %d experiences, %d about sections\n",
		report.Projects, report.Skills, report.Experiences, report.Abouts)
	return nil
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	opts, err := parseOptions(os.Args[1:], cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	password, err := adminPassword(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(ctx, cfg, opts, password, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}
