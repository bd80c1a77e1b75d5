package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/conectanegocios/conecta/internal/intentions"
	"github.com/conectanegocios/conecta/internal/notify"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func runAdmin(args []string) int {
	if len(args) == 0 {
		printAdminUsage()
		return 2
	}

	switch args[0] {
	case "list-pending":
		return runListPending(args[1:])
	case "decide":
		return runDecide(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown admin command: %s\n", args[0])
		printAdminUsage()
		return 2
	}
}

func printAdminUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  conecta admin list-pending [--db-dsn <dsn>]")
	fmt.Fprintln(os.Stderr, "  conecta admin decide --id <uuid> --status APROVADO|RECUSADO [--db-dsn <dsn>] [--base-url <url>]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Notes:")
	fmt.Fprintln(os.Stderr, "  - --db-dsn defaults to CN_DB_DSN.")
	fmt.Fprintln(os.Stderr, "  - --base-url defaults to CN_BASE_URL and is used for the invitation link.")
}

func runListPending(args []string) int {
	fs := flag.NewFlagSet("list-pending", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var dbDSN string
	fs.StringVar(&dbDSN, "db-dsn", "", "Postgres DSN (defaults to CN_DB_DSN)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	pool, ok := adminPool(dbDSN)
	if !ok {
		return 2
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	service := intentions.NewService(pool, baseURLOrDefault(""), notify.NewLogNotifier())
	pending, err := service.List(ctx, intentions.StatusPendente, 1, 100)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list pending intentions: %v\n", err)
		return 1
	}

	if len(pending) == 0 {
		fmt.Println("No pending intentions.")
		return 0
	}

	for _, in := range pending {
		fmt.Printf("%s  %s <%s>  %s  %s\n",
			in.ID, in.Nome, in.Email, in.Empresa, in.CreatedAt.Format(time.RFC3339))
	}
	return 0
}

func runDecide(args []string) int {
	fs := flag.NewFlagSet("decide", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var idStr string
	var status string
	var dbDSN string
	var baseURL string

	fs.StringVar(&idStr, "id", "", "Intention ID")
	fs.StringVar(&status, "status", "", "New status (APROVADO or RECUSADO)")
	fs.StringVar(&dbDSN, "db-dsn", "", "Postgres DSN (defaults to CN_DB_DSN)")
	fs.StringVar(&baseURL, "base-url", "", "Base URL for the invitation link (defaults to CN_BASE_URL)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		fmt.Fprintln(os.Stderr, "--id must be a valid UUID")
		return 2
	}

	newStatus := intentions.Status(strings.TrimSpace(status))
	if newStatus != intentions.StatusAprovado && newStatus != intentions.StatusRecusado {
		fmt.Fprintln(os.Stderr, "--status must be APROVADO or RECUSADO")
		return 2
	}

	pool, ok := adminPool(dbDSN)
	if !ok {
		return 2
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	service := intentions.NewService(pool, baseURLOrDefault(baseURL), notify.NewLogNotifier())
	result, err := service.Decide(ctx, id, newStatus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decide intention: %v\n", err)
		return 1
	}

	fmt.Printf("Intention %s is now %s\n", result.Intencao.ID, result.Intencao.Status)
	if result.Membro != nil {
		fmt.Printf("Member created: %s <%s>\n", result.Membro.Nome, result.Membro.Email)
		fmt.Printf("Invitation link: %s\n", result.ConviteLink)
	}
	return 0
}

func adminPool(dbDSN string) (*pgxpool.Pool, bool) {
	if dbDSN == "" {
		dbDSN = strings.TrimSpace(os.Getenv("CN_DB_DSN"))
	}
	if dbDSN == "" {
		fmt.Fprintln(os.Stderr, "--db-dsn is required (or set CN_DB_DSN)")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		return nil, false
	}
	return pool, true
}

func baseURLOrDefault(baseURL string) string {
	if baseURL == "" {
		baseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("CN_BASE_URL")), "/")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return baseURL
}
