package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/config"
	"github.com/BruksfildServices01/salon-backoffice/internal/session"
	"github.com/BruksfildServices01/salon-backoffice/internal/timezone"
	"github.com/BruksfildServices01/salon-backoffice/internal/workflow"
)

const usage = `usage: salonctl <command> [flags]

commands:
  commissions -from YYYY-MM-DD -to YYYY-MM-DD [-q query]
  pending <appointment-id>
  resume <appointment-id>
  forget <appointment-id>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	sess := session.Anonymous()
	if cfg.BackofficeToken != "" {
		if sess, err = session.FromToken(cfg.BackofficeToken); err != nil {
			logger.Fatal("invalid BACKOFFICE_TOKEN", zap.Error(err))
		}
	}

	w := workflow.New(cfg, sess, logger)
	defer w.Close()

	ctx := context.Background()

	var out any
	switch os.Args[1] {
	case "commissions":
		out, err = commissions(ctx, w, cfg.Timezone, os.Args[2:])
	case "pending":
		var id uint
		if id, err = appointmentArg(os.Args[2:]); err == nil {
			out, err = w.Complete.Pending(ctx, id)
		}
	case "resume":
		var id uint
		if id, err = appointmentArg(os.Args[2:]); err == nil {
			out, err = w.Resume(ctx, id)
		}
	case "forget":
		var id uint
		if id, err = appointmentArg(os.Args[2:]); err == nil {
			err = w.Complete.Forget(ctx, id)
			out = map[string]uint{"forgotten": id}
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		os.Exit(1)
	}

	if !w.Durable() {
		logger.Warn("saga state is not persisted; set REDIS_ADDR to keep it between runs")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func commissions(ctx context.Context, w *workflow.Workflow, tz string, args []string) (any, error) {
	fs := flag.NewFlagSet("commissions", flag.ContinueOnError)
	from := fs.String("from", "", "first day, inclusive")
	to := fs.String("to", "", "last day, inclusive")
	query := fs.String("q", "", "filter by name, role or type")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fromDay, err := timezone.ParseDate(tz, *from)
	if err != nil {
		return nil, fmt.Errorf("invalid -from: %w", err)
	}
	toDay, err := timezone.ParseDate(tz, *to)
	if err != nil {
		return nil, fmt.Errorf("invalid -to: %w", err)
	}

	return w.Commissions.Execute(ctx, fromDay, toDay, *query)
}

func appointmentArg(args []string) (uint, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one appointment id")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid appointment id %q", args[0])
	}
	return uint(id), nil
}
