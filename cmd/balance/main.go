package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"sweeptide/internal/balance"
	"sweeptide/internal/config"
)

func main() {
	settingsPath := flag.String("settings", "settings.yaml", "runtime settings file")
	only := flag.String("scenario", "", "run only the named scenario")
	flag.Parse()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}
	config.SetupLogging(settings.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	data, err := config.LoadAll(ctx, settings.Data)
	if err != nil {
		slog.Error("failed to load assets", "error", err)
		os.Exit(1)
	}

	scenarios := data.Scenarios.Scenarios
	if *only != "" {
		scenarios = filterScenarios(scenarios, *only)
	}

	report, err := balance.Run(ctx, data, scenarios, settings.Sweep.Runs, settings.Sweep.Workers, settings.Seed)
	if err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
	printReport(report)
}

func filterScenarios(all []config.Scenario, name string) []config.Scenario {
	var out []config.Scenario
	for _, sc := range all {
		if strings.EqualFold(sc.Name, name) {
			out = append(out, sc)
		}
	}
	return out
}

func printReport(report *balance.Report) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "sweep %s (%s)\n\n", report.ID, report.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(tw, "SCENARIO\tRUNS\tDPS\tKILLS\tSCORE\tDEATHS\tTOP WEAPON")
	for _, r := range report.Results {
		top := "-"
		if labels := r.TopWeapons(); len(labels) > 0 {
			top = fmt.Sprintf("%s (%.0f)", labels[0], r.WeaponDamage[labels[0]])
		}
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.1f\t%.0f\t%d\t%s\n",
			r.Scenario, r.Runs, r.MeanDPS, r.MeanKills, r.MeanScore, r.Deaths, top)
	}
	tw.Flush()
	if report.Skipped > 0 {
		fmt.Printf("\n%d run batches skipped after cancellation\n", report.Skipped)
	}
}
