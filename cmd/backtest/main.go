// Package main runs a strategy comparison over CSV price history and
// prints the outcome, as JSON or human-readable text.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"stock-strategy-lab/internal/domain"
	"stock-strategy-lab/internal/earnings"
	"stock-strategy-lab/internal/enrich"
	"stock-strategy-lab/internal/marketdata"
	"stock-strategy-lab/internal/report"
	"stock-strategy-lab/internal/simulation"
)

func main() {
	quotesPath := flag.String("quotes", "", "CSV file with date,close,valuation_ratio rows (required)")
	earningsPath := flag.String("earnings", "", "CSV file with quarter,earnings rows (optional)")
	start := flag.String("start", domain.DefaultStartDate, "Analysis start date (YYYY-MM-DD)")
	end := flag.String("end", time.Now().Format("2006-01-02"), "Analysis end date (YYYY-MM-DD)")
	capital := flag.Float64("capital", domain.DefaultInitialCapital, "Initial capital")
	amount := flag.Float64("amount", domain.DefaultInvestAmount, "Weekly invest amount")
	baseRatio := flag.Float64("base-ratio", 50, "Base position ratio in percent")
	feeRate := flag.Float64("fee", 0.1, "Trade fee in percent")
	lower := flag.Float64("lower", domain.DefaultLowerQuantile, "Lower valuation percentile band")
	upper := flag.Float64("upper", domain.DefaultUpperQuantile, "Upper valuation percentile band")
	asJSON := flag.Bool("json", false, "Print the full result as JSON")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if *quotesPath == "" {
		logger.Fatal().Msg("--quotes is required")
	}

	quotes, err := marketdata.ReadQuotesCSV(*quotesPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *quotesPath).Msg("load quotes")
	}

	var matcher *earnings.Matcher
	if *earningsPath != "" {
		quarterly, err := marketdata.ReadEarningsCSV(*earningsPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *earningsPath).Msg("load earnings")
		}
		matcher = earnings.NewMatcher(quarterly)
	}

	records, logs, err := enrich.Annotate(quotes, matcher)
	if err != nil {
		logger.Fatal().Err(err).Msg("annotate series")
	}

	params := domain.StrategyParameters{
		InitialCapital: *capital,
		StartDate:      *start,
		EndDate:        *end,
		InvestAmount:   *amount,
		BaseRatio:      *baseRatio / 100,
		FeeRate:        *feeRate / 100,
		LowerQuantile:  *lower,
		UpperQuantile:  *upper,
	}

	res, err := simulation.NewRunner().Run(records, params)
	if err != nil {
		logger.Fatal().Err(err).Msg("simulation failed")
	}

	builder := report.NewBuilder()
	summary := builder.Summarize(res)

	if *asJSON {
		out := struct {
			Summary report.Summary      `json:"result_summary"`
			Events  []domain.TradeEvent `json:"trade_markers"`
			Logs    []string            `json:"logs"`
		}{Summary: summary, Events: res.Events, Logs: append(logs, res.Logs...)}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			logger.Fatal().Err(err).Msg("encode result")
		}
		return
	}

	for _, line := range append(logs, res.Logs...) {
		fmt.Println(line)
	}
	fmt.Println()
	printSummary(domain.StrategyLumpSum, summary)
	printSummary(domain.StrategyPeriodic, summary)
	printSummary(domain.StrategyBasePeriodic, summary)
	printSummary(domain.StrategyValuationBand, summary)
}

func printSummary(name string, summary report.Summary) {
	s := summary[name]
	if s.PositionPct != "" {
		fmt.Printf("%-20s return %-10s profit %-12s position %s\n", name, s.ReturnPct, s.Profit, s.PositionPct)
		return
	}
	fmt.Printf("%-20s return %-10s profit %s\n", name, s.ReturnPct, s.Profit)
}
