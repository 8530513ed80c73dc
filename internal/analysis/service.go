// Package analysis orchestrates one full analysis run: resolve the stock,
// fetch and annotate its history, simulate the strategies and assemble the
// report.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"stock-strategy-lab/internal/domain"
	"stock-strategy-lab/internal/earnings"
	"stock-strategy-lab/internal/enrich"
	"stock-strategy-lab/internal/lookup"
	"stock-strategy-lab/internal/marketdata"
	"stock-strategy-lab/internal/observability"
	"stock-strategy-lab/internal/report"
	"stock-strategy-lab/internal/simulation"
)

// ErrUnknownStock reports that user input matched nothing in the catalog
// or code patterns.
var ErrUnknownStock = errors.New("no stock matches the given input")

// Service runs analyses against a market data source and a stock catalog.
type Service struct {
	source  marketdata.Source
	catalog *lookup.Catalog
	runner  *simulation.Runner
	builder *report.Builder
	log     zerolog.Logger
}

// NewService creates an analysis service.
func NewService(source marketdata.Source, catalog *lookup.Catalog, logger zerolog.Logger) *Service {
	return &Service{
		source:  source,
		catalog: catalog,
		runner:  simulation.NewRunner(),
		builder: report.NewBuilder(),
		log:     logger.With().Str("component", "analysis").Logger(),
	}
}

// StockData is an annotated price history with its resolved identity.
type StockData struct {
	Records   []*domain.DailyRecord `json:"data"`
	StockName string                `json:"stock_name"`
	StockCode string                `json:"stock_code"`
	HK        bool                  `json:"is_hk"`
	Logs      []string              `json:"-"`
}

// StockData resolves input to a stock and returns its annotated daily
// history over [start, end].
func (s *Service) StockData(ctx context.Context, input, start, end string) (*StockData, error) {
	code, hk, ok := s.catalog.MatchCode(input)
	if !ok {
		observability.RecordLookup("code", "miss")
		return nil, fmt.Errorf("%w: %q", ErrUnknownStock, input)
	}
	observability.RecordLookup("code", "hit")

	quotes, err := s.source.DailyBars(ctx, code, start, end)
	if err != nil {
		return nil, err
	}

	var matcher *earnings.Matcher
	var logs []string
	if !hk {
		// The trailing window needs statements from before the range, so
		// the query reaches two years back.
		startYear := yearOf(start) - 2
		endYear := yearOf(end)
		quarterly, err := s.source.QuarterlyEarnings(ctx, code, startYear, endYear)
		if err != nil {
			s.log.Warn().Err(err).Str("code", code).Msg("quarterly earnings unavailable")
			logs = append(logs, fmt.Sprintf("quarterly earnings fetch failed: %v", err))
			quarterly = nil
		}
		matcher = earnings.NewMatcher(quarterly)
	}

	records, enrichLogs, err := enrich.Annotate(quotes, matcher)
	if err != nil {
		return nil, err
	}
	logs = append(logs, enrichLogs...)

	return &StockData{
		Records:   records,
		StockName: s.catalog.DisplayName(code),
		StockCode: code,
		HK:        hk,
		Logs:      logs,
	}, nil
}

// AnalyzeRequest is the strategy-analysis request body. Numeric fields are
// pointers so absent values fall back to defaults; BaseRatio and FeeRate
// arrive in percent.
type AnalyzeRequest struct {
	StockCode      string   `json:"stockCode"`
	InitialCapital *float64 `json:"initialCapital"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	InvestAmount   *float64 `json:"investAmount"`
	BaseRatio      *float64 `json:"baseRatio"`
	FeeRate        *float64 `json:"feeRate"`
	LowerQuantile  *float64 `json:"peLowerQuantile"`
	UpperQuantile  *float64 `json:"peUpperQuantile"`
	DataStartDate  string   `json:"dataStartDate"`
	DataEndDate    string   `json:"dataEndDate"`
}

// Parameters applies defaults and converts percent fields to fractions.
func (r AnalyzeRequest) Parameters(now time.Time) domain.StrategyParameters {
	p := domain.DefaultParameters()
	p.EndDate = now.Format("2006-01-02")
	if r.InitialCapital != nil {
		p.InitialCapital = *r.InitialCapital
	}
	if r.StartDate != "" {
		p.StartDate = r.StartDate
	}
	if r.EndDate != "" {
		p.EndDate = r.EndDate
	}
	if r.InvestAmount != nil {
		p.InvestAmount = *r.InvestAmount
	}
	if r.BaseRatio != nil {
		p.BaseRatio = *r.BaseRatio / 100
	}
	if r.FeeRate != nil {
		p.FeeRate = *r.FeeRate / 100
	}
	if r.LowerQuantile != nil {
		p.LowerQuantile = *r.LowerQuantile
	}
	if r.UpperQuantile != nil {
		p.UpperQuantile = *r.UpperQuantile
	}
	return p
}

// fetchRange is the window of history fetched from the provider. It may be
// wider than the analysis range so the percentile signal has history to
// rank against.
func (r AnalyzeRequest) fetchRange(now time.Time) (string, string) {
	start, end := r.DataStartDate, r.DataEndDate
	if start == "" {
		start = domain.DefaultStartDate
	}
	if end == "" {
		end = now.Format("2006-01-02")
	}
	return start, end
}

// Ledgers maps strategy identifiers to their per-day ledgers.
type Ledgers map[string][]domain.LedgerEntry

// AnalyzeResult is the analysis response. Success false carries the error
// message and whatever logs accumulated before the failure.
type AnalyzeResult struct {
	Success     bool                  `json:"success"`
	Logs        []string              `json:"logs"`
	Summary     report.Summary        `json:"result_summary,omitempty"`
	ChartData   *report.ChartSet      `json:"chart_data,omitempty"`
	Series      []*domain.DailyRecord `json:"series,omitempty"`
	Ledgers     Ledgers               `json:"ledgers,omitempty"`
	TradeEvents []domain.TradeEvent   `json:"trade_markers,omitempty"`
	StockName   string                `json:"stock_name,omitempty"`
	StockCode   string                `json:"stock_code,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// Analyze runs the full pipeline. It never returns an error; failures are
// reported inside the result so the API layer stays a thin shell.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) *AnalyzeResult {
	started := time.Now()
	now := time.Now()
	params := req.Parameters(now)
	fetchStart, fetchEnd := req.fetchRange(now)

	fail := func(logs []string, err error) *AnalyzeResult {
		observability.RecordSimulation("failure", time.Since(started).Seconds())
		s.log.Error().Err(err).Str("input", req.StockCode).Msg("analysis failed")
		return &AnalyzeResult{
			Success: false,
			Logs:    append(logs, fmt.Sprintf("analysis failed: %v", err)),
			Error:   err.Error(),
		}
	}

	data, err := s.StockData(ctx, req.StockCode, fetchStart, fetchEnd)
	if err != nil {
		return fail(nil, err)
	}
	logs := data.Logs

	res, err := s.runner.Run(data.Records, params)
	if err != nil {
		return fail(logs, err)
	}
	for _, ev := range res.Events {
		observability.RecordTradeSignal(ev.Direction)
	}

	summary := s.builder.Summarize(res)
	charts := s.builder.Charts(res, params)

	observability.RecordSimulation("success", time.Since(started).Seconds())
	s.log.Info().
		Str("code", data.StockCode).
		Int("days", len(res.Days)).
		Int("trades", len(res.Events)).
		Msg("analysis complete")

	return &AnalyzeResult{
		Success:     true,
		Logs:        append(logs, res.Logs...),
		Summary:     summary,
		ChartData:   &charts,
		Series:      res.Days,
		Ledgers: Ledgers{
			domain.StrategyLumpSum:       res.LumpSum,
			domain.StrategyPeriodic:      res.Periodic,
			domain.StrategyBasePeriodic:  res.BasePeriodic,
			domain.StrategyValuationBand: res.ValuationBand,
		},
		TradeEvents: res.Events,
		StockName:   data.StockName,
		StockCode:   data.StockCode,
	}
}

// Catalog exposes the service's catalog for the lookup endpoints.
func (s *Service) Catalog() *lookup.Catalog { return s.catalog }

func yearOf(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Now().Year()
	}
	return t.Year()
}
