package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock-strategy-lab/internal/analysis"
	"stock-strategy-lab/internal/domain"
	"stock-strategy-lab/internal/lookup"
	"stock-strategy-lab/internal/marketdata"
)

// envelope is the common response shape of the lookup and data endpoints.
type envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// writeJSON always answers 200; the application status travels in the
// envelope's code field, which is what the frontend inspects.
func (s *Server) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, envelope{
		Code: 200,
		Msg:  "ok",
		Data: map[string]string{"time": time.Now().Format("2006-01-02 15:04:05")},
	})
}

func (s *Server) handleStockNames(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, envelope{Code: 200, Msg: "success", Data: s.svc.Catalog().Names()})
}

// stockMatch is one entry of a name-search response, with full history
// attached.
type stockMatch struct {
	Name      string              `json:"name"`
	Code      string              `json:"code"`
	HK        bool                `json:"is_hk"`
	StockData *analysis.StockData `json:"stock_data"`
}

func (s *Server) handleStockByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.writeJSON(w, envelope{Code: 400, Msg: "stock name must not be empty", Data: []any{}})
		return
	}
	today := time.Now().Format("2006-01-02")
	start := queryDefault(r, "start", today)
	end := queryDefault(r, "end", today)

	matched := s.svc.Catalog().ByName(name)
	if len(matched) == 0 {
		s.writeJSON(w, envelope{Code: 404, Msg: fmt.Sprintf("no stock matches %q", name), Data: []any{}})
		return
	}

	results := make([]stockMatch, 0, len(matched))
	for _, e := range matched {
		data, err := s.svc.StockData(r.Context(), e.Code, start, end)
		if err != nil {
			s.log.Warn().Err(err).Str("code", e.Code).Msg("history fetch failed during name search")
			data = nil
		}
		results = append(results, stockMatch{Name: e.Name, Code: e.Code, HK: e.HK(), StockData: data})
	}
	s.writeJSON(w, envelope{Code: 200, Msg: fmt.Sprintf("matched %d stocks", len(results)), Data: results})
}

func (s *Server) handleStockByLetter(w http.ResponseWriter, r *http.Request) {
	letter := strings.TrimSpace(r.URL.Query().Get("letter"))
	if letter == "" {
		s.writeJSON(w, envelope{Code: 400, Msg: "letters must not be empty", Data: []any{}})
		return
	}
	matched := s.svc.Catalog().ByLetters(letter)
	if matched == nil {
		matched = []lookup.Entry{}
	}
	s.writeJSON(w, envelope{Code: 200, Msg: fmt.Sprintf("matched %d stocks", len(matched)), Data: matched})
}

type stockIdentity struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	HK      bool   `json:"is_hk"`
	Letters string `json:"first_letter,omitempty"`
}

func (s *Server) handleStockNameByCode(w http.ResponseWriter, r *http.Request) {
	input := strings.TrimSpace(r.URL.Query().Get("code"))
	if input == "" {
		s.writeJSON(w, envelope{Code: 400, Msg: "stock code must not be empty", Data: stockIdentity{}})
		return
	}
	code, hk, ok := s.svc.Catalog().MatchCode(input)
	if !ok {
		s.writeJSON(w, envelope{Code: 404, Msg: fmt.Sprintf("no stock code matches %q", input), Data: stockIdentity{}})
		return
	}
	s.writeJSON(w, envelope{Code: 200, Msg: "success", Data: stockIdentity{
		Name: s.svc.Catalog().DisplayName(code),
		Code: code,
		HK:   hk,
	}})
}

func (s *Server) handleStockInfo(w http.ResponseWriter, r *http.Request) {
	input := strings.TrimSpace(r.URL.Query().Get("input"))
	if input == "" {
		s.writeJSON(w, envelope{Code: 400, Msg: "input must not be empty (name, code or letters)", Data: stockIdentity{}})
		return
	}
	code, hk, ok := s.svc.Catalog().MatchCode(input)
	if !ok {
		s.writeJSON(w, envelope{Code: 404, Msg: fmt.Sprintf("no stock matches %q", input), Data: stockIdentity{}})
		return
	}
	name := s.svc.Catalog().DisplayName(code)
	letters := ""
	for _, e := range s.svc.Catalog().ByName(name) {
		if e.Code == code {
			letters = e.Letters
			break
		}
	}
	s.writeJSON(w, envelope{Code: 200, Msg: "success", Data: stockIdentity{
		Name:    name,
		Code:    code,
		HK:      hk,
		Letters: letters,
	}})
}

// stockDataResponse carries the identity alongside the envelope, matching
// what the chart frontend expects.
type stockDataResponse struct {
	Code      int                   `json:"code"`
	Msg       string                `json:"msg"`
	Data      []*domain.DailyRecord `json:"data"`
	StockName string                `json:"stock_name"`
	StockCode string                `json:"stock_code"`
}

func (s *Server) handleStockData(w http.ResponseWriter, r *http.Request) {
	input := queryDefault(r, "code", "600519")
	start := queryDefault(r, "start_date", domain.DefaultStartDate)
	end := queryDefault(r, "end_date", time.Now().Format("2006-01-02"))

	data, err := s.svc.StockData(r.Context(), input, start, end)
	if err != nil {
		status := 500
		switch {
		case errors.Is(err, analysis.ErrUnknownStock):
			status = 400
		case errors.Is(err, marketdata.ErrNoData):
			status = 404
		}
		s.writeJSON(w, stockDataResponse{Code: status, Msg: err.Error(), Data: []*domain.DailyRecord{}})
		return
	}
	s.writeJSON(w, stockDataResponse{
		Code:      200,
		Msg:       fmt.Sprintf("fetched %d records", len(data.Records)),
		Data:      data.Records,
		StockName: data.StockName,
		StockCode: data.StockCode,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, &analysis.AnalyzeResult{
			Success: false,
			Logs:    []string{fmt.Sprintf("bad request body: %v", err)},
			Error:   err.Error(),
		})
		return
	}
	s.writeJSON(w, s.svc.Analyze(r.Context(), req))
}

// handleLogin is a stub: it hands out a mock token without verifying
// anything. Real authentication is a planned frontend feature.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		s.writeJSON(w, envelope{Code: 500, Msg: "login failed", Data: map[string]any{}})
		return
	}
	s.writeJSON(w, envelope{Code: 200, Msg: "login ok (placeholder)", Data: map[string]string{
		"token":    fmt.Sprintf("mock_token_%s_%d", creds.Username, time.Now().Unix()),
		"username": creds.Username,
	}})
}

func queryDefault(r *http.Request, key, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}
	return fallback
}
