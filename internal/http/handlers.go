package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"stromtracker/internal/core"
	"stromtracker/internal/report"
)

type monthlyEntryDTO struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Price       float64 `json:"price"`
	Consumption float64 `json:"consumption"`
	Cost        float64 `json:"cost"`
	Paid        float64 `json:"paid"`
	Saldo       float64 `json:"saldo"`
}

type balanceForwardDTO struct {
	Year           int     `json:"year"`
	Amount         float64 `json:"amount"`
	BalanceForward bool    `json:"balanceForward"`
}

type monthSlotDTO struct {
	Month       int     `json:"month"`
	Price       float64 `json:"price"`
	Consumption float64 `json:"consumption"`
	Cost        float64 `json:"cost"`
	Paid        float64 `json:"paid"`
	Balance     float64 `json:"balance"`
}

type yearSummaryDTO struct {
	Consumption    float64 `json:"consumption"`
	Cost           float64 `json:"cost"`
	Paid           float64 `json:"paid"`
	Balance        float64 `json:"balance"`
	BalanceForward float64 `json:"balanceForward"`
}

type yearRollupDTO struct {
	Year             int     `json:"year"`
	TotalConsumption float64 `json:"totalConsumption"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalCost        float64 `json:"totalCost"`
	AveragePrice     float64 `json:"averagePrice"`
	BalanceForward   float64 `json:"balanceForward"`
	Balance          float64 `json:"balance"`
}

type trendDTO struct {
	Percentage float64 `json:"percentage"`
	IsUp       bool    `json:"isUp"`
}

func toMonthlyEntryDTO(e core.MonthlyEntry) monthlyEntryDTO {
	return monthlyEntryDTO{
		Year:        e.Year,
		Month:       e.Month,
		Price:       e.Price,
		Consumption: e.Consumption,
		Cost:        e.Cost(),
		Paid:        e.Paid,
		Saldo:       e.Saldo(),
	}
}

// handleLogin issues a session token for valid admin credentials.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if err := s.creds.Verify(req.Username, req.Password); err != nil {
		slog.WarnContext(r.Context(), "Login failed", "username", req.Username)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.tokens.GenerateToken(req.Username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	slog.InfoContext(r.Context(), "Login succeeded", "username", req.Username)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleConsumption serves the monthly entry table (public) and accepts
// entry upserts (admin).
func (s *Server) handleConsumption(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListConsumption(w, r)
	case http.MethodPost:
		s.requireAdmin(s.handleUpsertMonthly)(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListConsumption(w http.ResponseWriter, r *http.Request) {
	// Without a year parameter the endpoint returns the full record
	// collection, both variants included. The year-scoped, sorted table
	// view is opt-in.
	if !r.URL.Query().Has("year") {
		s.handleListAllRecords(w, r)
		return
	}

	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	field := core.SortField(r.URL.Query().Get("sort"))
	if field == "" {
		field = core.SortByMonth
	}
	if !core.ValidSortField(field) {
		writeError(w, http.StatusBadRequest, "invalid sort field")
		return
	}

	dir := core.SortDirection(r.URL.Query().Get("dir"))
	if dir == "" {
		dir = core.DefaultDirection(field)
	}
	if dir != core.SortAsc && dir != core.SortDesc {
		writeError(w, http.StatusBadRequest, "invalid sort direction")
		return
	}

	records, err := s.records.ListRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	var entries []core.MonthlyEntry
	var balanceForward float64
	for _, rec := range records {
		switch e := rec.(type) {
		case core.MonthlyEntry:
			if e.Year == year {
				entries = append(entries, e)
			}
		case core.BalanceForwardEntry:
			if e.Year == year {
				balanceForward = e.Amount
			}
		}
	}

	sorted := core.SortEntries(entries, field, dir)
	dtos := make([]monthlyEntryDTO, len(sorted))
	for i, e := range sorted {
		dtos[i] = toMonthlyEntryDTO(e)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":           year,
		"sort":           field,
		"dir":            dir,
		"entries":        dtos,
		"balanceForward": balanceForward,
	})
}

func (s *Server) handleListAllRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.ListRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	dtos := make([]any, len(records))
	for i, rec := range records {
		switch e := rec.(type) {
		case core.MonthlyEntry:
			dtos[i] = toMonthlyEntryDTO(e)
		case core.BalanceForwardEntry:
			dtos[i] = balanceForwardDTO{Year: e.Year, Amount: e.Amount, BalanceForward: true}
		}
	}

	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleUpsertMonthly(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year        *int     `json:"year"`
		Month       *int     `json:"month"`
		Price       *float64 `json:"price"`
		Consumption *float64 `json:"consumption"`
		Paid        *float64 `json:"paid"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Year == nil || req.Month == nil || req.Price == nil || req.Consumption == nil || req.Paid == nil {
		writeError(w, http.StatusBadRequest, "year, month, price, consumption and paid are required")
		return
	}

	entry := core.MonthlyEntry{
		Year:        *req.Year,
		Month:       *req.Month,
		Price:       *req.Price,
		Consumption: *req.Consumption,
		Paid:        *req.Paid,
	}

	if err := s.records.SaveMonthly(r.Context(), entry); err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Save monthly entry failed",
			"error", err,
			"year", entry.Year,
			"month", entry.Month)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	writeJSON(w, http.StatusOK, toMonthlyEntryDTO(entry))
}

// handleBalanceForward accepts balance-forward upserts (admin).
func (s *Server) handleBalanceForward(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Year   *int     `json:"year"`
		Amount *float64 `json:"amount"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Year == nil || req.Amount == nil {
		writeError(w, http.StatusBadRequest, "year and amount are required")
		return
	}

	entry := core.BalanceForwardEntry{Year: *req.Year, Amount: *req.Amount}

	if err := s.records.SaveBalanceForward(r.Context(), entry); err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Save balance forward failed",
			"error", err,
			"year", entry.Year)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":   entry.Year,
		"amount": entry.Amount,
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidYear) ||
		errors.Is(err, core.ErrInvalidMonth) ||
		errors.Is(err, core.ErrNegativeNumeric)
}

// handleYearlySummary serves a year's month-by-month timeline plus the
// headline dashboard balance.
func (s *Server) handleYearlySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, err := parseYear(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.records.ListRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	tl := core.BuildYearlyTimeline(records, year)

	months := make([]monthSlotDTO, len(tl.Months))
	for i, m := range tl.Months {
		months[i] = monthSlotDTO{
			Month:       m.Month,
			Price:       m.Price,
			Consumption: m.Consumption,
			Cost:        m.Cost,
			Paid:        m.Paid,
			Balance:     m.Balance,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":   year,
		"months": months,
		"summary": yearSummaryDTO{
			Consumption:    tl.Summary.Consumption,
			Cost:           tl.Summary.Cost,
			Paid:           tl.Summary.Paid,
			Balance:        tl.Summary.Balance,
			BalanceForward: tl.Summary.BalanceForward,
		},
		"dashboardBalance": core.DashboardBalance(records, year),
	})
}

// handleYearlyRollup serves the per-year aggregates and the year-over-year
// trends. Trends are omitted when fewer than two years have data.
func (s *Server) handleYearlyRollup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := s.records.ListRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	rollups := core.BuildYearlyRollup(records)

	dtos := make([]yearRollupDTO, len(rollups))
	for i, ru := range rollups {
		dtos[i] = yearRollupDTO{
			Year:             ru.Year,
			TotalConsumption: ru.TotalConsumption,
			TotalPaid:        ru.TotalPaid,
			TotalCost:        ru.TotalCost,
			AveragePrice:     ru.AveragePrice,
			BalanceForward:   ru.BalanceForward,
			Balance:          ru.Balance,
		}
	}

	data := map[string]any{"years": dtos}
	consumptionOf := func(r core.YearRollup) float64 { return r.TotalConsumption }
	costOf := func(r core.YearRollup) float64 { return r.TotalCost }
	if t, ok := core.TrendAbove(rollups, consumptionOf, core.ConsumptionTrendMinPercent); ok {
		data["consumptionTrend"] = trendDTO{Percentage: t.Percentage, IsUp: t.IsUp}
	}
	if t, ok := core.TrendAbove(rollups, costOf, core.CostTrendMinPercent); ok {
		data["costTrend"] = trendDTO{Percentage: t.Percentage, IsUp: t.IsUp}
	}

	writeJSON(w, http.StatusOK, data)
}

// handleYearlyReport builds and serves the XLSX report on demand.
func (s *Server) handleYearlyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := s.records.ListRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	data, err := report.BuildYearlyReport(records)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report build failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.ReportFileName+`"`)
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
