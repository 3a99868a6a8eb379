package http

import (
	"errors"
	"net/http"
	"strings"

	"cuentas/internal/core"
	applog "cuentas/internal/log"
)

type entryJSON struct {
	Date        string `json:"date"`
	Payer       string `json:"payer"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
}

func toEntryJSON(e core.Entry) entryJSON {
	return entryJSON{
		Date:        e.Date.String(),
		Payer:       e.Payer,
		Description: e.Description,
		Amount:      e.Amount.Decimal().String(),
		Kind:        string(e.Kind),
	}
}

type memberBalanceJSON struct {
	Member      string `json:"member"`
	Spent       string `json:"spent"`
	Contributed string `json:"contributed"`
	Diff        string `json:"diff"`
}

type balanceJSON struct {
	TotalExpenses string              `json:"total_expenses"`
	FairShare     string              `json:"fair_share"`
	Members       []memberBalanceJSON `json:"members"`
	Net           string              `json:"net"`
	Debtor        string              `json:"debtor,omitempty"`
	Creditor      string              `json:"creditor,omitempty"`
	Owed          string              `json:"owed"`
	Settled       bool                `json:"settled"`
	Summary       string              `json:"summary"`
	CycleEntries  int                 `json:"cycle_entries"`
	Degraded      bool                `json:"degraded,omitempty"`
}

func (s *Server) toBalanceJSON(res core.BalanceResult, cycleLen int, degraded bool) balanceJSON {
	settings := s.engine.Settings()
	out := balanceJSON{
		TotalExpenses: res.TotalExpenses.String(),
		FairShare:     res.FairShare.String(),
		Net:           res.Net.String(),
		Debtor:        res.Debtor,
		Creditor:      res.Creditor,
		Owed:          res.Owed.String(),
		Settled:       res.Settled,
		CycleEntries:  cycleLen,
		Degraded:      degraded,
	}
	for _, mb := range res.Members {
		out.Members = append(out.Members, memberBalanceJSON{
			Member:      mb.Member,
			Spent:       mb.Spent.String(),
			Contributed: mb.Contributed.String(),
			Diff:        mb.Diff.String(),
		})
	}
	switch {
	case res.Debtor != "":
		out.Summary = res.Debtor + " le debe a " + res.Creditor + ": " + settings.FormatAmount(res.Owed)
	case res.Settled:
		out.Summary = "Cuentas saldadas"
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	settings := s.engine.Settings()
	writeJSON(w, http.StatusOK, map[string]any{
		"members":   settings.Members,
		"currency":  settings.Currency,
		"precision": settings.Precision,
	})
}

// handleEntries records a new expense or settlement payment. Malformed
// requests get 400; requests that parse but violate the ledger rules get
// 422 so clients can tell the two apart.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req entryRequest
	if err := parseJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, status, err := s.buildEntry(req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	if err := s.backend.Append(r.Context(), entry); err != nil {
		s.logger.Error("Failed to store entry",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpAppend,
			applog.FieldPayer, entry.Payer,
			applog.FieldAmountCents, entry.Amount.Cents,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to store entry")
		return
	}

	s.logger.Info("Entry recorded",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpAppend,
		applog.FieldPayer, entry.Payer,
		applog.FieldAmountCents, entry.Amount.Cents,
		applog.FieldEntryKind, string(entry.Kind))
	writeJSON(w, http.StatusCreated, toEntryJSON(entry))
}

// buildEntry turns a wire request into a validated ledger entry, returning
// the HTTP status to use on failure.
func (s *Server) buildEntry(req entryRequest) (core.Entry, int, error) {
	settings := s.engine.Settings()

	date := core.Today()
	if strings.TrimSpace(req.Date) != "" {
		date = core.ParseDate(req.Date)
		if date.IsZero() {
			return core.Entry{}, http.StatusBadRequest, errors.New("invalid date, expected YYYY-MM-DD")
		}
	}

	description := strings.TrimSpace(req.Description)
	switch req.Kind {
	case "", string(core.KindExpense):
	case string(core.KindPayment):
		// The stored row must carry the settlement sentinel so the kind
		// survives the flat-row round trip.
		if !strings.Contains(description, settings.PaymentMarker) {
			description = strings.TrimSpace(settings.PaymentMarker + " " + description)
		}
	default:
		return core.Entry{}, http.StatusBadRequest, errors.New("invalid kind, expected expense or payment")
	}

	if description == settings.CloseMarker {
		return core.Entry{}, http.StatusUnprocessableEntity, errors.New("description is reserved for cycle closing")
	}

	kind := settings.DetectKind(req.Payer, description)
	if req.Kind == string(core.KindExpense) && kind == core.KindPayment {
		return core.Entry{}, http.StatusUnprocessableEntity, errors.New("description carries the settlement marker but kind is expense")
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Entry{}, http.StatusUnprocessableEntity, errors.New("invalid amount, expected a positive decimal")
	}

	entry := core.Entry{
		Date:        date,
		Payer:       strings.TrimSpace(req.Payer),
		Description: description,
		Amount:      core.Money{Cents: cents},
		Kind:        kind,
	}
	if err := s.engine.ValidateEntry(entry); err != nil {
		return core.Entry{}, http.StatusUnprocessableEntity, err
	}
	return entry, 0, nil
}

// handleBalance reports the active-cycle settlement. A storage read
// failure degrades to the empty-ledger view instead of erroring; recording
// keeps working even when the readable history is gone.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	entries, degraded := s.readLedger(r)
	cycle := s.engine.CurrentCycle(entries)
	res := s.engine.Balance(cycle)
	writeJSON(w, http.StatusOK, s.toBalanceJSON(res, len(cycle), degraded))
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "cycle"
	}
	if scope != "cycle" && scope != "all" {
		writeError(w, http.StatusBadRequest, "invalid scope, expected cycle or all")
		return
	}

	entries, degraded := s.readLedger(r)
	if scope == "cycle" {
		entries = s.engine.CurrentCycle(entries)
	}

	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryJSON(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scope":    scope,
		"entries":  out,
		"degraded": degraded,
	})
}

// handleCloseCycle appends the summary and marker rows that end the active
// cycle. Unlike balance reads, closing refuses to run on a failed read:
// appending a marker against unknown history would corrupt the cycle.
func (s *Server) handleCloseCycle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	entries, err := s.backend.ReadAll(r.Context())
	if err != nil {
		s.logger.Error("Refusing to close cycle on failed read",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpClose,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "cannot read ledger, cycle not closed")
		return
	}

	cycle := s.engine.CurrentCycle(entries)
	res := s.engine.Balance(cycle)
	closing := s.engine.CloseEntries(res, core.Today())

	if err := s.backend.Append(r.Context(), closing...); err != nil {
		s.logger.Error("Failed to append closing rows",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpClose,
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to close cycle")
		return
	}

	s.logger.Info("Cycle closed",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpClose,
		applog.FieldCycleSize, len(cycle),
		applog.FieldEntryCount, len(closing))

	appended := make([]entryJSON, 0, len(closing))
	for _, e := range closing {
		appended = append(appended, toEntryJSON(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"balance": s.toBalanceJSON(res, len(cycle), false),
		"closed":  appended,
	})
}

// readLedger fetches the full history, falling back to an empty ledger
// when the read fails. The second result reports the degraded state.
func (s *Server) readLedger(r *http.Request) ([]core.Entry, bool) {
	entries, err := s.backend.ReadAll(r.Context())
	if err != nil {
		s.logger.Warn("Ledger read failed, serving empty ledger",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpRead,
			applog.FieldError, err)
		return nil, true
	}
	return entries, false
}
