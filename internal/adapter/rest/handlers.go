package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/rfpereira/goalvault-backend/internal/domain"
	"github.com/rfpereira/goalvault-backend/internal/usecase/account"
	"github.com/rfpereira/goalvault-backend/internal/usecase/goal"
	"github.com/rfpereira/goalvault-backend/internal/usecase/transfer"
)

const dateLayout = "2006-01-02"

// accountResponse is the wire shape of an account
type accountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// transferRecordResponse is the wire shape of a single contribution
type transferRecordResponse struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"fromAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
}

// goalResponse is the wire shape of a goal, history included
type goalResponse struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"userId"`
	AccountID       string                   `json:"accountId"`
	Name            string                   `json:"name"`
	TargetAmount    decimal.Decimal          `json:"targetAmount"`
	Deadline        string                   `json:"deadline"`
	Progress        decimal.Decimal          `json:"progress"`
	Status          string                   `json:"status"`
	TransferHistory []transferRecordResponse `json:"transferHistory"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Type:      string(a.AccountType),
		Status:    string(a.Status),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toGoalResponse(g *domain.Goal) goalResponse {
	history := make([]transferRecordResponse, 0, len(g.History))
	for _, record := range g.History {
		history = append(history, transferRecordResponse{
			ID:            record.ID.String(),
			FromAccountID: record.FromAccountID.String(),
			Amount:        record.Amount,
			Date:          record.TransferredAt,
		})
	}

	return goalResponse{
		ID:              g.ID.String(),
		UserID:          g.UserID.String(),
		AccountID:       g.AccountID.String(),
		Name:            g.Name,
		TargetAmount:    g.TargetAmount,
		Deadline:        g.Deadline.Format(dateLayout),
		Progress:        g.Progress,
		Status:          string(g.Status),
		TransferHistory: history,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

func headerUserID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get("X-User-ID"))
	return id, err == nil
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string          `json:"name"`
		Type           string          `json:"type"`
		InitialBalance decimal.Decimal `json:"initialBalance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.accounts.Create(r.Context(), account.CreateInput{
		Name:           req.Name,
		AccountType:    domain.AccountType(req.Type),
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(created))
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	response := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		response = append(response, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid account id")
		return
	}

	found, err := s.accounts.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(found))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := headerUserID(r)
	if !ok {
		badRequest(w, "missing or invalid X-User-ID header")
		return
	}

	var req struct {
		Name         string          `json:"name"`
		AccountID    string          `json:"accountId"`
		TargetAmount decimal.Decimal `json:"targetAmount"`
		Deadline     string          `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		badRequest(w, "invalid accountId")
		return
	}
	deadline, err := time.Parse(dateLayout, req.Deadline)
	if err != nil {
		badRequest(w, "invalid deadline, expected YYYY-MM-DD")
		return
	}

	created, err := s.goals.Create(r.Context(), goal.CreateInput{
		UserID:       userID,
		Name:         req.Name,
		AccountID:    accountID,
		TargetAmount: req.TargetAmount,
		Deadline:     deadline,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalResponse(created))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := headerUserID(r)
	if !ok {
		badRequest(w, "missing or invalid X-User-ID header")
		return
	}

	statusFilter := domain.GoalStatus(r.URL.Query().Get("status"))

	goals, err := s.goals.List(r.Context(), userID, statusFilter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	response := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		response = append(response, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid goal id")
		return
	}

	found, err := s.goals.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(found))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid goal id")
		return
	}

	var req struct {
		Name         *string          `json:"name"`
		TargetAmount *decimal.Decimal `json:"targetAmount"`
		Deadline     *string          `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	input := goal.UpdateInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
	}
	if req.Deadline != nil {
		deadline, err := time.Parse(dateLayout, *req.Deadline)
		if err != nil {
			badRequest(w, "invalid deadline, expected YYYY-MM-DD")
			return
		}
		input.Deadline = &deadline
	}

	updated, err := s.goals.Update(r.Context(), id, input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(updated))
}

func (s *Server) handleArchiveGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid goal id")
		return
	}

	archived, err := s.lifecycle.Archive(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(archived))
}

func (s *Server) handleRestoreGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid goal id")
		return
	}

	restored, err := s.lifecycle.Restore(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(restored))
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid goal id")
		return
	}

	var req struct {
		FromAccountID string          `json:"fromAccountId"`
		Amount        decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	fromAccountID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		badRequest(w, "invalid fromAccountId")
		return
	}

	updated, err := s.transfers.Transfer(r.Context(), transfer.Input{
		GoalID:        id,
		FromAccountID: fromAccountID,
		Amount:        req.Amount,
	})
	if err != nil {
		status, _ := classify(err)
		outcome := "rejected"
		if status == http.StatusInternalServerError {
			outcome = "failed"
		}
		s.metrics.TransfersTotal.WithLabelValues(outcome).Inc()
		s.writeError(w, r, err)
		return
	}

	s.metrics.TransfersTotal.WithLabelValues("committed").Inc()
	s.metrics.TransferredAmount.Add(req.Amount.InexactFloat64())
	// Completed on this very transfer, not before it
	if updated.Status == domain.GoalStatusCompleted &&
		updated.Progress.Sub(req.Amount).LessThan(updated.TargetAmount) {
		s.metrics.GoalsCompleted.Inc()
	}

	writeJSON(w, http.StatusOK, toGoalResponse(updated))
}
