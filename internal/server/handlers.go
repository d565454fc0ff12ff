package server

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"splitbook/internal/ledger"
	"splitbook/internal/models"
	"splitbook/internal/repo"
)

// splitTolerance absorbs float formatting noise when checking that a custom
// split sums to the expense amount.
const splitTolerance = 1e-6

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type expenseRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Amount      float64            `json:"amount"`
	Payer       string             `json:"payer"`
	SplitType   models.SplitType   `json:"splitType"`
	CustomSplit map[string]float64 `json:"customSplit"`
}

type balancesResponse struct {
	Balances    map[string]float64 `json:"balances"`
	Settlements []ledger.Transfer  `json:"settlements"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	user, err := s.sessions.Login(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		slog.Error("Login failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		slog.Error("Logout failed", "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.sessions.Current(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session lookup failed")
		slog.Error("Session lookup failed", "error", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups := s.repo.Groups()
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "group name cannot be empty")
		return
	}

	seen := make(map[string]bool, len(req.Members))
	members := make([]string, 0, len(req.Members))
	for _, m := range req.Members {
		name := strings.TrimSpace(m)
		if name == "" {
			writeError(w, http.StatusBadRequest, "member name cannot be empty")
			return
		}
		if seen[name] {
			writeError(w, http.StatusBadRequest, "duplicate member name: "+name)
			return
		}
		seen[name] = true
		members = append(members, name)
	}

	group := s.repo.CreateGroup(strings.TrimSpace(req.Name), members)
	if group == nil {
		// The repository only refuses blank names, which were rejected above.
		writeError(w, http.StatusBadRequest, "group name cannot be empty")
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group := s.repo.Group(r.PathValue("id"))
	if group == nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	// Deleting an unknown id is a no-op in the repository; either way the
	// group is gone afterwards.
	s.repo.DeleteGroup(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	group := s.repo.Group(r.PathValue("id"))
	if group == nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateExpense(group, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	draft := models.Expense{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Payer:       req.Payer,
		SplitType:   req.SplitType,
	}
	if req.SplitType == models.SplitCustom {
		draft.CustomSplit = req.CustomSplit
	}

	expense := s.repo.AddExpense(group.ID, draft)
	if expense == nil {
		// Group vanished between the lookup and the append.
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// validateExpense applies the creation-time rules the core deliberately does
// not enforce. Returns an empty string when the draft is acceptable.
func validateExpense(group *models.Group, req *expenseRequest) string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return "amount must be a positive number"
	}
	if !group.HasMember(req.Payer) {
		return "payer must be a group member"
	}

	switch req.SplitType {
	case models.SplitEqual:
	case models.SplitCustom:
		var sum float64
		for member, assigned := range req.CustomSplit {
			if !group.HasMember(member) {
				return "custom split names a non-member: " + member
			}
			if assigned < 0 {
				return "custom split amounts cannot be negative"
			}
			sum += assigned
		}
		if math.Abs(sum-req.Amount) > splitTolerance {
			return "custom split must equal total amount"
		}
	default:
		return "splitType must be \"equal\" or \"custom\""
	}
	return ""
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	group := s.repo.Group(r.PathValue("id"))
	if group == nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}

	balances := ledger.GroupBalances(group)
	writeJSON(w, http.StatusOK, balancesResponse{
		Balances:    balances,
		Settlements: ledger.SuggestSettlements(balances),
	})
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		user = repo.DefaultSelf
	}
	writeJSON(w, http.StatusOK, ledger.UserTotals(s.repo.Groups(), user))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encoding response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
