package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/cinder/internal/importer"
	"github.com/alexanderramin/cinder/internal/scoring"
	"github.com/alexanderramin/cinder/internal/service"
)

const (
	defaultWindowDays = 7
	defaultTrendDays  = 30
)

// WebSocket upgrades the connection for a known user. Unknown users are
// refused before the upgrade.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if _, err := h.svc.Users.GetByID(r.Context(), userID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ws.Serve(w, r, userID)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	u, err := h.svc.Users.Create(r.Context(), req.Email, req.FullName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUser(u))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUser(u))
}

func (h *Handler) CalculateBurnout(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", h.windowDays)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	score, err := h.svc.Burnout.Calculate(r.Context(), UserIDFromContext(r.Context()), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (h *Handler) BurnoutMetrics(w http.ResponseWriter, r *http.Request) {
	days, err := timeframeParam(r, h.windowDays)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	m, err := h.svc.Burnout.Metrics(r.Context(), UserIDFromContext(r.Context()), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if m.WeeklyTrend == nil {
		m.WeeklyTrend = []scoring.Point{}
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *Handler) BurnoutHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", service.DefaultHistoryLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	scores, err := h.svc.Burnout.History(r.Context(), UserIDFromContext(r.Context()), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoresOrEmpty(scores))
}

func (h *Handler) BurnoutTrend(w http.ResponseWriter, r *http.Request) {
	days, err := timeframeParam(r, defaultTrendDays)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	trend, err := h.svc.Burnout.Trend(r.Context(), UserIDFromContext(r.Context()), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrend(days, trend))
}

func (h *Handler) BurnoutRange(w http.ResponseWriter, r *http.Request) {
	from, err := timeParam(r, "from")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	to, err := timeParam(r, "to")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	scores, err := h.svc.Burnout.Range(r.Context(), UserIDFromContext(r.Context()), from, to)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scoresOrEmpty(scores))
}

func (h *Handler) CreateWorkSession(w http.ResponseWriter, r *http.Request) {
	var req WorkSessionRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.svc.Activity.LogWorkSession(r.Context(), UserIDFromContext(r.Context()), service.WorkSessionInput{
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		ActivityType:      req.ActivityType,
		ProductivityScore: req.ProductivityScore,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkSession(s))
}

func (h *Handler) ListWorkSessions(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", h.windowDays)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sessions, err := h.svc.Activity.ListWorkSessions(r.Context(), UserIDFromContext(r.Context()), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkSessions(sessions))
}

func (h *Handler) WorkPatterns(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", defaultTrendDays)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.svc.Patterns.WorkPatterns(r.Context(), UserIDFromContext(r.Context()), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req MeetingRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	m, err := h.svc.Activity.AddMeeting(r.Context(), UserIDFromContext(r.Context()), service.MeetingInput{
		Title:          req.Title,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		AttendeesCount: req.AttendeesCount,
		IsAfterHours:   req.IsAfterHours,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMeeting(m))
}

func (h *Handler) RecentMeetings(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", service.DefaultRecentLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	meetings, err := h.svc.Activity.RecentMeetings(r.Context(), UserIDFromContext(r.Context()), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMeetings(meetings))
}

func (h *Handler) CreateEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	e, err := h.svc.Activity.AddEmail(r.Context(), UserIDFromContext(r.Context()), service.EmailInput{
		Subject:      req.Subject,
		Body:         req.Body,
		SentAt:       req.SentAt,
		IsSent:       req.IsSent,
		IsAfterHours: req.IsAfterHours,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmail(e))
}

func (h *Handler) RecentEmails(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", service.DefaultRecentLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	emails, err := h.svc.Activity.RecentEmails(r.Context(), UserIDFromContext(r.Context()), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmails(emails))
}

func (h *Handler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req JournalRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	j, err := h.svc.Activity.AddJournalEntry(r.Context(), UserIDFromContext(r.Context()), service.JournalInput{
		Content:   req.Content,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJournal(j))
}

func (h *Handler) RecentJournalEntries(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", service.DefaultRecentLimit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	entries, err := h.svc.Activity.RecentJournalEntries(r.Context(), UserIDFromContext(r.Context()), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournals(entries))
}

func (h *Handler) GetJournalEntry(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.Activity.GetJournalEntry(r.Context(), UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toJournal(j))
}

// Import accepts the same document as the import file format.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var schema importer.ImportSchema
	if err := decode(w, r, &schema); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.svc.Import.Import(r.Context(), UserIDFromContext(r.Context()), &schema)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
