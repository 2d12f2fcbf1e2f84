package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/cinder/internal/service"
)

var validate = validator.New()

const maxBodyBytes = 1 << 20

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"max=200"`
}

type WorkSessionRequest struct {
	StartTime         time.Time `json:"start_time" validate:"required"`
	EndTime           time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	ActivityType      string    `json:"activity_type" validate:"max=100"`
	ProductivityScore *float64  `json:"productivity_score,omitempty" validate:"omitempty,gte=0,lte=1"`
}

type MeetingRequest struct {
	Title          string    `json:"title" validate:"required,max=300"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required,gtefield=StartTime"`
	AttendeesCount *int      `json:"attendees_count,omitempty" validate:"omitempty,gte=1"`
	IsAfterHours   *bool     `json:"is_after_hours,omitempty"`
}

type EmailRequest struct {
	Subject      string    `json:"subject" validate:"required_without=Body"`
	Body         string    `json:"body" validate:"required_without=Subject"`
	SentAt       time.Time `json:"sent_at"`
	IsSent       *bool     `json:"is_sent,omitempty"`
	IsAfterHours *bool     `json:"is_after_hours,omitempty"`
}

type JournalRequest struct {
	Content   string    `json:"content" validate:"required,max=20000"`
	CreatedAt time.Time `json:"created_at"`
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &service.ValidationError{Message: "invalid JSON body: " + err.Error()}
	}
	return validate.Struct(dst)
}

// intParam reads a positive integer query parameter.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &service.ValidationError{Field: name, Message: fmt.Sprintf("must be a positive integer, got %q", raw)}
	}
	return n, nil
}

// timeframeParam accepts "7d", "30d" and friends.
func timeframeParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("timeframe")
	if raw == "" {
		return intParam(r, "days", fallback)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
	if err != nil || n <= 0 || !strings.HasSuffix(raw, "d") {
		return 0, &service.ValidationError{Field: "timeframe", Message: fmt.Sprintf("expected a value like 7d or 30d, got %q", raw)}
	}
	return n, nil
}

func timeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, &service.ValidationError{Field: name, Message: "is required"}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &service.ValidationError{Field: name, Message: fmt.Sprintf("invalid RFC3339 time %q", raw)}
	}
	return t, nil
}
