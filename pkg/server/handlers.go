package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/lang-portal/pkg/logger"
	"github.com/example/lang-portal/pkg/study"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *study.Store
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateStudySession handles POST /api/study-sessions.
func (h *Handler) CreateStudySession(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, study.Validation("Missing required fields"))
		return
	}
	groupRaw, hasGroup := body["group_id"]
	activityRaw, hasActivity := body["study_activity_id"]
	if !hasGroup || !hasActivity {
		writeError(c, study.Validation("Missing required fields"))
		return
	}

	groupID, groupErr := parseID(groupRaw)
	activityID, activityErr := parseID(activityRaw)
	if groupErr != nil || activityErr != nil {
		writeError(c, study.Validation("Invalid ID format"))
		return
	}

	session, err := h.store.CreateSession(c.Request.Context(), groupID, activityID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListStudySessions handles GET /api/study-sessions.
func (h *Handler) ListStudySessions(c *gin.Context) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", study.DefaultPerPage)

	result, err := h.store.ListSessions(c.Request.Context(), page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStudySession handles GET /api/study-sessions/:id.
func (h *Handler) GetStudySession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, study.NotFound("Study session not found"))
		return
	}
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", study.DefaultPerPage)

	detail, err := h.store.GetSession(c.Request.Context(), id, page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateReviewItem handles POST /api/study-sessions/:id/review.
func (h *Handler) CreateReviewItem(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, study.NotFound("Study session not found"))
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, study.Validation("Missing required fields"))
		return
	}
	wordRaw, hasWord := body["word_id"]
	correctRaw, hasCorrect := body["correct"]
	if !hasWord || !hasCorrect {
		writeError(c, study.Validation("Missing required fields"))
		return
	}

	wordID, wordErr := parseID(wordRaw)
	var correct bool
	correctErr := json.Unmarshal(correctRaw, &correct)
	if wordErr != nil || correctErr != nil {
		writeError(c, study.Validation("Invalid data format"))
		return
	}

	review, err := h.store.CreateReviewItem(c.Request.Context(), sessionID, wordID, correct)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ResetStudyHistory handles POST /api/study-sessions/reset.
func (h *Handler) ResetStudyHistory(c *gin.Context) {
	if err := h.store.ResetHistory(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Study history cleared successfully"})
}

// GetGroupWordsRaw handles GET /groups/:id/words/raw.
func (h *Handler) GetGroupWordsRaw(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, study.NotFound("Group not found"))
		return
	}
	words, err := h.store.GroupWords(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"words": words})
}

// writeError maps the typed error taxonomy onto HTTP statuses. Only the
// caller-safe message goes out; wrapped causes are logged.
func writeError(c *gin.Context, err error) {
	var e *study.Error
	if !errors.As(err, &e) {
		e = study.Internal(err)
	}
	if e.Err != nil {
		logger.Error("request failed",
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"error", e.Err,
		)
	}
	c.JSON(statusFor(e.Kind), errorResponse{Error: e.Message})
}

func statusFor(kind study.Kind) int {
	switch kind {
	case study.KindValidation:
		return http.StatusBadRequest
	case study.KindNotFound:
		return http.StatusNotFound
	case study.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseID accepts a JSON number or a numeric string; clients send
// identifiers both ways.
func parseID(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case json.Number:
		return strconv.Atoi(n.String())
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("unsupported id type %T", v)
	}
}

// intQuery mirrors the lenient query parsing of the original API:
// absent or malformed values fall back to the default.
func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
