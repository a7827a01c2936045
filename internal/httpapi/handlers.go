package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"line-billing/internal/audit"
	"line-billing/internal/auth"
	"line-billing/internal/calls"
	"line-billing/internal/contract"
	"line-billing/internal/lines"
	"line-billing/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth  *auth.Manager
	Lines *lines.Service
	Audit *audit.Service
}

const dateLayout = "2006-01-02"

// --- Auth ---

type loginRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This endpoint does not validate credentials; the service is deployed
// behind an internal gateway that authenticates operators upstream.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Lines ---

type createLineRequest struct {
	Number string `json:"number"`
	Plan   string `json:"plan"`
	Start  string `json:"start"`

	// End is required for term plans (YYYY-MM-DD).
	End string `json:"end,omitempty"`
	// Credit is the initial prepaid credit as a decimal string.
	Credit string `json:"credit,omitempty"`
}

func (h Handlers) CreateLine(c *gin.Context) {
	var req createLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
		return
	}

	svcReq := lines.CreateLineRequest{
		Number: req.Number,
		Plan:   lines.PlanType(req.Plan),
		Start:  start,
		Credit: decimal.Zero,
	}
	if req.End != "" {
		end, err := time.Parse(dateLayout, req.End)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
			return
		}
		svcReq.End = end
	}
	if req.Credit != "" {
		credit, err := decimal.NewFromString(req.Credit)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "credit must be a decimal"})
			return
		}
		svcReq.Credit = credit
	}

	view, err := h.Lines.CreateLine(svcReq)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	h.auditLog(c, func(actor, role, ip string) error {
		return h.Audit.LogLineCreated(c.Request.Context(), actor, role, ip, view.ID,
			fmt.Sprintf(`{"plan":%q,"number":%q}`, view.Plan, view.Number))
	})

	c.JSON(http.StatusCreated, view)
}

func (h Handlers) GetLine(c *gin.Context) {
	view, err := h.Lines.GetLine(c.Param("line_id"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type advanceCycleRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (h Handlers) AdvanceCycle(c *gin.Context) {
	lineID := c.Param("line_id")

	var req advanceCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	summary, err := h.Lines.AdvanceCycle(lineID, req.Month, req.Year)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	h.auditLog(c, func(actor, role, ip string) error {
		return h.Audit.LogCycleAdvanced(c.Request.Context(), actor, role, ip, lineID,
			fmt.Sprintf("cycle %d/%d opened", req.Month, req.Year))
	})

	c.JSON(http.StatusOK, summary)
}

type billCallRequest struct {
	CallID   string `json:"call_id,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Duration int    `json:"duration"`
}

func (h Handlers) BillCall(c *gin.Context) {
	lineID := c.Param("line_id")

	var req billCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.CallID == "" {
		req.CallID = uuid.NewString()
	}

	summary, err := h.Lines.BillCall(lineID, calls.Call{
		CallID:   req.CallID,
		LineID:   lineID,
		From:     req.From,
		To:       req.To,
		Duration: req.Duration,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h Handlers) TerminateLine(c *gin.Context) {
	lineID := c.Param("line_id")

	owed, err := h.Lines.Terminate(lineID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	h.auditLog(c, func(actor, role, ip string) error {
		return h.Audit.LogLineTerminated(c.Request.Context(), actor, role, ip, lineID,
			fmt.Sprintf(`{"amount_owed":%q}`, owed))
	})

	c.JSON(http.StatusOK, gin.H{"amount_owed": owed})
}

// auditLog writes an audit event best-effort: failures are logged, never
// surfaced to the caller.
func (h Handlers) auditLog(c *gin.Context, fn func(actor, role, ip string) error) {
	if h.Audit == nil {
		return
	}
	actor, _ := auth.UserID(c.Request.Context())
	role, _ := auth.Role(c.Request.Context())
	if err := fn(actor, role, c.ClientIP()); err != nil {
		logger.FromGin(c).Error("audit append failed", "err", err)
	}
}

func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lines.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "line not found"})
	case errors.Is(err, lines.ErrInvalidArgument),
		errors.Is(err, contract.ErrEndNotAfterStart),
		errors.Is(err, contract.ErrNegativeCredit):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, lines.ErrLineTerminated),
		errors.Is(err, lines.ErrNoOpenCycle),
		errors.Is(err, lines.ErrDuplicateCycle):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
