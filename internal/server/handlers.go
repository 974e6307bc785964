package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"timeguard/internal/api"
	"timeguard/internal/domain"
	"timeguard/internal/errors"
	"timeguard/internal/report"
	"timeguard/internal/timesheet"
	"timeguard/internal/validation"
)

// Response is the envelope of every JSON reply. Code is 0 on success and
// the HTTP status otherwise.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Line    int         `json:"line,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationData is the payload of a successful validation.
type ValidationData struct {
	Start          domain.Date                `json:"start"`
	Days           int                        `json:"days"`
	MissingEntries []domain.DiscrepancyRecord `json:"missingEntries"`
	ExtraEntries   []domain.DiscrepancyRecord `json:"extraEntries"`
	Summary        domain.Summary             `json:"summary"`
	Daily          []DayTotal                 `json:"daily"`
}

// DayTotal is the scheduled and logged time of one date, in minutes.
type DayTotal struct {
	Date             domain.Date `json:"date"`
	CalendarEvents   int         `json:"calendarEvents"`
	TimesheetEntries int         `json:"timesheetEntries"`
	Projects         int         `json:"projects"`
	CalendarMinutes  int         `json:"calendarMinutes"`
	LoggedMinutes    int         `json:"loggedMinutes"`
}

// CalendarEvent is one event of a CalendarDay.
type CalendarEvent struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Start domain.Clock `json:"start"`
	End   domain.Clock `json:"end"`
}

// CalendarDay is one date of a calendar reply.
type CalendarDay struct {
	Date   domain.Date     `json:"date"`
	Events []CalendarEvent `json:"events"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, status int, message string, code string) {
	c.AbortWithStatusJSON(status, Response{
		Code:    status,
		Message: message,
		Error:   code,
	})
}

// fail maps err onto a status code and a user message.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	message := errors.GetUserMessage(err)
	var ve *validation.ValidationError
	if !errors.IsAppError(err) && stderrors.As(err, &ve) {
		message = ve.GetUserFriendlyMessage()
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	resp := Response{Code: status, Message: message, Error: errors.GetErrorCode(err)}
	if line, ok := errors.LineOf(err); ok {
		resp.Line = line
	}
	c.AbortWithStatusJSON(status, resp)
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case stderrors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case validation.IsValidationError(err):
		return http.StatusBadRequest
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput, errors.ErrorTypeParse:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrorTypeCalendarSource:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Health reports that the server is up.
func (s *Server) Health(c *gin.Context) {
	success(c, gin.H{"status": "ok"})
}

// Validate reconciles an uploaded timesheet against the calendar. The
// multipart field "timesheet" carries the file; its extension selects the
// decoder. The optional "format" query returns a rendered document instead
// of the JSON envelope.
func (s *Server) Validate(c *gin.Context) {
	limit := s.cfg.Server.MaxUploadBytes
	if c.Request.ContentLength > limit {
		errorResponse(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("upload exceeds %d bytes", limit), "UPLOAD_TOO_LARGE")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	opts, err := validateOptions(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	var render *report.Renderer
	if f := c.Query("format"); f != "" && f != string(report.FormatJSON) {
		format, err := report.ParseFormat(f)
		if err != nil {
			s.fail(c, err)
			return
		}
		render = report.NewRenderer(format)
	}

	fh, err := c.FormFile("timesheet")
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			s.fail(c, err)
			return
		}
		errorResponse(c, http.StatusBadRequest, "missing timesheet upload", "MISSING_UPLOAD")
		return
	}

	format, err := timesheet.FormatFromPath(fh.Filename)
	if err != nil {
		s.fail(c, err)
		return
	}

	file, err := fh.Open()
	if err != nil {
		s.fail(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	ctx, cancel := s.requestContext(c)
	defer cancel()

	ts, err := s.service.DecodeTimesheet(ctx, file, format)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.service.Validate(ctx, ts, opts)
	if err != nil {
		s.fail(c, err)
		return
	}

	if render != nil {
		c.Header("Content-Type", render.Format().ContentType())
		c.Status(http.StatusOK)
		if err := render.RenderValidation(c.Writer, report.Validation{
			Start:   result.Start,
			Days:    result.Days,
			Report:  result.Report,
			Summary: result.Summary,
			Daily:   result.Daily,
		}); err != nil {
			s.logger.Error("render failed", "error", err)
		}
		return
	}

	data := ValidationData{
		Start:          result.Start,
		Days:           result.Days,
		MissingEntries: orEmpty(result.Report.MissingEntries),
		ExtraEntries:   orEmpty(result.Report.ExtraEntries),
		Summary:        result.Summary,
		Daily:          make([]DayTotal, 0, len(result.Daily)),
	}
	for _, d := range result.Daily {
		data.Daily = append(data.Daily, DayTotal{
			Date:             d.Date,
			CalendarEvents:   d.CalendarEvents,
			TimesheetEntries: d.TimesheetEntries,
			Projects:         d.Projects,
			CalendarMinutes:  int(d.CalendarTime.Minutes()),
			LoggedMinutes:    int(d.LoggedTime.Minutes()),
		})
	}
	success(c, data)
}

// Calendar returns the calendar for the "start" and "days" queries.
func (s *Server) Calendar(c *gin.Context) {
	start := domain.DateOf(time.Now())
	if v := c.Query("start"); v != "" {
		d, err := parseStart(v)
		if err != nil {
			s.fail(c, err)
			return
		}
		start = d
	}

	days := s.cfg.Calendar.Days
	if v := c.Query("days"); v != "" {
		n, err := parseDays(v)
		if err != nil {
			s.fail(c, err)
			return
		}
		days = n
	}

	ctx, cancel := s.requestContext(c)
	defer cancel()

	cal, err := s.service.Calendar(ctx, start, days)
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]CalendarDay, 0, cal.Len())
	for _, day := range cal.Days() {
		cd := CalendarDay{Date: day.Date, Events: make([]CalendarEvent, 0, len(day.Events))}
		for _, ev := range day.Events {
			cd.Events = append(cd.Events, CalendarEvent{ID: ev.ID, Title: ev.Title, Start: ev.Start, End: ev.End})
		}
		out = append(out, cd)
	}
	success(c, out)
}

func (s *Server) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.cfg.GetAppTimeout())
}

func validateOptions(c *gin.Context) (api.ValidateOptions, error) {
	var opts api.ValidateOptions
	if v := c.Query("start"); v != "" {
		d, err := parseStart(v)
		if err != nil {
			return opts, err
		}
		opts.Start = &d
	}
	if v := c.Query("days"); v != "" {
		n, err := parseDays(v)
		if err != nil {
			return opts, err
		}
		opts.Days = n
	}
	if v := c.Query("flag_uncovered_dates"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return opts, errors.NewInvalidInputError("flag_uncovered_dates", v, "must be true or false")
		}
		opts.FlagUncoveredDates = &b
	}
	return opts, nil
}

func parseStart(v string) (domain.Date, error) {
	d, err := domain.ParseDate(strings.TrimSpace(v))
	if err != nil {
		return domain.Date{}, errors.NewInvalidInputError("start", v, "expected YYYY-MM-DD")
	}
	return d, nil
}

func parseDays(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 0, errors.NewInvalidInputError("days", v, "must be a positive integer")
	}
	return n, nil
}

func orEmpty(records []domain.DiscrepancyRecord) []domain.DiscrepancyRecord {
	if records == nil {
		return []domain.DiscrepancyRecord{}
	}
	return records
}
