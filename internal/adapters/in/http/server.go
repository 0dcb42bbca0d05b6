// Package http exposes the workflow operations and status views over a
// JSON API. Handlers translate between wire types and commands/queries;
// every guard decision is made by the domain, never here.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/model/assignment"
	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/pkg/errs"
)

// actorHeader carries the acting user's id on every mutating request.
const actorHeader = "X-Actor-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	assignPersonHandler      commands.AssignPersonCommandHandler
	issueHandler             commands.IssueAssignmentCommandHandler
	confirmHandler           commands.ConfirmAssignmentCommandHandler
	setInProgressHandler     commands.SetInProgressCommandHandler
	setHoldHandler           commands.SetInProgressAndHoldCommandHandler
	completeHandler          commands.CompleteAssignmentCommandHandler
	bulkCompleteHandler      commands.BulkCompleteCommandHandler
	cancelAssignmentHandler  commands.CancelAssignmentCommandHandler
	forceSetStatusHandler    commands.ForceSetStatusCommandHandler
	cancelWorkOrderHandler   commands.CancelWorkOrderCommandHandler

	// Query handlers
	workOrderStatusHandler   queries.GetWorkOrderStatusQueryHandler
	activeAssignmentsHandler queries.GetActiveAssignmentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	assignPersonHandler commands.AssignPersonCommandHandler,
	issueHandler commands.IssueAssignmentCommandHandler,
	confirmHandler commands.ConfirmAssignmentCommandHandler,
	setInProgressHandler commands.SetInProgressCommandHandler,
	setHoldHandler commands.SetInProgressAndHoldCommandHandler,
	completeHandler commands.CompleteAssignmentCommandHandler,
	bulkCompleteHandler commands.BulkCompleteCommandHandler,
	cancelAssignmentHandler commands.CancelAssignmentCommandHandler,
	forceSetStatusHandler commands.ForceSetStatusCommandHandler,
	cancelWorkOrderHandler commands.CancelWorkOrderCommandHandler,
	workOrderStatusHandler queries.GetWorkOrderStatusQueryHandler,
	activeAssignmentsHandler queries.GetActiveAssignmentsQueryHandler,
) *Server {
	return &Server{
		assignPersonHandler:      assignPersonHandler,
		issueHandler:             issueHandler,
		confirmHandler:           confirmHandler,
		setInProgressHandler:     setInProgressHandler,
		setHoldHandler:           setHoldHandler,
		completeHandler:          completeHandler,
		bulkCompleteHandler:      bulkCompleteHandler,
		cancelAssignmentHandler:  cancelAssignmentHandler,
		forceSetStatusHandler:    forceSetStatusHandler,
		cancelWorkOrderHandler:   cancelWorkOrderHandler,
		workOrderStatusHandler:   workOrderStatusHandler,
		activeAssignmentsHandler: activeAssignmentsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/work-orders/:id/assignments", s.AssignPerson)
	v1.POST("/work-orders/:id/cancel", s.CancelWorkOrder)
	v1.GET("/work-orders/:id/status", s.GetWorkOrderStatus)

	v1.POST("/assignments/:id/issue", s.IssueAssignment)
	v1.POST("/assignments/:id/confirm", s.ConfirmAssignment)
	v1.POST("/assignments/:id/start", s.StartAssignment)
	v1.POST("/assignments/:id/hold", s.HoldAssignment)
	v1.POST("/assignments/:id/complete", s.CompleteAssignment)
	v1.POST("/assignments/:id/cancel", s.CancelAssignment)
	v1.POST("/assignments/:id/force-status", s.ForceSetStatus)
	v1.POST("/assignments/complete-batch", s.BulkComplete)

	v1.GET("/persons/:id/assignments", s.GetActiveAssignments)
}

// Error is the wire shape of every error response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FieldChange is the wire shape of one changed work order field.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

type changesResponse struct {
	WorkOrderChanges []FieldChange `json:"work_order_changes"`
}

// AssignPerson handles POST /api/v1/work-orders/:id/assignments.
func (s *Server) AssignPerson(ctx echo.Context) error {
	var body struct {
		PersonID        string `json:"person_id"`
		JobType         string `json:"job_type"`
		WorkDescription string `json:"work_description"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workOrderID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid work order id")
	}
	personID, err := kernel.UUIDFromString(body.PersonID)
	if err != nil {
		return badRequest(ctx, "Invalid person id")
	}
	actorID, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+actorHeader+" header")
	}
	jobType, err := assignment.JobTypeFromString(body.JobType)
	if err != nil {
		return badRequest(ctx, "Invalid job type: "+body.JobType)
	}

	cmd, err := commands.NewAssignPersonCommand(workOrderID, personID, actorID, jobType, body.WorkDescription)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.assignPersonHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toChangesResponse(changes))
}

// IssueAssignment handles POST /api/v1/assignments/:id/issue.
func (s *Server) IssueAssignment(ctx echo.Context) error {
	assignmentID, actorID, err := assignmentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewIssueAssignmentCommand(assignmentID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.issueHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// ConfirmAssignment handles POST /api/v1/assignments/:id/confirm.
func (s *Server) ConfirmAssignment(ctx echo.Context) error {
	var body struct {
		ConfirmedAt *time.Time `json:"confirmed_at"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	assignmentID, actorID, err := assignmentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewConfirmAssignmentCommand(assignmentID, actorID, body.ConfirmedAt)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.confirmHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// StartAssignment handles POST /api/v1/assignments/:id/start.
func (s *Server) StartAssignment(ctx echo.Context) error {
	assignmentID, actorID, err := assignmentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSetInProgressCommand(assignmentID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.setInProgressHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// HoldAssignment handles POST /api/v1/assignments/:id/hold.
func (s *Server) HoldAssignment(ctx echo.Context) error {
	assignmentID, actorID, err := assignmentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewSetInProgressAndHoldCommand(assignmentID, actorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.setHoldHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// CompleteAssignment handles POST /api/v1/assignments/:id/complete.
func (s *Server) CompleteAssignment(ctx echo.Context) error {
	var body struct {
		CompletionCode string     `json:"completion_code"`
		CompletedAt    *time.Time `json:"completed_at"`
		Origin         string     `json:"origin"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	assignmentID, actorID, err := assignmentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteAssignmentCommand(
		assignmentID, actorID, body.CompletionCode, parseOrigin(body.Origin), body.CompletedAt)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.completeHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// BulkComplete handles POST /api/v1/assignments/complete-batch.
func (s *Server) BulkComplete(ctx echo.Context) error {
	var body struct {
		AssignmentIDs  []string   `json:"assignment_ids"`
		CompletionCode string     `json:"completion_code"`
		CompletedAt    *time.Time `json:"completed_at"`
		Origin         string     `json:"origin"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+actorHeader+" header")
	}

	ids := make([]kernel.UUID, 0, len(body.AssignmentIDs))
	for _, raw := range body.AssignmentIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid assignment id: "+raw)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewBulkCompleteCommand(
		ids, actorID, body.CompletionCode, parseOrigin(body.Origin), body.CompletedAt)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.bulkCompleteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// CancelAssignment handles POST /api/v1/assignments/:id/cancel.
func (s *Server) CancelAssignment(ctx echo.Context) error {
	var body struct {
		Reason              string `json:"reason"`
		ReplacementPersonID string `json:"replacement_person_id"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	assignmentID, actorID, err := assignmentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var replacement *kernel.UUID
	if body.ReplacementPersonID != "" {
		id, idErr := kernel.UUIDFromString(body.ReplacementPersonID)
		if idErr != nil {
			return badRequest(ctx, "Invalid replacement person id")
		}
		replacement = &id
	}

	cmd, err := commands.NewCancelAssignmentCommand(assignmentID, actorID, body.Reason, replacement)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.cancelAssignmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// ForceSetStatus handles POST /api/v1/assignments/:id/force-status.
func (s *Server) ForceSetStatus(ctx echo.Context) error {
	var body struct {
		StatusKey string `json:"status_key"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	assignmentID, actorID, err := assignmentAndActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewForceSetStatusCommand(assignmentID, actorID, body.StatusKey)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.forceSetStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// CancelWorkOrder handles POST /api/v1/work-orders/:id/cancel.
func (s *Server) CancelWorkOrder(ctx echo.Context) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workOrderID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid work order id")
	}
	actorID, err := actor(ctx)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+actorHeader+" header")
	}

	cmd, err := commands.NewCancelWorkOrderCommand(workOrderID, actorID, body.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	changes, err := s.cancelWorkOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toChangesResponse(changes))
}

// GetWorkOrderStatus handles GET /api/v1/work-orders/:id/status.
func (s *Server) GetWorkOrderStatus(ctx echo.Context) error {
	workOrderID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid work order id")
	}

	query, err := queries.NewGetWorkOrderStatusQuery(workOrderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.workOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	type assignmentView struct {
		ID          string     `json:"id"`
		PersonID    string     `json:"person_id"`
		PersonKind  string     `json:"person_kind"`
		JobType     string     `json:"job_type"`
		StatusKey   string     `json:"status_key"`
		Priority    int        `json:"priority"`
		Disabled    bool       `json:"disabled"`
		CompletedAt *time.Time `json:"completed_at,omitempty"`
	}

	assignments := make([]assignmentView, len(view.Assignments))
	for i, item := range view.Assignments {
		assignments[i] = assignmentView{
			ID:          item.ID.String(),
			PersonID:    item.PersonID.String(),
			PersonKind:  item.PersonKind,
			JobType:     item.JobType,
			StatusKey:   item.StatusKey,
			Priority:    item.Priority,
			Disabled:    item.Disabled,
			CompletedAt: item.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"work_order_id":          view.WorkOrderID.String(),
		"status_key":             view.StatusKey,
		"invoice_status":         view.InvoiceStatus,
		"actual_completion_date": view.ActualCompletionDate,
		"assignments":            assignments,
	})
}

// GetActiveAssignments handles GET /api/v1/persons/:id/assignments.
func (s *Server) GetActiveAssignments(ctx echo.Context) error {
	personID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid person id")
	}

	query, err := queries.NewGetActiveAssignmentsQuery(personID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	items, err := s.activeAssignmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	type itemView struct {
		ID              string `json:"id"`
		WorkOrderID     string `json:"work_order_id"`
		JobType         string `json:"job_type"`
		StatusKey       string `json:"status_key"`
		Priority        int    `json:"priority"`
		WorkDescription string `json:"work_description"`
	}

	response := make([]itemView, len(items))
	for i, item := range items {
		response[i] = itemView{
			ID:              item.ID.String(),
			WorkOrderID:     item.WorkOrderID.String(),
			JobType:         item.JobType,
			StatusKey:       item.StatusKey,
			Priority:        item.Priority,
			WorkDescription: item.WorkDescription,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toChangesResponse(changes []workorder.FieldChange) changesResponse {
	response := changesResponse{WorkOrderChanges: make([]FieldChange, len(changes))}
	for i, change := range changes {
		response.WorkOrderChanges[i] = FieldChange{
			Field: change.Field,
			Old:   change.Old,
			New:   change.New,
		}
	}
	return response
}

func pathUUID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

func actor(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(actorHeader))
}

func assignmentAndActor(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	assignmentID, err := pathUUID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid assignment id")
	}
	actorID, err := actor(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("missing or invalid " + actorHeader + " header")
	}
	return assignmentID, actorID, nil
}

func parseOrigin(value string) commands.Origin {
	if value == "mobile" {
		return commands.OriginMobile
	}
	return commands.OriginOperator
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain failures to HTTP statuses. Guard failures carry a
// transition kind; anything else falls through to the generic buckets.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	if kind, ok := errs.TransitionKindOf(err); ok {
		switch kind {
		case errs.InvalidTransition, errs.AlreadyInTargetState:
			status = http.StatusConflict
		case errs.PreconditionMissing, errs.LastAssignmentMissingCompletionDate:
			status = http.StatusUnprocessableEntity
		case errs.NotAuthorized:
			status = http.StatusForbidden
		case errs.UnknownStatusLabel:
			status = http.StatusBadRequest
		}
	} else {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			status = http.StatusNotFound
		case errors.Is(err, errs.ErrValueIsInvalid),
			errors.Is(err, errs.ErrValueIsRequired),
			errors.Is(err, errs.ErrValueIsOutOfRange):
			status = http.StatusBadRequest
		}
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
