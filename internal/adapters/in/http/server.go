// Package http exposes the matching use cases over echo. Handlers translate
// wire types to commands and queries and map typed errors to status codes.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"jobmatch/internal/adapters/in/http/api"
	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/application/usecases/queries"
	"jobmatch/internal/core/domain/model/assignment"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// AlreadyClaimedMessage is what a worker sees after losing an accept race.
const AlreadyClaimedMessage = "this job is no longer available"

type (
	MatchFinder interface {
		Handle(ctx context.Context, query queries.FindMatchesQuery) ([]services.Candidate, error)
	}
	JobOffersReader interface {
		Handle(ctx context.Context, query queries.GetJobOffersQuery) ([]queries.GetJobOffersQueryResponse, error)
	}
	JobDispatcher interface {
		Handle(ctx context.Context, command commands.DispatchJobCommand) (commands.DispatchJobResult, error)
	}
	OfferExtender interface {
		Handle(ctx context.Context, command commands.ExtendOfferCommand) (*assignment.Assignment, error)
	}
	OfferAcceptor interface {
		Handle(ctx context.Context, command commands.AcceptOfferCommand) (commands.AcceptOfferResult, error)
	}
	OfferRejecter interface {
		Handle(ctx context.Context, command commands.RejectOfferCommand) (commands.RejectOfferResult, error)
	}
	CheckInGate interface {
		Handle(ctx context.Context, command commands.CheckInCommand) (services.GeofenceResult, error)
	}
	JobCompleter interface {
		Handle(ctx context.Context, command commands.CompleteJobCommand) error
	}
	OfferSweeper interface {
		Handle(ctx context.Context, command commands.SweepExpiredOffersCommand) (commands.SweepReport, error)
	}
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	FindMatches  MatchFinder
	GetJobOffers JobOffersReader
	DispatchJob  JobDispatcher
	ExtendOffer  OfferExtender
	AcceptOffer  OfferAcceptor
	RejectOffer  OfferRejecter
	CheckIn      CheckInGate
	CompleteJob  JobCompleter
	SweepOffers  OfferSweeper
}

// Server implements api.ServerInterface.
type Server struct {
	handlers Handlers
	clock    ports.Clock
	logger   *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, clock ports.Clock, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		clock:    clock,
		logger:   logger.With("component", "http"),
	}
}

// GetJobMatches handles GET /api/v1/jobs/{jobId}/matches.
func (s *Server) GetJobMatches(ctx echo.Context, jobId api.JobId, params api.GetJobMatchesParams) error {
	jobID, err := toUUID(jobId)
	if err != nil {
		return s.fail(ctx, err)
	}
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewFindMatchesQuery(jobID, nil, limit)
	if err != nil {
		return s.fail(ctx, err)
	}

	candidates, err := s.handlers.FindMatches.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.Match, len(candidates))
	for i, c := range candidates {
		response[i] = toMatch(c)
	}
	return ctx.JSON(http.StatusOK, response)
}

// DispatchJob handles POST /api/v1/jobs/{jobId}/dispatch.
func (s *Server) DispatchJob(ctx echo.Context, jobId api.JobId) error {
	jobID, err := toUUID(jobId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDispatchJobCommand(jobID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.DispatchJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.Dispatch{
		Offer: toOffer(result.Assignment),
		Match: toMatch(result.Candidate),
	})
}

// GetJobOffers handles GET /api/v1/jobs/{jobId}/offers.
func (s *Server) GetJobOffers(ctx echo.Context, jobId api.JobId) error {
	jobID, err := toUUID(jobId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetJobOffersQuery(jobID)
	if err != nil {
		return s.fail(ctx, err)
	}

	offers, err := s.handlers.GetJobOffers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.JobOffer, len(offers))
	for i, o := range offers {
		response[i] = api.JobOffer{
			Id:         o.ID.Bytes(),
			WorkerId:   o.WorkerID.Bytes(),
			WorkerName: o.WorkerName,
			Status:     o.Status.String(),
			MatchScore: o.MatchScore,
			ExpiresAt:  o.ExpiresAt,
			AcceptedAt: o.AcceptedAt,
			CreatedAt:  o.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ExtendOffer handles POST /api/v1/jobs/{jobId}/offers.
func (s *Server) ExtendOffer(ctx echo.Context, jobId api.JobId) error {
	var body api.ExtendOfferJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	jobID, err := toUUID(jobId)
	if err != nil {
		return s.fail(ctx, err)
	}
	workerID, err := toUUID(body.WorkerId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewExtendOfferCommand(jobID, workerID, body.Score)
	if err != nil {
		return s.fail(ctx, err)
	}

	offer, err := s.handlers.ExtendOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOffer(offer))
}

// AcceptOffer handles POST /api/v1/offers/{offerId}/accept.
func (s *Server) AcceptOffer(ctx echo.Context, offerId api.OfferId, params api.AcceptOfferParams) error {
	offerID, workerID, err := toUUIDs(offerId, params.XWorkerId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAcceptOfferCommand(offerID, workerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.AcceptOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	cancelled := make([]api.OfferId, len(result.Cancelled))
	for i, c := range result.Cancelled {
		cancelled[i] = c.ID().Bytes()
	}
	return ctx.JSON(http.StatusOK, api.Acceptance{
		Offer:             toOffer(result.Assignment),
		CancelledOfferIds: cancelled,
	})
}

// RejectOffer handles POST /api/v1/offers/{offerId}/reject. The job is
// re-offered unless rematch=false.
func (s *Server) RejectOffer(ctx echo.Context, offerId api.OfferId, params api.RejectOfferParams) error {
	offerID, workerID, err := toUUIDs(offerId, params.XWorkerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	rematch := params.Rematch == nil || *params.Rematch

	cmd, err := commands.NewRejectOfferCommand(offerID, workerID, rematch)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.RejectOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := api.Rejection{
		Offer:   toOffer(result.Assignment),
		Rematch: toRematch(result.Rematch),
	}
	if result.NextOffer != nil {
		next := toOffer(result.NextOffer)
		response.NextOffer = &next
	}
	return ctx.JSON(http.StatusOK, response)
}

// CheckIn handles POST /api/v1/jobs/{jobId}/check-in.
func (s *Server) CheckIn(ctx echo.Context, jobId api.JobId, params api.CheckInParams) error {
	var body api.CheckInJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	jobID, workerID, err := toUUIDs(jobId, params.XWorkerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	reported, err := kernel.NewLocation(body.Latitude, body.Longitude)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCheckInCommand(jobID, workerID, reported)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CheckIn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, api.Geofence{
		Valid:               result.Valid,
		DistanceMeters:      result.DistanceMeters,
		AllowedRadiusMeters: result.MaxDistanceMeters,
	})
}

// CompleteJob handles POST /api/v1/jobs/{jobId}/complete.
func (s *Server) CompleteJob(ctx echo.Context, jobId api.JobId, params api.CompleteJobParams) error {
	jobID, workerID, err := toUUIDs(jobId, params.XWorkerId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCompleteJobCommand(jobID, workerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CompleteJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RunSweep handles POST /api/v1/sweeps.
func (s *Server) RunSweep(ctx echo.Context) error {
	cmd, err := commands.NewSweepExpiredOffersCommand(s.clock.Now())
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.handlers.SweepOffers.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, api.SweepReport{
		Scanned:   report.Scanned,
		Expired:   report.Expired,
		Cancelled: report.Cancelled,
		Skipped:   report.Skipped,
		Reoffered: report.Reoffered,
		Unmatched: report.Unmatched,
		Failed:    report.Failed,
	})
}

// fail writes the response for err. Only unexpected errors are logged.
func (s *Server) fail(ctx echo.Context, err error) error {
	var outside *services.OutsideGeofenceError
	if errors.As(err, &outside) {
		return ctx.JSON(http.StatusUnprocessableEntity, api.GeofenceError{
			Code:                http.StatusUnprocessableEntity,
			Message:             "reported location is outside the check-in radius",
			DistanceMeters:      outside.DistanceMeters,
			AllowedRadiusMeters: outside.MaxDistanceMeters,
		})
	}

	code, message := http.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrForbidden):
		code, message = http.StatusForbidden, err.Error()
	case errors.Is(err, errs.ErrAlreadyClaimed):
		code, message = http.StatusConflict, AlreadyClaimedMessage
	case errors.Is(err, errs.ErrInvalidState):
		code, message = http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrNoCandidates):
		code, message = http.StatusUnprocessableEntity, err.Error()
	case errs.IsValidation(err):
		code, message = http.StatusBadRequest, err.Error()
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}

	return ctx.JSON(code, api.Error{Code: code, Message: message})
}
