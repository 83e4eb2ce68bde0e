package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Rank eligible workers for a job
	// (GET /api/v1/jobs/{jobId}/matches)
	GetJobMatches(ctx echo.Context, jobId JobId, params GetJobMatchesParams) error
	// Offer the job to the best candidate not yet offered
	// (POST /api/v1/jobs/{jobId}/dispatch)
	DispatchJob(ctx echo.Context, jobId JobId) error
	// List the offer history of a job
	// (GET /api/v1/jobs/{jobId}/offers)
	GetJobOffers(ctx echo.Context, jobId JobId) error
	// Offer the job to a specific worker
	// (POST /api/v1/jobs/{jobId}/offers)
	ExtendOffer(ctx echo.Context, jobId JobId) error
	// Accept an offer; exactly one concurrent accept per job wins
	// (POST /api/v1/offers/{offerId}/accept)
	AcceptOffer(ctx echo.Context, offerId OfferId, params AcceptOfferParams) error
	// Reject an offer and optionally re-offer the job
	// (POST /api/v1/offers/{offerId}/reject)
	RejectOffer(ctx echo.Context, offerId OfferId, params RejectOfferParams) error
	// Start the job if the reported position is within the geofence
	// (POST /api/v1/jobs/{jobId}/check-in)
	CheckIn(ctx echo.Context, jobId JobId, params CheckInParams) error
	// Complete a job in progress
	// (POST /api/v1/jobs/{jobId}/complete)
	CompleteJob(ctx echo.Context, jobId JobId, params CompleteJobParams) error
	// Expire stale offers and re-offer their jobs now
	// (POST /api/v1/sweeps)
	RunSweep(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetJobMatches converts echo context to params.
func (w *ServerInterfaceWrapper) GetJobMatches(ctx echo.Context) error {
	jobId, err := bindPathUUID(ctx, "jobId")
	if err != nil {
		return err
	}

	var params GetJobMatchesParams
	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetJobMatches(ctx, jobId, params)
}

// DispatchJob converts echo context to params.
func (w *ServerInterfaceWrapper) DispatchJob(ctx echo.Context) error {
	jobId, err := bindPathUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.DispatchJob(ctx, jobId)
}

// GetJobOffers converts echo context to params.
func (w *ServerInterfaceWrapper) GetJobOffers(ctx echo.Context) error {
	jobId, err := bindPathUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.GetJobOffers(ctx, jobId)
}

// ExtendOffer converts echo context to params.
func (w *ServerInterfaceWrapper) ExtendOffer(ctx echo.Context) error {
	jobId, err := bindPathUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.ExtendOffer(ctx, jobId)
}

// AcceptOffer converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptOffer(ctx echo.Context) error {
	offerId, err := bindPathUUID(ctx, "offerId")
	if err != nil {
		return err
	}

	var params AcceptOfferParams
	if params.XWorkerId, err = bindWorkerHeader(ctx); err != nil {
		return err
	}

	return w.Handler.AcceptOffer(ctx, offerId, params)
}

// RejectOffer converts echo context to params.
func (w *ServerInterfaceWrapper) RejectOffer(ctx echo.Context) error {
	offerId, err := bindPathUUID(ctx, "offerId")
	if err != nil {
		return err
	}

	var params RejectOfferParams
	err = runtime.BindQueryParameter("form", true, false, "rematch", ctx.QueryParams(), &params.Rematch)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter rematch: %s", err))
	}
	if params.XWorkerId, err = bindWorkerHeader(ctx); err != nil {
		return err
	}

	return w.Handler.RejectOffer(ctx, offerId, params)
}

// CheckIn converts echo context to params.
func (w *ServerInterfaceWrapper) CheckIn(ctx echo.Context) error {
	jobId, err := bindPathUUID(ctx, "jobId")
	if err != nil {
		return err
	}

	var params CheckInParams
	if params.XWorkerId, err = bindWorkerHeader(ctx); err != nil {
		return err
	}

	return w.Handler.CheckIn(ctx, jobId, params)
}

// CompleteJob converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteJob(ctx echo.Context) error {
	jobId, err := bindPathUUID(ctx, "jobId")
	if err != nil {
		return err
	}

	var params CompleteJobParams
	if params.XWorkerId, err = bindWorkerHeader(ctx); err != nil {
		return err
	}

	return w.Handler.CompleteJob(ctx, jobId, params)
}

// RunSweep converts echo context to params.
func (w *ServerInterfaceWrapper) RunSweep(ctx echo.Context) error {
	return w.Handler.RunSweep(ctx)
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindWorkerHeader(ctx echo.Context) (WorkerId, error) {
	var id WorkerId
	valueList, found := ctx.Request().Header[http.CanonicalHeaderKey("X-Worker-Id")]
	if !found {
		return id, echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Worker-Id is required, but not found")
	}
	if n := len(valueList); n != 1 {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Worker-Id, got %d", n))
	}

	err := runtime.BindStyledParameterWithOptions("simple", "X-Worker-Id", valueList[0], &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Worker-Id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers with baseURL prepended
// to every path, e.g. "/api/v1".
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/jobs/:jobId/matches", wrapper.GetJobMatches)
	router.POST(baseURL+"/jobs/:jobId/dispatch", wrapper.DispatchJob)
	router.GET(baseURL+"/jobs/:jobId/offers", wrapper.GetJobOffers)
	router.POST(baseURL+"/jobs/:jobId/offers", wrapper.ExtendOffer)
	router.POST(baseURL+"/offers/:offerId/accept", wrapper.AcceptOffer)
	router.POST(baseURL+"/offers/:offerId/reject", wrapper.RejectOffer)
	router.POST(baseURL+"/jobs/:jobId/check-in", wrapper.CheckIn)
	router.POST(baseURL+"/jobs/:jobId/complete", wrapper.CompleteJob)
	router.POST(baseURL+"/sweeps", wrapper.RunSweep)
}
