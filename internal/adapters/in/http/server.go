// Package http exposes the dispatch use cases over a JSON HTTP API.
//
// The adapter stays thin: it parses requests, builds commands and queries,
// and maps typed core errors to status codes. All business rules, ownership
// checks included, live in the use case layer.
package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Defaults for the nearby-orders search when the client omits the parameters.
const (
	DefaultNearbyRadiusKm    = 20
	DefaultNearbyWindowHours = 5
)

// Server wires the HTTP routes to the command and query handlers.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderHandler       commands.UpdateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler
	assignOrderHandler       commands.AssignOrderCommandHandler
	unassignOrderHandler     commands.UnassignOrderCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler

	getOrderHandler         queries.GetOrderQueryHandler
	getStoreOrdersHandler   queries.GetStoreOrdersQueryHandler
	getCourierOrdersHandler queries.GetCourierOrdersQueryHandler
	getNearbyOrdersHandler  queries.GetNearbyOrdersQueryHandler
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	unassignOrderHandler commands.UnassignOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getStoreOrdersHandler queries.GetStoreOrdersQueryHandler,
	getCourierOrdersHandler queries.GetCourierOrdersQueryHandler,
	getNearbyOrdersHandler queries.GetNearbyOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderHandler:       updateOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		assignOrderHandler:       assignOrderHandler,
		unassignOrderHandler:     unassignOrderHandler,
		deleteOrderHandler:       deleteOrderHandler,
		getOrderHandler:          getOrderHandler,
		getStoreOrdersHandler:    getStoreOrdersHandler,
		getCourierOrdersHandler:  getCourierOrdersHandler,
		getNearbyOrdersHandler:   getNearbyOrdersHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.PUT("/orders/:orderId", s.UpdateOrder)
	api.DELETE("/orders/:orderId", s.DeleteOrder)
	api.PATCH("/orders/:orderId/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderId/assign", s.AssignOrder)
	api.POST("/orders/:orderId/unassign", s.UnassignOrder)

	api.GET("/stores/:storeId/orders", s.GetStoreOrders)
	api.GET("/couriers/:courierId/orders", s.GetCourierOrders)
	api.GET("/couriers/:courierId/orders/nearby", s.GetNearbyOrders)
}

type createOrderRequest struct {
	StoreID         string  `json:"storeId"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerAddress string  `json:"customerAddress"`
	Amount          float64 `json:"amount"`
	DeliveryFee     float64 `json:"deliveryFee"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("storeId", err))
	}

	actor, err := caller.actor()
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		actor, orderID, storeID,
		req.CustomerName, req.CustomerPhone, req.CustomerAddress,
		req.Amount, req.DeliveryFee,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

type updateOrderRequest struct {
	StoreID         string  `json:"storeId"`
	CourierID       *string `json:"courierId"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerAddress string  `json:"customerAddress"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount"`
	DeliveryFee     float64 `json:"deliveryFee"`
}

// UpdateOrder handles PUT /api/v1/orders/:orderId.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req updateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("storeId", err))
	}

	var courierID *kernel.UUID
	if req.CourierID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.CourierID)
		if parseErr != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("courierId", parseErr))
		}
		courierID = &parsed
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
	}

	actor, err := caller.actor()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(
		actor, orderID, storeID, courierID,
		req.CustomerName, req.CustomerPhone, req.CustomerAddress,
		status, req.Amount, req.DeliveryFee,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// ChangeOrderStatus handles PATCH /api/v1/orders/:orderId/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req changeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
	}

	actor, err := caller.actor()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(actor, orderID, status)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignOrderRequest struct {
	CourierID string `json:"courierId"`
}

// AssignOrder handles POST /api/v1/orders/:orderId/assign. An omitted
// courierId claims the order for the caller.
func (s *Server) AssignOrder(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	var req assignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	courierID := caller.id
	if req.CourierID != "" {
		courierID, err = kernel.UUIDFromString(req.CourierID)
		if err != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("courierId", err))
		}
	}

	actor, err := caller.actor()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(actor, orderID, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignOrder handles POST /api/v1/orders/:orderId/unassign.
func (s *Server) UnassignOrder(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	actor, err := caller.actor()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUnassignOrderCommand(actor, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.unassignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderId.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	actor, err := caller.actor()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(actor, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(caller.id, caller.role, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(view))
}

// GetStoreOrders handles GET /api/v1/stores/:storeId/orders. The optional
// sinceHours query parameter narrows the listing to recent orders.
func (s *Server) GetStoreOrders(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	storeID, err := pathUUID(ctx, "storeId")
	if err != nil {
		return respondError(ctx, err)
	}

	var since *time.Time
	if raw := ctx.QueryParam("sinceHours"); raw != "" {
		hours, parseErr := strconv.ParseFloat(raw, 64)
		if parseErr != nil || hours <= 0 {
			return respondError(ctx, errs.NewValueIsInvalidError("sinceHours"))
		}
		cutoff := time.Now().UTC().Add(-time.Duration(hours * float64(time.Hour)))
		since = &cutoff
	}

	query, err := queries.NewGetStoreOrdersQuery(caller.id, caller.role, storeID, since)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.getStoreOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(views))
}

// GetCourierOrders handles GET /api/v1/couriers/:courierId/orders. The
// optional status query parameter filters by one status.
func (s *Server) GetCourierOrders(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return respondError(ctx, err)
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := order.StatusFromString(raw)
		if parseErr != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("status", parseErr))
		}
		status = &parsed
	}

	query, err := queries.NewGetCourierOrdersQuery(caller.id, caller.role, courierID, status)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.getCourierOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(views))
}

// GetNearbyOrders handles GET /api/v1/couriers/:courierId/orders/nearby.
// maxDistanceKm defaults to 20 and sinceHours to 5 when omitted.
func (s *Server) GetNearbyOrders(ctx echo.Context) error {
	caller, err := identityFrom(ctx)
	if err != nil {
		return err
	}

	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return respondError(ctx, err)
	}

	maxDistanceKm := float64(DefaultNearbyRadiusKm)
	if raw := ctx.QueryParam("maxDistanceKm"); raw != "" {
		maxDistanceKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondError(ctx, errs.NewValueIsInvalidError("maxDistanceKm"))
		}
	}

	windowHours := float64(DefaultNearbyWindowHours)
	if raw := ctx.QueryParam("sinceHours"); raw != "" {
		windowHours, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondError(ctx, errs.NewValueIsInvalidError("sinceHours"))
		}
	}

	query, err := queries.NewGetNearbyOrdersQuery(
		caller.id, caller.role, courierID,
		maxDistanceKm, time.Duration(windowHours*float64(time.Hour)),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.getNearbyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]nearbyOrderResponse, len(views))
	for i, view := range views {
		response[i] = nearbyOrderResponse{
			orderResponse: toOrderResponse(view.OrderView),
			DistanceKm:    view.DistanceKm,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

type orderResponse struct {
	ID              string    `json:"id"`
	StoreID         string    `json:"storeId"`
	StoreName       string    `json:"storeName"`
	StoreAddress    string    `json:"storeAddress"`
	CourierID       string    `json:"courierId,omitempty"`
	CourierName     string    `json:"courierName,omitempty"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerAddress string    `json:"customerAddress"`
	Amount          float64   `json:"amount"`
	DeliveryFee     float64   `json:"deliveryFee"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type nearbyOrderResponse struct {
	orderResponse
	DistanceKm float64 `json:"distanceKm"`
}

func toOrderResponse(view queries.OrderView) orderResponse {
	return orderResponse{
		ID:              view.ID,
		StoreID:         view.StoreID,
		StoreName:       view.StoreName,
		StoreAddress:    view.StoreAddress,
		CourierID:       view.CourierID,
		CourierName:     view.CourierName,
		CustomerName:    view.CustomerName,
		CustomerPhone:   view.CustomerPhone,
		CustomerAddress: view.CustomerAddress,
		Amount:          view.Amount,
		DeliveryFee:     view.DeliveryFee,
		Status:          view.Status,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
}

func toOrderResponses(views []queries.OrderView) []orderResponse {
	response := make([]orderResponse, len(views))
	for i, view := range views {
		response[i] = toOrderResponse(view)
	}
	return response
}
