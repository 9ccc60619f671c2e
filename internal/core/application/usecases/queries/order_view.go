package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/directory"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// OrderView is the read model returned to clients: the raw order decorated
// with display data resolved from the user directory.
type OrderView struct {
	ID              string
	StoreID         string
	StoreName       string
	StoreAddress    string
	CourierID       string
	CourierName     string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Amount          float64
	DeliveryFee     float64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// orderViewBuilder enriches order aggregates with directory lookups.
//
// The store is a hard requirement: an order whose store vanished from the
// directory is a data integrity fault and surfaces directory.ErrStoreNotFound.
// The courier is soft; a missing courier record just leaves the name empty so
// one deactivated account cannot hide a store's order history.
type orderViewBuilder struct {
	userDirectory ports.UserDirectory
}

func newOrderViewBuilder(userDirectory ports.UserDirectory) orderViewBuilder {
	return orderViewBuilder{userDirectory: userDirectory}
}

func (b orderViewBuilder) Build(ctx context.Context, aggregate *order.Order) (OrderView, error) {
	store, err := b.userDirectory.Get(ctx, aggregate.StoreID())
	if err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return OrderView{}, directory.ErrStoreNotFound
		}
		return OrderView{}, err
	}

	view := OrderView{
		ID:              aggregate.ID().String(),
		StoreID:         aggregate.StoreID().String(),
		StoreName:       store.Name(),
		StoreAddress:    store.Address(),
		CustomerName:    aggregate.CustomerName(),
		CustomerPhone:   aggregate.CustomerPhone(),
		CustomerAddress: aggregate.CustomerAddress(),
		Amount:          aggregate.Amount(),
		DeliveryFee:     aggregate.DeliveryFee(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}

	if courierID := aggregate.Courier(); courierID != nil {
		view.CourierID = courierID.String()
		courier, courierErr := b.userDirectory.Get(ctx, *courierID)
		if courierErr == nil {
			view.CourierName = courier.Name()
		} else {
			var notFoundErr *errs.ObjectNotFoundError
			if !errors.As(courierErr, &notFoundErr) {
				return OrderView{}, courierErr
			}
		}
	}

	return view, nil
}

func (b orderViewBuilder) BuildAll(ctx context.Context, aggregates []*order.Order) ([]OrderView, error) {
	views := make([]OrderView, 0, len(aggregates))
	for _, aggregate := range aggregates {
		view, err := b.Build(ctx, aggregate)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
