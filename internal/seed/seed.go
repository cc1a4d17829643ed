package seed

import (
	"context"
	"log/slog"

	"delivery-platform/internal/domain"
	"delivery-platform/internal/logging"
	clientsvc "delivery-platform/internal/service/client"
	ordersvc "delivery-platform/internal/service/order"
	"github.com/pkg/errors"
)

// DemoPassword is the password of every seeded client.
const DemoPassword = "demo-password"

type ClientRegistrar interface {
	Register(ctx context.Context, in clientsvc.RegisterInput) (*domain.Client, error)
}

type OrderStore interface {
	Create(ctx context.Context, in ordersvc.Input) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

var demoClients = []clientsvc.RegisterInput{
	{Name: "Demo Client", Email: "demo@example.com", Password: DemoPassword, Phone: "+1 555 0100", Address: "1 Demo Street"},
	{Name: "Second Client", Email: "second@example.com", Password: DemoPassword},
}

var demoOrders = []ordersvc.Input{
	{DestinationAddress: "1 Demo Street", Weight: 1.2},
	{DestinationAddress: "42 Harbour Road", Weight: 12.5, DeliveryStatus: domain.StatusAtDelivery, StatusMessage: "courier assigned"},
	{DestinationAddress: "7 Hill Lane", Weight: 0.4, DeliveryStatus: domain.StatusDelivered},
}

// Apply inserts demo clients and orders for manual testing. Running it again
// skips clients whose email is taken and orders when any order exists.
// A nil service skips its part.
func Apply(ctx context.Context, clients ClientRegistrar, orders OrderStore, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	if clients != nil {
		for _, in := range demoClients {
			c, err := clients.Register(ctx, in)
			switch {
			case errors.Is(err, domain.ErrDuplicateEmail):
				logger.InfoContext(ctx, "seed client exists", slog.String("email", in.Email))
			case err != nil:
				return errors.Wrapf(err, "register %s", in.Email)
			default:
				logger.InfoContext(ctx, "seed client created", slog.Int64("client_id", c.ID))
			}
		}
	}

	if orders == nil {
		return nil
	}
	existing, err := orders.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list orders")
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "orders present, skipping order seed", slog.Int("count", len(existing)))
		return nil
	}
	for _, in := range demoOrders {
		if _, err := orders.Create(ctx, in); err != nil {
			return errors.Wrapf(err, "create order to %s", in.DestinationAddress)
		}
	}
	logger.InfoContext(ctx, "seed orders created", slog.Int("count", len(demoOrders)))
	return nil
}
