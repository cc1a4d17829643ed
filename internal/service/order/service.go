package order

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"delivery-platform/internal/domain"
	"delivery-platform/internal/events"
	"delivery-platform/internal/logging"
	orderrepo "delivery-platform/internal/repository/order"
	"github.com/pkg/errors"
)

// Service tracks orders through their delivery lifecycle.
type Service struct {
	repo      orderrepo.Repository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Service. A nil publisher discards events.
func New(repo orderrepo.Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{repo: repo, publisher: publisher, logger: logger, now: time.Now}
}

// Input carries every mutable order field. Update overwrites all of them.
type Input struct {
	DestinationAddress string
	Weight             float64
	DeliveryStatus     string
	StatusMessage      string
}

// Event is the payload published for each order change.
type Event struct {
	Type       string        `json:"type"`
	OrderID    int64         `json:"orderId"`
	Order      *domain.Order `json:"order,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// Create stores a new order. An empty status defaults to domain.StatusOnWarehouse.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Order, error) {
	o, err := toOrder(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Save(ctx, o)
	if err != nil {
		return nil, s.storeErr(ctx, "save", err)
	}
	s.publish(ctx, events.OrderCreated, created.ID, created)
	return created, nil
}

// Get returns the order with id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, s.storeErr(ctx, "get by id", err)
	}
	return o, nil
}

// List returns every order.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storeErr(ctx, "list", err)
	}
	return orders, nil
}

// Update overwrites every mutable field of the order with id.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Order, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	o, err := toOrder(in)
	if err != nil {
		return nil, err
	}
	o.ID = id
	saved, err := s.repo.Save(ctx, o)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, s.storeErr(ctx, "save", err)
	}
	s.publish(ctx, events.OrderUpdated, saved.ID, saved)
	return saved, nil
}

// Delete removes the order with id. Deleting an unknown id is an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return s.storeErr(ctx, "exists", err)
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrOrderNotFound
		}
		return s.storeErr(ctx, "delete", err)
	}
	s.publish(ctx, events.OrderDeleted, id, nil)
	return nil
}

func toOrder(in Input) (domain.Order, error) {
	dest := strings.TrimSpace(in.DestinationAddress)
	if dest == "" {
		return domain.Order{}, errors.Wrap(domain.ErrValidation, "destination address required")
	}
	if !(in.Weight > 0) || math.IsInf(in.Weight, 1) {
		return domain.Order{}, errors.Wrap(domain.ErrValidation, "weight must be positive")
	}
	status := strings.TrimSpace(in.DeliveryStatus)
	if status == "" {
		status = domain.StatusOnWarehouse
	}
	return domain.Order{
		DestinationAddress: dest,
		Weight:             in.Weight,
		DeliveryStatus:     status,
		StatusMessage:      in.StatusMessage,
	}, nil
}

// publish is best effort: a failed publish never fails the request.
func (s *Service) publish(ctx context.Context, typ string, id int64, o *domain.Order) {
	ev := Event{Type: typ, OrderID: id, Order: o, OccurredAt: s.now().UTC()}
	if err := s.publisher.Publish(ctx, strconv.FormatInt(id, 10), ev); err != nil {
		s.logger.WarnContext(ctx, "order event not published",
			slog.String("type", typ), slog.Int64("order_id", id), slog.Any("error", err))
	}
}

func (s *Service) storeErr(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "order service: store failure", slog.String("op", op), slog.Any("error", err))
	return domain.NewStoreError(op, err)
}
