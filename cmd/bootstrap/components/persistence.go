package components

import (
	"staybook/internal/infra/cache"
	"staybook/internal/infra/dbtx"
	"staybook/internal/infra/payment"
	"staybook/internal/infra/readstore"
	"staybook/internal/infra/uow"
	"staybook/internal/pkg/config"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewUnitOfWork,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		readstore.NewAvailabilityReadStore,
		fx.Annotate(
			NewAvailabilityCache,
			fx.As(new(queries.AvailabilityReader)),
			fx.As(new(commands.AvailabilityInvalidator)),
		),
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) dbtx.DBTX {
	return pool
}

func NewUnitOfWork(pool *pgxpool.Pool, cfg config.Config) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool, cfg.Booking.TxMaxRetries)
}

func NewAvailabilityCache(client *redis.Client, store *readstore.AvailabilityReadStore, cfg config.Config) *cache.AvailabilityCache {
	return cache.NewAvailabilityCache(client, store, cfg.Redis.CacheTTL)
}

func NewPaymentGateway(cfg config.Config) *payment.Gateway {
	return payment.NewGateway(cfg.Payment)
}
