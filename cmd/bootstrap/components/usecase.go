package components

import (
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		commands.NewCalendarCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
	),
)

func NewBookingCommands(
	unitOfWork shared.UnitOfWork,
	views queries.BookingReadStore,
	gateway commands.PaymentGateway,
	invalidator commands.AvailabilityInvalidator,
	clk clock.Clock,
	cfg config.Config,
) commands.BookingCommands {
	return commands.NewBookingCommands(unitOfWork, views, gateway, invalidator, clk, cfg.Payment.Currency)
}
