package cmd

import (
	"log/slog"
	"time"

	httpin "jobmatch/internal/adapters/in/http"
	"jobmatch/internal/adapters/out/notify"
	"jobmatch/internal/adapters/out/postgres"
	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/application/usecases/queries"
	"jobmatch/internal/core/domain/services"
	"jobmatch/internal/core/ports"
	"jobmatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	finder     services.CandidateFinder
	clock      ports.Clock
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCompositionRoot wires every handler against gormDB. Notifications are
// published with pg_notify on configs.NotifyChannel.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	finder, err := services.NewCandidateFinderFromSettings(configs.Settings)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		finder:     finder,
		clock:      ports.ClockFunc(time.Now),
		notifier:   notify.NewPgNotifier(gormDB, configs.NotifyChannel),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateFindMatchesQueryHandler() queries.FindMatchesQueryHandler {
	return queries.NewFindMatchesQueryHandler(c.uowFactory, c.finder)
}

func (c *CompositionRoot) CreateGetJobOffersQueryHandler() queries.GetJobOffersQueryHandler {
	return queries.NewGetJobOffersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDispatchJobCommandHandler() commands.DispatchJobCommandHandler {
	return commands.NewDispatchJobCommandHandler(c.uowFactory, c.finder, c.configs.Settings, c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateExtendOfferCommandHandler() commands.ExtendOfferCommandHandler {
	return commands.NewExtendOfferCommandHandler(c.uowFactory, c.configs.Settings, c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	return commands.NewAcceptOfferCommandHandler(c.uowFactory, c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateRejectOfferCommandHandler() commands.RejectOfferCommandHandler {
	return commands.NewRejectOfferCommandHandler(c.uowFactory, c.finder, c.configs.Settings, c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCheckInCommandHandler() commands.CheckInCommandHandler {
	return commands.NewCheckInCommandHandler(c.uowFactory, c.configs.Settings, c.clock, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCompleteJobCommandHandler() commands.CompleteJobCommandHandler {
	return commands.NewCompleteJobCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateSweepExpiredOffersCommandHandler() commands.SweepExpiredOffersCommandHandler {
	return commands.NewSweepExpiredOffersCommandHandler(c.uowFactory, c.finder, c.configs.Settings, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		FindMatches:  c.CreateFindMatchesQueryHandler(),
		GetJobOffers: c.CreateGetJobOffersQueryHandler(),
		DispatchJob:  c.CreateDispatchJobCommandHandler(),
		ExtendOffer:  c.CreateExtendOfferCommandHandler(),
		AcceptOffer:  c.CreateAcceptOfferCommandHandler(),
		RejectOffer:  c.CreateRejectOfferCommandHandler(),
		CheckIn:      c.CreateCheckInCommandHandler(),
		CompleteJob:  c.CreateCompleteJobCommandHandler(),
		SweepOffers:  c.CreateSweepExpiredOffersCommandHandler(),
	}, c.clock, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOfferExpirationJob(c.CreateSweepExpiredOffersCommandHandler(), c.clock, c.configs.SweepSchedule, c.logger),
	)
}

// CreateNotificationListener subscribes to the notification channel and
// relays every message to the log.
func (c *CompositionRoot) CreateNotificationListener() (*notify.Listener, error) {
	return notify.Listen(c.configs.DSN(), c.configs.NotifyChannel, notify.NewLogNotifier(c.logger), c.logger)
}

func (c *CompositionRoot) Clock() ports.Clock {
	return c.clock
}
