package cmd

import (
	"log/slog"

	"backoffice/internal/adapters/in/http"
	"backoffice/internal/adapters/out/cache"
	"backoffice/internal/adapters/out/postgres"
	"backoffice/internal/adapters/out/postgres/csmessagerepo"
	"backoffice/internal/core/application/monitoring"
	"backoffice/internal/core/application/services"
	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/courier"
	domainservices "backoffice/internal/core/domain/services"
	"backoffice/internal/core/ports"
	"backoffice/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, services and handlers together. All
// construction happens here so the rest of the code depends on interfaces
// only.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	redisClient *redis.Client
	logger      *slog.Logger
	uowFactory  postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot creates the composition root from the shared
// infrastructure connections.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		redisClient: redisClient,
		logger:      logger,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

// CreateExceptionUoWFactory adapts the GORM unit of work factory to the
// command-side factory interface.
func (c *CompositionRoot) CreateExceptionUoWFactory() commands.ExceptionUoWFactory {
	return FuncExceptionUoWFactory(func() commands.ExceptionUoW {
		return c.uowFactory.Create()
	})
}

// CreateDeliveryRepository returns a delivery repository outside any
// transaction, for read-only sweeps and HTTP lookups.
func (c *CompositionRoot) CreateDeliveryRepository() ports.DeliveryRepository {
	return c.uowFactory.Create().DeliveryRepository()
}

// CreateCSMessageRepository returns the Redis-cached courier message
// dictionary.
func (c *CompositionRoot) CreateCSMessageRepository() ports.CSMessageRepository {
	source := csmessagerepo.NewGormCSMessageRepository(c.gormDB)
	return cache.NewCachedCSMessageRepository(source, c.redisClient, c.logger)
}

// CreateMessageClassifier builds the classifier over the cached dictionary.
func (c *CompositionRoot) CreateMessageClassifier() (*domainservices.MessageClassifier, error) {
	return domainservices.NewMessageClassifier(c.CreateCSMessageRepository())
}

// CreateHandleExceptionCommandHandler builds the atomic exception command
// handler.
func (c *CompositionRoot) CreateHandleExceptionCommandHandler() commands.HandleExceptionCommandHandler {
	return commands.NewHandleExceptionCommandHandler(c.CreateExceptionUoWFactory())
}

// CreateSetTransferCommandHandler builds the transfer flag command handler.
func (c *CompositionRoot) CreateSetTransferCommandHandler() commands.SetTransferCommandHandler {
	return commands.NewSetTransferCommandHandler(c.CreateExceptionUoWFactory())
}

// CreateDispatchService builds the dispatch service with per-courier
// handlers for every courier present in the dictionary.
func (c *CompositionRoot) CreateDispatchService(courierIDs []courier.ID) (*services.DispatchService, error) {
	classifier, err := c.CreateMessageClassifier()
	if err != nil {
		return nil, err
	}

	runner := c.CreateHandleExceptionCommandHandler()
	factory, err := services.NewHandlerFactory(classifier, runner)
	if err != nil {
		return nil, err
	}

	return services.NewDispatchService(factory, courierIDs, c.logger)
}

// CreateIngestionService builds the ingestion entry point feeding courier
// status texts through classification and dispatch.
func (c *CompositionRoot) CreateIngestionService(courierIDs []courier.ID) (*services.IngestionService, error) {
	dispatch, err := c.CreateDispatchService(courierIDs)
	if err != nil {
		return nil, err
	}

	return services.NewIngestionService(c.CreateDeliveryRepository(), dispatch, c.logger)
}

// CreateMonitoringService builds the monitoring rule engine.
func (c *CompositionRoot) CreateMonitoringService() (*monitoring.MonitoringService, error) {
	return monitoring.NewMonitoringService(
		c.CreateExceptionUoWFactory(),
		c.CreateHandleExceptionCommandHandler(),
		c.uowFactory.Create().CommentRepository(),
		c.CreateCSMessageRepository(),
		c.logger,
	)
}

// CreateGetActiveExceptionsQueryHandler builds the work-queue query handler.
func (c *CompositionRoot) CreateGetActiveExceptionsQueryHandler() queries.GetActiveExceptionsQueryHandler {
	return queries.NewGetActiveExceptionsQueryHandler(c.gormDB)
}

// CreateJobManager wires the scheduled sweeps.
func (c *CompositionRoot) CreateJobManager(courierIDs []courier.ID) (*jobs.JobManager, error) {
	ingestion, err := c.CreateIngestionService(courierIDs)
	if err != nil {
		return nil, err
	}

	monitoringService, err := c.CreateMonitoringService()
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(
		ingestion,
		monitoringService,
		c.CreateDeliveryRepository(),
		c.config.AutoCreateCronSpec,
		c.config.MonitoringCronSpec,
		c.config.SystemUserID,
		c.logger,
	), nil
}

// CreateHTTPServer wires the HTTP API.
func (c *CompositionRoot) CreateHTTPServer(courierIDs []courier.ID) (*http.Server, error) {
	ingestion, err := c.CreateIngestionService(courierIDs)
	if err != nil {
		return nil, err
	}

	monitoringService, err := c.CreateMonitoringService()
	if err != nil {
		return nil, err
	}

	return http.NewServer(
		ingestion,
		monitoringService,
		c.CreateDeliveryRepository(),
		c.CreateSetTransferCommandHandler(),
		c.CreateGetActiveExceptionsQueryHandler(),
		c.config.SystemUserID,
	), nil
}

type FuncExceptionUoWFactory func() commands.ExceptionUoW

func (f FuncExceptionUoWFactory) Create() commands.ExceptionUoW {
	return f()
}
