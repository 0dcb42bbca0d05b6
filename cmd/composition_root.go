package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"fieldservice/internal/adapters/out/notifications"
	"fieldservice/internal/adapters/out/postgres"
	"fieldservice/internal/adapters/out/postgres/customerpolicy"
	"fieldservice/internal/adapters/out/postgres/persondirectory"
	"fieldservice/internal/adapters/out/postgres/statuscatalog"
	"fieldservice/internal/core/application/usecases/commands"
	"fieldservice/internal/core/application/usecases/queries"
	"fieldservice/internal/core/domain/services"
	"fieldservice/internal/jobs"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	directory  *persondirectory.GormPersonDirectory
	policy     *customerpolicy.GormCustomerPolicy
	queue      *notifications.Queue
	sender     notifications.Sender
	aggregator services.StatusAggregator
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	catalog := statuscatalog.NewGormTypeCatalog(gormDB)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, catalog),
		directory:  persondirectory.NewGormPersonDirectory(gormDB),
		policy:     customerpolicy.NewGormCustomerPolicy(gormDB),
		queue:      notifications.NewQueue(config.NotificationQueueSize, logger),
		sender:     notifications.NewWebhookSender(config.NotificationWebhookURL),
		aggregator: services.NewStatusAggregator(config.AutoStampCompletion),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAssignPersonCommandHandler() commands.AssignPersonCommandHandler {
	return commands.NewAssignPersonCommandHandler(c.createUoWFactory(), c.directory, c.aggregator)
}

func (c *CompositionRoot) CreateIssueAssignmentCommandHandler() commands.IssueAssignmentCommandHandler {
	return commands.NewIssueAssignmentCommandHandler(c.createUoWFactory(), c.policy, c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateConfirmAssignmentCommandHandler() commands.ConfirmAssignmentCommandHandler {
	return commands.NewConfirmAssignmentCommandHandler(c.createUoWFactory(), c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateSetInProgressCommandHandler() commands.SetInProgressCommandHandler {
	return commands.NewSetInProgressCommandHandler(c.createUoWFactory(), c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateSetInProgressAndHoldCommandHandler() commands.SetInProgressAndHoldCommandHandler {
	return commands.NewSetInProgressAndHoldCommandHandler(c.createUoWFactory(), c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateCompleteAssignmentCommandHandler() commands.CompleteAssignmentCommandHandler {
	return commands.NewCompleteAssignmentCommandHandler(
		c.createUoWFactory(), c.policy, c.queue, c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateBulkCompleteCommandHandler() commands.BulkCompleteCommandHandler {
	return commands.NewBulkCompleteCommandHandler(
		c.createUoWFactory(), c.policy, c.queue, c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateCancelAssignmentCommandHandler() commands.CancelAssignmentCommandHandler {
	return commands.NewCancelAssignmentCommandHandler(
		c.createUoWFactory(), c.directory, c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateForceSetStatusCommandHandler() commands.ForceSetStatusCommandHandler {
	return commands.NewForceSetStatusCommandHandler(c.createUoWFactory(), c.aggregator, c.logger)
}

func (c *CompositionRoot) CreateCancelWorkOrderCommandHandler() commands.CancelWorkOrderCommandHandler {
	return commands.NewCancelWorkOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateGetWorkOrderStatusQueryHandler() queries.GetWorkOrderStatusQueryHandler {
	return queries.NewGetWorkOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveAssignmentsQueryHandler() queries.GetActiveAssignmentsQueryHandler {
	return queries.NewGetActiveAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.queue, c.sender, c.logger)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
