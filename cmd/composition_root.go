package cmd

import (
	"log/slog"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/platform"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Handler factory
// methods are cheap: handlers are stateless values sharing the same
// unit-of-work factory and platform gateways.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    *platform.GormOrderCatalog
	registry   *platform.GormCourierRegistry
	calculator services.EarningsCalculator
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph for the dispatch service.
// Fails only when the configured earning formula is invalid.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	calculator, err := services.NewEarningsCalculator(
		config.EarningBaseFee, config.EarningPercentage, nil)
	if err != nil {
		return CompositionRoot{}, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    platform.NewGormOrderCatalog(gormDB),
		registry:   platform.NewGormCourierRegistry(gormDB),
		calculator: calculator,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateSlotCommandHandler() commands.CreateSlotCommandHandler {
	var f commands.SlotUoWFactory = FuncSlotUoWFactory(func() commands.SlotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateSlotCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateSlotCommandHandler() commands.UpdateSlotCommandHandler {
	var f commands.SlotUoWFactory = FuncSlotUoWFactory(func() commands.SlotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateSlotCommandHandler(f)
}

func (c *CompositionRoot) CreateSetSlotAvailabilityCommandHandler() commands.SetSlotAvailabilityCommandHandler {
	var f commands.SlotUoWFactory = FuncSlotUoWFactory(func() commands.SlotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetSlotAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateDecrementSlotCapacityCommandHandler() commands.DecrementSlotCapacityCommandHandler {
	var f commands.SlotUoWFactory = FuncSlotUoWFactory(func() commands.SlotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDecrementSlotCapacityCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.catalog, c.registry, c.logger)
}

func (c *CompositionRoot) CreateBulkAssignOrdersCommandHandler() commands.BulkAssignOrdersCommandHandler {
	return commands.NewBulkAssignOrdersCommandHandler(c.CreateAssignOrderCommandHandler())
}

func (c *CompositionRoot) CreateReassignOrderCommandHandler() commands.ReassignOrderCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignOrderCommandHandler(f, c.registry, c.logger)
}

func (c *CompositionRoot) CreateCreditEarningCommandHandler() commands.CreditEarningCommandHandler {
	var f commands.WalletUoWFactory = FuncWalletUoWFactory(func() commands.WalletUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreditEarningCommandHandler(f, c.calculator, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(
		f,
		c.CreateCreditEarningCommandHandler(),
		c.reconciliationUoWFactory(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetSlotsQueryHandler() queries.GetSlotsQueryHandler {
	return queries.NewGetSlotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSlotAvailabilityQueryHandler() queries.GetSlotAvailabilityQueryHandler {
	return queries.NewGetSlotAvailabilityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierWorkloadQueryHandler() queries.GetCourierWorkloadQueryHandler {
	return queries.NewGetCourierWorkloadQueryHandler(c.gormDB, c.registry)
}

func (c *CompositionRoot) CreateGetAssignmentHistoryQueryHandler() queries.GetAssignmentHistoryQueryHandler {
	return queries.NewGetAssignmentHistoryQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every endpoint handler into the REST surface.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateSlotCommandHandler(),
		c.CreateUpdateSlotCommandHandler(),
		c.CreateSetSlotAvailabilityCommandHandler(),
		c.CreateDecrementSlotCapacityCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateBulkAssignOrdersCommandHandler(),
		c.CreateReassignOrderCommandHandler(),
		c.CreateUpdateDeliveryStatusCommandHandler(),
		c.CreateGetSlotsQueryHandler(),
		c.CreateGetSlotAvailabilityQueryHandler(),
		c.CreateGetCourierWorkloadQueryHandler(),
		c.CreateGetAssignmentHistoryQueryHandler(),
	)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.reconciliationUoWFactory(),
		c.CreateCreditEarningCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) reconciliationUoWFactory() commands.ReconciliationUoWFactory {
	return FuncReconciliationUoWFactory(func() commands.ReconciliationUoW {
		return c.uowFactory.Create()
	})
}

type FuncSlotUoWFactory func() commands.SlotUoW

func (f FuncSlotUoWFactory) Create() commands.SlotUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncWalletUoWFactory func() commands.WalletUoW

func (f FuncWalletUoWFactory) Create() commands.WalletUoW {
	return f()
}

type FuncReconciliationUoWFactory func() commands.ReconciliationUoW

func (f FuncReconciliationUoWFactory) Create() commands.ReconciliationUoW {
	return f()
}
