// Package wire provides dependency injection for the escalate bot.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cliadapter "github.com/example/escalate/internal/adapters/cli"
	"github.com/example/escalate/internal/adapters/discord"
	"github.com/example/escalate/internal/adapters/sqlite"
	"github.com/example/escalate/internal/app"
	"github.com/example/escalate/internal/config"
	"github.com/example/escalate/internal/db"
	"github.com/example/escalate/internal/ports/primary"
	"github.com/example/escalate/internal/ports/secondary"
)

var (
	logger = zap.NewNop().Sugar()

	configStore   *app.ConfigStore
	ticketRepo    secondary.TicketRepository
	logWriter     secondary.LogWriter
	configReader  primary.EscalationConfigReader
	ticketService primary.TicketService
	auditService  primary.AuditService
	once          sync.Once
)

// SetLogger replaces the logger handed to services. Call it before the first
// service is requested.
func SetLogger(l *zap.SugaredLogger) {
	logger = l
}

// TicketService returns the singleton TicketService instance.
func TicketService() primary.TicketService {
	once.Do(initServices)
	return ticketService
}

// AuditService returns the singleton AuditService instance.
func AuditService() primary.AuditService {
	once.Do(initServices)
	return auditService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	docs := sqlite.NewDocumentStore(database)
	ticketRepo = sqlite.NewTicketRepository(database)
	auditRepo := sqlite.NewAuditRepository(database)
	logWriter = sqlite.NewLogWriterAdapter(auditRepo)

	configStore = app.NewConfigStore(docs, logger)
	configReader = app.NewEscalationService(configStore, ticketRepo, nil, nil, logWriter, logger)
	ticketService = app.NewTicketService(ticketRepo, logWriter)
	auditService = app.NewAuditService(auditRepo)
}

// Bot assembles a Discord bot around the shared repositories. newRoot builds
// the chat command tree for each message.
func Bot(cfg *config.Config, newRoot func() *cobra.Command) (*discord.Bot, error) {
	once.Do(initServices)

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		return nil, err
	}

	platform := discord.NewPlatform(session, cfg.AnonymousName, logger)
	executor := app.NewEffectExecutor(platform, logger)
	escalations := app.NewEscalationService(configStore, ticketRepo, platform, executor, logWriter, logger)

	dispatcher := discord.NewDispatcher(
		cfg.Prefix,
		newRoot,
		escalations,
		ticketService,
		platform,
		executor,
		discord.NewPermissions(cfg),
		logger,
	)
	return discord.NewBot(session, dispatcher, logger), nil
}

// TicketAdapter returns a new TicketAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func TicketAdapter() *cliadapter.TicketAdapter {
	return TicketAdapterWithOutput(os.Stdout)
}

// TicketAdapterWithOutput returns a new TicketAdapter writing to the given output.
func TicketAdapterWithOutput(out io.Writer) *cliadapter.TicketAdapter {
	once.Do(initServices)
	return cliadapter.NewTicketAdapter(ticketService, out)
}

// AuditAdapter returns a new AuditAdapter writing to stdout.
func AuditAdapter() *cliadapter.AuditAdapter {
	once.Do(initServices)
	return cliadapter.NewAuditAdapter(auditService, os.Stdout)
}

// ConfigAdapter returns a new ConfigAdapter writing to stdout.
func ConfigAdapter() *cliadapter.ConfigAdapter {
	return ConfigAdapterWithOutput(os.Stdout)
}

// ConfigAdapterWithOutput returns a new ConfigAdapter writing to the given output.
func ConfigAdapterWithOutput(out io.Writer) *cliadapter.ConfigAdapter {
	once.Do(initServices)
	return cliadapter.NewConfigAdapter(configReader, out)
}
