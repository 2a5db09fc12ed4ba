package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/MrAlob/project-exam-1/pkg/api"
	"github.com/MrAlob/project-exam-1/pkg/common/domain"
	"github.com/MrAlob/project-exam-1/pkg/config"
	"github.com/MrAlob/project-exam-1/pkg/domain/service"
	"github.com/MrAlob/project-exam-1/pkg/storage"
)

func main() {
	app := &cli.App{
		Name:  "shop",
		Usage: "command-line storefront for the shop demo API",
		Commands: []*cli.Command{
			productsCommand(),
			productCommand(),
			cartCommand(),
			checkoutCommand(),
			orderCommand(),
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			storageCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Command failed")
	}
}

// env wires configuration, storage and the services together once per
// invocation.
type env struct {
	cfg     *config.Config
	store   storage.Store
	cart    service.CartService
	orders  service.OrderService
	session service.SessionService
	client  *api.Client
	catalog *api.CatalogClient
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetOutput(os.Stderr)

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	dispatcher := eventLogger{}
	client := api.NewClient(cfg.HTTPTimeout)

	return &env{
		cfg:     cfg,
		store:   store,
		cart:    service.NewCartService(store, cfg.StorageKeys.Cart, dispatcher),
		orders:  service.NewOrderService(store, cfg.StorageKeys.Order, dispatcher),
		session: service.NewSessionService(store, cfg.StorageKeys.Token, cfg.StorageKeys.Profile, dispatcher),
		client:  client,
		catalog: api.NewCatalogClient(client, cfg.OnlineShopBase),
	}, nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "file":
		return storage.NewFileStore(cfg.StoragePath), nil
	case "mysql":
		return storage.NewMySQLStore(cfg.StorageDSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// eventLogger is the CLI's event subscriber: every domain event becomes a
// debug log line.
type eventLogger struct{}

func (eventLogger) Dispatch(event domain.Event) error {
	log.WithField("event", event.Type()).Debug("Domain event")
	return nil
}

func storageCommand() *cli.Command {
	return &cli.Command{
		Name:  "storage",
		Usage: "storage backend maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "apply schema migrations (mysql backend only)",
				Action: func(c *cli.Context) error {
					e, err := newEnv()
					if err != nil {
						return err
					}
					mysql, ok := e.store.(*storage.MySQLStore)
					if !ok {
						return fmt.Errorf("storage backend %q has no migrations", e.cfg.StorageBackend)
					}
					return mysql.Migrate()
				},
			},
		},
	}
}
