package tipbot

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tzbot/common/errs"
	"github.com/gaze-network/tzbot/internal/config"
	"github.com/gaze-network/tzbot/internal/postgres"
	tipbotapi "github.com/gaze-network/tzbot/modules/tipbot/api"
	tipbotdatagateway "github.com/gaze-network/tzbot/modules/tipbot/datagateway"
	tipbotpostgres "github.com/gaze-network/tzbot/modules/tipbot/repository/postgres"
	tipbotusecase "github.com/gaze-network/tzbot/modules/tipbot/usecase"
	"github.com/gaze-network/tzbot/pkg/logger"
	"github.com/gaze-network/tzbot/pkg/logger/slogx"
	"github.com/gaze-network/tzbot/pkg/tezos/keychain"
	"github.com/gaze-network/tzbot/pkg/tezos/rpc"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

// Tipbot is the running tip bot module. It releases its database connections on injector shutdown.
type Tipbot struct {
	Usecase *tipbotusecase.Usecase

	cleanupFuncs []func(context.Context) error
}

func New(injector do.Injector) (*Tipbot, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	node := do.MustInvoke[*rpc.Client](injector)
	moduleConf := conf.Modules.Tipbot

	var (
		tipsDg       tipbotdatagateway.TipsDataGateway
		cleanupFuncs []func(context.Context) error
	)
	switch strings.ToLower(moduleConf.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, moduleConf.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for tip ledger")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		tipsDg = tipbotpostgres.NewRepository(pg)
	case "":
		logger.WarnContext(ctx, "No database configured, tips are disabled")
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for tip ledger is not supported", moduleConf.Database)
	}

	var wallet tipbotusecase.Signer
	if moduleConf.Wallet != "" {
		kc := do.MustInvoke[*keychain.Keychain](injector)
		key, err := kc.Get(moduleConf.Wallet)
		if err != nil {
			return nil, errors.Wrapf(err, "can't load tip bot wallet")
		}
		wallet = key
		logger.InfoContext(ctx, "Loaded tip bot wallet", slogx.String("wallet", moduleConf.Wallet), slogx.String("address", key.Address()))
	}

	usecase := tipbotusecase.New(tipsDg, node, wallet, tipbotusecase.Config{
		Fee:          moduleConf.Fee,
		GasMargin:    moduleConf.GasMargin,
		StorageLimit: moduleConf.StorageLimit,
	})

	// Mount API
	apiHandlers := lo.Uniq(moduleConf.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			tipbotHTTPHandler := tipbotapi.NewHTTPHandler(conf.Network, usecase)
			if err := tipbotHTTPHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount Tipbot API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	return &Tipbot{
		Usecase:      usecase,
		cleanupFuncs: cleanupFuncs,
	}, nil
}

// Shutdown is called by the injector.
func (t *Tipbot) Shutdown(ctx context.Context) error {
	var errList []error
	for _, cleanup := range t.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}
