package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/smartshop/config"
	"github.com/niksmo/smartshop/internal/adapter/analytics"
	"github.com/niksmo/smartshop/internal/adapter/fakestore"
	"github.com/niksmo/smartshop/internal/adapter/httphandler"
	"github.com/niksmo/smartshop/internal/adapter/kafka"
	"github.com/niksmo/smartshop/internal/core/cart"
	"github.com/niksmo/smartshop/internal/core/port"
	"github.com/niksmo/smartshop/internal/core/service"
	"github.com/niksmo/smartshop/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type eventsProducer interface {
	port.ClientEventsProducer
	Close()
}

type App struct {
	ctx         context.Context
	cfg         config.Config
	cartStore   *cart.Store
	events      eventsProducer
	service     service.Service
	httpServer  httphandler.HTTPServer
	unwatchCart func()
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initEventsProducer()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"

	if !app.cfg.Broker.Enabled {
		app.events = noCloseProducer{analytics.NewEventLogger()}
		return
	}

	ctx := app.ctx
	brokerCfg := app.cfg.Broker

	srClient, err := sr.NewClient(sr.URLs(brokerCfg.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	eventSubject := brokerCfg.ClientEventsTopic + "-value"
	eventSerde, err := schema.NewSerdeClientEventV1(
		ctx,
		schema.SubjectOpt(eventSubject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(
			ctx, brokerCfg.SeedBrokers, brokerCfg.ClientEventsTopic,
		),
		kafka.ProducerEncoderOpt(eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.events = producer
}

func (app *App) initCoreService() {
	catalogClient := fakestore.NewClient(
		app.cfg.Catalog.BaseURL, app.cfg.Catalog.Timeout,
	)

	app.cartStore = cart.NewStore()
	app.service = service.New(
		catalogClient,
		app.cartStore,
		app.events,
		app.cfg.CheckoutDelay,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service)
	httphandler.RegisterCart(mux, app.service)
	httphandler.RegisterCheckout(mux, app.service)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	app.watchCart()

	slog.Info("application is running")
}

// watchCart observes cart mutations and logs the derived aggregates,
// the badge counter of the presentation layer.
func (app *App) watchCart() {
	const op = "App.watchCart"
	log := slog.With("op", op)

	changes, cancel := app.cartStore.Subscribe()
	app.unwatchCart = cancel

	go func() {
		for {
			select {
			case <-app.ctx.Done():
				return
			case <-changes:
				log.Debug("cart updated",
					"count", app.cartStore.Count(),
					"total", app.cartStore.Total(),
				)
			}
		}
	}()
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.unwatchCart != nil {
		app.unwatchCart()
	}
	app.events.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

type noCloseProducer struct {
	analytics.EventLogger
}

func (noCloseProducer) Close() {}
