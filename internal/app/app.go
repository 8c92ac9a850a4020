package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/niksmo/freshmarket/config"
	"github.com/niksmo/freshmarket/internal/adapter/catalog"
	"github.com/niksmo/freshmarket/internal/adapter/httphandler"
	"github.com/niksmo/freshmarket/internal/adapter/storage"
	"github.com/niksmo/freshmarket/internal/core/domain"
	"github.com/niksmo/freshmarket/internal/core/service"
	"github.com/shopspring/decimal"
)

type services struct {
	cart     *service.CartService
	catalog  *service.CatalogService
	checkout *service.CheckoutService
}

// App is the composition root: every adapter and service is constructed
// exactly once at startup and passed down by handle.
type App struct {
	ctx        context.Context
	cfg        config.Config
	store      *storage.BoltStore
	bus        EventBus.Bus
	services   services
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initEventBus()
	app.initCoreServices()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	store, err := storage.NewBoltStore(app.ctx, app.cfg.StorageFile)
	if err != nil {
		app.fallDown(op, err)
	}
	app.store = store
}

func (app *App) initEventBus() {
	const op = "App.initEventBus"

	app.bus = EventBus.New()

	recorder := storage.NewClientEventsRecorder(app.store)
	if err := recorder.SubscribeTo(app.bus); err != nil {
		app.fallDown(op, err)
	}
}

func (app *App) initCoreServices() {
	const op = "App.initCoreServices"

	provider, err := catalog.Load(app.cfg.CatalogFile)
	if err != nil {
		app.fallDown(op, err)
	}

	pricing, err := app.loadPricing()
	if err != nil {
		app.fallDown(op, err)
	}

	node, err := snowflake.NewNode(app.cfg.Checkout.NodeID)
	if err != nil {
		app.fallDown(op, err)
	}

	cartSvc := service.NewCartService(
		storage.NewCartRepository(app.store), pricing, app.bus,
	)
	catalogSvc := service.NewCatalogService(
		provider, storage.NewFavoritesRepository(app.store),
	)
	checkoutSvc := service.NewCheckoutService(
		cartSvc, node, app.cfg.Checkout.ProcessingDelay,
	)

	app.services = services{cartSvc, catalogSvc, checkoutSvc}
}

func (app *App) loadPricing() (domain.Pricing, error) {
	threshold, err := decimal.NewFromString(app.cfg.Shipping.FreeThreshold)
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("free_threshold: %w", err)
	}
	fee, err := decimal.NewFromString(app.cfg.Shipping.Fee)
	if err != nil {
		return domain.Pricing{}, fmt.Errorf("fee: %w", err)
	}
	return domain.Pricing{
		FreeShippingThreshold: threshold,
		ShippingFee:           fee,
	}, nil
}

func (app *App) initHTTPServer() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.services.catalog)
	httphandler.RegisterCart(mux, app.services.cart, app.services.catalog)
	httphandler.RegisterFavorites(mux, app.services.catalog, app.services.catalog)
	httphandler.RegisterCheckout(mux, app.services.checkout)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.store.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
