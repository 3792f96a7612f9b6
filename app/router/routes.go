// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"time"

	"github.com/bpnlt/tv-planner/app/handlers"
	"github.com/bpnlt/tv-planner/app/middleware"
	"github.com/bpnlt/tv-planner/config"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	Shutdown() error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app      *fiber.App
	cfg      *config.Config
	campaign *handlers.CampaignHandler
	items    *handlers.WaveItemHandler
	discount *handlers.DiscountHandler
	rates    *handlers.RateHandler
	indices  *handlers.IndexHandler
	lists    *handlers.PricingListHandler
	reports  *handlers.ReportHandler
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	cfg *config.Config,
	campaign *handlers.CampaignHandler,
	items *handlers.WaveItemHandler,
	discount *handlers.DiscountHandler,
	rates *handlers.RateHandler,
	indices *handlers.IndexHandler,
	lists *handlers.PricingListHandler,
	reports *handlers.ReportHandler,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "TV Planner API",
		ServerHeader: "tv-planner",
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:      app,
		cfg:      cfg,
		campaign: campaign,
		items:    items,
		discount: discount,
		rates:    rates,
		indices:  indices,
		lists:    lists,
		reports:  reports,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${method} ${path} ${status} ${latency}\n",
	}))
	r.app.Use(compress.New())
	if r.cfg.Metrics.Enabled {
		r.app.Use(middleware.Metrics())
		r.app.Get(r.cfg.Metrics.Path, func(c fiber.Ctx) error {
			fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())(c.RequestCtx())
			return nil
		})
	}

	api := r.app.Group("/api/v1")
	api.Get("/health", r.healthCheck)

	// Campaigns
	api.Post("/campaigns", r.campaign.CreateCampaign)
	api.Get("/campaigns", r.campaign.ListCampaigns)
	api.Get("/campaigns/:uuid", r.campaign.GetCampaign)
	api.Patch("/campaigns/:id", r.campaign.UpdateCampaign)
	api.Delete("/campaigns/:uuid", r.campaign.DeleteCampaign)
	api.Put("/campaigns/:id/trp-plan", r.campaign.SaveTRPPlan)
	api.Get("/campaigns/:id/discounts", r.discount.ListCampaignDiscounts)

	// Waves
	api.Post("/campaigns/:id/waves", r.campaign.CreateWave)
	api.Get("/campaigns/:id/waves", r.campaign.ListWaves)
	api.Patch("/waves/:id", r.campaign.UpdateWave)
	api.Delete("/waves/:id", r.campaign.DeleteWave)
	api.Get("/waves/:id/total", r.discount.WaveTotal)
	api.Get("/waves/:id/discounts", r.discount.ListWaveDiscounts)
	api.Post("/waves/:id/recalculate", r.discount.RecalculateWave)

	// Wave items
	api.Post("/waves/:id/items", r.items.CreateWaveItem)
	api.Get("/waves/:id/items", r.items.ListWaveItems)
	api.Get("/wave-items/:id", r.items.GetWaveItem)
	api.Patch("/wave-items/:id", r.items.UpdateWaveItem)
	api.Delete("/wave-items/:id", r.items.DeleteWaveItem)

	// TVCs
	api.Post("/campaigns/:id/tvcs", r.campaign.CreateTVC)
	api.Get("/campaigns/:id/tvcs", r.campaign.ListTVCs)
	api.Delete("/tvcs/:id", r.campaign.DeleteTVC)

	// Discounts
	api.Post("/discounts", r.discount.AddDiscount)
	api.Delete("/discounts/:id", r.discount.DeleteDiscount)

	// Channel groups and channels
	api.Post("/channel-groups", r.lists.CreateChannelGroup)
	api.Get("/channel-groups", r.lists.ListChannelGroups)
	api.Get("/channel-groups/:id", r.lists.GetChannelGroup)
	api.Delete("/channel-groups/:id", r.lists.DeleteChannelGroup)
	api.Post("/channel-groups/:id/channels", r.lists.AddChannel)
	api.Delete("/channels/:id", r.lists.DeleteChannel)

	// Rates
	api.Put("/channel-groups/:id/rates", r.rates.UpsertLegacyRate)
	api.Get("/channel-groups/:id/rates", r.rates.ListLegacyRates)
	api.Put("/pricing-lists/:id/rates", r.rates.UpsertListRate)
	api.Get("/pricing-lists/:id/rates", r.rates.ListRatesByPricingList)
	api.Get("/pricing-lists/:id/channel-groups/:groupId/target-groups", r.rates.ListTargetGroups)
	api.Delete("/rates/:id", r.rates.DeleteRate)

	// Indices
	api.Put("/channel-groups/:id/duration-indices", r.indices.UpsertDurationIndex)
	api.Delete("/channel-groups/:id/duration-indices/:seconds", r.indices.DeleteDurationIndex)
	api.Get("/duration-indices", r.indices.ListDurationIndices)
	api.Put("/channel-groups/:id/seasonal-indices", r.indices.UpsertSeasonalIndex)
	api.Get("/seasonal-indices", r.indices.ListSeasonalIndices)
	api.Put("/channel-groups/:id/position-indices", r.indices.UpsertPositionIndex)
	api.Get("/position-indices", r.indices.ListPositionIndices)

	// Pricing lists
	api.Post("/pricing-lists", r.lists.CreatePricingList)
	api.Get("/pricing-lists", r.lists.ListPricingLists)
	api.Get("/pricing-lists/:id", r.lists.GetPricingList)
	api.Delete("/pricing-lists/:id", r.lists.DeletePricingList)
	api.Post("/pricing-lists/:id/duplicate", r.lists.DuplicatePricingList)
	api.Post("/pricing-lists/:id/migrate-legacy", r.lists.MigrateLegacyRates)

	// Reports
	api.Get("/campaigns/:uuid/report", r.reports.GetCampaignReport)
	api.Get("/campaigns/:uuid/report.xlsx", r.reports.ExportCampaignExcel)
	api.Get("/campaigns/:uuid/report.csv", r.reports.ExportCampaignCSV)

	// Calendar and CRM
	api.Get("/calendar/:year/:month", r.campaign.CalendarMonth)
	api.Get("/crm/campaigns", r.campaign.ListRemoteCampaigns)
	api.Post("/crm/import", r.campaign.ImportFromCRM)
}

func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start begins listening on the given address
func (r *FiberRouter) Start(address string) error {
	return r.app.Listen(address)
}

// Shutdown gracefully stops the server
func (r *FiberRouter) Shutdown() error {
	return r.app.Shutdown()
}

// GetApp exposes the underlying Fiber app, mainly for tests
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}
