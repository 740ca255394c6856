package router

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ferialink/FeriaLink/app/controllers"
	"github.com/ferialink/FeriaLink/app/repository"
	"github.com/ferialink/FeriaLink/internal/pkg/fint"
	"github.com/ferialink/FeriaLink/internal/pkg/middleware"
	"github.com/ferialink/FeriaLink/internal/pkg/storage"
)

type ApiRouter struct {
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	factory := repository.GetGlobalFactory()

	fintClient := fint.NewClientFromEnv()
	fintClient.Cache = fint.RedisCache{}

	api := app.Group("/api", limiter.New())
	v1 := api.Group("/v1")

	h.registerPublicRoutes(v1, factory, fintClient)
	h.registerAdminRoutes(v1, factory, fintClient)
}

func (h ApiRouter) registerPublicRoutes(v1 fiber.Router, factory *repository.RepositoryFactory, fintClient *fint.Client) {
	menuController := controllers.NewMenuController(factory.GetPageRepository())
	pageController := controllers.NewPageController(factory.GetPageRepository())
	postController := controllers.NewPostController(factory.GetPostRepository())
	programController := controllers.NewProgramController(factory.GetProgramRepository())
	standController := controllers.NewStandController(factory.GetStandRepository())
	newsletterController := controllers.NewNewsletterController(factory.GetNewsletterRepository())
	ticketController := controllers.NewTicketController(fintClient)
	webhookController := controllers.NewWebhookController(factory.GetTicketRepository())

	v1.Get("/menu", menuController.HandleGetMenu)
	v1.Get("/pages/:slug", pageController.HandleGetPage)
	v1.Get("/posts", postController.HandleGetPosts)
	v1.Get("/program", programController.HandleGetProgram)
	v1.Get("/stands", standController.HandleGetStands)
	v1.Post("/newsletter", newsletterController.HandleSubscribe)

	v1.Get("/tickets", middleware.RequireAuth, ticketController.HandleGetTickets)
	v1.Put("/tickets/:reference", middleware.RequireAuth, ticketController.HandleUpdateTicket)

	v1.Post("/webhooks/fint", webhookController.HandleFintWebhook)
}

func (h ApiRouter) registerAdminRoutes(v1 fiber.Router, factory *repository.RepositoryFactory, fintClient *fint.Client) {
	pageController := controllers.NewAdminPageController(factory.GetPageRepository())
	postController := controllers.NewAdminPostController(factory.GetPostRepository())
	programController := controllers.NewAdminProgramController(factory.GetProgramRepository())
	standController := controllers.NewAdminStandController(factory.GetStandRepository())
	ticketController := controllers.NewAdminTicketController(factory.GetTicketRepository(), fintClient)

	var mediaStore *storage.MediaStore
	if store, err := storage.NewMediaStoreFromEnv(context.Background()); err != nil {
		log.Printf("media uploads disabled: %v", err)
	} else {
		mediaStore = store
	}
	mediaController := controllers.NewAdminMediaController(mediaStore)

	admin := v1.Group("/admin", middleware.RequireEditor)

	admin.Get("/pages", pageController.HandleListPages)
	admin.Post("/pages", pageController.HandleCreatePage)
	admin.Put("/pages/:id", pageController.HandleUpdatePage)
	admin.Delete("/pages/:id", middleware.RequireAdmin, pageController.HandleDeletePage)

	admin.Get("/posts", postController.HandleListPosts)
	admin.Post("/posts", postController.HandleCreatePost)
	admin.Put("/posts/:id", postController.HandleUpdatePost)
	admin.Delete("/posts/:id", postController.HandleDeletePost)

	admin.Post("/program/days", programController.HandleCreateDay)
	admin.Put("/program/days/:id", programController.HandleUpdateDay)
	admin.Delete("/program/days/:id", programController.HandleDeleteDay)
	admin.Post("/program/tracks", programController.HandleCreateTrack)
	admin.Delete("/program/tracks/:id", programController.HandleDeleteTrack)
	admin.Post("/program/rooms", programController.HandleCreateRoom)
	admin.Delete("/program/rooms/:id", programController.HandleDeleteRoom)
	admin.Post("/program/sessions", programController.HandleCreateSession)
	admin.Put("/program/sessions/:id", programController.HandleUpdateSession)
	admin.Delete("/program/sessions/:id", programController.HandleDeleteSession)

	admin.Get("/stands", standController.HandleListStands)
	admin.Post("/stands", standController.HandleCreateStand)
	admin.Put("/stands/:id", standController.HandleUpdateStand)
	admin.Delete("/stands/:id", standController.HandleDeleteStand)

	admin.Get("/tickets", ticketController.HandleListTickets)
	admin.Post("/tickets/sync", ticketController.HandleSyncTickets)

	admin.Post("/media", mediaController.HandleUpload)
}
