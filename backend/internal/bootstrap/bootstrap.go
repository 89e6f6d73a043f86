package bootstrap

import (
	"net/http"

	"gamecrowd/backend/internal/app"
	"gamecrowd/backend/internal/handler"
	"gamecrowd/backend/internal/infra/metrics"
	"gamecrowd/backend/internal/repository"
	"gamecrowd/backend/internal/server"
	catalogsvc "gamecrowd/backend/internal/service/catalog"
	gamesvc "gamecrowd/backend/internal/service/game"
	stretchgoalsvc "gamecrowd/backend/internal/service/stretchgoal"
	subscriptionsvc "gamecrowd/backend/internal/service/subscription"

	"go.uber.org/zap"
)

// Application 聚合装配完成的服务与路由，供入口进程托管。
type Application struct {
	Resources       *app.Resources
	CatalogSvc      *catalogsvc.Service
	GameSvc         *gamesvc.Service
	StretchGoalSvc  *stretchgoalsvc.Service
	SubscriptionSvc *subscriptionsvc.Service
	Router          http.Handler
}

// BuildApplication 按 仓储 → 服务 → handler → 路由 的顺序完成依赖装配。
func BuildApplication(logger *zap.SugaredLogger, resources *app.Resources) (*Application, error) {
	metrics.MustRegister()

	categoryRepo := repository.NewCategoryRepository(resources.DB)
	publisherRepo := repository.NewPublisherRepository(resources.DB)
	gameRepo := repository.NewGameRepository(resources.DB)
	goalRepo := repository.NewStretchGoalRepository(resources.DB)
	subscriptionRepo := repository.NewSubscriptionRepository(resources.DB)

	catalogService := catalogsvc.NewService(categoryRepo, publisherRepo)
	gameService := gamesvc.NewService(gameRepo, categoryRepo, publisherRepo)
	goalService := stretchgoalsvc.NewService(goalRepo, gameRepo)
	subscriptionService := subscriptionsvc.NewService(subscriptionRepo, gameRepo)

	router := server.NewRouter(server.RouterOptions{
		CategoryHandler:     handler.NewCategoryHandler(catalogService),
		PublisherHandler:    handler.NewPublisherHandler(catalogService),
		GameHandler:         handler.NewGameHandler(gameService),
		StretchGoalHandler:  handler.NewStretchGoalHandler(goalService),
		SubscriptionHandler: handler.NewSubscriptionHandler(subscriptionService),
	})

	logger.Infow("application assembled", "mode", resources.Flags.Mode)

	return &Application{
		Resources:       resources,
		CatalogSvc:      catalogService,
		GameSvc:         gameService,
		StretchGoalSvc:  goalService,
		SubscriptionSvc: subscriptionService,
		Router:          router,
	}, nil
}
