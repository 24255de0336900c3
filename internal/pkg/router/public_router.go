package router

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/orcahub/OrcaHub/app/controllers"
	"github.com/orcahub/OrcaHub/internal/pkg/cache"
	"github.com/orcahub/OrcaHub/internal/pkg/env"
)

// PublicRouter wires the unauthenticated confirmation endpoints customers
// reach from the mailed link. They are rate limited against token
// guessing, with the limiter state shared across instances via Redis.
type PublicRouter struct {
}

func (h PublicRouter) InstallRouter(app *fiber.App) {
	public := app.Group("/b", limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		Storage:    newLimiterStorage(),
	}))

	public.Get("/:publicID/status", controllers.HandleBudgetStatusPublic)
	public.Post("/:publicID/confirm", controllers.HandleConfirmBudget)
	public.Post("/:publicID/token/refresh", controllers.HandleRefreshBudgetToken)
}

// newLimiterStorage builds a Redis storage from the cache connection,
// using database 1 so limiter keys stay apart from cache entries.
func newLimiterStorage() *redis.Storage {
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient := cache.GetClient(); cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1,
		Reset:    false,
	})
}

func NewPublicRouter() *PublicRouter {
	return &PublicRouter{}
}
