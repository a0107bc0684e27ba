package factory

import (
	"net/http"

	"github.com/mcoot/lateguess/internal/api"
	"github.com/mcoot/lateguess/internal/web"
)

// Handler combines the JSON API under /api/ with the HTML frontend
func (a *App) Handler() http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:             a.Logger,
		DB:                 a.Storage,
		AuthService:        a.AuthService,
		BlogService:        a.BlogService,
		GameService:        a.GameService,
		LeaderboardService: a.LeaderboardService,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:             a.Logger,
		AuthService:        a.AuthService,
		BlogService:        a.BlogService,
		GameService:        a.GameService,
		LeaderboardService: a.LeaderboardService,
		SessionTTL:         a.Config.SessionTTL,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)
	return mux
}
