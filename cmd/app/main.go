package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"flowstate/cmd/fx/account_fx"
	"flowstate/cmd/fx/ai_fx"
	"flowstate/cmd/fx/analytics_fx"
	"flowstate/cmd/fx/config_fx"
	"flowstate/cmd/fx/controllers_fx"
	"flowstate/cmd/fx/db_fx"
	"flowstate/cmd/fx/intervention_fx"
	"flowstate/cmd/fx/mail_fx"
	"flowstate/cmd/fx/media_fx"
	"flowstate/cmd/fx/memcache_fx"
	"flowstate/cmd/fx/session_fx"
	"flowstate/cmd/fx/settings_fx"
	"flowstate/internal/api/controllers"
	"flowstate/internal/config"
	"flowstate/internal/logging"
	"flowstate/pkg/middleware"
	"flowstate/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		session_fx.Module,
		intervention_fx.Module,
		settings_fx.Module,
		analytics_fx.Module,
		media_fx.Module,
		ai_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, engine *gin.Engine, cfg config.ServerConfig) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			go func() {
				logging.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logging.Error().Err(err).Msg("HTTP server stopped unexpectedly")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logging.Info().Msg("Stopping HTTP server")
			stopCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(stopCtx)
		},
	})
}

type routerParams struct {
	fx.In

	Server       config.ServerConfig
	Issuer       *utils.TokenIssuer
	Account      *controllers.AccountController
	Session      *controllers.SessionController
	Intervention *controllers.InterventionController
	Media        *controllers.MediaController
	Settings     *controllers.SettingsController
	Analytics    *controllers.AnalyticsController
	AI           *controllers.AIController
	Health       *controllers.HealthController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if p.Server.Mode != "" {
		gin.SetMode(p.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(p.Server.CORSOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	r.GET("/health", p.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	auth := middleware.JWTAuthMiddleware(p.Issuer)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", p.Account.Register)
	authGroup.POST("/signin", p.Account.Login)
	authGroup.POST("/forgot-password", p.Account.ForgotPassword)
	authGroup.POST("/reset-password", p.Account.ResetPassword)
	authGroup.GET("/profile", auth, p.Account.GetProfile)
	authGroup.PATCH("/profile", auth, p.Account.UpdateProfile)

	sessionsGroup := api.Group("/sessions", auth)
	sessionsGroup.GET("", p.Session.ListSessions)
	sessionsGroup.POST("", p.Session.CreateSession)
	sessionsGroup.GET("/:id", p.Session.GetSession)
	sessionsGroup.PATCH("/:id", p.Session.UpdateSession)
	sessionsGroup.DELETE("/:id", p.Session.DeleteSession)

	interventionsGroup := api.Group("/interventions", auth)
	interventionsGroup.GET("", p.Intervention.ListInterventions)
	interventionsGroup.POST("", p.Intervention.CreateIntervention)
	interventionsGroup.PATCH("/:id", p.Intervention.UpdateIntervention)
	interventionsGroup.DELETE("/:id", p.Intervention.DeleteIntervention)

	mediaGroup := api.Group("/media", auth)
	mediaGroup.GET("", p.Media.ListMedia)
	mediaGroup.POST("/upload", p.Media.UploadMedia)
	mediaGroup.GET("/:id", p.Media.GetMedia)
	mediaGroup.DELETE("/:id", p.Media.DeleteMedia)

	settingsGroup := api.Group("/settings", auth)
	settingsGroup.GET("", p.Settings.GetSettings)
	settingsGroup.PATCH("", p.Settings.UpdateSettings)

	api.GET("/analytics", auth, p.Analytics.GetAnalytics)
	api.POST("/ai/chat", auth, p.AI.Chat)
}
