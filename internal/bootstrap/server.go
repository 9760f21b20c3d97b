package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/zvrva/ticketing/api"
	"github.com/zvrva/ticketing/config"
	"github.com/zvrva/ticketing/internal/service/auth"
	"github.com/zvrva/ticketing/internal/service/catalog"
	"github.com/zvrva/ticketing/internal/service/issuance"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, authSvc auth.AuthUseCase, issuanceSvc issuance.IssuanceUseCase, catalogSvc catalog.CatalogUseCase) error {
	router := NewRouter(cfg, authSvc, issuanceSvc, catalogSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires every handler group. The tickets group sits behind the auth
// middleware; catalog and reports are open reads.
func NewRouter(cfg *config.Config, authSvc auth.AuthUseCase, issuanceSvc issuance.IssuanceUseCase, catalogSvc catalog.CatalogUseCase) *gin.Engine {
	router := gin.Default()

	authHandler := api.NewAuthHandler(authSvc)
	ticketHandler := api.NewTicketHandler(issuanceSvc)
	flightHandler := api.NewFlightHandler(catalogSvc)

	v1 := router.Group("/api/v1")
	authHandler.Register(v1.Group("/auth"))
	ticketHandler.Register(v1.Group("/tickets", api.AuthMiddleware(authSvc)))
	ticketHandler.RegisterItineraries(v1.Group("/itineraries"))
	flightHandler.Register(v1.Group("/flights"))
	flightHandler.RegisterReports(v1.Group("/reports"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/tickets.swagger.json"),
		)))
	}

	return router
}
