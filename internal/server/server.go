// Package server exposes the dashboard views as a read-only JSON API.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	Router  *gin.Engine
	service *dashboard.Service
	metrics *Metrics
}

func New(service *dashboard.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		Router:  router,
		service: service,
		metrics: NewMetrics(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := s.Router.Group("/api")
	{
		api.GET("/options", s.getOptions)
		api.GET("/executive", s.getExecutive)
		api.GET("/manager", s.getManager)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Dashboard API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) getOptions(c *gin.Context) {
	opts, err := s.service.Options(c.Request.Context())
	if err != nil {
		errResponse(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (s *Server) getExecutive(c *gin.Context) {
	criteria, err := dashboard.ParseCriteria(criteriaInput(c))
	if err != nil {
		errResponse(c, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	view, err := s.service.Executive(c.Request.Context(), criteria)
	if err != nil {
		errResponse(c, http.StatusInternalServerError, err)
		return
	}
	s.metrics.observe("executive", time.Since(start).Seconds(), view.FilteredOrders)
	c.JSON(http.StatusOK, view)
}

func (s *Server) getManager(c *gin.Context) {
	criteria, err := dashboard.ParseCriteria(criteriaInput(c))
	if err != nil {
		errResponse(c, http.StatusBadRequest, err)
		return
	}
	whatIf := dashboard.DefaultWhatIf()
	if whatIf.PrepReduction, err = intQuery(c, "prep_reduction", whatIf.PrepReduction); err != nil {
		errResponse(c, http.StatusBadRequest, err)
		return
	}
	if whatIf.CancellationReduction, err = intQuery(c, "cancel_reduction", whatIf.CancellationReduction); err != nil {
		errResponse(c, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	view, err := s.service.Manager(c.Request.Context(), criteria, whatIf.Clamped())
	if err != nil {
		errResponse(c, http.StatusInternalServerError, err)
		return
	}
	s.metrics.observe("manager", time.Since(start).Seconds(), view.FilteredOrders)
	c.JSON(http.StatusOK, view)
}

func criteriaInput(c *gin.Context) dashboard.CriteriaInput {
	return dashboard.CriteriaInput{
		From:     c.Query("from"),
		To:       c.Query("to"),
		Cities:   c.QueryArray("city"),
		Zones:    c.QueryArray("zone"),
		Cuisines: c.QueryArray("cuisine"),
		Tiers:    c.QueryArray("tier"),
	}
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("invalid " + key + ": " + v)
	}
	return n, nil
}

func errResponse(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s -> %d (%s) ip=%s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
