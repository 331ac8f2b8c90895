// Package web serves the headlines page and the JSON API.
package web

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Andrew77447/newsapp/internal/cache"
	"github.com/Andrew77447/newsapp/internal/query"
)

//go:embed templates/*.html
var templatesFS embed.FS

const fetchTimeout = 30 * time.Second

// Headliner is the pipeline boundary the handlers depend on.
type Headliner interface {
	Fetch(ctx context.Context, filters query.Filters) ([]cache.Article, error)
	CacheStats() cache.Stats
}

type Server struct {
	svc          Headliner
	log          *slog.Logger
	defaultLang  string
	defaultLimit int
}

func NewServer(svc Headliner, defaultLang string, defaultLimit int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		svc:          svc,
		log:          log,
		defaultLang:  defaultLang,
		defaultLimit: defaultLimit,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", s.index)
	r.GET("/api/headlines", s.apiHeadlines)
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("starting web server", "addr", addr)
	return s.Router().Run(addr)
}

// filtersFromRequest maps the query string onto a normalized filter set.
func (s *Server) filtersFromRequest(c *gin.Context) query.Filters {
	limit := s.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	language := c.Query("language")
	if language == "" {
		language = s.defaultLang
	}
	return query.Normalize(
		c.Query("q"),
		c.Query("category"),
		c.Query("country"),
		language,
		limit,
	)
}

func (s *Server) index(c *gin.Context) {
	filters := s.filtersFromRequest(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), fetchTimeout)
	defer cancel()

	data := gin.H{
		"Filters":     filters,
		"Categories":  query.Categories(),
		"Countries":   query.Countries(),
		"Description": filters.Describe(),
	}

	articles, err := s.svc.Fetch(ctx, filters)
	if err != nil {
		s.log.Error("error fetching headlines", "error", err)
		data["Error"] = err.Error()
		c.HTML(http.StatusBadGateway, "index.html", data)
		return
	}

	data["Articles"] = articles
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) apiHeadlines(c *gin.Context) {
	filters := s.filtersFromRequest(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), fetchTimeout)
	defer cancel()

	articles, err := s.svc.Fetch(ctx, filters)
	if err != nil {
		s.log.Error("error fetching headlines", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    len(articles),
	})
}

func (s *Server) health(c *gin.Context) {
	stats := s.svc.CacheStats()
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"cached_queries": stats.Entries,
		"cache_hits":     stats.Hits,
		"cache_misses":   stats.Misses,
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request processed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"remote_addr", c.ClientIP(),
		)
	}
}
