package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/castawaylabs/status-board/board"
	"github.com/castawaylabs/status-board/feeds"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// DefaultWaitTimeout bounds how long a form post waits for its fetch before
// redirecting back to the page, which then shows the loading hint.
const DefaultWaitTimeout = 15 * time.Second

// Handler wires the HTTP layer to a board.
type Handler struct {
	board       *board.Board
	systemName  string
	waitTimeout time.Duration
}

func NewHandler(b *board.Board, systemName string) *Handler {
	return &Handler{board: b, systemName: systemName, waitTimeout: DefaultWaitTimeout}
}

// InitRoutes builds the gin router with every route registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(template.Must(template.New("page").Parse(pageTemplate)))

	router.GET("/", h.index)
	router.POST("/filter", h.filter)
	router.POST("/search", h.search)

	router.GET("/api/board", h.snapshot)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

type pageData struct {
	SystemName string
	Categories []feeds.Category
	Board      board.Snapshot
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "page", pageData{
		SystemName: h.systemName,
		Categories: feeds.Categories,
		Board:      h.board.Display(),
	})
}

func (h *Handler) filter(c *gin.Context) {
	category, err := feeds.ParseCategory(c.PostForm("category"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	h.wait(c, h.board.Select(category))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) search(c *gin.Context) {
	h.wait(c, h.board.SubmitSearchText(c.PostForm("q")))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Display())
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// wait gives the fetch a chance to land before the redirect. The fetch
// itself is never cancelled.
func (h *Handler) wait(c *gin.Context, req *board.Request) {
	timer := time.NewTimer(h.waitTimeout)
	defer timer.Stop()

	select {
	case <-req.Done():
	case <-c.Request.Context().Done():
	case <-timer.C:
		logrus.WithField("request", req.ID).Warn("redirecting before fetch completed")
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("http")
	}
}
