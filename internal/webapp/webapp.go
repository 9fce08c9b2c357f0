// Package webapp serves the web form front end: a textarea in, a three
// section study report out.
package webapp

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/gin-gonic/gin"
	"github.com/rabiawaqar06/studycrew/internal/crew"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// runTimeout bounds a full crew run. Three completions against a
// hosted vendor comfortably fit in this window.
const runTimeout = 120 * time.Second

// downloadFileName matches what users of the original front end expect.
const downloadFileName = "study_analysis.txt"

// WebApp wraps a Gin router plus the crew it runs.
type WebApp struct {
	Router *gin.Engine
	Server *http.Server
	crew   *crew.Crew
	store  *ReportStore

	// runMu serializes crew runs. The crew streams through a single
	// querier which holds per-run chat state, so concurrent kickoffs
	// would interleave their tokens.
	runMu sync.Mutex
}

// New wires routes + templates and returns an instance.
func New(c *crew.Crew) (*WebApp, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.SetHTMLTemplate(tmpl)

	app := &WebApp{
		Router: router,
		crew:   c,
		store:  NewReportStore(),
	}
	app.setupRoutes()
	return app, nil
}

// Run starts the HTTP server (non-blocking).
func (app *WebApp) Run(addr string) {
	app.Server = &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		ancli.Okf("web UI listening on %v\n", addr)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ancli.Errf("webapp: %v\n", err)
		}
	}()
}

// Shutdown gracefully stops the HTTP server.
func (app *WebApp) Shutdown(ctx context.Context) error {
	if app.Server != nil {
		return app.Server.Shutdown(ctx)
	}
	return nil
}

func (app *WebApp) setupRoutes() {
	app.Router.GET("/", app.indexPage)
	app.Router.POST("/study", app.runStudy)
	app.Router.GET("/report/:id", app.reportPage)
	app.Router.GET("/report/:id/download", app.downloadReport)
	app.Router.POST("/report/:id/clear", app.clearReport)
}

// GET /
func (app *WebApp) indexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Agents": app.crew.Agents,
	})
}

// POST /study
func (app *WebApp) runStudy(c *gin.Context) {
	studyText := strings.TrimSpace(c.PostForm("studyText"))
	if studyText == "" {
		c.HTML(http.StatusBadRequest, "index.tmpl", gin.H{
			"Agents": app.crew.Agents,
			"Error":  "Please enter some text to process.",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), runTimeout)
	defer cancel()

	app.runMu.Lock()
	report, err := app.crew.Kickoff(ctx, studyText)
	app.runMu.Unlock()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.tmpl", gin.H{
			"Agents": app.crew.Agents,
			"Error":  fmt.Sprintf("Study crew failed: %v", err),
		})
		return
	}

	id := app.store.Put(report)
	c.Redirect(http.StatusSeeOther, "/report/"+id)
}

// GET /report/:id
func (app *WebApp) reportPage(c *gin.Context) {
	report, err := app.store.Get(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "report not found: %v", err)
		return
	}
	c.HTML(http.StatusOK, "result.tmpl", gin.H{
		"ID":     c.Param("id"),
		"Stages": report.Stages,
	})
}

// GET /report/:id/download
func (app *WebApp) downloadReport(c *gin.Context) {
	report, err := app.store.Get(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "report not found: %v", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, downloadFileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Render()))
}

// POST /report/:id/clear
func (app *WebApp) clearReport(c *gin.Context) {
	app.store.Delete(c.Param("id"))
	c.Redirect(http.StatusSeeOther, "/")
}

// Handler adapts the web app to the Querier shape used by the CLI: Query
// serves until the context is cancelled, then shuts down gracefully.
type Handler struct {
	App  *WebApp
	Addr string
}

func (h *Handler) Query(ctx context.Context) error {
	h.App.Run(h.Addr)
	<-ctx.Done()
	ancli.Okf("shutting down web UI...\n")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.App.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web app shutdown error: %w", err)
	}
	return nil
}
