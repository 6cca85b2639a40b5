package server

import (
	"bytes"
	"net/http"
	"time"

	"cnctools/catalog/internal/domain"
	"cnctools/catalog/internal/view"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type catalogResponse struct {
	State domain.FilterState `json:"state"`
	Page  domain.Page        `json:"page"`
	Views view.Views         `json:"views"`
}

type categoryResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

type tabResponse struct {
	Tab        domain.Tab         `json:"tab"`
	Name       string             `json:"name"`
	Prefixes   []string           `json:"prefixes"`
	Categories []categoryResponse `json:"categories"`
}

func (s *Server) health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if at := s.catalog.RefreshedAt(); !at.IsZero() {
		resp["refreshed_at"] = at.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// run applies the request's query to the session state and runs the pipeline.
func (s *Server) run(c *gin.Context) (domain.Page, domain.FilterState, bool) {
	ctx := c.Request.Context()
	session := sessionID(c)

	st, err := applyQuery(s.catalog.SessionState(ctx, session), c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return domain.Page{}, st, false
	}

	page, next := s.catalog.Query(ctx, session, st)
	return page, next, true
}

func (s *Server) query(c *gin.Context) {
	page, st, ok := s.run(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, catalogResponse{
		State: st,
		Page:  page,
		Views: view.Sync(page, st),
	})
}

func (s *Server) catalogPage(c *gin.Context) {
	page, st, ok := s.run(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := view.RenderHTML(&buf, view.Sync(page, st)); err != nil {
		log.Errorf("❌ Failed to render catalog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render catalog"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) taxonomy(c *gin.Context) {
	specs := s.catalog.Taxonomy().Tabs()

	tabs := make([]tabResponse, 0, len(specs))
	for _, spec := range specs {
		categories := make([]categoryResponse, 0, len(spec.Categories))
		for _, category := range spec.Categories {
			categories = append(categories, categoryResponse{
				Name:  category.Name,
				Label: category.Label,
				Kind:  category.Kind(),
			})
		}
		tabs = append(tabs, tabResponse{
			Tab:        spec.Tab,
			Name:       spec.Tab.GetTabName(),
			Prefixes:   spec.Prefixes,
			Categories: categories,
		})
	}

	c.JSON(http.StatusOK, gin.H{"tabs": tabs, "all": domain.CategoryAll})
}

func (s *Server) export(c *gin.Context) {
	ctx := c.Request.Context()

	st, err := applyQuery(s.catalog.SessionState(ctx, sessionID(c)), c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := s.catalog.Export(ctx, st, &buf); err != nil {
		log.Errorf("❌ Failed to export catalog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export catalog"})
		return
	}

	filename := "katalog-" + st.Normalize().ActiveTab.String() + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) refresh(c *gin.Context) {
	if err := s.catalog.Refresh(c.Request.Context()); err != nil {
		log.Errorf("❌ Manual refresh failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "refreshed",
		"refreshed_at": s.catalog.RefreshedAt().Format(time.RFC3339),
	})
}
