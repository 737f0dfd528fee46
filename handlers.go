package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kadalikavya/tinylink-backend/pkg/metrics"
	"github.com/kadalikavya/tinylink-backend/service"
)

type server struct {
	svc *service.Service
	log *zap.Logger
	mts *metrics.Metrics
}

type createLinkRequest struct {
	URL  string `json:"url"`
	Code string `json:"code"`
}

// handleServiceError translates the service error taxonomy into a JSON
// response. Unexpected errors are logged and collapsed to a generic 500.
func (s *server) handleServiceError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": "code already exists"})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		s.log.Error("internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

// @Summary Create a short link
// @Description Creates a short link for the given URL, with an optional custom code
// @ID createLink
// @Accept json
// @Produce json
// @Param body body createLinkRequest true "Target URL and optional custom code"
// @Success 201 {object} object{code=string,url=string}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/links [post]
// @Tags links
func (s *server) createLink(c *gin.Context) {
	var req createLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	link, err := s.svc.Create(c.Request.Context(), req.URL, req.Code)
	if err != nil {
		s.handleServiceError(c, err)
		return
	}

	s.mts.LinksCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{"code": link.Code, "url": link.URL})
}

// @Summary List all links
// @Description Returns every link, newest first
// @ID listLinks
// @Produce json
// @Success 200 {array} models.Link
// @Failure 500 {object} object{error=string}
// @Router /api/links [get]
// @Tags links
func (s *server) listLinks(c *gin.Context) {
	links, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// @Summary Get link stats
// @Description Returns the link record for a code, including click stats
// @ID getLink
// @Produce json
// @Param code path string true "Short code"
// @Success 200 {object} models.Link
// @Failure 404 {object} object{error=string}
// @Router /api/links/{code} [get]
// @Tags links
func (s *server) getLink(c *gin.Context) {
	link, err := s.svc.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		s.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// @Summary Delete a link
// @Description Deletes the link for a code
// @ID deleteLink
// @Produce json
// @Param code path string true "Short code"
// @Success 200 {object} object{ok=bool}
// @Failure 404 {object} object{error=string}
// @Router /api/links/{code} [delete]
// @Tags links
func (s *server) deleteLink(c *gin.Context) {
	if err := s.svc.Delete(c.Request.Context(), c.Param("code")); err != nil {
		s.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary Redirect to the target URL
// @Description Resolves a short code, records the click, and redirects
// @ID redirect
// @Param code path string true "Short code"
// @Success 302 "Redirect to target URL"
// @Failure 404 "Unknown or reserved code"
// @Router /{code} [get]
// @Tags redirect
func (s *server) redirect(c *gin.Context) {
	code := c.Param("code")

	target, err := s.svc.ResolveAndCount(c.Request.Context(), code)
	if err != nil {
		if service.IsNotFound(err) {
			s.notFound(c)
			return
		}
		s.log.Error("redirect failed", zap.String("code", code), zap.Error(err))
		c.String(http.StatusInternalServerError, "Server error")
		return
	}

	s.mts.RedirectsServed.Inc()
	c.Redirect(http.StatusFound, target)
}

// notFound answers the redirect route: HTML for browsers, plain text
// otherwise.
func (s *server) notFound(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"message": "Short link not found"})
		return
	}
	c.String(http.StatusNotFound, "Not found")
}

// @Summary Healthcheck
// @ID healthz
// @Produce json
// @Success 200 {object} object{ok=bool,version=string}
// @Router /healthz [get]
// @Tags system
func (s *server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "version": version})
}

func (s *server) dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (s *server) statsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "stats.html", gin.H{"Code": c.Param("code")})
}
