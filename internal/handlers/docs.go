package handlers

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed openapi.yaml
var openAPIDoc []byte

const openAPIPath = "/openapi.yaml"

// ServeOpenAPI returns the embedded OpenAPI 3.0 document.
// GET /openapi.yaml
func (h *Handler) ServeOpenAPI(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "application/yaml", openAPIDoc)
}

// ServeSwaggerUI renders templates/docs.html, a Swagger UI page that reads
// the document from openAPIPath. Requests made with "Try it out" go to this
// same server.
// GET /docs
func (h *Handler) ServeSwaggerUI(c *gin.Context) {
	c.HTML(http.StatusOK, "docs.html", gin.H{
		"Version": h.Version,
		"SpecURL": openAPIPath,
	})
}
