package echoapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/ratiba/core/subject"
)

type subjectApi struct {
	mu      sync.Mutex
	catalog *subject.Catalog
}

func registerSubjectAPI(g *echo.Group, catalog *subject.Catalog) {
	api := &subjectApi{catalog: catalog}

	g.GET("/subjects", api.query)
}

// Handlers

// query re-reads the subject list on every request.
func (api *subjectApi) query(ctx echo.Context) error {
	api.mu.Lock()
	subjects, err := api.catalog.Load()
	api.mu.Unlock()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subjects)
}
