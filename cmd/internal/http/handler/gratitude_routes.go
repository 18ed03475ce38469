package handler

import (
	"net/http"
	"strconv"

	"gratitude/cmd/internal/contract"
	"gratitude/cmd/internal/http/render"
	"gratitude/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type GratitudeService interface {
	GetAllEntries() ([]*contract.GratitudeResponse, int64, apierror.ErrorResponse)
	GetEntry(id int) (*contract.GratitudeResponse, apierror.ErrorResponse)
	CreateEntry(req *contract.GratitudeRequest) (*contract.GratitudeResponse, apierror.ErrorResponse)
	UpdateEntry(id int, req *contract.GratitudeRequest) (*contract.GratitudeResponse, apierror.ErrorResponse)
	DeleteEntry(id int) apierror.ErrorResponse
	ExportEntries() (*contract.ExportFile, apierror.ErrorResponse)
}

type DefaultGratitudeRoute struct {
	GratitudeService GratitudeService
}

func NewGratitudeDefault(gratitudeService GratitudeService) *DefaultGratitudeRoute {
	return &DefaultGratitudeRoute{GratitudeService: gratitudeService}
}

// Register mounts every journal route on e.
func (g *DefaultGratitudeRoute) Register(e *echo.Echo) {
	e.GET("/", g.Index)
	e.POST("/add", g.AddEntry)
	e.GET("/delete/:id", g.DeleteEntry)
	e.GET("/update/:id", g.EditEntry)
	e.POST("/update/:id", g.UpdateEntry)
	e.GET("/export", g.Export)
}

func (g *DefaultGratitudeRoute) Index(c echo.Context) error {
	entries, total, apierr := g.GratitudeService.GetAllEntries()
	if apierr != nil {
		return sendError(c, apierr)
	}

	view := &contract.IndexView{
		Entries:      entries,
		TotalEntries: total,
	}
	return c.Render(http.StatusOK, render.IndexTemplate, view)
}

func (g *DefaultGratitudeRoute) AddEntry(c echo.Context) error {
	req, apierr := readEntryForm(c)
	if apierr != nil {
		return sendError(c, apierr)
	}

	_, apierr = g.GratitudeService.CreateEntry(req)
	if apierr != nil {
		return sendError(c, apierr)
	}
	return c.Redirect(http.StatusFound, "/")
}

func (g *DefaultGratitudeRoute) DeleteEntry(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return sendError(c, apierror.NotFoundError)
	}

	apierr := g.GratitudeService.DeleteEntry(id)
	if apierr != nil {
		return sendError(c, apierr)
	}
	return c.Redirect(http.StatusFound, "/")
}

func (g *DefaultGratitudeRoute) EditEntry(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return sendError(c, apierror.NotFoundError)
	}

	entry, apierr := g.GratitudeService.GetEntry(id)
	if apierr != nil {
		return sendError(c, apierr)
	}
	return c.Render(http.StatusOK, render.UpdateTemplate, &contract.UpdateView{Entry: entry})
}

func (g *DefaultGratitudeRoute) UpdateEntry(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return sendError(c, apierror.NotFoundError)
	}

	// A missing entry wins over a missing form field.
	if _, apierr := g.GratitudeService.GetEntry(id); apierr != nil {
		return sendError(c, apierr)
	}

	req, apierr := readEntryForm(c)
	if apierr != nil {
		return sendError(c, apierr)
	}

	_, apierr = g.GratitudeService.UpdateEntry(id, req)
	if apierr != nil {
		return sendError(c, apierr)
	}
	return c.Redirect(http.StatusFound, "/")
}

func (g *DefaultGratitudeRoute) Export(c echo.Context) error {
	file, apierr := g.GratitudeService.ExportEntries()
	if apierr != nil {
		return sendError(c, apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", file.Data)
}

// readEntryForm only checks that the content field was submitted in the
// request body; an empty value is still a value. Query string values are
// ignored.
func readEntryForm(c echo.Context) (*contract.GratitudeRequest, apierror.ErrorResponse) {
	if _, err := c.FormParams(); err != nil {
		return nil, apierror.NewSimple(http.StatusBadRequest, "Malformed form body")
	}

	// PostForm holds urlencoded and multipart body values only.
	values, ok := c.Request().PostForm["content"]
	if !ok || len(values) == 0 {
		return nil, apierror.NewMissingFieldError("content")
	}
	return &contract.GratitudeRequest{Content: values[0]}, nil
}

func parseID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func sendError(c echo.Context, apierr apierror.ErrorResponse) error {
	return c.String(apierr.Code(), apierr.Text())
}
