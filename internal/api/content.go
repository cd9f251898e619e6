package api

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"aplus-academy/internal/models"
)

// Query parameters with a meaning of their own; any other parameter filters
// on the column of that name.
var reservedParams = map[string]bool{"limit": true, "order": true, "desc": true}

func (s *Server) registerContent(g *echo.Group) {
	g.GET("/:table", s.listRecords)
	g.GET("/:table/count", s.countRecords)
	g.POST("/:table", s.createRecord)
	g.PUT("/:table/:id", s.updateRecord)
	g.DELETE("/:table/:id", s.deleteRecord)
}

func filtersFrom(c echo.Context) []models.Filter {
	var filters []models.Filter
	for name, values := range c.QueryParams() {
		if reservedParams[name] || len(values) == 0 {
			continue
		}
		filters = append(filters, models.Filter{Column: name, Value: values[0]})
	}
	return filters
}

func queryFrom(c echo.Context) (models.Query, error) {
	q := models.Query{Filters: filtersFrom(c)}
	err := echo.QueryParamsBinder(c).
		Int("limit", &q.Limit).
		String("order", &q.OrderBy).
		Bool("desc", &q.Desc).
		BindError()
	if err != nil || q.Limit < 0 {
		return models.Query{}, newValidationError(errValidation, FieldError{Field: "query", Error: "limit must be a non-negative integer and desc a boolean"})
	}
	return q, nil
}

func decodeRecord(c echo.Context) (models.Record, error) {
	rec := models.Record{}
	if err := json.NewDecoder(c.Request().Body).Decode(&rec); err != nil || rec == nil {
		return nil, newValidationError(errValidation, FieldError{Field: "body", Error: "must be a JSON object"})
	}
	return rec, nil
}

func (s *Server) listRecords(c echo.Context) error {
	q, err := queryFrom(c)
	if err != nil {
		return err
	}
	recs, err := s.svc.ListRecords(c.Request().Context(), c.Param("table"), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}

func (s *Server) countRecords(c echo.Context) error {
	n, err := s.svc.CountRecords(c.Request().Context(), c.Param("table"), filtersFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

func (s *Server) createRecord(c echo.Context) error {
	rec, err := decodeRecord(c)
	if err != nil {
		return err
	}
	created, err := s.svc.CreateRecord(c.Request().Context(), c.Param("table"), rec)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateRecord(c echo.Context) error {
	rec, err := decodeRecord(c)
	if err != nil {
		return err
	}
	updated, err := s.svc.UpdateRecord(c.Request().Context(), c.Param("table"), c.Param("id"), rec)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteRecord(c echo.Context) error {
	if err := s.svc.DeleteRecord(c.Request().Context(), c.Param("table"), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
