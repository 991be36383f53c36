package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/peopledir/people-api/internal/core/ports"
)

// PersonHandler handles HTTP requests for directory records.
type PersonHandler struct {
	service ports.PersonService
}

func NewPersonHandler(service ports.PersonService) *PersonHandler {
	return &PersonHandler{service: service}
}

// List handles GET /api/users — filtered, paginated listing.
//
// @Summary      List directory records
// @Tags         users
// @Produce      json
// @Param        page      query     int     false  "Page number (1-based, default 1)"
// @Param        per_page  query     int     false  "Records per page (default 5)"
// @Param        name      query     string  false  "Case-insensitive substring match on name"
// @Param        city      query     string  false  "Case-insensitive substring match on city"
// @Param        job       query     string  false  "Case-insensitive substring match on job"
// @Param        age       query     string  false  "Case-insensitive prefix match on age as text"
// @Success      200       {object}  listPersonsResponse
// @Router       /users [get]
func (h *PersonHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	result, err := h.service.List(c.Request().Context(), ports.ListPersonsInput{
		Filter: ports.PersonFilter{
			Name: c.QueryParam("name"),
			City: c.QueryParam("city"),
			Job:  c.QueryParam("job"),
			Age:  c.QueryParam("age"),
		},
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a directory record by id
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  personResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *PersonHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	person, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPersonResponse(person))
}

// Create handles POST /api/users. Gated: the auth middleware rejects
// anonymous requests before this runs.
//
// @Summary      Create a directory record
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createPersonRequest  true  "New record"
// @Success      201   {object}  personResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users [post]
func (h *PersonHandler) Create(c echo.Context) error {
	var req createPersonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	person, err := h.service.Create(c.Request().Context(), ports.CreatePersonInput{
		ActorID:  actorID(c),
		Name:     req.Name,
		Age:      *req.Age,
		City:     req.City,
		Job:      req.Job,
		IsActive: req.IsActive,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPersonResponse(person))
}

// Update handles PUT /api/users/:id — a partial field edit. Gated.
//
// @Summary      Update a directory record
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int                  true  "Record id"
// @Param        body  body      updatePersonRequest  true  "Fields to change"
// @Success      200   {object}  personResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [put]
func (h *PersonHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updatePersonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	person, err := h.service.Update(c.Request().Context(), ports.UpdatePersonInput{
		ActorID: actorID(c),
		ID:      id,
		Name:    req.Name,
		Age:     req.Age,
		City:    req.City,
		Job:     req.Job,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPersonResponse(person))
}

// Toggle handles PATCH /api/users/:id — flips isActive. Deliberately NOT
// gated: anyone may toggle, and the audit entry records the session's actor
// when present, else the system actor.
//
// @Summary      Toggle a record's active flag
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Record id"
// @Param        body  body      togglePersonRequest  true  "New active state"
// @Success      200   {object}  personResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *PersonHandler) Toggle(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req togglePersonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	person, err := h.service.SetActive(c.Request().Context(), actorID(c), id, *req.IsActive)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPersonResponse(person))
}

// Delete handles DELETE /api/users/:id. Gated; deletion is physical.
//
// @Summary      Delete a directory record
// @Tags         users
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *PersonHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actorID(c), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}

// parseID reads the :id path parameter. A non-numeric id behaves like an
// unknown record rather than a malformed request.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "person not found")
	}
	return id, nil
}
