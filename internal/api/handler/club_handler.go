package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuslink/association-api/internal/core/ports"
)

type ClubHandler struct {
	clubService ports.ClubService
}

func NewClubHandler(clubService ports.ClubService) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

// Create registers a new club with an empty member set.
//
// @Summary      Create a club
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Param        body  body      createClubRequest  true  "Club details"
// @Success      201   {object}  object
// @Failure      400   {object}  map[string]string
// @Router       /clubs [post]
func (h *ClubHandler) Create(c echo.Context) error {
	var req createClubRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	club, err := h.clubService.Create(c.Request().Context(), ports.CreateClubInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Email:       req.Email,
		PresidentID: req.PresidentID,
		Type:        req.Type,
		Logo:        req.Logo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, club)
}

// List returns all clubs.
func (h *ClubHandler) List(c echo.Context) error {
	clubs, err := h.clubService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clubs)
}

// GetByID returns a single club.
func (h *ClubHandler) GetByID(c echo.Context) error {
	club, err := h.clubService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, club)
}

// Update mutates the club's descriptive fields. Membership is never
// touched here — join/leave are the only membership mutations.
func (h *ClubHandler) Update(c echo.Context) error {
	var req updateClubRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	club, err := h.clubService.Update(c.Request().Context(), c.Param("id"), ports.UpdateClubInput{
		Description: req.Description,
		Category:    req.Category,
		Email:       req.Email,
		PresidentID: req.PresidentID,
		Logo:        req.Logo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, club)
}

// Delete removes a club. Member records are untouched (no cascade).
func (h *ClubHandler) Delete(c echo.Context) error {
	if err := h.clubService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Club deleted successfully"})
}

// Join adds the authenticated user to the club's member set.
//
// @Summary      Join a club
// @Tags         clubs
// @Produce      json
// @Param        id   path      string  true  "Club ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /clubs/join/{id} [post]
func (h *ClubHandler) Join(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if _, err := h.clubService.Join(c.Request().Context(), c.Param("id"), id.SubjectID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "You have joined the club."})
}

// Leave removes the authenticated user from the club's member set.
//
// @Summary      Leave a club
// @Tags         clubs
// @Produce      json
// @Param        id   path      string  true  "Club ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /clubs/leave/{id} [post]
func (h *ClubHandler) Leave(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if _, err := h.clubService.Leave(c.Request().Context(), c.Param("id"), id.SubjectID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "You have left the club."})
}

// Activity returns the club's recent membership activity, newest first.
func (h *ClubHandler) Activity(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
		limit = parsed
	}

	entries, err := h.clubService.RecentActivity(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
