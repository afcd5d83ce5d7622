package main

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notebook/editor"
	"github.com/oliverisaac/notebook/store"
	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type notesResponse struct {
	Notes []types.Note `json:"notes"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func apiError(c echo.Context, status int, notice types.Toast) error {
	return c.JSON(status, errorResponse{Error: notice.Title, Message: notice.Description})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAuthRequired):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func listNotesAPI(remote store.Remote) echo.HandlerFunc {
	return func(c echo.Context) error {
		notes := store.New(remote, principalOf(c))
		if err := notes.Load(c.Request().Context()); err != nil {
			return apiError(c, statusFor(err), store.KindOf(err).Notice())
		}
		return c.JSON(http.StatusOK, notesResponse{Notes: notes.Search(c.QueryParam("q"))})
	}
}

// saveNoteAPI creates a note, or updates the one named by the id path parameter, and
// answers with the refreshed list.
func saveNoteAPI(remote store.Remote, status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
			return echo.NewHTTPError(http.StatusUnsupportedMediaType, "notes must be sent as JSON")
		}

		var req noteRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid note payload")
		}

		notes := store.New(remote, principalOf(c))

		var target *types.Note
		if id := c.Param("id"); id != "" {
			target = &types.Note{ID: id}
		}

		sess := &editor.Session{}
		if err := sess.Begin(target); err != nil {
			return err
		}
		sess.SetTitle(req.Title)
		sess.SetContent(req.Content)

		committed, err := sess.Commit(c.Request().Context(), notes)
		if err != nil {
			return apiError(c, statusFor(err), store.KindOf(err).Notice())
		}
		if !committed {
			return apiError(c, http.StatusUnprocessableEntity, types.Toast{
				Title:       "Nothing to save",
				Description: "A note needs a title or some content.",
			})
		}
		return c.JSON(status, notesResponse{Notes: notes.Notes()})
	}
}

func deleteNoteAPI(remote store.Remote) echo.HandlerFunc {
	return func(c echo.Context) error {
		notes := store.New(remote, principalOf(c))
		if err := notes.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return apiError(c, statusFor(err), store.KindOf(err).Notice())
		}
		return c.JSON(http.StatusOK, notesResponse{Notes: notes.Notes()})
	}
}
