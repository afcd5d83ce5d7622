package main

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notebook/editor"
	"github.com/oliverisaac/notebook/store"
	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	toastCreated = types.Toast{Title: "Note created!", Description: "Your new note has been saved."}
	toastUpdated = types.Toast{Title: "Note updated!", Description: "Your note has been successfully updated."}
	toastDeleted = types.Toast{Title: "Note deleted", Description: "Your note has been permanently deleted.", Destructive: true}
	toastMissing = types.Toast{Title: "Note not found", Description: "That note does not exist or is not yours.", Destructive: true}
)

func homePageHandler(remote store.Remote) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		user, _ := GetSessionUser(c)
		logrus.Infof("Generating homepage for user %s", user.Email)

		notes := store.New(remote, store.PrincipalOf(user))
		term := c.QueryParam("q")

		pageData := types.HomePageData{SearchTerm: term}
		pageData.WithUser(user).WithToasts(popToasts(c)...)

		if err := notes.Load(ctx); err != nil {
			pageData.WithError(err).WithToasts(store.KindOf(err).Notice())
		}

		pageData.DisplayName = notes.DisplayName(ctx)
		pageData.Total = len(notes.Notes())
		pageData.WithNotes(notes.Search(term))

		return render(c, http.StatusOK, "index", pageData)
	}
}

func renderEditor(c echo.Context, status int, sess *editor.Session, toasts ...types.Toast) error {
	user, _ := GetSessionUser(c)
	action := "/notes"
	if target := sess.Target(); target != nil {
		action = "/notes/" + url.PathEscape(target.ID)
	}
	return render(c, status, "editor", types.EditorPageData{
		User:    &user,
		Heading: sess.Heading(),
		Action:  action,
		Title:   sess.Title(),
		Content: sess.Content(),
		CanSave: sess.CanSave(),
		Toasts:  toasts,
	})
}

func newNotePage() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := &editor.Session{}
		if err := sess.Begin(nil); err != nil {
			return err
		}
		return renderEditor(c, http.StatusOK, sess)
	}
}

func editNotePage(remote store.Remote) echo.HandlerFunc {
	return func(c echo.Context) error {
		notes := store.New(remote, principalOf(c))
		if err := notes.Load(c.Request().Context()); err != nil {
			addToast(c, store.KindOf(err).Notice())
			return c.Redirect(http.StatusFound, "/")
		}

		note, ok := notes.Find(c.Param("id"))
		if !ok {
			addToast(c, toastMissing)
			return c.Redirect(http.StatusFound, "/")
		}

		sess := &editor.Session{}
		if err := sess.Begin(&note); err != nil {
			return err
		}
		return renderEditor(c, http.StatusOK, sess)
	}
}

// saveNote handles both the save and cancel buttons of the editor form, for new notes
// (no id) and existing ones.
func saveNote(remote store.Remote) echo.HandlerFunc {
	return func(c echo.Context) error {
		notes := store.New(remote, principalOf(c))

		var target *types.Note
		if id := c.Param("id"); id != "" {
			target = &types.Note{ID: id}
		}

		sess := &editor.Session{}
		if err := sess.Begin(target); err != nil {
			return err
		}
		sess.SetTitle(c.FormValue("title"))
		sess.SetContent(c.FormValue("content"))

		sig := editor.ParseSignal(c.FormValue("action"))
		closed, err := sess.Signal(c.Request().Context(), sig, notes)

		saved := toastCreated
		if target != nil {
			saved = toastUpdated
		}

		switch {
		case errors.Is(err, editor.ErrUnknownSignal):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrAuthRequired):
			return c.Redirect(http.StatusFound, "/auth/sign-in")
		case errors.Is(err, store.ErrLoadFailure):
			// The write landed; only the refresh failed.
			addToast(c, saved, store.LoadFailure.Notice())
			return c.Redirect(http.StatusFound, "/")
		case err != nil:
			return renderEditor(c, statusFor(err), sess, store.KindOf(err).Notice())
		case !closed:
			return renderEditor(c, http.StatusOK, sess)
		case sig == editor.SignalEscape:
			return c.Redirect(http.StatusFound, "/")
		}

		addToast(c, saved)
		return c.Redirect(http.StatusFound, "/")
	}
}

func deleteNote(remote store.Remote) echo.HandlerFunc {
	return func(c echo.Context) error {
		notes := store.New(remote, principalOf(c))
		err := notes.Delete(c.Request().Context(), c.Param("id"))
		switch {
		case err == nil:
			addToast(c, toastDeleted)
		case errors.Is(err, store.ErrLoadFailure):
			addToast(c, toastDeleted, store.LoadFailure.Notice())
		default:
			addToast(c, store.KindOf(err).Notice())
		}
		return c.Redirect(http.StatusFound, "/")
	}
}
