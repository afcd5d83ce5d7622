package main

import (
	"html/template"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oliverisaac/notebook/static"
	"github.com/oliverisaac/notebook/store"
	"github.com/oliverisaac/notebook/types"
	"github.com/oliverisaac/notebook/views"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Template struct {
	tmpl *template.Template
}

func newTemplate() *Template {
	return &Template{
		tmpl: template.Must(views.Parse()),
	}
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	tmpl, err := views.WithCSRF(t.tmpl, token)
	if err != nil {
		return errors.Wrap(err, "cloning templates")
	}
	return tmpl.ExecuteTemplate(w, name, data)
}

func render(c echo.Context, status int, name string, data any) error {
	return c.Render(status, name, data)
}

func newServer(cfg types.Config, db *gorm.DB) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Renderer = newTemplate()
	e.HTTPErrorHandler = httpErrorHandler(e)

	e.StaticFS("/static", static.FS)

	e.Use(middleware.Recover())

	e.Use(middleware.Secure())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}\n",
	}))

	// The JSON API only accepts application/json bodies, which a cross-site form cannot send.
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
		TokenLookup:    "form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	cookieStore := sessions.NewCookieStore(cfg.CookieSecret)
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 24 * 365,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(cookieStore))
	e.Use(UserMiddleware())

	remote := store.NewGormRemote(db)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Auth
	e.GET("/auth/sign-in", signIn())
	e.POST("/auth/sign-in", signInWithEmailAndPassword(db))
	e.GET("/auth/sign-up", signUp())
	e.POST("/auth/sign-up", signUpWithEmailAndPassword(cfg, db))
	e.POST("/auth/sign-out", signOut())

	// Pages
	e.GET("/", homePageHandler(remote), RequireUser())
	e.GET("/notes/new", newNotePage(), RequireUser())
	e.GET("/notes/:id/edit", editNotePage(remote), RequireUser())
	e.POST("/notes", saveNote(remote), RequireUser())
	e.POST("/notes/:id", saveNote(remote), RequireUser())
	e.POST("/notes/:id/delete", deleteNote(remote), RequireUser())

	// JSON API
	api := e.Group("/api", RequireAPIUser())
	api.GET("/notes", listNotesAPI(remote))
	api.POST("/notes", saveNoteAPI(remote, http.StatusCreated))
	api.PUT("/notes/:id", saveNoteAPI(remote, http.StatusOK))
	api.DELETE("/notes/:id", deleteNoteAPI(remote))

	return e
}

// httpErrorHandler logs unexpected errors with a stack trace before handing them to
// echo's default handler.
func httpErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			logrus.WithFields(logrus.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			}).Error(goerrors.Wrap(err, 1).ErrorStack())
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
