package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notebook/store"
	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	UserKey       = "session-user"
	sessionName   = "session"
	toastFlashKey = "toast"
)

func getSession(c echo.Context) *sessions.Session {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		// An undecodable cookie still yields a fresh session.
		logrus.Debug(errors.Wrap(err, "reading session cookie"))
	}
	return sess
}

func UserMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := getSession(c)
			if raw, ok := sess.Values["user"].([]byte); ok {
				var user types.User
				if err := json.Unmarshal(raw, &user); err != nil {
					logrus.Error(errors.Wrap(err, "unmarshalling session user"))
				} else {
					c.Set(UserKey, user)
				}
			}
			return next(c)
		}
	}
}

func GetSessionUser(c echo.Context) (types.User, bool) {
	u := c.Get(UserKey)
	if u != nil {
		user := u.(types.User)
		logrus.Debugf("Found session user %s", user.Email)
		return user, true
	}
	return types.User{}, false
}

func principalOf(c echo.Context) store.Principal {
	user, _ := GetSessionUser(c)
	return store.PrincipalOf(user)
}

// RequireUser redirects anonymous visitors to the sign-in page.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := GetSessionUser(c); !ok {
				return c.Redirect(http.StatusFound, "/auth/sign-in")
			}
			return next(c)
		}
	}
}

func RequireAPIUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := GetSessionUser(c); !ok {
				return apiError(c, http.StatusUnauthorized, store.AuthRequired.Notice())
			}
			return next(c)
		}
	}
}

// addToast queues a notification for the next rendered page.
func addToast(c echo.Context, toasts ...types.Toast) {
	sess := getSession(c)
	for _, t := range toasts {
		b, err := json.Marshal(t)
		if err != nil {
			logrus.Error(errors.Wrap(err, "marshalling toast"))
			continue
		}
		sess.AddFlash(string(b), toastFlashKey)
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logrus.Error(errors.Wrap(err, "saving session"))
	}
}

// popToasts must run before anything is written to the response.
func popToasts(c echo.Context) []types.Toast {
	sess := getSession(c)
	flashes := sess.Flashes(toastFlashKey)
	if len(flashes) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logrus.Error(errors.Wrap(err, "saving session"))
	}

	ret := []types.Toast{}
	for _, f := range flashes {
		raw, ok := f.(string)
		if !ok {
			continue
		}
		var t types.Toast
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			logrus.Error(errors.Wrap(err, "unmarshalling toast"))
			continue
		}
		ret = append(ret, t)
	}
	return ret
}
