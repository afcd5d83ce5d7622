package main

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type FormData struct {
	Errors map[string]string
	Values map[string]string
	Toasts []types.Toast
}

func newFormData() FormData {
	return FormData{
		Errors: map[string]string{},
		Values: map[string]string{},
	}
}

func formError(field, msg string, values map[string]string) FormData {
	fd := newFormData()
	fd.Errors[field] = msg
	for k, v := range values {
		fd.Values[k] = v
	}
	return fd
}

func userExists(email string, db *gorm.DB) (bool, error) {
	var count int64
	err := db.Model(&types.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func signUp() echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, http.StatusOK, "sign-up-form", newFormData())
	}
}

func signUpWithEmailAndPassword(cfg types.Config, db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := strings.TrimSpace(c.FormValue("name"))
		email := c.FormValue("email")
		password := c.FormValue("password")
		values := map[string]string{"name": name, "email": email}

		parsedEmail, err := mail.ParseAddress(email)
		if err != nil {
			return render(c, http.StatusUnprocessableEntity, "sign-up-form",
				formError("email", "Oops! That email address appears to be invalid", values))
		}
		email = parsedEmail.Address
		values["email"] = email

		if !cfg.SignupAllowed(email) {
			return render(c, http.StatusUnprocessableEntity, "sign-up-form",
				formError("email", "Oops! Sign ups are closed for that email address", values))
		}

		if password == "" {
			return render(c, http.StatusUnprocessableEntity, "sign-up-form",
				formError("general", "Oops! You need a password", values))
		}

		exists, err := userExists(email, db)
		if err != nil {
			logrus.Error(errors.Wrap(err, "Checking for existing user"))
			return render(c, http.StatusInternalServerError, "sign-up-form",
				formError("general", "Oops! It appears we have had an error", values))
		}
		if exists {
			return render(c, http.StatusUnprocessableEntity, "sign-up-form",
				formError("email", "Oops! It appears you are already registered", values))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
		if err != nil {
			logrus.Error(errors.Wrap(err, "Hashing sign up password"))
			return render(c, http.StatusInternalServerError, "sign-up-form",
				formError("general", "Oops! It appears we have had an error", values))
		}

		user := types.User{
			Name:     name,
			Email:    email,
			Password: string(hash),
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			// The first user becomes the admin
			var count int64
			if err := tx.Model(&types.User{}).Count(&count).Error; err != nil {
				return err
			}
			user.Role = "user"
			if count == 0 {
				user.Role = "admin"
			}

			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			if name == "" {
				return nil
			}
			return tx.Create(&types.Profile{OwnerID: user.ID, DisplayName: name}).Error
		})
		if err != nil {
			logrus.Error(errors.Wrapf(err, "Creating user %q", email))
			return render(c, http.StatusInternalServerError, "sign-up-form",
				formError("general", "Oops! It appears we have had an error", values))
		}
		logrus.Infof("Signed up %s as %s", user.Email, user.Role)

		addToast(c, types.Toast{Title: "Account created", Description: "You can now sign in."})
		return c.Redirect(http.StatusFound, "/auth/sign-in")
	}
}

func signIn() echo.HandlerFunc {
	return func(c echo.Context) error {
		fd := newFormData()
		fd.Toasts = popToasts(c)
		return render(c, http.StatusOK, "sign-in-form", fd)
	}
}

func signInWithEmailAndPassword(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := c.FormValue("email")
		password := c.FormValue("password")
		values := map[string]string{"email": email}

		parsedEmail, err := mail.ParseAddress(email)
		if err != nil {
			return render(c, http.StatusUnprocessableEntity, "sign-in-form",
				formError("email", "Oops! That email address appears to be invalid", values))
		}

		var user types.User
		err = db.Where("email = ?", parsedEmail.Address).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.Error(errors.Wrap(err, "Looking up user"))
			return render(c, http.StatusInternalServerError, "sign-in-form",
				formError("email", "Oops! It appears we have had an error", values))
		}
		if compareErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil || compareErr != nil {
			return render(c, http.StatusUnprocessableEntity, "sign-in-form",
				formError("email", "Oops! Email address or password is incorrect.", values))
		}

		sess := getSession(c)
		userBytes, err := json.Marshal(user)
		if err != nil {
			return errors.Wrap(err, "marshalling user value")
		}
		sess.Values["user"] = userBytes

		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return errors.Wrap(err, "saving session")
		}

		return c.Redirect(http.StatusFound, "/")
	}
}

func signOut() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := getSession(c)
		delete(sess.Values, "user")
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return errors.Wrap(err, "saving session")
		}

		return c.Redirect(http.StatusFound, "/auth/sign-in")
	}
}
