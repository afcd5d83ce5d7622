package types

import (
	errs "errors"
	"fmt"
	"net/mail"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
)

type Config struct {
	AllowSignup       bool
	AllowSignupEmails []string
	CookieSecret      []byte
	DBDriver          string
	DBPath            string
	DBDSN             string
	ListenAddr        string
	LogLevel          logrus.Level
}

func ConfigFromEnv() (Config, error) {
	ret := Config{}
	var retErr error
	var err error

	ret.AllowSignup, err = strconv.ParseBool(goli.DefaultEnv("NOTEBOOK_ALLOW_SIGNUP", "true"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTEBOOK_ALLOW_SIGNUP"))
	}

	allowedEmails := strings.Split(os.Getenv("NOTEBOOK_ALLOW_SIGNUP_EMAILS"), ",")
	for _, e := range allowedEmails {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		email, err := mail.ParseAddress(e)
		if err != nil {
			retErr = errs.Join(retErr, errors.Wrapf(err, "parsing email %q", e))
		} else {
			ret.AllowSignupEmails = append(ret.AllowSignupEmails, email.Address)
		}
	}
	if len(ret.AllowSignupEmails) > 0 {
		logrus.Infof("Allowed signup emails: %v", ret.AllowSignupEmails)
	}

	cookieSecret, ok := os.LookupEnv("NOTEBOOK_COOKIE_STORE_SECRET")
	if !ok || cookieSecret == "" {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env NOTEBOOK_COOKIE_STORE_SECRET"))
	} else {
		ret.CookieSecret = []byte(cookieSecret)
	}

	ret.DBDriver = strings.ToLower(goli.DefaultEnv("NOTEBOOK_DB_DRIVER", DBDriverSQLite))
	switch ret.DBDriver {
	case DBDriverSQLite:
		ret.DBPath, ok = os.LookupEnv("NOTEBOOK_DB_PATH")
		if !ok {
			retErr = errs.Join(retErr, fmt.Errorf("You must define env NOTEBOOK_DB_PATH"))
		} else if _, err := os.Stat(path.Dir(ret.DBPath)); err != nil {
			retErr = errs.Join(retErr, errors.Wrap(err, "Directory for NOTEBOOK_DB_PATH must exist"))
		}
	case DBDriverPostgres:
		ret.DBDSN, ok = os.LookupEnv("NOTEBOOK_DB_DSN")
		if !ok || ret.DBDSN == "" {
			retErr = errs.Join(retErr, fmt.Errorf("You must define env NOTEBOOK_DB_DSN when NOTEBOOK_DB_DRIVER is %q", DBDriverPostgres))
		}
	default:
		retErr = errs.Join(retErr, fmt.Errorf("unsupported NOTEBOOK_DB_DRIVER %q", ret.DBDriver))
	}

	ret.ListenAddr = goli.DefaultEnv("NOTEBOOK_LISTEN_ADDR", ":8080")

	ret.LogLevel, err = logrus.ParseLevel(goli.DefaultEnv("NOTEBOOK_LOG_LEVEL", "info"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing NOTEBOOK_LOG_LEVEL"))
	}

	return ret, retErr
}

func (c Config) SignupAllowed(email string) bool {
	if !c.AllowSignup {
		return false
	}
	if len(c.AllowSignupEmails) == 0 {
		return true
	}
	for _, allowed := range c.AllowSignupEmails {
		if strings.EqualFold(allowed, email) {
			return true
		}
	}
	return false
}
