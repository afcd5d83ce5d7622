package types

import (
	errs "errors"
)

// Toast is a transient notification shown once on the next rendered page.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive"`
}

type HomePageData struct {
	User        *User
	DisplayName string
	Notes       []Note
	SearchTerm  string
	Total       int
	Toasts      []Toast
	Err         error
}

func (d *HomePageData) WithError(err error) *HomePageData {
	d.Err = errs.Join(d.Err, err)
	return d
}

func (d *HomePageData) WithUser(u User) *HomePageData {
	d.User = &u
	return d
}

func (d *HomePageData) WithNotes(notes []Note) *HomePageData {
	d.Notes = append(d.Notes, notes...)
	return d
}

func (d *HomePageData) WithToasts(toasts ...Toast) *HomePageData {
	d.Toasts = append(d.Toasts, toasts...)
	return d
}

type EditorPageData struct {
	User    *User
	Heading string
	Action  string
	Title   string
	Content string
	CanSave bool
	Toasts  []Toast
}
