// Package notify carries transient user notifications: toasts and modal
// dialogs. A notification set before a redirect survives it in a cookie and
// is shown once.
package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	// Dialog is a modal confirmation the user dismisses.
	Dialog Kind = "dialog"
)

type Notice struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

func Toast(kind Kind, text string) *Notice {
	return &Notice{Kind: kind, Text: text}
}

func NewDialog(title, text string) *Notice {
	return &Notice{Kind: Dialog, Title: title, Text: text}
}

type Flash struct {
	cookie string
}

func NewFlash(cookie string) *Flash {
	if cookie == "" {
		cookie = "flash"
	}
	return &Flash{cookie: cookie}
}

func (f *Flash) Set(w http.ResponseWriter, n *Notice) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Error().Err(err).Msg("notify.Flash.Set")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     f.cookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending notification, if any, and clears it.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) *Notice {
	c, err := r.Cookie(f.cookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     f.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}

	n := &Notice{}
	if err := json.Unmarshal(data, n); err != nil {
		return nil
	}
	return n
}

// Redirect stores n and sends the client to target.
func (f *Flash) Redirect(w http.ResponseWriter, r *http.Request, target string, n *Notice) {
	if n != nil {
		f.Set(w, n)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
