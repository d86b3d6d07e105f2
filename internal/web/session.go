// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/mrfuxi/gae-blog/internal/platform/apperr"
	requestutil "github.com/mrfuxi/gae-blog/internal/platform/request"
	"github.com/mrfuxi/gae-blog/internal/users/auth"
)

// # Session Pages

/*
LoginPage shows the sign-in form. Signed-in visitors go straight home.

GET /login/
*/
func (handler *Handler) loginPage(writer http.ResponseWriter, request *http.Request) {
	who := requestutil.Identity(request)
	if who.LoggedIn() {
		http.Redirect(writer, request, "/", http.StatusFound)
		return
	}

	handler.renderer.page(writer, request, http.StatusOK, pageLogin, pageData{Identity: who})
}

/*
Login checks the submitted credentials and stores the access token in the
session cookie.

POST /login/

Response:
  - 302: Signed in, redirect to /
  - 400/401: The form again with the reason
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.loginFailed(writer, request, "", err)
		return
	}

	username := request.PostFormValue(auth.FieldUsername)
	session, err := handler.sessions.Login(request.Context(), username, request.PostFormValue(auth.FieldPassword))
	if err != nil {
		handler.loginFailed(writer, request, username, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt) / time.Second)
	http.SetCookie(writer, handler.sessionCookie(session.AccessToken, maxAge))
	http.Redirect(writer, request, "/", http.StatusFound)
}

func (handler *Handler) loginFailed(writer http.ResponseWriter, request *http.Request, username string, err error) {
	appError := apperr.From(err)
	if appError.HTTPStatus >= http.StatusInternalServerError {
		handler.errorPage(writer, request, err)
		return
	}

	message := appError.Message
	if len(appError.Details) > 0 {
		message = FormErrorHeading + " " + strings.Join(appError.Messages(), " ")
	}

	handler.renderer.page(writer, request, appError.HTTPStatus, pageLogin, pageData{
		Identity: requestutil.Identity(request),
		Error:    message,
		Username: username,
	})
}

/*
Logout revokes the session token and clears the cookie.

GET /logout/
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if claims, err := requestutil.RequiredClaims(request); err == nil {
		if err := handler.sessions.Logout(request.Context(), claims); err != nil {
			handler.errorPage(writer, request, err)
			return
		}
	}

	http.SetCookie(writer, handler.sessionCookie("", -1))
	http.Redirect(writer, request, "/", http.StatusFound)
}
