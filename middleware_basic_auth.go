package main

import (
	"crypto/subtle"
	"net/http"
)

type basicAuthMiddleware struct {
	handler  http.Handler
	user     []byte
	password []byte
}

func (b *basicAuthMiddleware) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	user, pass, _ := req.BasicAuth()

	if subtle.ConstantTimeCompare(b.user, []byte(user))+
		subtle.ConstantTimeCompare(b.password, []byte(pass)) == 2 {
		b.handler.ServeHTTP(w, req)

		return
	}

	w.Header().Set("WWW-Authenticate", `Basic realm="geomatch"`)
	http.Error(w, "Authentication is required", http.StatusUnauthorized)
}

// wrapBasicAuth protects the handler when credentials are configured and
// is a no-op otherwise.
func wrapBasicAuth(handler http.Handler, user, password string) http.Handler {
	if user == "" && password == "" {
		return handler
	}

	return &basicAuthMiddleware{
		handler:  handler,
		user:     []byte(user),
		password: []byte(password),
	}
}
