package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders aplica os headers de segurança padrão de uma API JSON
func SecureHeaders(development bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		STSSeconds:            31536000,
		IsDevelopment:         development,
	}).Handler
}
