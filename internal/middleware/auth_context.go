package middleware

import (
	"net/http"
	"strings"

	"lost-found-search/internal/platform/httpclient"
)

// ForwardBearer copia el bearer token del request al ctx para que los clientes
// salientes (API de animales) lo reenvíen. No valida nada: la autenticación es
// responsabilidad de la API de abajo. Sin token el request sigue igual.
func ForwardBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		ctx := httpclient.WithBearer(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
