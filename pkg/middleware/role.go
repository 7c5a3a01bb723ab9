package middleware

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// RoleMiddleware restringe o acesso às claims com um dos roles permitidos
func RoleMiddleware(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !authenticating.HasRole(claims, allowedRoles...) {
				log.ForContext(r.Context()).Warnf("Acesso negado para usuário %s, role=%s", claims.UserID(), claims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AnyUser permite usuários autenticados e o service role
func AnyUser() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleAuthenticated, domain.RoleServiceRole)
}

// ServiceOnly permite apenas o service role, usado pelas rotas de cron
func ServiceOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.RoleServiceRole)
}
