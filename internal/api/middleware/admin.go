package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DonorService/internal/api/handlers"
	"github.com/m04kA/SMC-DonorService/internal/domain"
	donorRepo "github.com/m04kA/SMC-DonorService/internal/infra/storage/donor"
)

const msgAdminOnly = "требуются права администратора"

// DonorProvider интерфейс для получения донора по ID
type DonorProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.Donor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminOnly пропускает только активных администраторов
// Применяется после Auth: userID уже лежит в контексте
func AdminOnly(provider DonorProvider, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			donor, err := provider.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, donorRepo.ErrDonorNotFound) {
					logger.Warn("AdminOnly - Unknown user: user_id=%d", userID)
					handlers.RespondForbidden(w, msgAdminOnly)
					return
				}
				logger.Error("AdminOnly - Failed to load user: user_id=%d, error=%v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			if !donor.IsAdmin || !donor.IsActive {
				logger.Warn("AdminOnly - Access denied: user_id=%d", userID)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
