package handlers

import (
	"context"
	"net/http"

	"github.com/olliswe/bcp-to-t3-api/internal/domain/models"
	"go.uber.org/zap"
)

const nicknameNotFound = "Not found!"

type NicknameService interface {
	LookupNickname(ctx context.Context, name models.PlayerName) (models.NicknameLookup, error)
}

type NicknameHandler struct {
	log     *zap.Logger
	service NicknameService
}

func NewNicknameHandler(log *zap.Logger, service NicknameService) *NicknameHandler {
	return &NicknameHandler{log: log, service: service}
}

// GetNickname answers GET /v1?firstName=..&lastName=.. with the player's
// nickname as plain text.
func (h *NicknameHandler) GetNickname(w http.ResponseWriter, r *http.Request) {
	firstName, okFirst := stringQuery(r, "firstName")
	lastName, okLast := stringQuery(r, "lastName")
	if !okFirst || !okLast {
		writeText(w, http.StatusOK, nicknameNotFound)
		return
	}

	lookup, err := h.service.LookupNickname(r.Context(), models.PlayerName{
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		h.log.Error("nickname lookup failed",
			zap.Error(err),
			zap.String("first_name", firstName),
			zap.String("last_name", lastName),
		)
		writeText(w, http.StatusBadGateway, "nickname search unavailable")
		return
	}

	if !lookup.Found {
		writeText(w, http.StatusOK, nicknameNotFound)
		return
	}
	writeText(w, http.StatusOK, lookup.Nickname)
}
