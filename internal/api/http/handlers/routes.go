package handlers

import "github.com/go-chi/chi/v5"

func Register(r chi.Router, nicknames *NicknameHandler, events *EventHandler) {
	r.Get("/v1", nicknames.GetNickname)
	r.Get("/v1/event", events.ScrapeEvent)
	r.Get("/v2/bcp-event", events.GetPlacings)
}
