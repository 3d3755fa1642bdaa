package http

import (
	"errors"
	"log/slog"
	"net/http"

	"cardcompass/internal/core"
	"cardcompass/internal/store"
)

const cardsCacheKey = "catalog"

type cardsResponse struct {
	Cards []core.Card `json:"cards"`
	Count int         `json:"count"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	if cards, ok := s.cardsCache.Get(cardsCacheKey); ok {
		NewJSONResponse().Body(cardsResponse{Cards: cards, Count: len(cards)}).Write(w)
		return
	}

	cards, err := s.catalog.ListCards(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List cards failed", "error", err)
		InternalServerError("failed to load card catalog").Write(w)
		return
	}

	s.cardsCache.Set(cardsCacheKey, cards)
	NewJSONResponse().Body(cardsResponse{Cards: cards, Count: len(cards)}).Write(w)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	card, err := s.catalog.GetCard(r.Context(), id)
	if errors.Is(err, store.ErrCardNotFound) {
		NotFoundError("card not found").Write(w)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Get card failed", "card_id", id, "error", err)
		InternalServerError("failed to load card").Write(w)
		return
	}

	NewJSONResponse().Body(card).Write(w)
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	NewJSONResponse().Body(map[string][]string{"categories": core.CanonicalCategories}).Write(w)
}

// noCardsResponse is the reduced result shape returned when the optimizer has
// no cards to work with.
type noCardsResponse struct {
	Error           string                `json:"error"`
	Recommendations []core.Recommendation `json:"recommendations"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	req, err := parseOptimizeRequest(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	var result core.OptimizationResult
	switch {
	case req.UserID != "" && req.Preference == "":
		result, err = s.optimizer.OptimizeForUser(r.Context(), req.UserID, req.Categories)
		if err != nil {
			slog.ErrorContext(r.Context(), "Optimize failed", "user_id", req.UserID, "error", err)
			InternalServerError("optimization failed").Write(w)
			return
		}
	case req.UserID != "":
		// Explicit preference overrides the stored one.
		cards, err := s.wallet.ListUserCards(r.Context(), req.UserID)
		if err != nil {
			slog.ErrorContext(r.Context(), "Load wallet failed", "user_id", req.UserID, "error", err)
			InternalServerError("optimization failed").Write(w)
			return
		}
		result = s.optimizer.OptimizeCards(cards, req.Categories, core.ParsePreference(req.Preference))
	default:
		result = s.optimizer.OptimizeCards(req.Cards, req.Categories, core.ParsePreference(req.Preference))
	}

	if result.NoCards() {
		NewJSONResponse().Body(noCardsResponse{
			Error:           result.Error,
			Recommendations: result.Recommendations,
		}).Write(w)
		return
	}

	NewJSONResponse().Body(result).Write(w)
}

type refreshResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleCatalogRefresh(w http.ResponseWriter, r *http.Request) {
	queued, err := s.catalog.RequestRefresh(r.Context(), "api request")
	if err != nil {
		slog.ErrorContext(r.Context(), "Catalog refresh failed", "error", err)
		InternalServerError("catalog refresh failed").Write(w)
		return
	}

	if queued {
		NewJSONResponse().Status(http.StatusAccepted).Body(refreshResponse{Status: "queued"}).Write(w)
		return
	}

	// Inline refresh already landed, so cached reads are stale.
	s.cardsCache.Purge()
	NewJSONResponse().Body(refreshResponse{Status: "completed"}).Write(w)
}

func (s *Server) handleListUserCards(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	cards, err := s.wallet.ListUserCards(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List user cards failed", "user_id", userID, "error", err)
		InternalServerError("failed to load user cards").Write(w)
		return
	}
	if cards == nil {
		cards = []core.Card{}
	}

	NewJSONResponse().Body(cardsResponse{Cards: cards, Count: len(cards)}).Write(w)
}

func (s *Server) handleAddUserCard(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	req, err := parseAddCardRequest(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	err = s.wallet.AddUserCard(r.Context(), userID, req.CardID)
	switch {
	case errors.Is(err, store.ErrCardNotFound):
		NotFoundError("card not found in catalog").Write(w)
		return
	case errors.Is(err, store.ErrCardHeld):
		ConflictError("card already in wallet").Write(w)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Add user card failed", "user_id", userID, "card_id", req.CardID, "error", err)
		InternalServerError("failed to add card").Write(w)
		return
	}

	NewJSONResponse().Status(http.StatusCreated).Body(map[string]string{"card_id": req.CardID}).Write(w)
}

func (s *Server) handleRemoveUserCard(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	cardID := r.PathValue("cardID")

	err := s.wallet.RemoveUserCard(r.Context(), userID, cardID)
	switch {
	case errors.Is(err, store.ErrCardNotFound):
		NotFoundError("card not in wallet").Write(w)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Remove user card failed", "user_id", userID, "card_id", cardID, "error", err)
		InternalServerError("failed to remove card").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type preferenceResponse struct {
	Preference string `json:"preference"`
}

func (s *Server) handleGetPreference(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	pref, err := s.wallet.GetPreference(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Get preference failed", "user_id", userID, "error", err)
		InternalServerError("failed to load preference").Write(w)
		return
	}

	NewJSONResponse().Body(preferenceResponse{Preference: string(pref)}).Write(w)
}

func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	req, err := parsePreferenceRequest(r)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	if err := s.wallet.SetPreference(r.Context(), userID, core.Preference(req.Preference)); err != nil {
		slog.ErrorContext(r.Context(), "Set preference failed", "user_id", userID, "error", err)
		InternalServerError("failed to store preference").Write(w)
		return
	}

	NewJSONResponse().Body(preferenceResponse{Preference: req.Preference}).Write(w)
}
