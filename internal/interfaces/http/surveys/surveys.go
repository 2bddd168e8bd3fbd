package surveys

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sngm3741/student-survey/api/internal/interfaces/http/common"
	"github.com/sngm3741/student-survey/api/internal/survey/domain"
)

func (h *Handler) surveyListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		surveys, err := h.surveyService.List(ctx)
		if err != nil {
			h.writeServiceError(w, r, "survey list", 0, err)
			return
		}

		items := make([]surveyResponse, 0, len(surveys))
		for _, survey := range surveys {
			items = append(items, surveyDomainToResponse(survey))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) surveyDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.surveyID(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		survey, err := h.surveyService.Detail(ctx, id)
		if err != nil {
			h.writeServiceError(w, r, "survey detail", id, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, surveyDomainToResponse(*survey))
	}
}

func (h *Handler) surveyCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decodeSurvey(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		created, err := h.surveyService.Create(ctx, req.toCommand())
		if err != nil {
			h.writeServiceError(w, r, "survey create", 0, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, surveyDomainToResponse(*created))
	}
}

func (h *Handler) surveyUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.surveyID(w, r)
		if !ok {
			return
		}
		req, ok := h.decodeSurvey(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		updated, err := h.surveyService.Update(ctx, id, req.toCommand())
		if err != nil {
			h.writeServiceError(w, r, "survey update", id, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, surveyDomainToResponse(*updated))
	}
}

func (h *Handler) surveyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.surveyID(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		if err := h.surveyService.Delete(ctx, id); err != nil {
			h.writeServiceError(w, r, "survey delete", id, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) surveyOptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, surveyOptions())
	}
}

func (h *Handler) surveyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := common.ParseID(chi.URLParam(r, "id"))
	if !ok {
		common.WriteError(h.logger, w, http.StatusBadRequest, "invalid survey id")
	}
	return id, ok
}

func (h *Handler) decodeSurvey(w http.ResponseWriter, r *http.Request) (surveyRequest, bool) {
	var req surveyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxSurveyRequestBody)).Decode(&req); err != nil {
		common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
		return surveyRequest{}, false
	}
	return req, true
}

// writeServiceError はサービス層のエラーを HTTP ステータスへ変換する。
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, id int64, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		common.WriteJSON(h.logger, w, http.StatusBadRequest, validationErrorToResponse(verr))
	case errors.Is(err, domain.ErrSurveyNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, domain.ErrSurveyNotFound.Error())
	default:
		h.logger.Printf("%s failed req=%s id=%d err=%v", op, middleware.GetReqID(r.Context()), id, err)
		common.WriteError(h.logger, w, http.StatusInternalServerError, "internal server error")
	}
}
