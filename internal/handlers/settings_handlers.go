package handlers

import (
	"net/http"
	"taskKeeper/internal/handlers/dto"
	"taskKeeper/internal/logger"

	"go.uber.org/zap"
)

func (s *TaskHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	responseWithBody(w, http.StatusOK, dto.FromSettings(s.TaskService.GetSettings(r.Context())))
}

func (s *TaskHandler) SetSortBy(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !requireJSON(w, r) {
		return
	}

	var request dto.SortRequest
	if !decodeBody(w, r, &request) {
		return
	}

	settings, err := s.TaskService.SetSortBy(r.Context(), request.SortBy)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка в Service", err, zap.String("operation", "set_sort"))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Сортировка изменена", zap.String("sort_by", string(settings.SortBy)))
	responseWithBody(w, http.StatusOK, dto.FromSettings(settings))
}

func (s *TaskHandler) SetFilterBy(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !requireJSON(w, r) {
		return
	}

	var request dto.FilterRequest
	if !decodeBody(w, r, &request) {
		return
	}

	settings, err := s.TaskService.SetFilterBy(r.Context(), request.FilterBy)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка в Service", err, zap.String("operation", "set_filter"))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: Фильтр изменён", zap.String("filter_by", string(settings.FilterBy)))
	responseWithBody(w, http.StatusOK, dto.FromSettings(settings))
}

func (s *TaskHandler) ToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	settings := s.TaskService.ToggleDarkMode(r.Context())

	logger.Info("HTTP_OUT: Тема переключена", zap.Bool("dark_mode", settings.DarkMode))
	responseWithBody(w, http.StatusOK, dto.FromSettings(settings))
}
