package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

const apiVersion = "1.0.0"

// SystemHandler обслуживает служебные ручки, не привязанные к домену.
type SystemHandler struct {
	logger logger.Logger
}

func NewSystemHandler(logger logger.Logger) *SystemHandler {
	return &SystemHandler{logger: logger}
}

// HealthRes — ответ liveness-проверки.
type HealthRes struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// EchoReq используется и как запрос, и как ответ ручки echo.
type EchoReq struct {
	Message string `json:"message"`
}

// health
//
//	@Summary	Проверка работоспособности
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	HealthRes
//	@Router		/health [get]
func (s *SystemHandler) health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, HealthRes{Status: "ok", Version: apiVersion})
}

// echo
//
//	@Summary	Эхо-ручка
//	@Tags		system
//	@Accept		json
//	@Produce	json
//	@Param		request	body		EchoReq	true	"Сообщение"
//	@Success	200		{object}	EchoReq
//	@Failure	422		{object}	ErrorResponse	"Сообщение не задано"
//	@Router		/echo [post]
func (s *SystemHandler) echo(w http.ResponseWriter, r *http.Request) {
	var req EchoReq
	if err := decodeJSONBody(r, &req); err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	if req.Message == "" {
		err := e.ErrMessageRequired
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, req)
}
