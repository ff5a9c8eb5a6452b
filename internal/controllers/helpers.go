package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/biyonik/person-directory/internal/http/request"
	"github.com/biyonik/person-directory/internal/http/response"
	"github.com/biyonik/person-directory/internal/repositories"
	"github.com/biyonik/person-directory/internal/services"
	"github.com/biyonik/person-directory/pkg/database/rowmapper"
)

// respondError, servis hatasını uygun HTTP statüsüne çevirir.
// Beklenmeyen hatalar loglanır, ayrıntısı istemciye gönderilmez.
func respondError(w http.ResponseWriter, r *request.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, repositories.ErrPersonNotFound):
		response.NotFound(w, "Kişi bulunamadı")
	case errors.Is(err, services.ErrInvalidEmail):
		response.BadRequest(w, "email parametresi gerekli")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("⚠️  Sorgu zaman aşımına uğradı", "path", r.URL.Path, "request_id", r.RequestID())
		response.ServiceUnavailable(w, "Veritabanı zamanında yanıt vermedi")
	default:
		attrs := []any{"error", err, "path", r.URL.Path, "request_id", r.RequestID()}
		var convErr *rowmapper.ConversionError
		if errors.As(err, &convErr) {
			attrs = append(attrs, "column", convErr.Column, "target", convErr.Target)
		}
		logger.Error("❌ İstek işlenemedi", attrs...)
		response.ServerError(w, "")
	}
}
