// -----------------------------------------------------------------------------
// Standardized Error Response Helpers
// -----------------------------------------------------------------------------
// Sık kullanılan hata yanıtları için kısa yardımcılar. Mesaj boş
// verilirse varsayılan Türkçe mesaj kullanılır.
// -----------------------------------------------------------------------------

package response

import (
	"net/http"
)

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

// NotFound sends a 404 Not Found error.
//
// Example:
//
//	if errors.Is(err, repositories.ErrPersonNotFound) {
//	    response.NotFound(w, "")
//	    return
//	}
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, orDefault(message, "Kayıt bulunamadı"))
}

// ServerError sends a 500 Internal Server Error. Ayrıntılı hata istemciye
// gönderilmez, çağıran taraf loglamalıdır.
func ServerError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, orDefault(message, "Sunucu hatası"))
}

// BadRequest sends a 400 Bad Request error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, orDefault(message, "Geçersiz istek"))
}

// MethodNotAllowed sends a 405 error.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Bu metod desteklenmiyor")
}

// ServiceUnavailable sends a 503 error (health check başarısız).
func ServiceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusServiceUnavailable, orDefault(message, "Servis şu anda kullanılamıyor"))
}

// TooManyRequests sends a 429 Too Many Requests error.
func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, orDefault(message, "Çok fazla istek gönderdiniz. Lütfen daha sonra tekrar deneyin."))
}
