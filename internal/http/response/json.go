// Package response, JSON yanıtlarını tek bir zarf (envelope) biçiminde
// üretir:
//
//	{"success": true,  "data": ..., "meta": ...}
//	{"success": false, "error": "..."}
//
// Controller'lar yanıtı doğrudan yazmak yerine bu paketin yardımcılarını
// kullanır; böylece tüm endpoint'ler aynı sözleşmeyi paylaşır.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
)

// JSONResponse, tüm API yanıtlarının ortak veri sözleşmesi.
//
// Alanlar:
//   - Success: İşlemin başarılı olup olmadığı
//   - Data: Başarılı işlemin içeriği
//   - Error: Hata mesajı
//   - Meta: Kayıt sayısı, kaynak gibi ek bilgiler (opsiyonel)
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

// Send, payload'ı verilen statü koduyla JSON olarak yazar.
func Send(w http.ResponseWriter, status int, payload JSONResponse) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(payload)
}

// Success, başarılı bir yanıt yazar. meta nil olabilir.
func Success(w http.ResponseWriter, status int, data any, meta any) error {
	return Send(w, status, JSONResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// List, bir listeyi kayıt sayısıyla birlikte yazar.
func List[T any](w http.ResponseWriter, items []T) error {
	if items == nil {
		items = []T{}
	}
	return Success(w, http.StatusOK, items, map[string]int{"count": len(items)})
}

// Error, başarısız bir yanıt yazar. errData string veya error olabilir.
func Error(w http.ResponseWriter, status int, errData any) error {
	payload := JSONResponse{Success: false}

	switch e := errData.(type) {
	case string:
		payload.Error = e
	case error:
		payload.Error = e.Error()
	default:
		payload.Error = "Bilinmeyen bir sunucu hatası oluştu"
	}

	return Send(w, status, payload)
}

// Decode, JSON gövdesini zarf ile birlikte çözer. Testlerde ve istemci
// tarafında Data alanını tipli okumak için kullanılır.
func Decode[T any](body []byte) (T, JSONResponse, error) {
	var envelope struct {
		JSONResponse
		Data json.RawMessage `json:"data"`
	}
	var data T
	if err := json.Unmarshal(body, &envelope); err != nil {
		return data, JSONResponse{}, err
	}
	if !envelope.Success {
		return data, envelope.JSONResponse, errors.New(envelope.Error)
	}
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return data, envelope.JSONResponse, err
		}
	}
	return data, envelope.JSONResponse, nil
}
