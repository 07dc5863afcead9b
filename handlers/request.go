package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// maxJSONBody, JSON body'ler için üst sınır.
const maxJSONBody = 1 << 20

// multipartOverhead, multipart sınırlarına ve form alanlarına bırakılan pay.
const multipartOverhead = 1 << 20

// decodeJSON, body'yi dst'ye çözer. Hata olursa 400 yazar ve false döner.
// Boş body hata sayılmaz.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// upload, multipart formdan okunan dosya.
type upload struct {
	Filename string
	Data     []byte
}

// readUpload, multipart formdaki "file" alanını UploadService'in boyut
// sınırıyla okur. Diğer form alanlarına sonra r.FormValue ile erişilebilir.
func readUpload(w http.ResponseWriter, r *http.Request, uploads services.UploadService) (*upload, error) {
	limit := uploads.MaxSize() + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, uploads.TooLarge()
		}
		return nil, pkg.NewUserError(pkg.ErrBadRequest, "form.invalidField", map[string]string{"field": "file"})
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, pkg.NewUserError(pkg.ErrBadRequest, "form.requiredField", map[string]string{"field": "file"})
	}
	defer file.Close()

	data, err := uploads.ReadLimited(file)
	if err != nil {
		return nil, err
	}
	return &upload{Filename: header.Filename, Data: data}, nil
}

// optionalString, boş form alanını nil'e çevirir.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
