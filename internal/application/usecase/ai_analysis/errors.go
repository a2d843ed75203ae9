// Package aianalysis contains AI image analysis use cases.
package aianalysis

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/project-ledger/backend/internal/domain/error"
)

// errorMessages contains the user-facing Indonesian message for each error code.
var errorMessages = map[domainerror.AIAnalysisErrorCode]string{
	domainerror.ErrCodeAIUnavailable:        "Layanan AI sedang tidak tersedia. Coba lagi nanti.",
	domainerror.ErrCodeAIRateLimited:        "Batas permintaan AI tercapai. Tunggu beberapa menit lalu coba lagi.",
	domainerror.ErrCodeAIAuthError:          "Konfigurasi layanan AI bermasalah. Hubungi administrator.",
	domainerror.ErrCodeAITimeout:            "Analisis gambar memakan waktu terlalu lama. Coba lagi.",
	domainerror.ErrCodeAIUnparseable:        "AI tidak dapat memproses gambar dengan benar.",
	domainerror.ErrCodeAIUnknownError:       "Terjadi kesalahan saat menganalisis gambar.",
	domainerror.ErrCodeAIServiceError:       "Layanan AI mengembalikan kesalahan. Coba lagi.",
	domainerror.ErrCodeUploadFailed:         "Gagal mengunggah gambar.",
	domainerror.ErrCodeAIInvalidImage:       "Format gambar harus jpeg, jpg, png atau gif.",
	domainerror.ErrCodeAIMissingImage:       "Gambar wajib diunggah.",
	domainerror.ErrCodeAIAnalysisImageLarge: "Ukuran gambar maksimal 10 MB.",
}

func newError(code domainerror.AIAnalysisErrorCode, err error) *domainerror.AIAnalysisError {
	return domainerror.NewAIAnalysisError(code, errorMessages[code], err)
}

// classifyError converts an error from the image analyzer into an
// AIAnalysisError. Retryable codes use the transient category.
func classifyError(err error) *domainerror.AIAnalysisError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newError(domainerror.ErrCodeAITimeout, err)
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return newError(domainerror.ErrCodeAIRateLimited, errors.Join(domainerror.ErrAIRateLimited, err))
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "api key not valid") ||
		strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "authentication") {
		return newError(domainerror.ErrCodeAIAuthError, err)
	}

	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "unavailable") || strings.Contains(errStr, "503") {
		return newError(domainerror.ErrCodeAIUnavailable, errors.Join(domainerror.ErrAIServiceUnavailable, err))
	}

	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode") {
		return newError(domainerror.ErrCodeAIUnparseable, errors.Join(domainerror.ErrAIUnparseableResponse, err))
	}

	if strings.Contains(errStr, "500") || strings.Contains(errStr, "internal") {
		return newError(domainerror.ErrCodeAIServiceError, errors.Join(domainerror.ErrAIServiceError, err))
	}

	return newError(domainerror.ErrCodeAIUnknownError, err)
}
