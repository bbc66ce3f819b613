package response

import (
	"net/http"
	"time"
)

// =============================================================================
// API Response Envelope
// =============================================================================
// Every endpoint wraps its payload in this envelope:
//
//	{
//	  "success": true,
//	  "code": 200,
//	  "message": "ok",
//	  "data": { ... },
//	  "timestamp": 1735689600000
//	}
//
// The client decodes into Envelope[T] with a concrete payload type per
// endpoint, so downstream code never handles untyped JSON. Accessors that
// fall back to synthetic data return the same envelope with success=false.
// =============================================================================

// Envelope is the standard response wrapper.
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      T      `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// OK builds a successful envelope around data.
func OK[T any](data T) *Envelope[T] {
	return &Envelope[T]{
		Success:   true,
		Code:      http.StatusOK,
		Message:   "ok",
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Degraded builds a success=false envelope still carrying usable data. The
// data access layer uses it when substituting generator output after a
// failed or skipped API call.
func Degraded[T any](data T, message string) *Envelope[T] {
	return &Envelope[T]{
		Success:   false,
		Code:      http.StatusOK,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Fail builds an error envelope with a zero-valued payload.
func Fail[T any](code int, message string) *Envelope[T] {
	var zero T
	return &Envelope[T]{
		Success:   false,
		Code:      code,
		Message:   message,
		Data:      zero,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Pagination describes one page of a list response.
type Pagination struct {
	Total      int `json:"total"`
	Size       int `json:"size"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
}

// NewPagination computes page metadata for a total row count.
func NewPagination(total, page, size int) Pagination {
	totalPages := 0
	if size > 0 {
		totalPages = total / size
		if total%size > 0 {
			totalPages++
		}
	}
	return Pagination{Total: total, Size: size, TotalPages: totalPages, Page: page}
}
