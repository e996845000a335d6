package dto

import (
	"time"

	"github.com/studioflow/tutorly-api/internal/models"
)

// AdminDocumentListRequest defines filters for listing documents.
type AdminDocumentListRequest struct {
	Page     int
	PageSize int
	Status   string
}

// DocumentResponse serializes an uploaded document.
type DocumentResponse struct {
	ID        uint      `json:"id"`
	OwnerID   *uint     `json:"owner_id,omitempty"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Checksum  string    `json:"checksum"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminDocumentListResponse wraps a paginated document listing.
type AdminDocumentListResponse struct {
	Items      []DocumentResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewDocumentResponse converts a document model into a DTO.
func NewDocumentResponse(doc models.Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		OwnerID:   doc.OwnerID,
		Title:     doc.Title,
		FileURL:   doc.FileURL,
		MimeType:  doc.MimeType,
		SizeBytes: doc.SizeBytes,
		Checksum:  doc.Checksum,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
