package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/studioflow/tutorly-api/internal/dto"
	"github.com/studioflow/tutorly-api/internal/models"
	"github.com/studioflow/tutorly-api/internal/repository"
)

type storageStub struct {
	names []string
	err   error
}

func (s *storageStub) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.names = append(s.names, name)
	return "https://cdn.example.com/" + name, nil
}

type documentRepoStub struct {
	documents []models.Document
}

func (r *documentRepoStub) Create(_ context.Context, doc *models.Document) error {
	doc.ID = uint(len(r.documents) + 1)
	r.documents = append(r.documents, *doc)
	return nil
}

func (r *documentRepoStub) List(_ context.Context, filter repository.DocumentFilter) ([]models.Document, int64, error) {
	var out []models.Document
	for _, doc := range r.documents {
		if filter.Status != "" && doc.Status != filter.Status {
			continue
		}
		out = append(out, doc)
	}
	return out, int64(len(out)), nil
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func pdfBytes(size int) []byte {
	content := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	for len(content) < size {
		content = append(content, []byte("0000000000\n")...)
	}
	return content
}

func TestDocumentUpload(t *testing.T) {
	storage := &storageStub{}
	repo := &documentRepoStub{}
	svc := NewDocumentService(storage, repo, 1, zerolog.Nop())

	ownerID := uint(7)
	file := makeFileHeader(t, "Algebra Workbook.PDF", pdfBytes(256))

	doc, err := svc.Upload(context.Background(), file, "", &ownerID)
	require.NoError(t, err)

	require.Equal(t, "Algebra Workbook", doc.Title)
	require.Equal(t, models.DocumentStatusProcessing, doc.Status)
	require.Equal(t, "application/pdf", doc.MimeType)
	require.NotEmpty(t, doc.Checksum)
	require.Equal(t, uint(7), *doc.OwnerID)
	require.True(t, strings.HasPrefix(doc.FileURL, "https://cdn.example.com/"))

	require.Len(t, storage.names, 1)
	require.Equal(t, "algebra-workbook.pdf", storage.names[0])
	require.Len(t, repo.documents, 1)
}

func TestDocumentUploadRejectsNonPDF(t *testing.T) {
	storage := &storageStub{}
	svc := NewDocumentService(storage, &documentRepoStub{}, 1, zerolog.Nop())

	file := makeFileHeader(t, "notes.pdf", []byte("plain text pretending to be a pdf"))

	_, err := svc.Upload(context.Background(), file, "", nil)
	require.ErrorIs(t, err, ErrDocumentTypeNotAllowed)
	require.Empty(t, storage.names)
}

func TestDocumentUploadRejectsOversizedFile(t *testing.T) {
	storage := &storageStub{}
	svc := NewDocumentService(storage, &documentRepoStub{}, 1, zerolog.Nop())

	file := makeFileHeader(t, "huge.pdf", pdfBytes(2<<20))

	_, err := svc.Upload(context.Background(), file, "", nil)
	require.ErrorIs(t, err, ErrDocumentTooLarge)
	require.Empty(t, storage.names)
}

func TestDocumentListFiltersByStatus(t *testing.T) {
	repo := &documentRepoStub{documents: []models.Document{
		{ID: 1, Title: "Ready doc", Status: models.DocumentStatusReady},
		{ID: 2, Title: "Processing doc", Status: models.DocumentStatusProcessing},
	}}
	svc := NewDocumentService(&storageStub{}, repo, 1, zerolog.Nop())

	listed, err := svc.List(context.Background(), dto.AdminDocumentListRequest{Status: "ready", PageSize: 10})
	require.NoError(t, err)
	require.Len(t, listed.Items, 1)
	require.Equal(t, "Ready doc", listed.Items[0].Title)
}
