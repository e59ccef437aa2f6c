package documents

import "time"

// Document represents an uploaded document owned by a user.
type Document struct {
	ID              string
	UserID          string
	FileName        string
	FileType        string
	FileURL         string
	SizeBytes       int64
	StorageProvider string
	StorageKey      string
	ExtractedText   string
	ExtractedAt     *time.Time
	CreatedAt       time.Time
}

// Extracted reports whether text has already been pulled from the file.
func (d Document) Extracted() bool {
	return d.ExtractedAt != nil
}

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID    string     `json:"documentId"`
	FileName      string     `json:"fileName"`
	FileType      string     `json:"fileType"`
	FileURL       string     `json:"fileUrl"`
	SizeBytes     int64      `json:"sizeBytes"`
	ExtractedText string     `json:"extractedText,omitempty"`
	ExtractedAt   *time.Time `json:"extractedAt,omitempty"`
	UploadedAt    time.Time  `json:"uploadedAt"`
}

// ToResponse converts doc; withText controls whether extracted text is included.
func ToResponse(doc Document, withText bool) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:  doc.ID,
		FileName:    doc.FileName,
		FileType:    doc.FileType,
		FileURL:     doc.FileURL,
		SizeBytes:   doc.SizeBytes,
		ExtractedAt: doc.ExtractedAt,
		UploadedAt:  doc.CreatedAt,
	}
	if withText {
		resp.ExtractedText = doc.ExtractedText
	}
	return resp
}
