package ai

import (
	"path"
	"strings"
)

// MIME types the service recognizes.
const (
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// NewDocument builds a Document, detecting the MIME type from the file
// name's extension. Unknown extensions map to application/octet-stream.
func NewDocument(fileName string, data []byte) Document {
	return Document{
		FileName: fileName,
		MIMEType: detectMIME(fileName),
		Data:     data,
	}
}

func detectMIME(fileName string) string {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDocx
	default:
		return "application/octet-stream"
	}
}

// PrimarySupported reports whether the document can be submitted inline to
// the primary multimodal provider. Only PDF is accepted inline; other
// formats go through the extraction fallback.
func (d Document) PrimarySupported() bool {
	return d.MIMEType == MIMEPDF
}
