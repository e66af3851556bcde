package report

import "errors"

var (
	ErrReportNotFound      = errors.New("report not found")
	ErrUnsupportedFileType = errors.New("unsupported file type: only images and PDFs are accepted")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
)
