package pdftext

import "errors"

// ErrUnreadable is returned when the PDF structure or a page's text cannot be read.
var ErrUnreadable = errors.New("unreadable PDF")
