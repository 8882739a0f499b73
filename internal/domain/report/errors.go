package report

import "errors"

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrNotAuthorized    = errors.New("not authorized to modify this report")
	ErrInvalidReportID  = errors.New("invalid report id")
	ErrCorruptStore     = errors.New("stored reports could not be decoded")
	ErrAudioTooLarge    = errors.New("audio attachment exceeds the size limit")
	ErrAudioUnsupported = errors.New("unsupported audio format")
)
