package storage

import "errors"

var (
	ErrContentNotFound     = errors.New("content not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrPostExists          = errors.New("post with this slug already exists")
	ErrTranslationNotFound = errors.New("translation not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrorNoSuchKey         = errors.New("no such key")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
