package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/retroboard-dev/retroboard/internal/domain"
	"github.com/retroboard-dev/retroboard/internal/errors"
)

// ContentValidator checks user-supplied item content before any store call.
type ContentValidator struct {
	MaxLen int
}

func (v *ContentValidator) Content(content domain.ItemContent) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errors.Validation("Content must not be empty")
	}
	if v.MaxLen > 0 && utf8.RuneCountInString(trimmed) > v.MaxLen {
		return errors.Validation("Content is too long")
	}
	return nil
}

func (v *ContentValidator) Column(c domain.Column) error {
	if !domain.ValidColumn(c) {
		return errors.Validation("Unknown column type: " + c)
	}
	return nil
}

// BoardValidator checks board titles the same way.
type BoardValidator struct {
	MaxTitleLen int
}

func (v *BoardValidator) Title(title domain.BoardTitle) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return errors.Validation("Title must not be empty")
	}
	if v.MaxTitleLen > 0 && utf8.RuneCountInString(trimmed) > v.MaxTitleLen {
		return errors.Validation("Title is too long")
	}
	return nil
}
