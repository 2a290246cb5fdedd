package model

import (
	"strings"
	"unicode/utf8"
)

// MinHowLength is the minimum number of characters required in the How field.
const MinHowLength = 50

// Draft holds the raw student form input before it becomes a Solution.
type Draft struct {
	Challenge   string
	GroupName   string
	StudentName string
	What        string
	Why         string
	How         string
}

// DraftError describes why a draft was rejected. MessageID is an i18n message
// identifier; Data carries template values for the localized message.
type DraftError struct {
	MessageID string
	Data      map[string]any
}

func (e *DraftError) Error() string { return e.MessageID }

// Validate checks a draft against the submission rules. The How length check
// runs first and short-circuits: a too-short How is reported with the number
// of characters still needed before any other field is looked at. Lengths are
// counted in characters, not bytes.
func (d Draft) Validate() *DraftError {
	howLen := utf8.RuneCountInString(d.How)
	if howLen < MinHowLength {
		return &DraftError{
			MessageID: "HowTooShort",
			Data: map[string]any{
				"Remaining": MinHowLength - howLen,
				"Count":     howLen,
			},
		}
	}
	for _, field := range []string{d.Challenge, d.GroupName, d.StudentName, d.What, d.Why, d.How} {
		if strings.TrimSpace(field) == "" {
			return &DraftError{MessageID: "AllFieldsRequired"}
		}
	}
	return nil
}
