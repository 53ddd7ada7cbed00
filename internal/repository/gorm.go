package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// translateGormError converts GORM errors into repository errors. Duplicate
// detection needs the connection opened with TranslateError.
func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// likeEscape is portable across MySQL and SQLite; backslash is not.
const likeEscape = "!"

// containsPattern builds a LIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
