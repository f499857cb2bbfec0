package services

import (
	"errors"
	"fmt"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Sentinel errors returned by every service. Handlers translate them into
// HTTP statuses; the wrapped database error stays reachable via errors.Is/As.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate value")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidValue     = errors.New("invalid value")
)

const (
	mysqlDuplicateEntry = 1062
	mysqlNoReferenced   = 1452
	mysqlCheckViolated  = 3819
)

func mysqlErrorNumber(err error) uint16 {
	var merr *mysqldriver.MySQLError
	if errors.As(err, &merr) {
		return merr.Number
	}
	return 0
}

func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || mysqlErrorNumber(err) == mysqlDuplicateEntry {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKeyError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || mysqlErrorNumber(err) == mysqlNoReferenced {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "foreign key constraint")
}

func isCheckError(err error) bool {
	if mysqlErrorNumber(err) == mysqlCheckViolated {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "check constraint")
}

// translateError maps a gorm/driver error onto the service sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateError(err):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case isForeignKeyError(err):
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	case isCheckError(err):
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return err
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}

// deleteByID deletes one row and reports ErrNotFound when nothing matched.
// Dependent rows are removed by the database's ON DELETE rules.
func deleteByID(db *gorm.DB, model interface{}, id uint) error {
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// trimPtr trims an optional text value; blank becomes nil so the column
// stores NULL.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// nullableText is the update-map value for an optional text column: the
// trimmed string, or nil (NULL) when blank.
func nullableText(s string) interface{} {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return nil
}
