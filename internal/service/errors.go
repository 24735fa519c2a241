package service

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/pageza/tomato/backend/internal/apperrors"
)

const (
	pqNotNullViolation = "23502"
	pqCheckViolation   = "23514"
)

// storageErr maps a persistence error to the error taxonomy. Constraint
// violations reported by the database count as validation failures.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsValidation(err) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqNotNullViolation:
			return apperrors.Validation(pqErr.Column, pqErr.Column+" is required")
		case pqCheckViolation:
			return apperrors.Validation(constraintField(pqErr.Constraint), pqErr.Message)
		}
	}

	// SQLite reports constraint failures only in the message
	msg := err.Error()
	switch {
	case strings.Contains(msg, "CHECK constraint failed"):
		return apperrors.Validation(constraintField(afterColon(msg)), msg)
	case strings.Contains(msg, "NOT NULL constraint failed"):
		field := afterColon(msg)
		if i := strings.LastIndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		return apperrors.Validation(field, field+" is required")
	}

	return apperrors.Storage(op, err)
}

// constraintField turns gorm's chk_<table>_<column> names into the column
func constraintField(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "chk_")
	for _, table := range []string{"recipes_", "reviews_"} {
		name = strings.TrimPrefix(name, table)
	}
	return name
}

func afterColon(msg string) string {
	if i := strings.LastIndex(msg, ":"); i >= 0 {
		return strings.TrimSpace(msg[i+1:])
	}
	return msg
}
