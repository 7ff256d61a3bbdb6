package kpi

import (
	"math"
	"strings"
)

// ValidateRecord checks fields required before a record is written.
func ValidateRecord(rec *Record) error {
	if strings.TrimSpace(rec.Project) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(rec.KPI) == "" {
		return ErrInvalidInput
	}
	if math.IsNaN(rec.Target) || rec.Target < 0 {
		return ErrInvalidInput
	}
	if math.IsNaN(rec.CurrentValue) || rec.CurrentValue < 0 {
		return ErrInvalidInput
	}
	if rec.MaleCount != nil && *rec.MaleCount < 0 {
		return ErrInvalidInput
	}
	if rec.FemaleCount != nil && *rec.FemaleCount < 0 {
		return ErrInvalidInput
	}
	return nil
}

// ValidateUpdate checks the supplied fields of a partial update.
func ValidateUpdate(fields UpdateFields) error {
	if fields.KPI != nil && strings.TrimSpace(*fields.KPI) == "" {
		return ErrInvalidInput
	}
	if fields.Target != nil && (math.IsNaN(*fields.Target) || *fields.Target < 0) {
		return ErrInvalidInput
	}
	if fields.CurrentValue != nil && (math.IsNaN(*fields.CurrentValue) || *fields.CurrentValue < 0) {
		return ErrInvalidInput
	}
	if fields.MaleCount != nil && *fields.MaleCount < 0 {
		return ErrInvalidInput
	}
	if fields.FemaleCount != nil && *fields.FemaleCount < 0 {
		return ErrInvalidInput
	}
	return nil
}
