package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
)

// Field validators take raw form input and return a user-facing error.

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = fmt.Errorf("title must be at most %d characters", constants.MaxTitleLength)
	ErrDescTooLong   = fmt.Errorf("description must be at most %d characters", constants.MaxDescriptionLength)
	ErrGoalInvalid   = errors.New("goal must be a positive whole number")
	ErrDateInvalid   = errors.New("date must be in YYYY-MM-DD format")
	ErrTimeInvalid   = errors.New("time must be in HH:MM format")
)

func Title(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(s) > constants.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func Description(s string) error {
	if utf8.RuneCountInString(s) > constants.MaxDescriptionLength {
		return ErrDescTooLong
	}
	return nil
}

// Goal accepts a positive integer. Empty input is allowed and means the default.
func Goal(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return ErrGoalInvalid
	}
	return nil
}

// Date accepts a YYYY-MM-DD calendar date. Empty input is allowed.
func Date(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, s); err != nil {
		return ErrDateInvalid
	}
	return nil
}

// Reminder accepts an HH:MM time of day. Empty input is allowed.
func Reminder(s string) error {
	if s == "" {
		return nil
	}
	if !isValidTimeFormat(s) {
		return ErrTimeInvalid
	}
	return nil
}

func Priority(s string) error {
	if !models.Priority(s).Valid() {
		return fmt.Errorf("priority must be one of %v", models.Priorities)
	}
	return nil
}

func Frequency(s string) error {
	if !models.Frequency(s).Valid() {
		return fmt.Errorf("frequency must be one of %v", models.Frequencies)
	}
	return nil
}

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil && len(timeStr) == len(constants.TimeFormat)
}
