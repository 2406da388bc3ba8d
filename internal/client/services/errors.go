package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/adminconsole/internal/models"
)

var (
	ErrNotAdmin         = errors.New("account has no admin access")
	ErrNothingToAnalyze = errors.New("conversation has no messages to analyze")
	ErrSessionNotReady  = errors.New("session is not ready")
	ErrActionRejected   = errors.New("action rejected")
	ErrEmptyField       = errors.New("field must not be empty")
)

func checkResult(res models.ActionResult) error {
	if res.Success {
		return nil
	}
	if res.Message == "" {
		return ErrActionRejected
	}
	return fmt.Errorf("%w: %s", ErrActionRejected, res.Message)
}
