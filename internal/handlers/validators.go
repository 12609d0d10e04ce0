package handlers

import (
	"strings"
	"sync"

	"rp_admin_backend/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request DTOs:
// movementtype (in|out|adjustment) and txtype (credit|debit, any case).
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("movementtype", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case models.MovementIn, models.MovementOut, models.MovementAdjustment:
				return true
			}
			return false
		})
		_ = v.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
			switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
			case models.TransactionCredit, models.TransactionDebit:
				return true
			}
			return false
		})
	})
}
