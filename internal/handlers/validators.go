package handlers

import (
	"sync"

	"github.com/SscSPs/smart_accounting/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the custom binding rules used by the request DTOs.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("manualkind", manualKind)
		}
	})
}

// manualKind accepts sale, purchase and expense in any supported language.
func manualKind(fl validator.FieldLevel) bool {
	switch domain.ResolveKind(fl.Field().String()) {
	case domain.KindSale, domain.KindPurchase, domain.KindExpense:
		return true
	}
	return false
}
