package httpserver

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds custom tags to gin's shared validator engine once per process.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		validatorsErr = v.RegisterValidation("notblank", validators.NotBlank)
	})
	return validatorsErr
}
