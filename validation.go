package logfacade

import (
	"sync"

	smerrors "github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func configValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
			_, err := parseLevel(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidateConfig checks cfg's structure and that its categories only refer
// to declared appenders and include the default category.
func ValidateConfig(cfg *Config) error {
	const op smerrors.Op = "logfacade.ValidateConfig"
	if cfg == nil {
		return smerrors.New(op).Err(ErrInvalidConfig).Msg(errMsgNilConfig)
	}

	if err := configValidator().Struct(cfg); err != nil {
		return configError(op, err, errMsgConfigInvalid)
	}

	if _, ok := cfg.Categories[DefaultCategory]; !ok {
		return smerrors.New(op).Err(ErrInvalidConfig).Msg(errMsgNoDefaultCat)
	}
	for _, name := range cfg.CategoryNames() {
		for _, appender := range cfg.Categories[name].Appenders {
			if _, ok := cfg.Appenders[appender]; !ok {
				return smerrors.New(op).Err(ErrInvalidConfig).Msg(errMsgUnknownAppender + " " + name + ": " + appender)
			}
		}
	}
	return nil
}
