package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	cepRegex = regexp.MustCompile(`^\d{5}-?\d{3}$`)

	estados = []string{
		"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
		"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
	}
)

// fieldMessages overrides the generic tag message for a specific field
var fieldMessages = map[string]string{
	"dataBatismo.required_if":  "A data de batismo é obrigatória para membros batizados.",
	"dataBatismo.notfuture":    "A data de batismo não pode ser no futuro.",
	"dataNascimento.notfuture": "A data de nascimento não pode ser no futuro.",
}

// tagMessages are the generic messages per validation tag
var tagMessages = map[string]string{
	"required":    "Campo obrigatório.",
	"required_if": "Campo obrigatório.",
	"email":       "Email inválido.",
	"telefone":    "Telefone inválido.",
	"projeto":     "O projeto selecionado não é válido.",
	"tipomembro":  "O tipo de membro selecionado não é válido.",
	"uf":          "Estado deve ser a sigla de 2 letras de uma UF.",
	"cep":         "CEP deve estar no formato 00000-000.",
	"notfuture":   "A data não pode ser no futuro.",
}

// Validator returns the shared validator with the custom rules registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report fields by their JSON names
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		mustRegister(v, "notfuture", validateNotFuture)
		mustRegister(v, "projeto", func(fl validator.FieldLevel) bool {
			return slices.Contains(models.Projetos, fl.Field().String())
		})
		mustRegister(v, "tipomembro", func(fl validator.FieldLevel) bool {
			return slices.Contains(models.TiposMembro, fl.Field().String())
		})
		mustRegister(v, "uf", func(fl validator.FieldLevel) bool {
			return slices.Contains(estados, strings.ToUpper(fl.Field().String()))
		})
		mustRegister(v, "cep", func(fl validator.FieldLevel) bool {
			return cepRegex.MatchString(fl.Field().String())
		})
		mustRegister(v, "telefone", func(fl validator.FieldLevel) bool {
			return IsValidTelefone(fl.Field().String())
		})

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// validateNotFuture accepts zero values and any instant up to now
func validateNotFuture(fl validator.FieldLevel) bool {
	var t time.Time
	switch v := fl.Field().Interface().(type) {
	case models.Timestamp:
		t = v.Time()
	case time.Time:
		t = v
	default:
		return false
	}
	return t.IsZero() || !t.After(time.Now())
}

// ValidateStruct runs the validate tags of s and converts failures into
// models.ValidationErrors keyed by JSON field path
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var verrs models.ValidationErrors
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		verrs.Add(path, messageFor(fe))
	}
	return verrs
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("Deve ter pelo menos %s caracteres.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Deve ser um dos valores: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("Valor inválido (%s).", fe.Tag())
}
