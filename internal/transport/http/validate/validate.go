package validate

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/baechuer/eventhub/internal/domain"
)

var v = validator.New()

func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Struct runs the `validate` tags on dst and converts failures into a
// field-keyed validation error.
func Struct(dst any) error {
	err := v.Struct(dst)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrValidation("invalid payload")
	}
	meta := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		meta[strings.ToLower(fe.Field())] = "failed " + fe.Tag()
	}
	return domain.ErrValidationMeta("invalid field", meta)
}

func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
