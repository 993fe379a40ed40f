package quotation

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/prima-crm/prima-crm/internal/platform/httpx"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// checkStruct runs tag validation and converts failures into the field-level
// error map surfaced in 422 responses.
func checkStruct(v *validator.Validate, payload any) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Namespace()
		if idx := strings.Index(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		fields[name] = validationMessage(fe)
	}
	return httpx.NewFieldErrors(fields)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

// existenceError reports master-data ids that do not exist.
func existenceError(field string, missing []int64) error {
	if len(missing) == 0 {
		return nil
	}
	parts := make([]string, len(missing))
	for i, id := range missing {
		parts[i] = fmt.Sprint(id)
	}
	return httpx.NewFieldErrors(map[string]string{
		field: "unknown id(s): " + strings.Join(parts, ", "),
	})
}

// checkDetailIDs verifies each referenced detail id belongs to the quotation.
func checkDetailIDs(field string, q *Quotation, ids []int64) error {
	known := make(map[int64]bool, len(q.Details))
	for _, d := range q.Details {
		known[d.ID] = true
	}
	var unknown []int64
	for _, id := range ids {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return existenceError(field, unknown)
	}
	return nil
}

// checkSiteIDs verifies each referenced site id belongs to the quotation.
func checkSiteIDs(field string, q *Quotation, ids []int64) error {
	known := make(map[int64]bool, len(q.Sites))
	for _, s := range q.Sites {
		known[s.ID] = true
	}
	var unknown []int64
	for _, id := range ids {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return existenceError(field, unknown)
	}
	return nil
}

func checkMasterIDs(ctx context.Context, field string, ids []int64, lookup func(context.Context, []int64) ([]int64, error)) error {
	if len(ids) == 0 {
		return nil
	}
	missing, err := lookup(ctx, dedupe(ids))
	if err != nil {
		return err
	}
	return existenceError(field, missing)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
