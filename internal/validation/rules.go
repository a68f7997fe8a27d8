package validation

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// mimeByExt maps the extension tokens accepted by Mimes to sniffed types.
var mimeByExt = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

type requiredRule struct{}

// Required fails on empty strings, nil values and missing files.
func Required() Rule { return requiredRule{} }

func (requiredRule) check(_ context.Context, attr string, value any) (string, error) {
	if empty := isEmpty(value); empty {
		return fmt.Sprintf("The %s field is required.", attr), nil
	}
	if fh, ok := value.(*multipart.FileHeader); ok && fh == nil {
		return fmt.Sprintf("The %s field is required.", attr), nil
	}
	return "", nil
}

type stringRule struct{}

// String fails when the value is not a string.
func String() Rule { return stringRule{} }

func (stringRule) check(_ context.Context, attr string, value any) (string, error) {
	if _, ok := value.(string); !ok {
		return fmt.Sprintf("The %s field must be a string.", attr), nil
	}
	return "", nil
}

type maxRule struct{ limit int }

// Max bounds the character length of a string value.
func Max(limit int) Rule { return maxRule{limit: limit} }

func (r maxRule) check(_ context.Context, attr string, value any) (string, error) {
	if s, ok := value.(string); ok && len([]rune(s)) > r.limit {
		return fmt.Sprintf("The %s field must not be greater than %d characters.", attr, r.limit), nil
	}
	return "", nil
}

type minRule struct{ limit int }

// Min requires a minimum character length for a string value.
func Min(limit int) Rule { return minRule{limit: limit} }

func (r minRule) check(_ context.Context, attr string, value any) (string, error) {
	if s, ok := value.(string); ok && len([]rune(s)) < r.limit {
		return fmt.Sprintf("The %s field must be at least %d characters.", attr, r.limit), nil
	}
	return "", nil
}

type emailRule struct{}

// Email checks the value looks like an email address.
func Email() Rule { return emailRule{} }

func (emailRule) check(_ context.Context, attr string, value any) (string, error) {
	s, ok := value.(string)
	if !ok || !emailPattern.MatchString(s) {
		return fmt.Sprintf("The %s field must be a valid email address.", attr), nil
	}
	return "", nil
}

type uniqueRule struct {
	taken func(ctx context.Context) (bool, error)
}

// Unique fails when the supplied lookup reports the value as already taken.
// Lookup errors surface as rule errors, not validation failures.
func Unique(taken func(ctx context.Context) (bool, error)) Rule {
	return uniqueRule{taken: taken}
}

func (r uniqueRule) check(ctx context.Context, attr string, _ any) (string, error) {
	exists, err := r.taken(ctx)
	if err != nil {
		return "", err
	}
	if exists {
		return fmt.Sprintf("The %s has already been taken.", attr), nil
	}
	return "", nil
}

type confirmedRule struct{ confirmation any }

// Confirmed compares the value against its confirmation sibling field.
func Confirmed(confirmation any) Rule { return confirmedRule{confirmation: confirmation} }

func (r confirmedRule) check(_ context.Context, attr string, value any) (string, error) {
	if value != r.confirmation {
		return fmt.Sprintf("The %s field confirmation does not match.", attr), nil
	}
	return "", nil
}

type dateRule struct{}

// Date checks the value parses as a supported date input.
func Date() Rule { return dateRule{} }

func (dateRule) check(_ context.Context, attr string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("The %s field must be a valid date.", attr), nil
	}
	if _, ok := ParseDate(s); !ok {
		return fmt.Sprintf("The %s field must be a valid date.", attr), nil
	}
	return "", nil
}

type nullableRule struct{}

// Nullable makes the remaining rules apply only when a value was supplied.
func Nullable() Rule { return nullableRule{} }

func (nullableRule) check(_ context.Context, _ string, _ any) (string, error) {
	return "", nil
}

type afterOrEqualRule struct {
	otherName  string
	otherValue string
}

// AfterOrEqual requires the value to be a date on or after the named
// sibling date field. Unparsable inputs are left to the Date rule.
func AfterOrEqual(otherName, otherValue string) Rule {
	return afterOrEqualRule{otherName: otherName, otherValue: otherValue}
}

func (r afterOrEqualRule) check(_ context.Context, attr string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", nil
	}
	own, ok := ParseDate(s)
	if !ok {
		return "", nil
	}
	other, ok := ParseDate(r.otherValue)
	if !ok {
		return "", nil
	}
	if own.Before(other) {
		return fmt.Sprintf("The %s field must be a date after or equal to %s.", attr, humanize(r.otherName)), nil
	}
	return "", nil
}

type imageRule struct{}

// Image sniffs the uploaded file and fails unless it is an image of any type.
func Image() Rule { return imageRule{} }

func (imageRule) check(_ context.Context, attr string, value any) (string, error) {
	mime, err := sniff(value)
	if err != nil {
		return "", err
	}
	if mime == nil || !strings.HasPrefix(mime.String(), "image/") {
		return fmt.Sprintf("The %s field must be an image.", attr), nil
	}
	return "", nil
}

type mimesRule struct{ exts []string }

// Mimes restricts the uploaded file to the given extension tokens
// (sniffed content, not the client-supplied filename).
func Mimes(exts ...string) Rule { return mimesRule{exts: exts} }

func (r mimesRule) check(_ context.Context, attr string, value any) (string, error) {
	mime, err := sniff(value)
	if err != nil {
		return "", err
	}
	if mime != nil {
		for _, ext := range r.exts {
			if want, ok := mimeByExt[ext]; ok && mime.Is(want) {
				return "", nil
			}
		}
	}
	return fmt.Sprintf("The %s field must be a file of type: %s.", attr, strings.Join(r.exts, ", ")), nil
}

type maxKilobytesRule struct{ limit int64 }

// MaxKilobytes bounds the uploaded file size.
func MaxKilobytes(limit int64) Rule { return maxKilobytesRule{limit: limit} }

func (r maxKilobytesRule) check(_ context.Context, attr string, value any) (string, error) {
	fh, ok := value.(*multipart.FileHeader)
	if !ok || fh == nil {
		return "", nil
	}
	if fh.Size > r.limit*1024 {
		return fmt.Sprintf("The %s field must not be greater than %d kilobytes.", attr, r.limit), nil
	}
	return "", nil
}

func sniff(value any) (*mimetype.MIME, error) {
	fh, ok := value.(*multipart.FileHeader)
	if !ok || fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return mimetype.DetectReader(f)
}
