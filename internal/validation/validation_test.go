package validation

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nrest-of-file")

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

func TestFirst_ReturnsFirstFailingFieldOnly(t *testing.T) {
	failure, err := First(context.Background(),
		NewField("name", "", Required(), String(), Max(255)),
		NewField("email", "not-an-email", Required(), Email()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil {
		t.Fatal("expected a failure")
	}
	if failure.Field != "name" {
		t.Fatalf("expected name to fail first, got %q", failure.Field)
	}
	if failure.Message != "The name field is required." {
		t.Fatalf("unexpected message: %q", failure.Message)
	}
}

func TestFirst_FirstFailingRuleWithinField(t *testing.T) {
	failure, err := First(context.Background(),
		NewField("password", "short", Required(), String(), Min(8), Confirmed("other")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil {
		t.Fatal("expected a failure")
	}
	if failure.Message != "The password field must be at least 8 characters." {
		t.Fatalf("unexpected message: %q", failure.Message)
	}
}

func TestFirst_AllPassing(t *testing.T) {
	failure, err := First(context.Background(),
		NewField("name", "Groceries", Required(), String(), Max(255)),
		NewField("created_date", "2026-01-10", Required(), Date()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
}

func TestFirst_HumanizesAttributeNames(t *testing.T) {
	failure, err := First(context.Background(),
		NewField("created_date", "", Required(), Date()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure.Message != "The created date field is required." {
		t.Fatalf("unexpected message: %q", failure.Message)
	}
}

func TestNullable_SkipsRemainingRulesWhenEmpty(t *testing.T) {
	failure, err := First(context.Background(),
		NewField("completion_date", "", Nullable(), Date(), AfterOrEqual("created_date", "2026-01-10")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure != nil {
		t.Fatalf("empty nullable field must pass, got %+v", failure)
	}
}

func TestNullable_StillValidatesWhenPresent(t *testing.T) {
	failure, err := First(context.Background(),
		NewField("completion_date", "nonsense", Nullable(), Date()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil || failure.Message != "The completion date field must be a valid date." {
		t.Fatalf("unexpected result: %+v", failure)
	}
}

func TestAfterOrEqual(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		other   string
		wantMsg string
	}{
		{"before fails", "2026-01-09", "2026-01-10", "The completion date field must be a date after or equal to created date."},
		{"equal passes", "2026-01-10", "2026-01-10", ""},
		{"after passes", "2026-01-11", "2026-01-10", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			failure, err := First(context.Background(),
				NewField("completion_date", tc.value, Nullable(), Date(), AfterOrEqual("created_date", tc.other)),
			)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := ""
			if failure != nil {
				got = failure.Message
			}
			if got != tc.wantMsg {
				t.Fatalf("got %q, want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	taken := func(ctx context.Context) (bool, error) { return true, nil }
	failure, err := First(context.Background(),
		NewField("email", "dup@example.com", Required(), Email(), Unique(taken)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil || failure.Message != "The email has already been taken." {
		t.Fatalf("unexpected result: %+v", failure)
	}
}

func TestUnique_LookupErrorIsNotAValidationFailure(t *testing.T) {
	lookupErr := errors.New("store down")
	taken := func(ctx context.Context) (bool, error) { return false, lookupErr }
	failure, err := First(context.Background(),
		NewField("email", "x@example.com", Required(), Email(), Unique(taken)),
	)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
}

func TestConfirmed(t *testing.T) {
	failure, err := First(context.Background(),
		NewField("password", "secret-pass", Required(), Min(8), Confirmed("different")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil || failure.Message != "The password field confirmation does not match." {
		t.Fatalf("unexpected result: %+v", failure)
	}
}

func TestDateFormats(t *testing.T) {
	if _, ok := ParseDate("2026-01-10"); !ok {
		t.Fatal("plain date must parse")
	}
	if _, ok := ParseDate("2026-01-10T15:04:05Z"); !ok {
		t.Fatal("RFC3339 must parse")
	}
	if _, ok := ParseDate("10/01/2026"); ok {
		t.Fatal("slash date must not parse")
	}
}

func TestImageAndMimes_AcceptsPNG(t *testing.T) {
	fh := fileHeader(t, "avatar.png", pngBytes)
	failure, err := First(context.Background(),
		NewField("image", fh, Required(), Image(), Mimes("jpeg", "png", "jpg", "gif"), MaxKilobytes(2048)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure != nil {
		t.Fatalf("png upload must pass, got %+v", failure)
	}
}

func TestImage_RejectsNonImageContent(t *testing.T) {
	fh := fileHeader(t, "fake.png", []byte("plain text pretending"))
	failure, err := First(context.Background(),
		NewField("image", fh, Required(), Image(), Mimes("jpeg", "png", "jpg", "gif")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil || failure.Message != "The image field must be an image." {
		t.Fatalf("unexpected result: %+v", failure)
	}
}

func TestMimes_RejectsDisallowedImageType(t *testing.T) {
	// A real image type outside the allowed list (bmp magic bytes).
	fh := fileHeader(t, "avatar.bmp", []byte("BM\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"))
	failure, err := First(context.Background(),
		NewField("image", fh, Required(), Image(), Mimes("jpeg", "png", "jpg", "gif")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil || failure.Message != "The image field must be a file of type: jpeg, png, jpg, gif." {
		t.Fatalf("unexpected result: %+v", failure)
	}
}

func TestMaxKilobytes(t *testing.T) {
	big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, 3)...)
	fh := fileHeader(t, "avatar.png", big)
	failure, err := First(context.Background(),
		NewField("image", fh, Required(), MaxKilobytes(0)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil || failure.Message != "The image field must not be greater than 0 kilobytes." {
		t.Fatalf("unexpected result: %+v", failure)
	}
}

func TestRequired_MissingFile(t *testing.T) {
	var fh *multipart.FileHeader
	failure, err := First(context.Background(),
		NewField("image", fh, Required()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failure == nil || failure.Message != "The image field is required." {
		t.Fatalf("unexpected result: %+v", failure)
	}
}
