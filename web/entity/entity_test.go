package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

func TestNewFieldErrors(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name string
		form any
		want FieldErrors
	}{
		{
			name: "valid register form",
			form: &RegisterForm{Email: "a@x.com", Password: "pw1", Name: "Ann"},
			want: nil,
		},
		{
			name: "bad email and missing name",
			form: &RegisterForm{Email: "not-an-email", Password: "pw1"},
			want: FieldErrors{"email": "validation.email", "name": "validation.required"},
		},
		{
			name: "post form with bad url",
			form: &PostForm{Title: "T", Subtitle: "S", ImgUrl: "nope", Body: "B"},
			want: FieldErrors{"img_url": "validation.url"},
		},
		{
			name: "empty comment",
			form: &CommentForm{},
			want: FieldErrors{"comment_text": "validation.required"},
		},
		{
			name: "whitespace comment",
			form: &CommentForm{Text: "  \t\n "},
			want: FieldErrors{"comment_text": "validation.notblank"},
		},
		{
			name: "whitespace post title",
			form: &PostForm{Title: "   ", Subtitle: "S", ImgUrl: "https://example.com/a.jpg", Body: "B"},
			want: FieldErrors{"title": "validation.notblank"},
		},
		{
			name: "password too long for bcrypt",
			form: &RegisterForm{Email: "a@x.com", Password: strings.Repeat("p", 80), Name: "Ann"},
			want: FieldErrors{"password": PasswordTooLongKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			assert.Equal(t, tt.want, NewFieldErrors(tt.form, err))
		})
	}
}

func TestNewFieldErrorsNonValidation(t *testing.T) {
	got := NewFieldErrors(&LoginForm{}, errors.New("malformed body"))
	assert.Equal(t, FieldErrors{FormErrorKey: "validation.invalid"}, got)
}
