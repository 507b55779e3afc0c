// Package entity defines the forms, flash messages and feed documents used by the web layer.
package entity

import (
	"errors"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := RegisterValidations(v); err != nil {
			panic(err)
		}
	}
}

// RegisterValidations adds the custom tags used by the forms below to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("notblank", validators.NotBlank)
}

// Flash categories.
const (
	FlashError = "error"
	FlashInfo  = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

type RegisterForm struct {
	Email    string `form:"email" binding:"required,email,max=100"`
	Password string `form:"password" binding:"required,notblank,max=72"`
	Name     string `form:"name" binding:"required,notblank,max=100"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type CommentForm struct {
	Text string `form:"comment_text" binding:"required,notblank"`
}

// PostForm carries the admin-editable fields of a post.
type PostForm struct {
	Title    string `form:"title" binding:"required,notblank,max=100"`
	Subtitle string `form:"subtitle" binding:"required,notblank,max=100"`
	ImgUrl   string `form:"img_url" binding:"required,url"`
	Body     string `form:"body" binding:"required,notblank"`
}

// FieldErrors maps a form field name to the translation key of its validation message.
type FieldErrors map[string]string

// FormErrorKey holds errors that do not belong to a single field.
const FormErrorKey = "_form"

// fieldMessages overrides the generic "validation.<tag>" key for a field and tag.
var fieldMessages = map[string]string{
	"password.max": PasswordTooLongKey,
}

// PasswordTooLongKey is the message key for passwords bcrypt cannot hash.
const PasswordTooLongKey = "validation.passwordTooLong"

func messageKey(field, tag string) string {
	if key, ok := fieldMessages[field+"."+tag]; ok {
		return key
	}
	return "validation." + tag
}

// NewFieldErrors converts a binding error for form into per-field message keys.
func NewFieldErrors(form any, err error) FieldErrors {
	if err == nil {
		return nil
	}
	fieldErrors := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors[FormErrorKey] = "validation.invalid"
		return fieldErrors
	}

	t := reflect.TypeOf(form)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		name := fe.Field()
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("form"); tag != "" {
				name = tag
			}
		}
		if _, seen := fieldErrors[name]; seen {
			continue
		}
		fieldErrors[name] = messageKey(name, fe.Tag())
	}
	return fieldErrors
}

// Feed is a JSON Feed 1.1 document.
type Feed struct {
	Version     string     `json:"version"`
	Title       string     `json:"title"`
	HomePageURL string     `json:"home_page_url"`
	FeedURL     string     `json:"feed_url"`
	Items       []FeedItem `json:"items"`
}

type FeedItem struct {
	Id            string     `json:"id"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	Summary       string     `json:"summary,omitempty"`
	ContentHTML   string     `json:"content_html"`
	Image         string     `json:"image,omitempty"`
	DatePublished string     `json:"date_published,omitempty"`
	Authors       []FeedUser `json:"authors,omitempty"`
}

type FeedUser struct {
	Name string `json:"name"`
}
