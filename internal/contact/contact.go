// Package contact forwards contact form submissions to the form endpoint.
// Messages are never stored; they live only for the duration of one request.
package contact

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrSubmissionFailed = errors.New("form submission failed")
	ErrBusy             = errors.New("submission already in progress")
	ErrInvalid          = errors.New("invalid contact message")
)

var validate = validator.New()

// Message is what the visitor typed into the form.
type Message struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Message string `form:"message" json:"message" validate:"required"`
}

// Trimmed drops surrounding whitespace from every field.
func (m Message) Trimmed() Message {
	return Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Message: strings.TrimSpace(m.Message),
	}
}

// Validate checks the fields the browser marks as required, as they will be sent.
func (m Message) Validate() error {
	if err := validate.Struct(m.Trimmed()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Values is the form-encoded body sent to the endpoint. It carries the same
// trimmed fields Validate checks.
func (m Message) Values() url.Values {
	t := m.Trimmed()
	return url.Values{
		"name":    {t.Name},
		"email":   {t.Email},
		"message": {t.Message},
	}
}

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is the transient toast shown after a submission.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

func (n Notification) Destructive() bool { return n.Variant == VariantDestructive }

var (
	Sent = Notification{
		Title:       "Message sent!",
		Description: "Thanks for reaching out. I'll get back to you soon.",
		Variant:     VariantDefault,
	}
	Failed = Notification{
		Title:       "Error",
		Description: "There was a problem sending your message. Please try again.",
		Variant:     VariantDestructive,
	}
	Incomplete = Notification{
		Title:       "Error",
		Description: "Please fill in your name, a valid email and a message.",
		Variant:     VariantDestructive,
	}
)
