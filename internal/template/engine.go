package template

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed data/*.tmpl
var files embed.FS

// Message template names.
const (
	BagAdded              = "bag_added"
	BagUpdated            = "bag_updated"
	BagRemoved            = "bag_removed"
	BagRemoveFailed       = "bag_remove_failed"
	CheckoutFormInvalid   = "checkout_form_invalid"
	CheckoutEmptyBag      = "checkout_empty_bag"
	CheckoutPaymentFailed = "checkout_payment_failed"
	CheckoutProductGone   = "checkout_product_gone"
	CheckoutPriceChanged  = "checkout_price_changed"
	CheckoutSuccess       = "checkout_success"
)

// Engine renders the user-facing notification texts.
type Engine struct {
	tmpl *template.Template
}

func NewEngine() (*Engine, error) {
	tmpl, err := template.New("messages").
		Option("missingkey=error").
		ParseFS(files, "data/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS: %w", err)
	}

	return &Engine{tmpl: tmpl}, nil
}

// MustNewEngine panics when the embedded templates do not parse.
func MustNewEngine() *Engine {
	e, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) Execute(name string, data map[string]string) (string, error) {
	if e.tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("template[%s] not found", name)
	}

	var sb strings.Builder
	if err := e.tmpl.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("tmpl.ExecuteTemplate: %w", err)
	}

	return sb.String(), nil
}
