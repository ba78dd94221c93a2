package form

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	// ErrNoForm is returned when the page contains no <form> element.
	ErrNoForm = errors.New("no form found on page")

	// ErrUnknownField is returned when binding a name the form does not declare.
	ErrUnknownField = errors.New("field not declared by form")
)

// Field is a single named control value
type Field struct {
	Name  string
	Value string
}

// Template is the parsed state of a form. It is never mutated after Parse.
type Template struct {
	action   string
	method   string
	fields   []Field
	declared map[string]bool
}

// Parse extracts the first form of an HTML page. pageURL is used to resolve
// a relative action.
func Parse(r io.Reader, pageURL string) (*Template, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	sel := doc.Find("form").First()
	if sel.Length() == 0 {
		return nil, ErrNoForm
	}

	action, err := resolveAction(pageURL, sel.AttrOr("action", ""))
	if err != nil {
		return nil, fmt.Errorf("resolving form action: %w", err)
	}

	method := strings.ToUpper(strings.TrimSpace(sel.AttrOr("method", "")))
	if method != http.MethodPost {
		method = http.MethodGet
	}

	t := &Template{
		action:   action,
		method:   method,
		declared: make(map[string]bool),
	}

	clicked := false
	sel.Find("input, select, textarea, button").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		name := getAttr(n, "name")
		if name == "" {
			return
		}
		t.declared[name] = true

		switch n.Data {
		case "select":
			t.fields = append(t.fields, Field{Name: name, Value: selectedOption(s)})
		case "textarea":
			t.fields = append(t.fields, Field{Name: name, Value: s.Text()})
		case "button":
			typ := strings.ToLower(getAttr(n, "type"))
			if (typ == "" || typ == "submit") && !clicked {
				clicked = true
				t.fields = append(t.fields, Field{Name: name, Value: getAttr(n, "value")})
			}
		default:
			switch strings.ToLower(getAttr(n, "type")) {
			case "checkbox", "radio":
				if hasAttr(n, "checked") {
					value := getAttr(n, "value")
					if value == "" {
						value = "on"
					}
					t.fields = append(t.fields, Field{Name: name, Value: value})
				}
			case "submit":
				// Only the first submit control counts as clicked
				if !clicked {
					clicked = true
					t.fields = append(t.fields, Field{Name: name, Value: getAttr(n, "value")})
				}
			case "image":
				// Image controls send click coordinates instead of a value
				if !clicked {
					clicked = true
					t.fields = append(t.fields,
						Field{Name: name + ".x", Value: "0"},
						Field{Name: name + ".y", Value: "0"},
					)
				}
			case "reset", "button", "file":
			default:
				t.fields = append(t.fields, Field{Name: name, Value: getAttr(n, "value")})
			}
		}
	})

	return t, nil
}

// Action returns the absolute URL the form submits to
func (t *Template) Action() string {
	return t.action
}

// Method returns GET or POST
func (t *Template) Method() string {
	return t.method
}

// Has reports whether the form declares a control with the given name
func (t *Template) Has(name string) bool {
	return t.declared[name]
}

// Fields returns a copy of the template's default field values
func (t *Template) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// Bind returns a fresh Submission carrying the template defaults overridden
// by values. Every key in values must be declared by the form.
func (t *Template) Bind(values map[string]string) (*Submission, error) {
	fields := t.Fields()
	for name, value := range values {
		if !t.declared[name] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}

		found := false
		for i := range fields {
			if fields[i].Name == name {
				fields[i].Value = value
				found = true
				break
			}
		}
		if !found {
			fields = append(fields, Field{Name: name, Value: value})
		}
	}

	return &Submission{
		Action: t.action,
		Method: t.method,
		fields: fields,
	}, nil
}

// Submission is one ready-to-send form request
type Submission struct {
	Action string
	Method string
	fields []Field
}

// Values returns the submission's fields as url.Values
func (s *Submission) Values() url.Values {
	v := make(url.Values, len(s.fields))
	for _, f := range s.fields {
		v.Add(f.Name, f.Value)
	}
	return v
}

func resolveAction(pageURL, action string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(action))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func selectedOption(s *goquery.Selection) string {
	opt := s.Find("option[selected]").First()
	if opt.Length() == 0 {
		opt = s.Find("option").First()
	}
	if opt.Length() == 0 {
		return ""
	}
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
