package form

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const lookupPage = `
<html>
	<body>
		<form name="search" action="/zip4/zcl_1_results.jsp" method="post">
			<input type="hidden" name="pagenumber" value="all">
			<input type="text" name="city" value="">
			<select name="state">
				<option value="">Select</option>
				<option value="IA">Iowa</option>
			</select>
			<input type="checkbox" name="exact" value="yes">
			<input type="checkbox" name="po" checked>
			<input type="reset" name="clear" value="Clear">
			<input type="image" name="submit" value="Submit">
			<input type="submit" name="other" value="Other">
		</form>
		<form action="/second"><input name="ignored"></form>
	</body>
</html>`

func TestParse(t *testing.T) {
	tmpl, err := Parse(strings.NewReader(lookupPage), "http://zip4.usps.com/zip4/citytown.jsp")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if tmpl.Action() != "http://zip4.usps.com/zip4/zcl_1_results.jsp" {
		t.Errorf("Action() = %q", tmpl.Action())
	}
	if tmpl.Method() != http.MethodPost {
		t.Errorf("Method() = %q, want POST", tmpl.Method())
	}

	want := []Field{
		{Name: "pagenumber", Value: "all"},
		{Name: "city", Value: ""},
		{Name: "state", Value: ""},
		{Name: "po", Value: "on"},
		{Name: "submit.x", Value: "0"},
		{Name: "submit.y", Value: "0"},
	}
	if diff := cmp.Diff(want, tmpl.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}

	for _, name := range []string{"city", "state", "exact", "clear", "other"} {
		if !tmpl.Has(name) {
			t.Errorf("Has(%q) = false, want true", name)
		}
	}
	if tmpl.Has("ignored") {
		t.Error("fields from the second form should not be declared")
	}
}

func TestParse_Defaults(t *testing.T) {
	page := `<form><input name="city"><input name="state"></form>`

	tmpl, err := Parse(strings.NewReader(page), "http://example.com/lookup?x=1")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if tmpl.Method() != http.MethodGet {
		t.Errorf("Method() = %q, want GET", tmpl.Method())
	}
	if tmpl.Action() != "http://example.com/lookup?x=1" {
		t.Errorf("Action() = %q, want page URL", tmpl.Action())
	}
}

func TestParse_NoForm(t *testing.T) {
	_, err := Parse(strings.NewReader(`<html><body><p>Down for maintenance</p></body></html>`), "http://example.com")
	if !errors.Is(err, ErrNoForm) {
		t.Errorf("Parse() error = %v, want ErrNoForm", err)
	}
}

func TestBind(t *testing.T) {
	tmpl, err := Parse(strings.NewReader(lookupPage), "http://zip4.usps.com/zip4/citytown.jsp")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	ames, err := tmpl.Bind(map[string]string{"city": "Ames", "state": "IA"})
	if err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	moines, err := tmpl.Bind(map[string]string{"city": "Des Moines", "state": "IA"})
	if err != nil {
		t.Fatalf("Bind() error: %v", err)
	}

	if got := ames.Values().Get("city"); got != "Ames" {
		t.Errorf("first submission city = %q, want Ames", got)
	}
	if got := moines.Values().Get("city"); got != "Des Moines" {
		t.Errorf("second submission city = %q, want Des Moines", got)
	}
	if got := ames.Values().Get("pagenumber"); got != "all" {
		t.Errorf("hidden field = %q, want all", got)
	}

	// Binding must not leak into the template
	for _, f := range tmpl.Fields() {
		if f.Name == "city" && f.Value != "" {
			t.Errorf("template city mutated to %q", f.Value)
		}
	}
}

func TestBind_DeclaredButUnsubmitted(t *testing.T) {
	tmpl, err := Parse(strings.NewReader(lookupPage), "http://example.com")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	sub, err := tmpl.Bind(map[string]string{"exact": "yes"})
	if err != nil {
		t.Fatalf("Bind() error: %v", err)
	}
	if got := sub.Values().Get("exact"); got != "yes" {
		t.Errorf("exact = %q, want yes", got)
	}
}

func TestBind_UnknownField(t *testing.T) {
	tmpl, err := Parse(strings.NewReader(lookupPage), "http://example.com")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	_, err = tmpl.Bind(map[string]string{"zip": "50010"})
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("Bind() error = %v, want ErrUnknownField", err)
	}
}

func TestParse_SubmitBeforeImage(t *testing.T) {
	page := `<form>
		<input name="city">
		<input type="submit" name="go" value="Find">
		<input type="image" name="Submit" src="go.gif">
	</form>`

	tmpl, err := Parse(strings.NewReader(page), "http://example.com")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []Field{
		{Name: "city", Value: ""},
		{Name: "go", Value: "Find"},
	}
	if diff := cmp.Diff(want, tmpl.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}
