package estimate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bitsandvolts/boxcost/internal/ratecard"
	"github.com/bitsandvolts/boxcost/internal/validation"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func validRequest() Request {
	return Request{
		Length:         dec("120"),
		Width:          dec("80"),
		SheetLength:    dec("700"),
		SheetWidth:     dec("500"),
		Quantity:       dec("1000"),
		GSM:            dec("300"),
		MaterialType:   "Art Card",
		CMYKColors:     dec("4"),
		PantoneColors:  dec("0"),
		LaminationType: "gloss",
		FinishingType:  "spotUV",
		PastingType:    "sidePasting",
	}
}

func loadedCard() *ratecard.Card {
	return &ratecard.Card{Materials: []ratecard.Material{{Name: "FBB"}, {Name: "Art Card"}}}
}

func validationErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
	return errs
}

func TestValidateAcceptsRequest(t *testing.T) {
	if err := Validate(validRequest(), loadedCard()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
		kind   validation.Kind
	}{
		{"missing length", func(r *Request) { r.Length = decimal.NullDecimal{} }, "length", validation.Missing},
		{"zero width", func(r *Request) { r.Width = dec("0") }, "width", validation.NotPositive},
		{"negative gsm", func(r *Request) { r.GSM = dec("-300") }, "gsm", validation.NotPositive},
		{"fractional quantity", func(r *Request) { r.Quantity = dec("10.5") }, "quantity", validation.NotInteger},
		{"too many cmyk colors", func(r *Request) { r.CMYKColors = dec("5") }, "cmykColors", validation.UnknownEnumValue},
		{"too many pantone colors", func(r *Request) { r.PantoneColors = dec("4") }, "pantoneColors", validation.UnknownEnumValue},
		{"fractional pantone colors", func(r *Request) { r.PantoneColors = dec("1.5") }, "pantoneColors", validation.NotInteger},
		{"unknown lamination", func(r *Request) { r.LaminationType = "velvet" }, "laminationType", validation.UnknownEnumValue},
		{"missing finishing", func(r *Request) { r.FinishingType = "" }, "finishingType", validation.Missing},
		{"unknown pasting", func(r *Request) { r.PastingType = "none" }, "pastingType", validation.UnknownEnumValue},
		{"unknown material", func(r *Request) { r.MaterialType = "Kraft Brown" }, "materialType", validation.UnknownEnumValue},
		{"material case differs", func(r *Request) { r.MaterialType = "art card" }, "materialType", validation.UnknownEnumValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			errs := validationErrors(t, Validate(req, loadedCard()))
			if len(errs) != 1 || errs[0].Field != tt.field || errs[0].Kind != tt.kind {
				t.Fatalf("got %v, want %s on %s", errs, tt.kind, tt.field)
			}
		})
	}
}

func TestValidateMaterialWhenCardNotLoaded(t *testing.T) {
	errs := validationErrors(t, Validate(validRequest(), nil))
	if len(errs) != 1 || !errs.Has("materialType", validation.NotReady) {
		t.Fatalf("got %v, want NotReady on materialType", errs)
	}

	req := validRequest()
	req.MaterialType = " "
	errs = validationErrors(t, Validate(req, nil))
	if !errs.Has("materialType", validation.Missing) || errs.Has("materialType", validation.NotReady) {
		t.Fatalf("blank material should be Missing, got %v", errs)
	}
}

func TestValidateAcceptsZeroColours(t *testing.T) {
	req := validRequest()
	req.CMYKColors = dec("0")
	req.PantoneColors = dec("3")
	req.MaterialType = " FBB "
	if err := Validate(req, loadedCard()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateReturnsEveryViolation(t *testing.T) {
	errs := validationErrors(t, Validate(Request{}, nil))
	if len(errs) != 12 {
		t.Fatalf("expected one error per field, got %d: %v", len(errs), errs)
	}
}

func TestFormParse(t *testing.T) {
	var f Form
	payload := `{"length": "120", "width": 80, "sheetLength": " 700 ", "sheetWidth": "500",
		"quantity": "1000", "gsm": "300", "materialType": "FBB", "cmykColors": "4",
		"pantoneColors": "0", "laminationType": "matt", "finishingType": "none", "pastingType": "taping"}`
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	req, err := f.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := Validate(req, loadedCard()); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	p := ToPayload(req)
	if p.Width != 80 || p.SheetLength != 700 || p.Quantity != 1000 || p.CMYKColors != 4 || p.PantoneColors != 0 {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestFormParseRejectsNonNumeric(t *testing.T) {
	f := Form{Length: validation.RawOf("12cm"), Quantity: validation.RawOf("")}
	req, err := f.Parse()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if req.Length.Valid {
		t.Fatal("expected zero request on failure")
	}
	perrs := validation.ParseErrors(err)
	if len(perrs) != 2 || perrs[0].Field != "length" || perrs[1].Field != "quantity" {
		t.Fatalf("unexpected parse errors %v", err)
	}
}

func TestResultKeepsBreakdownOrder(t *testing.T) {
	var r Result
	body := `{"breakdown": {"printingCost": 30, "materialCost": 120.456}, "totalCost": 150.456, "costPerBox": 1.50456}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if keys := r.Breakdown.Keys(); keys[0] != "printingCost" || keys[1] != "materialCost" {
		t.Fatalf("keys = %v", keys)
	}
	if r.TotalCost != 150.456 || r.CostPerBox != 1.50456 {
		t.Fatalf("unexpected totals %+v", r)
	}
}

func TestOutOfRangeNumbersNeverReachThePayload(t *testing.T) {
	form := Form{
		Length:        validation.RawOf("120"),
		Width:         validation.RawOf("80"),
		SheetLength:   validation.RawOf("700"),
		SheetWidth:    validation.RawOf("500"),
		Quantity:      validation.RawOf("1e19"),
		GSM:           validation.RawOf("1e-400"),
		MaterialType:  "Art Card",
		CMYKColors:    validation.RawOf("1e99999999"),
		PantoneColors: validation.RawOf("0"),
	}
	_, err := form.Parse()
	perrs := validation.ParseErrors(err)
	if len(perrs) != 3 {
		t.Fatalf("got %d parse errors: %v", len(perrs), err)
	}
	for _, pe := range perrs {
		if !pe.OutOfRange {
			t.Errorf("%s: expected out of range, got %v", pe.Field, pe)
		}
	}
}

func TestValidateRejectsOutOfRangeRequest(t *testing.T) {
	req := validRequest()
	req.Quantity = dec("1e19")
	req.GSM = dec("1e400")
	req.CMYKColors = dec("1e99999999")

	errs := validationErrors(t, Validate(req, loadedCard()))
	for _, field := range []string{"quantity", "gsm", "cmykColors"} {
		if !errs.Has(field, validation.OutOfRange) {
			t.Errorf("expected OutOfRange on %s, got %v", field, errs)
		}
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
}

func TestToPayloadKeepsLargestAcceptedQuantity(t *testing.T) {
	req := validRequest()
	req.Quantity = dec("999999999999999")
	if err := Validate(req, loadedCard()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := ToPayload(req).Quantity; got != 999999999999999 {
		t.Fatalf("quantity = %d", got)
	}
}
