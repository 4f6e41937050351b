package main

import (
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// A trimmed-down scraper payload, decoded like a real response body so
// numbers arrive as float64 the way they do in production.
const samplePayload = `{
	"title": "Vintage Cat Poster Tee",
	"description": ["First paragraph.", "Second paragraph."],
	"product_id": 1234567890,
	"shop_name": "CatShop",
	"shop_sales": 4821,
	"price": 19.99,
	"star": "4.8",
	"has_ratings_badge": true,
	"images": ["https://img.example/1.jpg", "https://img.example/2.jpg"],
	"variants": [{"name": "Size", "options": ["S", "M", "L"]}],
	"category": "",
	"reviews": "not-a-number"
}`

func TestScrapedProjectFields(t *testing.T) {
	var data map[string]any
	if err := json.Unmarshal([]byte(samplePayload), &data); err != nil {
		t.Fatalf("decode sample: %v", err)
	}

	out := scrapedProjectFields(data)

	if out["etsy_title"] != "Vintage Cat Poster Tee" {
		t.Errorf("etsy_title = %v", out["etsy_title"])
	}
	if out["etsy_desc"] != "First paragraph." {
		t.Errorf("etsy_desc = %v", out["etsy_desc"])
	}
	if desc, ok := out["description"].(pq.StringArray); !ok || len(desc) != 2 {
		t.Errorf("description = %#v", out["description"])
	}
	// numeric product ids get stringified
	if out["product_id"] != "1234567890" {
		t.Errorf("product_id = %v", out["product_id"])
	}
	if out["shop_name"] != "CatShop" {
		t.Errorf("shop_name = %v", out["shop_name"])
	}
	if out["shop_sales"] != 4821 {
		t.Errorf("shop_sales = %v", out["shop_sales"])
	}
	if out["price"] != 19.99 {
		t.Errorf("price = %v", out["price"])
	}
	// stars sometimes arrive as strings
	if out["star"] != 4.8 {
		t.Errorf("star = %v", out["star"])
	}
	if out["has_ratings_badge"] != true {
		t.Errorf("has_ratings_badge = %v", out["has_ratings_badge"])
	}
	if imgs, ok := out["images"].(pq.StringArray); !ok || len(imgs) != 2 {
		t.Errorf("images = %#v", out["images"])
	}
	if _, ok := out["variants"].(datatypes.JSON); !ok {
		t.Errorf("variants = %#v, want datatypes.JSON", out["variants"])
	}

	// empty strings and mistyped values are skipped, not written
	if _, ok := out["category"]; ok {
		t.Error("empty category should be skipped")
	}
	if _, ok := out["reviews"]; ok {
		t.Error("non-numeric reviews should be skipped")
	}
	// absent fields are skipped
	if _, ok := out["shop_url"]; ok {
		t.Error("absent shop_url should be skipped")
	}
}

func TestScrapedProjectFieldsEmptyPayload(t *testing.T) {
	out := scrapedProjectFields(map[string]any{})
	if len(out) != 0 {
		t.Errorf("empty payload produced %d fields: %v", len(out), out)
	}
}

func TestCoercionHelpers(t *testing.T) {
	if v := asStr("x"); v == nil || *v != "x" {
		t.Errorf("asStr(string) = %v", v)
	}
	if v := asStr(float64(42)); v == nil || *v != "42" {
		t.Errorf("asStr(float64) = %v", v)
	}
	if asStr("") != nil || asStr(nil) != nil || asStr(true) != nil {
		t.Error("asStr should reject empty, nil and bool")
	}

	if v := asInt(float64(7)); v == nil || *v != 7 {
		t.Errorf("asInt = %v", v)
	}
	if asInt("7") != nil || asInt(nil) != nil {
		t.Error("asInt should only accept JSON numbers")
	}

	if v := asFloat("3.5"); v == nil || *v != 3.5 {
		t.Errorf("asFloat(string) = %v", v)
	}
	if asFloat("n/a") != nil {
		t.Error("asFloat should reject unparseable strings")
	}

	if got := asStrSlice([]any{"a", 1, "b"}); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("asStrSlice = %v", got)
	}
	if asStrSlice("not-an-array") != nil {
		t.Error("asStrSlice should reject non-arrays")
	}
}
