// Package schema holds the fixed category → attribute template definitions.
// The table is built once at init and never mutated afterwards.
package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCategory is returned by For when the category is not in the
// supported set.
var ErrUnknownCategory = errors.New("unknown category")

// Attribute is one column of a category template. Name is the stable key used
// in extraction results and overrides; Header is the exported CSV column
// label. Hint, when set, is a per-attribute extraction instruction embedded
// into the LLM prompt.
type Attribute struct {
	Name   string
	Header string
	Hint   string
}

// Passthrough attributes are supplied by the operator alongside the SKU and
// are never requested from the extraction provider.
var passthrough = map[string]bool{
	"base_code":       true,
	"ean":             true,
	"shipping_weight": true,
}

var categories map[string][]Attribute

// Categories returns the supported category names, sorted.
func Categories() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For returns the ordered attribute list for a category. The returned slice
// is a copy; callers may not mutate the underlying table.
func For(category string) ([]Attribute, error) {
	attrs, ok := categories[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out, nil
}

// ExtractionAttributes returns the attributes of a category that are requested
// from the extraction provider, i.e. everything except the passthrough fields
// the operator supplies with the SKU.
func ExtractionAttributes(category string) ([]Attribute, error) {
	attrs, err := For(category)
	if err != nil {
		return nil, err
	}
	out := attrs[:0]
	for _, a := range attrs {
		if !passthrough[a.Name] {
			out = append(out, a)
		}
	}
	return out, nil
}

func init() {
	categories = map[string][]Attribute{
		"TV": {
			{Name: "base_code", Header: "base_code"},
			{Name: "ean", Header: "attributes__lulu_ean"},
			{Name: "shipping_weight", Header: "attributes__shipping_weight"},
			{Name: "brand", Header: "attributes__brand"},
			{Name: "name", Header: "name"},
			{Name: "product_title", Header: "attributes__product_title"},
			{Name: "product_description", Header: "attributes__product_description"},
			{Name: "model", Header: "attributes__model"},
			{Name: "model_year", Header: "attributes__model_year"},
			{Name: "weight", Header: "attributes__weight"},
			{Name: "product_dimensions", Header: "attributes__product_dimensions"},
			{Name: "os", Header: "attributes__os"},
			{Name: "display_type", Header: "attributes__display_type"},
			{Name: "display_resolution", Header: "attributes__display_resolution"},
			{Name: "screen_size", Header: "attributes__screen_size"},
			{Name: "refresh_rate", Header: "attributes__refresh_rate"},
			{Name: "hdmi", Header: "attributes__hdmi"},
			{Name: "usb", Header: "attributes__usb"},
			{Name: "ports", Header: "attributes__ports"},
			{Name: "bluetooth", Header: "attributes__bluetooth"},
			{Name: "wifi", Header: "attributes__wifi"},
			{Name: "audio", Header: "attributes__audio"},
			{Name: "color", Header: "attributes__color"},
			{Name: "voltage", Header: "attributes__voltage"},
			{Name: "power_consumption", Header: "attributes__power_consumption"},
			{Name: "features", Header: "attributes__features"},
			{Name: "mounting_type", Header: "attributes__mounting_type"},
			{Name: "other_information", Header: "attributes__other_information"},
		},
		"Smartphone": {
			{Name: "base_code", Header: "base_code"},
			{Name: "ean", Header: "attributes__lulu_ean"},
			{Name: "shipping_weight", Header: "attributes__shipping_weight"},
			{Name: "brand", Header: "attributes__brand"},
			{Name: "name", Header: "name"},
			{Name: "product_title", Header: "attributes__product_title"},
			{Name: "product_description", Header: "attributes__product_description"},
			{Name: "model", Header: "attributes__model"},
			{Name: "model_year", Header: "attributes__model_year"},
			{Name: "color", Header: "attributes__color"},
			{Name: "weight", Header: "attributes__weight"},
			{Name: "product_dimensions", Header: "attributes__product_dimensions"},
			{Name: "ip_rating", Header: "attributes__ip_rating"},
			{Name: "in_the_box", Header: "attributes__in_the_box"},
			{Name: "screen_size", Header: "attributes__screen_size"},
			{Name: "display_type", Header: "attributes__display_type"},
			{Name: "display_resolution", Header: "attributes__display_resolution"},
			{Name: "refresh_rate", Header: "attributes__refresh_rate"},
			{Name: "os", Header: "attributes__os"},
			{Name: "processor", Header: "attributes__processor"},
			{Name: "ram", Header: "attributes__ram"},
			{Name: "internal_storage", Header: "attributes__internal_storage"},
			{Name: "primary_camera", Header: "attributes__primary_camera"},
			{Name: "secondary_camera", Header: "attributes__secondary_camera"},
			{Name: "network", Header: "attributes__network"},
			{Name: "sim", Header: "attributes__sim"},
			{Name: "bluetooth", Header: "attributes__bluetooth"},
			{Name: "wifi", Header: "attributes__wifi"},
			{Name: "nfc", Header: "attributes__nfc"},
			{Name: "usb", Header: "attributes__usb"},
			{Name: "battery_capacity", Header: "attributes__battery_capacity"},
			{Name: "charging_type", Header: "attributes__charging_type"},
			{Name: "special_features", Header: "attributes__special_features"},
			{Name: "other_information", Header: "attributes__other_information"},
		},
		"Laptop": {
			{Name: "base_code", Header: "base_code"},
			{Name: "ean", Header: "attributes__lulu_ean"},
			{Name: "shipping_weight", Header: "attributes__shipping_weight"},
			{Name: "brand", Header: "attributes__brand"},
			{Name: "name", Header: "name"},
			{Name: "product_title", Header: "attributes__product_title"},
			{Name: "product_description", Header: "attributes__product_description"},
			{Name: "model", Header: "attributes__model"},
			{Name: "part_number", Header: "attributes__part_number"},
			{Name: "model_year", Header: "attributes__model_year"},
			{Name: "color", Header: "attributes__color"},
			{Name: "weight", Header: "attributes__weight"},
			{Name: "product_dimensions", Header: "attributes__product_dimensions"},
			{Name: "in_the_box", Header: "attributes__in_the_box"},
			{Name: "screen_size", Header: "attributes__screen_size"},
			{Name: "display_type", Header: "attributes__display_type"},
			{Name: "display_resolution", Header: "attributes__display_resolution"},
			{Name: "refresh_rate", Header: "attributes__refresh_rate"},
			{Name: "processor", Header: "attributes__processor"},
			{Name: "ram", Header: "attributes__ram"},
			{Name: "storage", Header: "attributes__storage"},
			{Name: "graphics", Header: "attributes__graphics"},
			{Name: "os", Header: "attributes__os"},
			{Name: "wifi", Header: "attributes__wifi"},
			{Name: "bluetooth", Header: "attributes__bluetooth"},
			{Name: "usb", Header: "attributes__usb"},
			{Name: "hdmi", Header: "attributes__hdmi"},
			{Name: "ports", Header: "attributes__ports"},
			{Name: "battery_capacity", Header: "attributes__battery_capacity"},
			{Name: "battery_life", Header: "attributes__battery_life"},
			{Name: "web_camera", Header: "attributes__web_camera"},
			{Name: "features", Header: "attributes__features"},
			{Name: "other_information", Header: "attributes__other_information"},
		},
		"Refrigerator": {
			{Name: "base_code", Header: "base_code"},
			{Name: "ean", Header: "attributes__lulu_ean"},
			{Name: "shipping_weight", Header: "attributes__shipping_weight"},
			{Name: "brand", Header: "attributes__brand"},
			{Name: "name", Header: "name"},
			{Name: "product_title", Header: "attributes__product_title"},
			{Name: "product_description", Header: "attributes__product_description"},
			{Name: "model", Header: "attributes__model"},
			{Name: "color", Header: "attributes__color"},
			{Name: "finish", Header: "attributes__finish"},
			{Name: "product_dimensions", Header: "attributes__product_dimensions"},
			{Name: "weight", Header: "attributes__weight"},
			{Name: "in_the_box", Header: "attributes__in_the_box"},
			{Name: "gross_capacity", Header: "attributes__gross_capacity"},
			{Name: "net_capacity", Header: "attributes__net_capacity"},
			{Name: "freezer_capacity", Header: "attributes__freezer_capacity"},
			{Name: "type_of_defrost", Header: "attributes__type_of_defrost"},
			{Name: "compressor", Header: "attributes__compressor"},
			{Name: "cooling_technology", Header: "attributes__cooling_technology"},
			{Name: "refrigerant", Header: "attributes__refrigerant"},
			{Name: "wattage", Header: "attributes__wattage"},
			{Name: "voltage", Header: "attributes__voltage"},
			{Name: "power_consumption", Header: "attributes__power_consumption"},
			{Name: "icemaker", Header: "attributes__icemaker"},
			{Name: "iot_connectivity", Header: "attributes__iot_connectivity"},
			{Name: "special_features", Header: "attributes__special_features"},
			{Name: "other_information", Header: "attributes__other_information"},
		},
		"Washing Machine": {
			{Name: "base_code", Header: "base_code"},
			{Name: "ean", Header: "attributes__lulu_ean"},
			{Name: "shipping_weight", Header: "attributes__shipping_weight"},
			{Name: "brand", Header: "attributes__brand"},
			{Name: "name", Header: "name"},
			{Name: "product_title", Header: "attributes__product_title"},
			{Name: "product_description", Header: "attributes__product_description"},
			{Name: "model", Header: "attributes__model"},
			{Name: "color", Header: "attributes__color"},
			{Name: "weight", Header: "attributes__weight"},
			{Name: "product_dimensions", Header: "attributes__product_dimensions"},
			{Name: "capacity", Header: "attributes__capacity"},
			{Name: "washer_capacity", Header: "attributes__washer_capacity"},
			{Name: "dryer_capacity", Header: "attributes__dryer_capacity"},
			{Name: "spin_speed", Header: "attributes__spin_speed"},
			{Name: "water_consumption", Header: "attributes__water_consumption"},
			{Name: "noise_level", Header: "attributes__noise_level"},
			{Name: "no_of_programs", Header: "attributes__no_of_programs"},
			{Name: "wash_programmes", Header: "attributes__wash_programmes"},
			{Name: "display_type", Header: "attributes__display_type"},
			{Name: "iot_connectivity", Header: "attributes__iot_connectivity"},
			{Name: "installation", Header: "attributes__installation"},
			{Name: "in_the_box", Header: "attributes__in_the_box"},
			{Name: "special_features", Header: "attributes__special_features"},
			{Name: "other_information", Header: "attributes__other_information"},
		},
		"Headphones": {
			{Name: "base_code", Header: "base_code"},
			{Name: "ean", Header: "attributes__lulu_ean"},
			{Name: "shipping_weight", Header: "attributes__shipping_weight"},
			{Name: "brand", Header: "attributes__brand", Hint: "Extract the brand name exactly as found"},
			{Name: "name", Header: "name", Hint: "Create product name in format: Brand + Series + Design Type + Product Type, Feature, Color, Model Number"},
			{Name: "product_title", Header: "attributes__product_title", Hint: "Same as 'name' field"},
			{Name: "product_description", Header: "attributes__product_description", Hint: "Write a unique 200-word product description without plagiarism, based on the extracted data"},
			{Name: "model", Header: "attributes__model", Hint: "Extract exact model name/number from data"},
			{Name: "design", Header: "attributes__design", Hint: "Extract design type (Over-ear, On-ear, In-ear, etc.) from data"},
			{Name: "connectivity", Header: "attributes__connectivity", Hint: "Extract connectivity type (Wireless, Wired, Bluetooth, etc.) from data"},
			{Name: "mic", Header: "attributes__mic", Hint: "Extract microphone info (Yes/No/Built-in) from data"},
			{Name: "noise_cancellation", Header: "attributes__noise_cancellation", Hint: "Extract noise cancellation feature (Active/Passive/None) from data"},
			{Name: "color", Header: "attributes__color", Hint: "Extract color from data"},
			{Name: "weight", Header: "attributes__weight", Hint: "Extract weight with unit from data"},
			{Name: "product_dimensions", Header: "attributes__product_dimensions", Hint: "Extract dimensions from data"},
			{Name: "in_the_box", Header: "attributes__in_the_box", Hint: "Extract box contents/accessories from data"},
			{Name: "battery_type", Header: "attributes__battery_type", Hint: "Extract battery type from data"},
			{Name: "battery_capacity", Header: "attributes__battery_capacity", Hint: "Extract battery capacity (mAh) from data"},
			{Name: "battery_life", Header: "attributes__battery_life", Hint: "Extract battery life/playback time from data"},
			{Name: "charging_time", Header: "attributes__charging_time", Hint: "Extract charging time from data"},
			{Name: "driver_unit", Header: "attributes__driver_unit", Hint: "Extract driver size/unit from data"},
			{Name: "ip_rating", Header: "attributes__ip_rating", Hint: "Extract IP rating from data"},
			{Name: "water_resistance", Header: "attributes__water_resistance", Hint: "Extract water resistance rating from data"},
			{Name: "cable_length", Header: "attributes__cable_length", Hint: "Extract cable length from data"},
			{Name: "range", Header: "attributes__range", Hint: "Extract wireless range from data"},
			{Name: "features", Header: "attributes__features", Hint: "Extract key features as comma-separated list from data"},
			{Name: "keywords", Header: "attributes__keywords", Hint: "Generate relevant SEO keywords separated by commas"},
			{Name: "other_information", Header: "attributes__other_information", Hint: "Extract any other relevant information from data"},
		},
	}
}
