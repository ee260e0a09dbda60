package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLColor decodes "#RRGGBB" or "#RRGGBBAA" scalars.
type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	return FormatHexColor(c.NRGBA), nil
}

// Hex builds a YAMLColor from a literal, panicking on malformed input. Only
// meant for compiled-in defaults.
func Hex(s string) YAMLColor {
	parsed, err := ParseHexColor(s)
	if err != nil {
		panic("prefabs: " + err.Error())
	}
	return YAMLColor{NRGBA: parsed}
}

// ParseHexColor accepts "#RGB", "#RRGGBB" and "#RRGGBBAA", with or without
// the leading '#'.
func ParseHexColor(value string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", value)
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", value)
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", value)
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color format: %s", value)
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func FormatHexColor(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
