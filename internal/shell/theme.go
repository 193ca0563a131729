package shell

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed theme.yaml
var themeYAML []byte

type ColorSet struct {
	Main         string `yaml:"main" json:"main"`
	Light        string `yaml:"light" json:"light"`
	Dark         string `yaml:"dark" json:"dark"`
	ContrastText string `yaml:"contrast_text" json:"contrast_text"`
}

type Palette struct {
	Primary    ColorSet `yaml:"primary" json:"primary"`
	Secondary  ColorSet `yaml:"secondary" json:"secondary"`
	Background struct {
		Default string `yaml:"default" json:"default"`
		Paper   string `yaml:"paper" json:"paper"`
	} `yaml:"background" json:"background"`
	Text struct {
		Primary   string `yaml:"primary" json:"primary"`
		Secondary string `yaml:"secondary" json:"secondary"`
	} `yaml:"text" json:"text"`
	Success string `yaml:"success" json:"success"`
	Warning string `yaml:"warning" json:"warning"`
	Error   string `yaml:"error" json:"error"`
}

type Heading struct {
	FontFamily string `yaml:"font_family" json:"font_family"`
	FontWeight int    `yaml:"font_weight" json:"font_weight"`
}

type Typography struct {
	FontFamily string             `yaml:"font_family" json:"font_family"`
	Headings   map[string]Heading `yaml:"headings" json:"headings"`
}

type Shape struct {
	ButtonRadius int `yaml:"button_radius" json:"button_radius"`
	CardRadius   int `yaml:"card_radius" json:"card_radius"`
}

// Theme holds the dashboard's colour, typography and shape tokens.
type Theme struct {
	Palette    Palette    `yaml:"palette" json:"palette"`
	Typography Typography `yaml:"typography" json:"typography"`
	Shape      Shape      `yaml:"shape" json:"shape"`
}

// LoadTheme parses the embedded theme tokens.
func LoadTheme() (Theme, error) {
	return ParseTheme(themeYAML)
}

func ParseTheme(data []byte) (Theme, error) {
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme: %w", err)
	}
	if t.Palette.Primary.Main == "" {
		return Theme{}, fmt.Errorf("parse theme: palette.primary.main is required")
	}
	return t, nil
}
