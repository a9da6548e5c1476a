package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/mapview"
)

// Profile holds the presentation knobs of the dashboard: the text around
// the widgets, the opening dropdown values, the columns hidden from the
// table, and the look of the map.
type Profile struct {
	Title    string   `yaml:"title"`
	Heading  string   `yaml:"heading"`
	Intro    []string `yaml:"intro"`
	LogoURL  string   `yaml:"logo_url"`
	PageSize int      `yaml:"page_size"`

	DefaultRegions []string `yaml:"default_regions"`
	DefaultSeasons []int    `yaml:"default_seasons"`
	HiddenColumns  []string `yaml:"hidden_columns"`

	Map     mapview.Options `yaml:"map"`
	Frame   FrameProfile    `yaml:"frame"`
	Credits []Credit        `yaml:"credits"`
}

// FrameProfile sizes the iframe the map is embedded in.
type FrameProfile struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Credit is one footer entry: a heading and a link.
type Credit struct {
	Heading string `yaml:"heading"`
	Text    string `yaml:"text"`
	URL     string `yaml:"url"`
}

// DefaultProfile returns the built-in profile.
func DefaultProfile() Profile {
	def := domain.DefaultSelection()
	return Profile{
		Title:   "Flavortown",
		Heading: "A Visual Guide to Flavortown",
		Intro: []string{
			"Diners, Drive-Ins and Dives is a popular TV show on Food Network hosted by celebrity chef Guy Fieri. " +
				"Now on its 30th season, Diners, Drive-Ins and Dives showcases independent restaurants serving up " +
				"delicious comfort food across North America.",
			"This dashboard features an interactive map that allows you to discover the cities and restaurants " +
				"visited by Fieri. You can also use the dropdown menus to filter the featured restaurants by season " +
				"and/or location.",
		},
		LogoURL:        "https://chapspitbeef.com/wp-content/uploads/2017/11/diner-driveins-dives-logo.jpeg",
		PageSize:       domain.DefaultPageSize,
		DefaultRegions: def.Regions,
		DefaultSeasons: def.Seasons,
		Map:            mapview.DefaultOptions(),
		Frame:          FrameProfile{Width: 1100, Height: 600},
		Credits: []Credit{
			{
				Heading: "Data:",
				Text:    "List of Diners, Drive-Ins and Dives episodes",
				URL:     "https://en.wikipedia.org/wiki/List_of_Diners,_Drive-Ins_and_Dives_episodes",
			},
			{
				Heading: "Image:",
				Text:    "Chaps Pit Beef",
				URL:     "https://chapspitbeef.com/wp-content/uploads/2017/11/diner-driveins-dives-logo.jpeg",
			},
		},
	}
}

// DefaultSelection returns the profile's opening dropdown values.
func (p Profile) DefaultSelection() domain.Selection {
	return domain.Selection{Regions: p.DefaultRegions, Seasons: p.DefaultSeasons}.Clone()
}

// LoadProfile reads a YAML profile from path. Fields absent from the file
// keep their built-in values. An empty path returns DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("config.LoadProfile: %w", err)
	}
	p, err := ParseProfile(data)
	if err != nil {
		return Profile{}, fmt.Errorf("config.LoadProfile: %s: %w", path, err)
	}
	return p, nil
}

// ParseProfile decodes a YAML profile over DefaultProfile. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func ParseProfile(data []byte) (Profile, error) {
	p := DefaultProfile()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, err
	}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) validate() error {
	if p.PageSize < 1 || p.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100, got %d", p.PageSize)
	}
	if p.Map.MarkerSize < 1 {
		return fmt.Errorf("map.marker_size must be positive, got %d", p.Map.MarkerSize)
	}
	if p.Map.Width < 1 || p.Map.Height < 1 {
		return fmt.Errorf("map dimensions must be positive, got %dx%d", p.Map.Width, p.Map.Height)
	}
	if p.Frame.Width < 1 || p.Frame.Height < 1 {
		return fmt.Errorf("frame dimensions must be positive, got %dx%d", p.Frame.Width, p.Frame.Height)
	}
	return nil
}
