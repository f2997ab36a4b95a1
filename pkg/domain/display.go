package domain

// DisplaySettings controls how the aggregated list is shown by the display client
type DisplaySettings struct {
	DisplayDuration int        `json:"displayDuration"` // milliseconds per item
	CacheSize       int        `json:"cacheSize"`
	Screen          Dimensions `json:"screenDimensions"`
	FontSize        FontSize   `json:"fontSize"`
}

// Dimensions of the target screen in pixels
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FontSize of the title and content text in pixels
type FontSize struct {
	Title   int `json:"title"`
	Content int `json:"content"`
}

// DefaultDisplaySettings returns settings used when nothing is stored yet
func DefaultDisplaySettings() DisplaySettings {
	return DisplaySettings{
		DisplayDuration: 10000,
		CacheSize:       10,
		Screen:          Dimensions{Width: 1920, Height: 1080},
		FontSize:        FontSize{Title: 48, Content: 24},
	}
}

// WithDefaults fills zero values from defaults
func (d DisplaySettings) WithDefaults(defaults DisplaySettings) DisplaySettings {
	if d.DisplayDuration <= 0 {
		d.DisplayDuration = defaults.DisplayDuration
	}
	if d.CacheSize <= 0 {
		d.CacheSize = defaults.CacheSize
	}
	if d.Screen.Width <= 0 {
		d.Screen.Width = defaults.Screen.Width
	}
	if d.Screen.Height <= 0 {
		d.Screen.Height = defaults.Screen.Height
	}
	if d.FontSize.Title <= 0 {
		d.FontSize.Title = defaults.FontSize.Title
	}
	if d.FontSize.Content <= 0 {
		d.FontSize.Content = defaults.FontSize.Content
	}
	return d
}
