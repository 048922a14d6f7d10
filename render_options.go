package markterm

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	width            int
	stripFrontMatter bool
	detector         BackgroundDetector
}

func newRenderConfig(opts []RenderOption) renderConfig {
	var cfg renderConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithWidth word-wraps paragraphs at width printable columns. Zero or less
// disables wrapping.
func WithWidth(width int) RenderOption {
	return func(cfg *renderConfig) {
		if width < 0 {
			width = 0
		}
		cfg.width = width
	}
}

// WithStripFrontMatter removes a leading YAML, TOML or JSON front matter
// block before parsing.
func WithStripFrontMatter(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.stripFrontMatter = enabled
	}
}

// WithBackgroundDetector sets the detector used to pick the default theme
// when a request carries no theme.
func WithBackgroundDetector(d BackgroundDetector) RenderOption {
	return func(cfg *renderConfig) {
		cfg.detector = d
	}
}
