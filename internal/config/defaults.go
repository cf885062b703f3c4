package config

// DefaultExtensions are the attachment types the extractor supports.
var DefaultExtensions = []string{".hwp", ".hwpx", ".pdf"}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if cfg.Output.PreviewChars == 0 {
		cfg.Output.PreviewChars = 2000
	}
}
