package gemini

import "careerquiz/backend/internal/llm"

// Register Gemini provider on package import
func init() {
	llm.RegisterProvider("gemini", func(opts llm.ProviderOptions) (llm.Provider, error) {
		config, err := NewConfig()
		if err != nil {
			return nil, err
		}
		config.Timeout = opts.Timeout
		return NewClient(config)
	})
}
